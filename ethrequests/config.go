// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethrequests

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/ethnetd/wire"
)

// serving limits
const (
	MaxHeadersServe  = 1024
	MaxBodiesServe   = 1024
	MaxReceiptsServe = 1024

	// headers are counted at this size rather than encoded
	estimatedHeaderSize = 500

	DefaultResponseTimeBudget = 2 * time.Second
)

// Config - request handler settings
type Config struct {
	MaxHeadersServe    int    `gluamapper:"max_headers" json:"max_headers"`
	MaxBodiesServe     int    `gluamapper:"max_bodies" json:"max_bodies"`
	MaxReceiptsServe   int    `gluamapper:"max_receipts" json:"max_receipts"`
	SoftResponseLimit  int    `gluamapper:"soft_response_limit" json:"soft_response_limit"`
	ResponseTimeBudget string `gluamapper:"response_time_budget" json:"response_time_budget"`

	// optional, metrics are not exported if nil
	Registerer prometheus.Registerer `gluamapper:"-" json:"-"`
}

// DefaultConfig - settings for a typical node
func DefaultConfig() Config {
	return Config{
		MaxHeadersServe:    MaxHeadersServe,
		MaxBodiesServe:     MaxBodiesServe,
		MaxReceiptsServe:   MaxReceiptsServe,
		SoftResponseLimit:  wire.SoftResponseLimit,
		ResponseTimeBudget: DefaultResponseTimeBudget.String(),
	}
}

type limits struct {
	headers  int
	bodies   int
	receipts int
	bytes    int
	budget   time.Duration
}

// zero or invalid values take the default, the protocol maximum
// cannot be exceeded
func (c Config) limits() limits {
	l := limits{
		headers:  bounded(c.MaxHeadersServe, MaxHeadersServe),
		bodies:   bounded(c.MaxBodiesServe, MaxBodiesServe),
		receipts: bounded(c.MaxReceiptsServe, MaxReceiptsServe),
		bytes:    bounded(c.SoftResponseLimit, wire.SoftResponseLimit),
		budget:   DefaultResponseTimeBudget,
	}
	if d, err := time.ParseDuration(c.ResponseTimeBudget); nil == err && d > 0 {
		l.budget = d
	}
	return l
}

func bounded(value int, maximum int) int {
	if value <= 0 || value > maximum {
		return maximum
	}
	return value
}
