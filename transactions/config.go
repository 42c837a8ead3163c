// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactions

import (
	"github.com/prometheus/client_golang/prometheus"
)

// defaults
const (
	DefaultKnownTransactionsPerPeer  = 32768
	DefaultRecentlyImported          = 16384
	DefaultMaxTransactionsPerMessage = 4096
)

// Config - transactions manager settings
type Config struct {
	KnownTransactionsPerPeer  int `gluamapper:"known_per_peer" json:"known_per_peer"`
	RecentlyImported          int `gluamapper:"recently_imported" json:"recently_imported"`
	MaxTransactionsPerMessage int `gluamapper:"max_per_message" json:"max_per_message"`

	// optional, metrics are not exported if nil
	Registerer prometheus.Registerer `gluamapper:"-" json:"-"`
}

// DefaultConfig - settings for a typical node
func DefaultConfig() Config {
	return Config{
		KnownTransactionsPerPeer:  DefaultKnownTransactionsPerPeer,
		RecentlyImported:          DefaultRecentlyImported,
		MaxTransactionsPerMessage: DefaultMaxTransactionsPerMessage,
	}
}

func (c Config) withDefaults() Config {
	if c.KnownTransactionsPerPeer <= 0 {
		c.KnownTransactionsPerPeer = DefaultKnownTransactionsPerPeer
	}
	if c.RecentlyImported <= 0 {
		c.RecentlyImported = DefaultRecentlyImported
	}
	if c.MaxTransactionsPerMessage <= 0 {
		c.MaxTransactionsPerMessage = DefaultMaxTransactionsPerMessage
	}
	return c
}
