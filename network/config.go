// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/wire"
)

// EthRequestChannelCapacity - depth of the request route
//
// each queued request may be as large as wire.MaxMessageSize so the
// queue holds at most about 2.6GB
const EthRequestChannelCapacity = 256

// MaxQueuedRequestBytes - worst case memory held by the request route
const MaxQueuedRequestBytes = EthRequestChannelCapacity * wire.MaxMessageSize

// defaults
const (
	DefaultMaxPeers          = 50
	DefaultSessionEventQueue = 1024
	DefaultRequestRate       = 100.0

	// a peer may fill the whole request queue twice over before its
	// rate applies
	DefaultRequestBurst = 2 * EthRequestChannelCapacity
)

// FullQueuePolicy - what happens to a request that arrives when the
// request route is full
type FullQueuePolicy string

// full queue policies
const (
	// drop the request silently
	PolicyDrop FullQueuePolicy = "drop"

	// drop the request and reply at once with an empty response so the
	// peer need not wait for a timeout
	PolicySignal FullQueuePolicy = "signal"

	// drop the request and lower the peer's reputation
	PolicyPenalise FullQueuePolicy = "penalise"
)

// ParseFullQueuePolicy - convert a configuration string, empty means
// the default
func ParseFullQueuePolicy(s string) (FullQueuePolicy, error) {
	switch FullQueuePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyDrop:
		return PolicyDrop, nil
	case PolicySignal:
		return PolicySignal, nil
	case PolicyPenalise, "penalize":
		return PolicyPenalise, nil
	default:
		return "", fault.InvalidPolicy
	}
}

// Config - network manager settings
type Config struct {
	MaxPeers          int     `gluamapper:"max_peers" json:"max_peers"`
	FullQueuePolicy   string  `gluamapper:"full_queue_policy" json:"full_queue_policy"`
	RequestRate       float64 `gluamapper:"request_rate" json:"request_rate"` // per peer per second, zero or less is unlimited
	RequestBurst      int     `gluamapper:"request_burst" json:"request_burst"`
	BanDuration       string  `gluamapper:"ban_duration" json:"ban_duration"`
	SessionEventQueue int     `gluamapper:"session_event_queue" json:"session_event_queue"`

	// optional, metrics are not exported if nil
	Registerer prometheus.Registerer `gluamapper:"-" json:"-"`
}

// DefaultConfig - settings for a typical node
func DefaultConfig() Config {
	return Config{
		MaxPeers:          DefaultMaxPeers,
		FullQueuePolicy:   string(PolicyDrop),
		RequestRate:       DefaultRequestRate,
		RequestBurst:      DefaultRequestBurst,
		BanDuration:       "12h",
		SessionEventQueue: DefaultSessionEventQueue,
	}
}

type settings struct {
	maxPeers     int
	policy       FullQueuePolicy
	requestRate  float64
	requestBurst int
	banDuration  time.Duration
	eventQueue   int
}

func (c Config) settings() (settings, error) {
	policy, err := ParseFullQueuePolicy(c.FullQueuePolicy)
	if nil != err {
		return settings{}, err
	}

	s := settings{
		maxPeers:     c.MaxPeers,
		policy:       policy,
		requestRate:  c.RequestRate,
		requestBurst: c.RequestBurst,
		eventQueue:   c.SessionEventQueue,
	}

	if s.maxPeers <= 0 {
		s.maxPeers = DefaultMaxPeers
	}
	if s.eventQueue <= 0 {
		s.eventQueue = DefaultSessionEventQueue
	}
	if s.requestBurst <= 0 {
		s.requestBurst = DefaultRequestBurst
	}
	if "" != c.BanDuration {
		s.banDuration, err = time.ParseDuration(c.BanDuration)
		if nil != err {
			return settings{}, err
		}
	}
	return s, nil
}
