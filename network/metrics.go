// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/ethnetd/counter"
)

const metricsNamespace = "ethnetd"

// reasons a message was not delivered to a consumer
const (
	dropNoRoute     = "no_route"
	dropQueueFull   = "queue_full"
	dropRateLimited = "rate_limited"
	dropClosed      = "route_closed"
	dropResponse    = "unsolicited_response"
	dropUnknownPeer = "unknown_peer"
	dropBanned      = "banned"
)

// Stats - snapshot of the manager's counters
type Stats struct {
	Connected           uint64 `json:"connected"`
	SessionsEstablished uint64 `json:"sessionsEstablished"`
	SessionsClosed      uint64 `json:"sessionsClosed"`
	SessionsRejected    uint64 `json:"sessionsRejected"`
	TransactionsRouted  uint64 `json:"transactionsRouted"`
	RequestsRouted      uint64 `json:"requestsRouted"`
	RequestsDropped     uint64 `json:"requestsDropped"`
	RequestsRateLimited uint64 `json:"requestsRateLimited"`
	Unrouted            uint64 `json:"unrouted"`
	BadMessages         uint64 `json:"badMessages"`
	SendFailures        uint64 `json:"sendFailures"`
	Responses           uint64 `json:"responses"`
}

type statistics struct {
	established  counter.Counter
	closed       counter.Counter
	rejected     counter.Counter
	transactions counter.Counter
	requests     counter.Counter
	dropped      counter.Counter
	rateLimited  counter.Counter
	unrouted     counter.Counter
	badMessages  counter.Counter
	sendFailures counter.Counter
	responses    counter.Counter
}

func (s *statistics) snapshot(connected int) Stats {
	return Stats{
		Connected:           uint64(connected),
		SessionsEstablished: s.established.Uint64(),
		SessionsClosed:      s.closed.Uint64(),
		SessionsRejected:    s.rejected.Uint64(),
		TransactionsRouted:  s.transactions.Uint64(),
		RequestsRouted:      s.requests.Uint64(),
		RequestsDropped:     s.dropped.Uint64(),
		RequestsRateLimited: s.rateLimited.Uint64(),
		Unrouted:            s.unrouted.Uint64(),
		BadMessages:         s.badMessages.Uint64(),
		SendFailures:        s.sendFailures.Uint64(),
		Responses:           s.responses.Uint64(),
	}
}

type metrics struct {
	sessions prometheus.Gauge
	routed   *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	queued   prometheus.GaugeFunc
}

func newMetrics(r prometheus.Registerer, queueDepth func() float64) (*metrics, error) {
	m := &metrics{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "network",
			Name:      "sessions",
			Help:      "Active peer sessions.",
		}),
		routed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "network",
			Name:      "routed_messages_total",
			Help:      "Inbound messages forwarded to a consumer.",
		}, []string{"category"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "network",
			Name:      "dropped_messages_total",
			Help:      "Inbound messages not forwarded to a consumer.",
		}, []string{"reason"}),
		queued: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "network",
			Name:      "queued_requests",
			Help:      "Requests waiting in the request route.",
		}, queueDepth),
	}

	if nil == r {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.sessions, m.routed, m.dropped, m.queued} {
		if err := r.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}
