// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactions

import (
	"github.com/prometheus/client_golang/prometheus"
)

// outcomes of an inbound transaction
const (
	outcomeImported    = "imported"
	outcomeKnown       = "known"
	outcomeInvalid     = "invalid"
	outcomeRejected    = "rejected"
	outcomeRecent      = "recent"
	outcomeMalformed   = "malformed"
	outcomeUnsolicited = "unsolicited"
)

type metrics struct {
	inbound    *prometheus.CounterVec
	sent       prometheus.Counter
	announced  prometheus.Counter
	requested  prometheus.Counter
	served     prometheus.Counter
	knownPeers prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		inbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "inbound_total",
			Help:      "Transactions received from peers by outcome.",
		}, []string{"outcome"}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "sent_total",
			Help:      "Full transactions sent to peers.",
		}),
		announced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "announced_total",
			Help:      "Transaction hashes announced to peers.",
		}),
		requested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "requested_total",
			Help:      "Announced transactions fetched from peers.",
		}),
		served: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "served_total",
			Help:      "Pooled transactions returned to peers.",
		}),
		knownPeers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ethnetd",
			Subsystem: "transactions",
			Name:      "tracked_peers",
			Help:      "Peers with a known transaction set.",
		}),
	}

	if nil == r {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.inbound, m.sent, m.announced, m.requested, m.served, m.knownPeers} {
		if err := r.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}
