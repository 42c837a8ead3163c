// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethrequests

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	served    *prometheus.CounterVec
	malformed prometheus.Counter
	truncated *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "requests",
			Name:      "served_total",
			Help:      "Requests answered by message type.",
		}, []string{"request"}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "requests",
			Name:      "malformed_total",
			Help:      "Requests rejected as malformed.",
		}),
		truncated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ethnetd",
			Subsystem: "requests",
			Name:      "truncated_total",
			Help:      "Responses cut short by a limit.",
		}, []string{"limit"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ethnetd",
			Subsystem: "requests",
			Name:      "serve_seconds",
			Help:      "Time to assemble a response.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"request"}),
	}

	if nil == r {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.served, m.malformed, m.truncated, m.latency} {
		if err := r.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}
