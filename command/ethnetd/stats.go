// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/p2p"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

func memstats() {

	log := logger.New("memory")

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		s := m.Sys / mega
		log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, s)

		time.Sleep(statsDelay)
	}
}

// netstats - periodic log of network counters until shutdown
func netstats(handle network.Handle, node *p2p.Node, shutdown <-chan struct{}) {

	log := logger.New("stats")

	for {
		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}

		text, err := json.Marshal(handle.Stats())
		if nil != err {
			log.Errorf("marshal error: %s", err)
			continue
		}
		log.Infof("peers: %d  connections: %d  streams: %d  stats: %s",
			handle.NumConnected(), node.ConnCount(), node.StreamCount(), text)
	}
}
