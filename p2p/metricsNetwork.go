// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"github.com/bitmark-inc/logger"
	p2pcore "github.com/libp2p/go-libp2p-core"
	p2pnet "github.com/libp2p/go-libp2p-core/network"
	peerlib "github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/ethnetd/counter"
)

// MetricsNetwork - libp2p connection and stream counts
type MetricsNetwork struct {
	streamCount counter.Counter
	connCount   counter.Counter
	host        p2pcore.Host
}

// NewMetricsNetwork - start monitoring a host's network
func NewMetricsNetwork(host p2pcore.Host, log *logger.L) *MetricsNetwork {
	m := &MetricsNetwork{host: host}
	m.networkMonitor(host, log)
	return m
}

func (m *MetricsNetwork) networkMonitor(host p2pcore.Host, log *logger.L) {
	host.Network().Notify(&p2pnet.NotifyBundle{
		ListenF: func(net p2pnet.Network, addr ma.Multiaddr) {
			log.Debugf("listen at: %s", addr)
		},
		ConnectedF: func(net p2pnet.Network, conn p2pnet.Conn) {
			count := m.connCount.Increment()
			log.Infof("conn: %s  connected  count: %d", conn.RemoteMultiaddr(), count)
		},
		DisconnectedF: func(net p2pnet.Network, conn p2pnet.Conn) {
			count := m.connCount.Decrement()
			log.Infof("conn: %s  disconnected  count: %d", conn.RemoteMultiaddr(), count)
		},
		OpenedStreamF: func(net p2pnet.Network, stream p2pnet.Stream) {
			count := m.streamCount.Increment()
			log.Debugf("stream: %s  opened  count: %d", stream.Conn().RemoteMultiaddr(), count)
		},
		ClosedStreamF: func(net p2pnet.Network, stream p2pnet.Stream) {
			count := m.streamCount.Decrement()
			log.Debugf("stream: %s  closed  count: %d", stream.Conn().RemoteMultiaddr(), count)
		},
	})
}

// ConnCount - current number of connections
func (m *MetricsNetwork) ConnCount() uint64 {
	return m.connCount.Uint64()
}

// StreamCount - current number of open streams
func (m *MetricsNetwork) StreamCount() uint64 {
	return m.streamCount.Uint64()
}

// IsConnected - libp2p holds a connection to the peer
func (m *MetricsNetwork) IsConnected(id peerlib.ID) bool {
	return p2pnet.Connected == m.host.Network().Connectedness(id)
}
