// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"time"

	p2pnet "github.com/libp2p/go-libp2p-core/network"

	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/wire"
)

// handleStream - stream opened by a remote peer
func (n *Node) handleStream(stream p2pnet.Stream) {
	remote := stream.Conn().RemotePeer()
	n.log.Infof("inbound stream from: %s", remote.ShortString())

	if err := n.start(stream, peers.Inbound); nil != err {
		n.log.Warnf("peer: %s  inbound handshake error: %s", remote.ShortString(), err)
		stream.Reset()
	}
}

// start - run the handshake, report the session and start its
// reader and writer
func (n *Node) start(stream p2pnet.Stream, direction peers.Direction) error {
	local, err := n.localStatus()
	if nil != err {
		return err
	}

	stream.SetDeadline(time.Now().Add(n.handshakeTimeout))
	remote, err := handshake(stream, local)
	if nil != err {
		return err
	}
	stream.SetDeadline(time.Time{})

	s := newStreamSession(stream, n.sendQueue, n.log)
	n.log.Infof("peer: %s  %s  network: %d  head: %d", s.id.ShortString(), direction, remote.NetworkID, remote.HeadNumber)

	n.register(s)
	n.emit(session.Established(s, wire.DefaultCapabilities(), direction))

	go s.writer()
	go n.reader(s)
	return nil
}
