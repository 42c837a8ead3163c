// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"

	peerlib "github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/ethnetd/peers"
)

// Connect - dial a peer address ending in /p2p/<id> and open an eth
// session to it
//
// a peer that already has a session is skipped
func (n *Node) Connect(ctx context.Context, addr ma.Multiaddr) error {
	infos, err := resolve(ctx, addr)
	if nil != err {
		return err
	}

	for _, info := range infos {
		if err := n.DirectConnect(ctx, info); nil != err {
			return err
		}
	}
	return nil
}

// DirectConnect - connect to the peer with given peer AddrInfo
func (n *Node) DirectConnect(ctx context.Context, info peerlib.AddrInfo) error {
	if n.host.ID() == info.ID {
		n.log.Debug("DirectConnect to the self node")
		return nil
	}
	if n.isConnected(info.ID) {
		n.log.Debugf("DirectConnect ID: %s is already connected", info.ID.ShortString())
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, connectCancelTime)
	defer cancel()

	if err := n.host.Connect(cctx, info); nil != err {
		return err
	}

	stream, err := n.host.NewStream(cctx, info.ID, ProtocolID)
	if nil != err {
		return err
	}

	if err := n.start(stream, peers.Outbound); nil != err {
		stream.Reset()
		return err
	}
	n.log.Infof("DirectConnect to: %s", info.ID.ShortString())
	return nil
}
