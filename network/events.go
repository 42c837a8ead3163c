// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"time"

	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// TransactionsEvent - an item on the transactions route, one of:
//
//	SessionEstablished, SessionClosed, IncomingTransactions,
//	IncomingPooledHashes, GetPooledTransactions
type TransactionsEvent interface {
	PeerID() peer.ID
}

// SessionEstablished - a peer completed its handshake
type SessionEstablished struct {
	Peer         peer.ID
	Capabilities []wire.Capability
}

// SessionClosed - a peer went away
type SessionClosed struct {
	Peer peer.ID
}

// IncomingTransactions - transactions pushed by a peer, Pooled is set
// when they answer our own GetPooledTransactions
type IncomingTransactions struct {
	Peer         peer.ID
	Transactions []*types.Transaction
	Pooled       bool
}

// IncomingPooledHashes - a peer announced transactions it holds
type IncomingPooledHashes struct {
	Peer   peer.ID
	Hashes []types.Hash
}

// GetPooledTransactions - a peer asked for transactions by hash
type GetPooledTransactions struct {
	Peer      peer.ID
	RequestID uint64
	Hashes    []types.Hash
}

// PeerID - originating peer
func (e SessionEstablished) PeerID() peer.ID { return e.Peer }

// PeerID - originating peer
func (e SessionClosed) PeerID() peer.ID { return e.Peer }

// PeerID - originating peer
func (e IncomingTransactions) PeerID() peer.ID { return e.Peer }

// PeerID - originating peer
func (e IncomingPooledHashes) PeerID() peer.ID { return e.Peer }

// PeerID - originating peer
func (e GetPooledTransactions) PeerID() peer.ID { return e.Peer }

// ReplyFunc - delivers a response to the peer that made a request
type ReplyFunc func(wire.Message) error

// EthRequest - an item on the request route
type EthRequest struct {
	Peer     peer.ID
	Message  wire.Request
	Received time.Time
	reply    ReplyFunc
}

// NewEthRequest - create a request with its reply path
func NewEthRequest(id peer.ID, m wire.Request, reply ReplyFunc) EthRequest {
	return EthRequest{
		Peer:     id,
		Message:  m,
		Received: time.Now(),
		reply:    reply,
	}
}

// Reply - queue the response on the originating session, never blocks
func (r EthRequest) Reply(m wire.Message) error {
	if nil == r.reply {
		return fault.SessionClosed
	}
	return r.reply(m)
}

// NewEthRequestChannel - a request route of the standard capacity
func NewEthRequestChannel() chan EthRequest {
	return make(chan EthRequest, EthRequestChannelCapacity)
}
