// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/counter"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// Handle - cheap copyable access to a running manager
//
// commands are queued for the manager loop and never block the caller;
// every copy refers to the same manager
type Handle struct {
	shared *handleState
}

type handleState struct {
	commands  *messagebus.Queue
	peers     *peers.Peers
	localID   peer.ID
	stats     *statistics
	requestID counter.Counter
}

// commands processed by the manager loop
type setTransactionsCommand struct {
	route *messagebus.Queue
}

type setEthRequestsCommand struct {
	route chan<- EthRequest
}

type sendCommand struct {
	peer    peer.ID
	message wire.Message
}

type disconnectCommand struct {
	peer   peer.ID
	reason error
}

// Peers - the shared peer set
func (h Handle) Peers() *peers.Peers {
	return h.shared.peers
}

// LocalID - this node's peer ID
func (h Handle) LocalID() peer.ID {
	return h.shared.localID
}

// Clone - another handle to the same manager
func (h Handle) Clone() Handle {
	return Handle{shared: h.shared}
}

// SameNetwork - true if both handles refer to one manager
func (h Handle) SameNetwork(other Handle) bool {
	return nil != h.shared && h.shared == other.shared
}

// NumConnected - count of established sessions
func (h Handle) NumConnected() int {
	return h.shared.peers.Len()
}

// Stats - current counters
func (h Handle) Stats() Stats {
	return h.shared.stats.snapshot(h.shared.peers.Len())
}

// SetTransactions - replace the transactions route
func (h Handle) SetTransactions(route *messagebus.Queue) error {
	return h.shared.commands.Send(setTransactionsCommand{route: route})
}

// SetEthRequestHandler - replace the request route
func (h Handle) SetEthRequestHandler(route chan<- EthRequest) error {
	return h.shared.commands.Send(setEthRequestsCommand{route: route})
}

// SendTransactions - push full transactions to a peer
func (h Handle) SendTransactions(id peer.ID, txs []*types.Transaction) error {
	return h.send(id, &wire.Transactions{Transactions: txs})
}

// AnnounceTransactionHashes - tell a peer which transactions are
// available
func (h Handle) AnnounceTransactionHashes(id peer.ID, hashes []types.Hash) error {
	return h.send(id, &wire.NewPooledTransactionHashes{Hashes: types.HashesToBytes(hashes)})
}

// RequestPooledTransactions - fetch announced transactions from a peer
func (h Handle) RequestPooledTransactions(id peer.ID, hashes []types.Hash) error {
	return h.send(id, &wire.GetPooledTransactions{
		RequestID: h.shared.requestID.Increment(),
		Hashes:    types.HashesToBytes(hashes),
	})
}

// SendPooledTransactions - answer a peer's GetPooledTransactions
func (h Handle) SendPooledTransactions(id peer.ID, requestID uint64, txs []*types.Transaction) error {
	return h.send(id, &wire.PooledTransactions{RequestID: requestID, Transactions: txs})
}

// ReputationChange - report peer behaviour
func (h Handle) ReputationChange(id peer.ID, kind peers.ReputationKind) {
	h.shared.peers.ChangeReputation(id, kind)
}

// DisconnectPeer - close a peer's session
func (h Handle) DisconnectPeer(id peer.ID, reason error) error {
	return h.shared.commands.Send(disconnectCommand{peer: id, reason: reason})
}

func (h Handle) send(id peer.ID, m wire.Message) error {
	return h.shared.commands.Send(sendCommand{peer: id, message: m})
}
