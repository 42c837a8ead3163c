// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network_test

import (
	"testing"

	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

func TestHandleIdentity(t *testing.T) {
	m1, err := network.New(network.Config{}, localID)
	assert.Nil(t, err, "wrong create")
	m2, err := network.New(network.Config{}, localID)
	assert.Nil(t, err, "wrong create")

	h := m1.Handle()
	c := h.Clone()
	assert.True(t, h.SameNetwork(c), "clone differs")
	assert.True(t, c.SameNetwork(m1.Handle()), "second handle differs")
	assert.False(t, h.SameNetwork(m2.Handle()), "different managers equal")
	assert.False(t, h.SameNetwork(network.Handle{}), "zero handle equal")
	assert.True(t, h.Peers() == c.Peers(), "different peer sets")
}

func TestHandleCommands(t *testing.T) {
	m, p := start(t, network.Config{})
	defer p.Stop()

	h := m.Handle().Clone()
	id := peer.ID("a")
	s := establish(m, id)
	waitFor(t, "session", connected(h, 1))

	tx := &types.Transaction{Nonce: 1}
	hash := tx.Hash()

	assert.Nil(t, h.SendTransactions(id, []*types.Transaction{tx}), "wrong send")
	assert.Nil(t, h.AnnounceTransactionHashes(id, []types.Hash{hash}), "wrong announce")
	assert.Nil(t, h.RequestPooledTransactions(id, []types.Hash{hash}), "wrong request")
	assert.Nil(t, h.SendPooledTransactions(id, 9, []*types.Transaction{tx}), "wrong send")

	m1 := <-s.Outbound()
	assert.Equal(t, wire.TransactionsCode, m1.Code(), "wrong message")

	m2 := <-s.Outbound()
	announce := m2.(*wire.NewPooledTransactionHashes)
	assert.Equal(t, [][]byte{hash.Bytes()}, announce.Hashes, "wrong hashes")

	m3 := <-s.Outbound()
	request := m3.(*wire.GetPooledTransactions)
	assert.NotZero(t, request.RequestID, "missing request id")

	m4 := <-s.Outbound()
	pooled := m4.(*wire.PooledTransactions)
	assert.Equal(t, uint64(9), pooled.RequestID, "wrong request id")

	h.ReputationChange(id, peers.BadTransactions)
	info, _ := h.Peers().Get(id)
	assert.Equal(t, peers.BadTransactions.Weight(), info.Reputation, "wrong reputation")

	assert.Nil(t, h.DisconnectPeer(id, fault.TooManyPeers), "wrong disconnect")
	waitFor(t, "disconnect", connected(h, 0))
	assert.Equal(t, fault.TooManyPeers, s.Reason(), "wrong reason")
}

func TestHandleInstallsRoutes(t *testing.T) {
	m, p := start(t, network.Config{})
	defer p.Stop()

	h := m.Handle()
	route := network.NewEthRequestChannel()
	assert.Nil(t, h.SetEthRequestHandler(route), "wrong install")

	s := establish(m, peer.ID("a"))
	waitFor(t, "session", connected(h, 1))

	// the install command and the session events travel separately
	waitFor(t, "route", func() bool {
		m.SessionEvents() <- session.Received(s, &wire.GetBlockHeaders{RequestID: 1, Amount: 1})
		return len(route) > 0
	})
	request := <-route
	assert.Equal(t, wire.GetBlockHeadersCode, request.Message.Code(), "wrong request")
}
