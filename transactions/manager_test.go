// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactions_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/background"
	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/transactions"
	"github.com/bitmark-inc/ethnetd/transactions/mocks"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

func newPool(ctl *gomock.Controller, pending []*types.Transaction) (*mocks.MockPool, chan *types.Transaction) {
	fresh := make(chan *types.Transaction, 10)

	sub := mocks.NewMockSubscription(ctl)
	sub.EXPECT().Chan().Return(fresh).Times(1)
	sub.EXPECT().Unsubscribe().Return().Times(1)

	pool := mocks.NewMockPool(ctl)
	pool.EXPECT().SubscribeNew().Return(sub).Times(1)
	pool.EXPECT().Pending().Return(pending).AnyTimes()

	return pool, fresh
}

func TestAnnounceExactlyOnce(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx1 := &types.Transaction{Nonce: 1, Gas: 21000}
	tx2 := &types.Transaction{Nonce: 2, Gas: 21000}

	pool, fresh := newPool(ctl, []*types.Transaction{tx1})
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	s := f.establish(t, peer.ID("a"))

	m := next(t, s)
	announced, ok := m.(*wire.NewPooledTransactionHashes)
	assert.True(t, ok, "wrong message: %T", m)
	assert.Equal(t, [][]byte{tx1.Hash().Bytes()}, announced.Hashes, "wrong announcement")

	// the pool reporting it again must not repeat it
	fresh <- tx1
	fresh <- tx2

	m = next(t, s)
	sent, ok := m.(*wire.Transactions)
	assert.True(t, ok, "wrong message: %T", m)
	assert.Equal(t, 1, len(sent.Transactions), "wrong count")
	assert.Equal(t, tx2.Hash(), sent.Transactions[0].Hash(), "wrong transaction")

	f.transactions.PropagatePending()
	nothingSent(t, s)
}

func TestPropagationSplit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, fresh := newPool(ctl, nil)
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	ids := []peer.ID{"a", "b", "c", "d"}
	sessions := make(map[peer.ID]chan wire.Message)
	for _, id := range ids {
		s := f.establish(t, id)
		out := make(chan wire.Message, 10)
		go func() {
			for m := range s.Outbound() {
				out <- m
			}
		}()
		sessions[id] = out
	}

	tx := &types.Transaction{Nonce: 7}
	fresh <- tx

	full := 0
	hashes := 0
	for _, id := range ids {
		m := <-sessions[id]
		switch msg := m.(type) {
		case *wire.Transactions:
			full += 1
			assert.Equal(t, tx.Hash(), msg.Transactions[0].Hash(), "wrong transaction")
		case *wire.NewPooledTransactionHashes:
			hashes += 1
			assert.Equal(t, [][]byte{tx.Hash().Bytes()}, msg.Hashes, "wrong hash")
		default:
			t.Errorf("unexpected message: %T", m)
		}
	}
	assert.Equal(t, 2, full, "full bodies not sent to square root of peers")
	assert.Equal(t, 2, hashes, "hashes not announced to the rest")
}

func TestImportOutcomes(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	id := peer.ID("a")
	s := f.establish(t, id)

	good := &types.Transaction{Nonce: 1}
	known := &types.Transaction{Nonce: 2}
	invalid := &types.Transaction{Nonce: 3}
	last := &types.Transaction{Nonce: 4}

	done := make(chan struct{})
	gomock.InOrder(
		pool.EXPECT().Insert(good).Return(nil).Times(1),
		pool.EXPECT().Insert(known).Return(fault.TransactionAlreadyKnown).Times(1),
		pool.EXPECT().Insert(invalid).Return(fault.InvalidTransaction).Times(1),
		pool.EXPECT().Insert(last).Do(func(*types.Transaction) { close(done) }).Return(fault.TransactionUnderpriced).Times(1),
	)

	f.receive(s, &wire.Transactions{Transactions: []*types.Transaction{good, known, invalid, nil}})

	// recently imported, not offered to the pool again
	f.receive(s, &wire.Transactions{Transactions: []*types.Transaction{good}})
	f.receive(s, &wire.Transactions{Transactions: []*types.Transaction{last}})
	<-done

	info, ok := f.network.Handle().Peers().Get(id)
	assert.True(t, ok, "peer removed")
	assert.Equal(t, peers.BadTransactions.Weight(), info.Reputation, "wrong reputation")
}

func TestOversizedMessagePenalised(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	config := transactions.DefaultConfig()
	config.MaxTransactionsPerMessage = 2
	f := start(t, pool, config)
	defer f.processes.Stop()

	id := peer.ID("a")
	s := f.establish(t, id)

	txs := []*types.Transaction{{Nonce: 1}, {Nonce: 2}, {Nonce: 3}}
	f.receive(s, &wire.Transactions{Transactions: txs})

	waitFor(t, "penalty", func() bool {
		info, _ := f.network.Handle().Peers().Get(id)
		return info.Reputation == peers.BadTransactions.Weight()
	})
}

func TestFetchAnnounced(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	have := &types.Transaction{Nonce: 1}
	want := &types.Transaction{Nonce: 2}

	pool.EXPECT().Contains(have.Hash()).Return(true).AnyTimes()
	pool.EXPECT().Contains(want.Hash()).Return(false).Times(1)

	a := f.establish(t, peer.ID("a"))
	b := f.establish(t, peer.ID("b"))

	announcement := &wire.NewPooledTransactionHashes{
		Hashes: types.HashesToBytes([]types.Hash{have.Hash(), want.Hash()}),
	}
	f.receive(a, announcement)

	m := next(t, a)
	request, ok := m.(*wire.GetPooledTransactions)
	assert.True(t, ok, "wrong message: %T", m)
	assert.Equal(t, [][]byte{want.Hash().Bytes()}, request.Hashes, "wrong request")

	// already being fetched from a
	f.receive(b, announcement)
	nothingSent(t, b)

	done := make(chan struct{})
	pool.EXPECT().Insert(want).Do(func(*types.Transaction) { close(done) }).Return(nil).Times(1)
	f.receive(a, &wire.PooledTransactions{RequestID: request.RequestID, Transactions: []*types.Transaction{want}})
	<-done
}

func TestServePooled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	tx := &types.Transaction{Nonce: 1, Data: []byte("data")}
	missing := types.Keccak256Hash([]byte("missing"))

	pool.EXPECT().Get(tx.Hash()).Return(tx).Times(1)
	pool.EXPECT().Get(missing).Return(nil).Times(1)

	s := f.establish(t, peer.ID("a"))
	f.receive(s, &wire.GetPooledTransactions{
		RequestID: 7,
		Hashes:    types.HashesToBytes([]types.Hash{tx.Hash(), missing}),
	})

	m := next(t, s)
	reply, ok := m.(*wire.PooledTransactions)
	assert.True(t, ok, "wrong message: %T", m)
	assert.Equal(t, uint64(7), reply.RequestID, "wrong request id")
	assert.Equal(t, 1, len(reply.Transactions), "wrong count")
	assert.Equal(t, tx.Hash(), reply.Transactions[0].Hash(), "wrong transaction")
}

func TestRunStopsWhenRouteClosed(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	n, err := network.New(network.Config{}, peer.ID("local"))
	assert.Nil(t, err, "wrong create")

	route := messagebus.NewQueue()
	m := transactions.New(n.Handle(), pool, route, transactions.Config{})
	assert.True(t, n.Handle().SameNetwork(m.Handle()), "wrong handle")

	for i := 0; i < 10; i += 1 {
		_ = route.Send(network.SessionClosed{Peer: peer.ID("x")})
	}
	route.Close()

	done := make(chan struct{})
	go func() {
		m.Run(nil, make(chan struct{}))
		close(done)
	}()
	<-done
	assert.Zero(t, route.Len(), "items left in route")
}

func TestFailedSendLeavesHashUnknown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx := &types.Transaction{Nonce: 1}
	pool := mocks.NewMockPool(ctl)
	pool.EXPECT().Pending().Return([]*types.Transaction{tx}).Times(1)

	n, err := network.New(network.Config{}, peer.ID("local"))
	assert.Nil(t, err, "wrong create")

	// a stopped network refuses every command
	background.Start(background.Processes{n}, nil).Stop()

	h := n.Handle()
	id := peer.ID("a")
	assert.Nil(t, h.Peers().Add(id, wire.DefaultCapabilities(), peers.Inbound), "wrong add")
	assert.NotNil(t, h.SendTransactions(id, []*types.Transaction{tx}), "stopped network accepted command")

	m := transactions.New(h, pool, messagebus.NewQueue(), transactions.DefaultConfig())
	m.PropagatePending()
	assert.False(t, m.Knows(id, tx.Hash()), "unsent hash marked known")
}

func TestSentHashIsKnown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx := &types.Transaction{Nonce: 1}
	pool, _ := newPool(ctl, []*types.Transaction{tx})
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	id := peer.ID("a")
	s := f.establish(t, id)
	next(t, s)
	waitFor(t, "known", func() bool { return f.transactions.Knows(id, tx.Hash()) })
}

func TestOldPeersGetFullTransactions(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tx := &types.Transaction{Nonce: 1}
	pool, _ := newPool(ctl, []*types.Transaction{tx})
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	id := peer.ID("old")
	s := session.NewMemory(id, 0)
	old := []wire.Capability{{Name: wire.ProtocolName, Version: 64}}
	f.network.SessionEvents() <- session.Established(s, old, peers.Outbound)

	m := next(t, s)
	sent, ok := m.(*wire.Transactions)
	assert.True(t, ok, "wrong message: %T", m)
	assert.Equal(t, tx.Hash(), sent.Transactions[0].Hash(), "wrong transaction")
}

func TestRequestedTransactionsImproveReputation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool, _ := newPool(ctl, nil)
	f := start(t, pool, transactions.DefaultConfig())
	defer f.processes.Stop()

	id := peer.ID("a")
	s := f.establish(t, id)
	f.network.Handle().ReputationChange(id, peers.BadMessage)

	want := &types.Transaction{Nonce: 2}
	pool.EXPECT().Contains(want.Hash()).Return(false).Times(1)

	f.receive(s, &wire.NewPooledTransactionHashes{Hashes: types.HashesToBytes([]types.Hash{want.Hash()})})
	request := next(t, s).(*wire.GetPooledTransactions)

	pool.EXPECT().Insert(want).Return(nil).Times(1)
	f.receive(s, &wire.PooledTransactions{RequestID: request.RequestID, Transactions: []*types.Transaction{want}})

	expected := peers.BadMessage.Weight() + peers.GoodResponse.Weight()
	waitFor(t, "reward", func() bool {
		info, _ := f.network.Handle().Peers().Get(id)
		return expected == info.Reputation
	})
}
