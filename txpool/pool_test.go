// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txpool_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/txpool"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

const (
	dir         = "testing"
	logCategory = "testing"
)

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

func TestInsertOutcomes(t *testing.T) {
	p, err := txpool.New(txpool.Config{Capacity: 2, MinGasPrice: 10})
	assert.Nil(t, err, "wrong create")

	cheap := &types.Transaction{Nonce: 1, GasPrice: 5}
	a := &types.Transaction{Nonce: 1, GasPrice: 10}
	b := &types.Transaction{Nonce: 2, GasPrice: 20}
	c := &types.Transaction{Nonce: 3, GasPrice: 30}
	huge := &types.Transaction{GasPrice: 10, Data: make([]byte, wire.MaxTransactionSize)}

	assert.Equal(t, fault.InvalidTransaction, p.Insert(nil), "nil accepted")
	assert.Equal(t, fault.TransactionTooLarge, p.Insert(huge), "huge accepted")
	assert.Equal(t, fault.TransactionUnderpriced, p.Insert(cheap), "cheap accepted")
	assert.Nil(t, p.Insert(a), "wrong insert")
	assert.Equal(t, fault.TransactionAlreadyKnown, p.Insert(a), "duplicate accepted")
	assert.True(t, fault.IsErrExists(p.Insert(a)), "duplicate not classed as exists")
	assert.Nil(t, p.Insert(b), "wrong insert")
	assert.Equal(t, fault.PoolFull, p.Insert(c), "over capacity")

	assert.Equal(t, 2, p.Len(), "wrong count")
	assert.True(t, p.Contains(a.Hash()), "missing transaction")
	assert.Equal(t, a, p.Get(a.Hash()), "wrong transaction")
	assert.Nil(t, p.Get(c.Hash()), "absent transaction found")
	assert.Equal(t, []*types.Transaction{b, a}, p.Pending(), "wrong pending order")

	p.Remove(a.Hash())
	assert.False(t, p.Contains(a.Hash()), "not removed")
}

func TestSubscription(t *testing.T) {
	p, err := txpool.New(txpool.Config{})
	assert.Nil(t, err, "wrong create")

	s := p.SubscribeNew()
	tx := &types.Transaction{Nonce: 9}
	assert.Nil(t, p.Insert(tx), "wrong insert")

	select {
	case received := <-s.Chan():
		assert.Equal(t, tx, received, "wrong transaction")
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}

	s.Unsubscribe()
	s.Unsubscribe()
	_, ok := <-s.Chan()
	assert.False(t, ok, "channel open after unsubscribe")

	assert.Nil(t, p.Insert(&types.Transaction{Nonce: 10}), "insert after unsubscribe")
}

func TestExpiry(t *testing.T) {
	p, err := txpool.New(txpool.Config{Lifetime: "20ms"})
	assert.Nil(t, err, "wrong create")

	tx := &types.Transaction{Nonce: 1}
	assert.Nil(t, p.Insert(tx), "wrong insert")
	time.Sleep(40 * time.Millisecond)
	assert.False(t, p.Contains(tx.Hash()), "transaction did not expire")

	_, err = txpool.New(txpool.Config{Lifetime: "soon"})
	assert.NotNil(t, err, "bad lifetime accepted")
}
