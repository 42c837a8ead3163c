// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ethnetd/chain"
	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/types"
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

func block(n uint64, parent *types.Header) (*types.Header, *types.Body, *types.ReceiptList) {
	header := &types.Header{Number: n, GasLimit: 8000000, Time: 1500000000 + n}
	if nil != parent {
		header.ParentHash = parent.Hash().Bytes()
	}
	tx := &types.Transaction{Nonce: n, Gas: 21000}
	body := &types.Body{Transactions: []*types.Transaction{tx}}
	receipts := &types.ReceiptList{Receipts: []*types.Receipt{{TxHash: tx.Hash().Bytes(), Status: 1, CumulativeGasUsed: 21000}}}
	return header, body, receipts
}

func TestWriteAndRead(t *testing.T) {
	s, err := chain.OpenStorage(ldb_storage.NewMemStorage())
	assert.Nil(t, err, "wrong open")
	defer s.Close()

	_, err = s.Head()
	assert.Equal(t, fault.HeaderNotFound, err, "head of empty store")

	var parent *types.Header
	for n := uint64(0); n < 5; n += 1 {
		header, body, receipts := block(n, parent)
		assert.Nil(t, s.WriteBlock(header, body, receipts), "wrong write")
		parent = header
	}

	head, err := s.Head()
	assert.Nil(t, err, "wrong head")
	assert.Equal(t, uint64(4), head.Number, "wrong head number")

	genesis, err := s.Genesis()
	assert.Nil(t, err, "wrong genesis")
	assert.Equal(t, uint64(0), genesis.Number, "wrong genesis number")

	h3, err := s.HeaderByNumber(3)
	assert.Nil(t, err, "wrong header")
	byHash, err := s.HeaderByHash(h3.Hash())
	assert.Nil(t, err, "wrong header")
	assert.Equal(t, h3.Hash(), byHash.Hash(), "number and hash disagree")

	body, err := s.BodyByHash(h3.Hash())
	assert.Nil(t, err, "wrong body")
	assert.Equal(t, uint64(3), body.Transactions[0].Nonce, "wrong body")

	receipts, err := s.ReceiptsByHash(h3.Hash())
	assert.Nil(t, err, "wrong receipts")
	assert.Equal(t, body.Transactions[0].Hash().Bytes(), receipts.Receipts[0].TxHash, "wrong receipts")

	// cached reads give the same result
	again, err := s.HeaderByNumber(3)
	assert.Nil(t, err, "wrong header")
	assert.Equal(t, h3.Hash(), again.Hash(), "cache changed header")
}

func TestMissingData(t *testing.T) {
	s, err := chain.OpenStorage(ldb_storage.NewMemStorage())
	assert.Nil(t, err, "wrong open")
	defer s.Close()

	absent := types.Keccak256Hash([]byte("absent"))

	_, err = s.HeaderByHash(absent)
	assert.True(t, fault.IsErrNotFound(err), "wrong error: %v", err)
	_, err = s.HeaderByNumber(99)
	assert.True(t, fault.IsErrNotFound(err), "wrong error: %v", err)
	_, err = s.BodyByHash(absent)
	assert.Equal(t, fault.BodyNotFound, err, "wrong error")
	_, err = s.ReceiptsByHash(absent)
	assert.Equal(t, fault.ReceiptsNotFound, err, "wrong error")

	// header only blocks have no body
	header, _, _ := block(0, nil)
	assert.Nil(t, s.WriteBlock(header, nil, nil), "wrong write")
	_, err = s.BodyByHash(header.Hash())
	assert.Equal(t, fault.BodyNotFound, err, "wrong error")

	assert.Equal(t, fault.InvalidStructPointer, s.WriteBlock(nil, nil, nil), "nil header accepted")
}

func TestReorgMovesCanonical(t *testing.T) {
	s, err := chain.OpenStorage(ldb_storage.NewMemStorage())
	assert.Nil(t, err, "wrong open")
	defer s.Close()

	genesis, _, _ := block(0, nil)
	a, _, _ := block(1, genesis)
	b := &types.Header{Number: 1, ParentHash: genesis.Hash().Bytes(), Extra: []byte("fork")}

	assert.Nil(t, s.WriteBlock(genesis, nil, nil), "wrong write")
	assert.Nil(t, s.WriteBlock(a, nil, nil), "wrong write")
	_, _ = s.HeaderByNumber(1)
	assert.Nil(t, s.WriteBlock(b, nil, nil), "wrong write")

	h, err := s.HeaderByNumber(1)
	assert.Nil(t, err, "wrong header")
	assert.Equal(t, b.Hash(), h.Hash(), "canonical block not replaced")

	// the replaced block is still reachable by hash
	_, err = s.HeaderByHash(a.Hash())
	assert.Nil(t, err, "fork block lost")
}

func TestReopen(t *testing.T) {
	name := filepath.Join(dir, "chain.leveldb")

	_, err := chain.Open(name, true)
	assert.NotNil(t, err, "read only open of missing database")

	s, err := chain.Open(name, false)
	assert.Nil(t, err, "wrong open")
	header, body, receipts := block(0, nil)
	assert.Nil(t, s.WriteBlock(header, body, receipts), "wrong write")
	s.Close()

	s, err = chain.Open(name, true)
	assert.Nil(t, err, "wrong reopen")
	defer s.Close()

	genesis, err := s.Genesis()
	assert.Nil(t, err, "wrong genesis")
	assert.Equal(t, header.Hash(), genesis.Hash(), "wrong genesis")
}

func TestChains(t *testing.T) {
	assert.True(t, chain.Valid(chain.Local), "local not valid")
	assert.False(t, chain.Valid("other"), "unknown chain valid")

	id, ok := chain.NetworkID(chain.Main)
	assert.True(t, ok, "main missing")
	assert.Equal(t, uint64(1), id, "wrong network id")
}

func TestInitialise(t *testing.T) {
	s, err := chain.OpenStorage(ldb_storage.NewMemStorage())
	assert.Nil(t, err, "wrong open")
	defer s.Close()

	genesis, err := s.Initialise(chain.Local)
	assert.Nil(t, err, "wrong initialise")
	assert.Equal(t, uint64(0), genesis.Number, "wrong genesis number")

	head, err := s.Head()
	assert.Nil(t, err, "no head after initialise")
	assert.Equal(t, genesis.Hash(), head.Hash(), "wrong head")

	again, err := s.Initialise(chain.Local)
	assert.Nil(t, err, "second initialise")
	assert.Equal(t, genesis.Hash(), again.Hash(), "genesis changed")

	_, err = s.Initialise(chain.Testing)
	assert.Equal(t, fault.GenesisMismatch, err, "other chain accepted")

	_, err = chain.GenesisHeader("other")
	assert.Equal(t, fault.InvalidChain, err, "unknown chain accepted")
}
