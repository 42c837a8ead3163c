// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/types"
)

func TestKeccakEmpty(t *testing.T) {
	// well known digest of the empty string
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		types.Keccak256Hash().String(),
		"wrong empty digest")
}

func TestTransactionHashIsStable(t *testing.T) {
	tx1 := &types.Transaction{Nonce: 1, GasPrice: 10, Gas: 21000, Data: []byte{1, 2, 3}}
	tx2 := &types.Transaction{Nonce: 1, GasPrice: 10, Gas: 21000, Data: []byte{1, 2, 3}}
	tx3 := &types.Transaction{Nonce: 2, GasPrice: 10, Gas: 21000, Data: []byte{1, 2, 3}}

	assert.Equal(t, tx1.Hash(), tx2.Hash(), "equal transactions hash differently")
	assert.NotEqual(t, tx1.Hash(), tx3.Hash(), "different transactions hash equally")
	assert.False(t, tx1.Hash().IsZero(), "zero hash")
	assert.True(t, tx1.Size() > 0, "zero size")
}

func TestBytesToHash(t *testing.T) {
	h := types.Keccak256Hash([]byte("header"))

	converted, err := types.BytesToHash(h.Bytes())
	assert.Nil(t, err, "wrong conversion")
	assert.Equal(t, h, converted, "wrong hash")

	_, err = types.BytesToHash([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidHashLength, err, "short hash accepted")

	_, err = types.BytesToHashes([][]byte{h.Bytes(), {1}})
	assert.Equal(t, fault.InvalidHashLength, err, "short hash in list accepted")
}

func TestHeaderHashDependsOnNumber(t *testing.T) {
	h1 := &types.Header{Number: 1, GasLimit: 8000000}
	h2 := &types.Header{Number: 2, GasLimit: 8000000}
	assert.NotEqual(t, h1.Hash(), h2.Hash(), "hash ignores number")
}
