// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ethnetd/fault"
)

// HashLength - number of bytes in a hash
const HashLength = 32

// Hash - Keccak-256 digest
type Hash [HashLength]byte

// Keccak256Hash - digest of the concatenation of data
func Keccak256Hash(data ...[]byte) Hash {
	var h Hash
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// BytesToHash - exact conversion, fails unless len(b) == HashLength
func BytesToHash(b []byte) (Hash, error) {
	var h Hash
	if HashLength != len(b) {
		return h, fault.InvalidHashLength
	}
	copy(h[:], b)
	return h, nil
}

// BytesToHashes - convert a wire list of hashes
func BytesToHashes(list [][]byte) ([]Hash, error) {
	hashes := make([]Hash, len(list))
	for i, b := range list {
		h, err := BytesToHash(b)
		if nil != err {
			return nil, err
		}
		hashes[i] = h
	}
	return hashes, nil
}

// HashesToBytes - convert to a wire list of hashes
func HashesToBytes(hashes []Hash) [][]byte {
	list := make([][]byte, len(hashes))
	for i := range hashes {
		list[i] = hashes[i].Bytes()
	}
	return list
}

// Bytes - copy of the hash as a slice
func (h Hash) Bytes() []byte {
	b := make([]byte, HashLength)
	copy(b, h[:])
	return b
}

// IsZero - all bytes zero
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String - hex with 0x prefix
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// TerminalString - shortened form for logs
func (h Hash) TerminalString() string {
	return "0x" + hex.EncodeToString(h[:3]) + "…" + hex.EncodeToString(h[29:])
}
