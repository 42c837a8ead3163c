// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	crypto "github.com/libp2p/go-libp2p-core/crypto"
	peerlib "github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/fault"
)

// GenRandPrvKey - generate a random ed25519 private key
func GenRandPrvKey() (crypto.PrivKey, error) {
	prvKey, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if nil != err {
		return nil, err
	}
	return prvKey, nil
}

// EncodePrvKeyToHex - private key to the hex form used in the
// configuration file
func EncodePrvKeyToHex(prvKey crypto.PrivKey) (string, error) {
	if nil == prvKey {
		return "", fault.InvalidPrivateKey
	}
	marshalKey, err := crypto.MarshalPrivateKey(prvKey)
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(marshalKey), nil
}

// DecodeHexToPrvKey - hex encoded private key from the configuration
func DecodeHexToPrvKey(prvKey string) (crypto.PrivKey, error) {
	hexDecodeKey, err := hex.DecodeString(strings.TrimSpace(prvKey))
	if nil != err || 0 == len(hexDecodeKey) {
		return nil, fault.InvalidPrivateKey
	}
	unmarshalKey, err := crypto.UnmarshalPrivateKey(hexDecodeKey)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return unmarshalKey, nil
}

// IDFromHex - the peer id a configured private key will have
func IDFromHex(prvKey string) (peerlib.ID, error) {
	key, err := DecodeHexToPrvKey(prvKey)
	if nil != err {
		return "", err
	}
	return peerlib.IDFromPrivateKey(key)
}
