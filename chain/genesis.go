// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/types"
)

// genesis timestamps
var genesisTime = map[string]uint64{
	// 2015-12-28T02:13:11Z
	Main: 0x56809ab7,
	// 2015-12-22T02:13:38Z
	Testing: 0x5678b2f2,
	Local:   0,
}

// GenesisHeader - the fixed block zero of a chain
func GenesisHeader(name string) (*types.Header, error) {
	timestamp, ok := genesisTime[name]
	if !ok {
		return nil, fault.InvalidChain
	}
	return &types.Header{
		ParentHash: make([]byte, types.HashLength),
		Number:     0,
		Time:       timestamp,
		GasLimit:   5000,
		Extra:      []byte(name),
	}, nil
}

// Initialise - write the genesis block to an empty store, or check
// that an existing store belongs to the chain
func (s *Store) Initialise(name string) (*types.Header, error) {
	genesis, err := GenesisHeader(name)
	if nil != err {
		return nil, err
	}

	existing, err := s.Genesis()
	if nil == err {
		if existing.Hash() != genesis.Hash() {
			return nil, fault.GenesisMismatch
		}
		return existing, nil
	}
	if !fault.IsErrNotFound(err) {
		return nil, err
	}

	s.log.Infof("write genesis for chain: %s", name)
	err = s.WriteBlock(genesis, &types.Body{}, &types.ReceiptList{})
	if nil != err {
		return nil, err
	}
	return genesis, nil
}
