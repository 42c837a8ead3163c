// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"bytes"
	"io"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/wire"
)

// handshake - both sides send Status then read the other's
func handshake(rw io.ReadWriter, local *wire.Status) (*wire.Status, error) {
	if err := wire.WriteMessage(rw, local); nil != err {
		return nil, err
	}

	m, err := wire.ReadMessage(rw)
	if nil != err {
		return nil, err
	}
	remote, ok := m.(*wire.Status)
	if !ok {
		return nil, fault.HandshakeFailed
	}
	if err := checkStatus(local, remote); nil != err {
		return nil, err
	}
	return remote, nil
}

// checkStatus - the peer must be on the same protocol, network and chain
func checkStatus(local *wire.Status, remote *wire.Status) error {
	if remote.ProtocolVersion != local.ProtocolVersion {
		return fault.ProtocolVersionMismatch
	}
	if remote.NetworkID != local.NetworkID {
		return fault.NetworkMismatch
	}
	if !bytes.Equal(remote.Genesis, local.Genesis) {
		return fault.GenesisMismatch
	}
	return nil
}
