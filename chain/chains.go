// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Main    = "main"
	Testing = "testing"
	Local   = "local"
)

var networkIDs = map[string]uint64{
	Main:    1,
	Testing: 5,
	Local:   1337,
}

// Valid - validate a chain name
func Valid(name string) bool {
	_, ok := networkIDs[name]
	return ok
}

// NetworkID - the network ID peers must agree on for a chain
func NetworkID(name string) (uint64, bool) {
	id, ok := networkIDs[name]
	return id, ok
}
