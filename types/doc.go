// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package types - the chain data carried by the network layer
//
// all structures are protobuf encoded on the wire; the identifying
// hash of a transaction or header is the Keccak-256 digest of its
// encoding
package types
