// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - the eth sub-protocol messages exchanged with peers
//
// every message travels as a Frame: a message code and the protobuf
// encoding of the message; on a stream each frame is preceded by its
// length as a 4 byte big endian integer
//
// the limits in this package are protocol limits: a peer exceeding
// them is misbehaving
package wire
