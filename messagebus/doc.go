// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for message packets passed
// between the network event loop and its consumers
//
// a Queue never blocks the sender; it is used only where the volume is
// bounded elsewhere (e.g. by the transaction pool admission policy)
package messagebus
