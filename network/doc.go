// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package network - the network manager event loop and its handle
//
// the manager owns every peer session and forwards inbound protocol
// messages by category:
//
//	transactions -> unbounded *messagebus.Queue of TransactionsEvent
//	requests     -> bounded chan EthRequest (EthRequestChannelCapacity)
//
// at most one route of each category is installed at a time. The
// request route is never written with a blocking send; when it is
// full the configured FullQueuePolicy applies to the new request.
//
// closing a route is the only stop signal for its consumer, so the
// manager closes both routes when it shuts down.
package network
