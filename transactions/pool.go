// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactions

import (
	"github.com/bitmark-inc/ethnetd/types"
)

// Pool - what the manager needs from the transaction pool
//
// Insert returns fault.ExistsError for a duplicate, fault.InvalidError
// for a transaction that can never be accepted and any other error for
// a transient rejection such as being underpriced or the pool being
// full
type Pool interface {
	Pending() []*types.Transaction
	Insert(*types.Transaction) error
	Get(types.Hash) *types.Transaction
	Contains(types.Hash) bool
	SubscribeNew() Subscription
}

// Subscription - stream of transactions newly added to the pool
type Subscription interface {
	Chan() <-chan *types.Transaction
	Unsubscribe()
}
