// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - fixed capacity set of hashes where the least
// recently added item is evicted first
package limitedset

import (
	"container/ring"
	"sync"

	"github.com/bitmark-inc/ethnetd/types"
)

// LimitedSet - bounded set of hashes
type LimitedSet struct {
	sync.Mutex
	size int
	ring *ring.Ring // the next slot to overwrite, i.e. the oldest item
	hash map[types.Hash]*ring.Ring
}

// New - create a new limited set that holds up to 'n' items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		size: n,
		ring: ring.New(n),
		hash: make(map[types.Hash]*ring.Ring, n),
	}
}

// Add - add an item to the set, re-adding an item makes it the newest
//
// returns true if the item was not already present
func (ls *LimitedSet) Add(item types.Hash) bool {
	ls.Lock()
	defer ls.Unlock()
	return ls.add(item)
}

// AddAll - add a list of items, returns those that were not present
func (ls *LimitedSet) AddAll(items []types.Hash) []types.Hash {
	ls.Lock()
	defer ls.Unlock()

	added := make([]types.Hash, 0, len(items))
	for _, item := range items {
		if ls.add(item) {
			added = append(added, item)
		}
	}
	return added
}

// hold lock before calling
func (ls *LimitedSet) add(item types.Hash) bool {
	if r, ok := ls.hash[item]; ok {
		if r == ls.ring {
			// oldest becomes newest just by advancing the slot
			ls.ring = ls.ring.Next()
			return false
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return false
	}
	if oldItem, ok := ls.ring.Value.(types.Hash); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Exists - check to see if item is in the set
func (ls *LimitedSet) Exists(item types.Hash) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of items currently held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}

// Capacity - maximum number of items
func (ls *LimitedSet) Capacity() int {
	return ls.size
}
