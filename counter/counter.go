// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free statistics counters shared between
// goroutines
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned integer that can be changed concurrently
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Add - add n to a counter, returns new value
func (ic *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64((*uint64)(ic), n)
}

// Decrement - subtract 1 from a counter, returns new value
//
// decrementing zero is ignored
func (ic *Counter) Decrement() uint64 {
	for {
		old := atomic.LoadUint64((*uint64)(ic))
		if 0 == old {
			return 0
		}
		if atomic.CompareAndSwapUint64((*uint64)(ic), old, old-1) {
			return old - 1
		}
	}
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}
