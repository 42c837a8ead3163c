// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/ethnetd/counter"
	"github.com/bitmark-inc/ethnetd/fault"
)

// Queue - unbounded FIFO with a single channel for the consumer
//
// Close is the shutdown signal: items already sent are still delivered
// and then the consumer channel is closed
type Queue struct {
	sync.RWMutex
	in      chan interface{}
	out     chan interface{}
	pending counter.Counter
	closed  bool
}

// NewQueue - create a queue and start its forwarding goroutine
func NewQueue() *Queue {
	q := &Queue{
		in:  make(chan interface{}),
		out: make(chan interface{}),
	}
	go q.forward()
	return q
}

// Send - queue an item, never waits for the consumer
func (q *Queue) Send(item interface{}) error {
	q.RLock()
	defer q.RUnlock()

	if q.closed {
		return fault.QueueClosed
	}
	q.pending.Increment()
	q.in <- item
	return nil
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan interface{} {
	return q.out
}

// Len - number of items not yet handed to the consumer
func (q *Queue) Len() int {
	return int(q.pending.Uint64())
}

// Close - stop accepting items, remaining items are still delivered
func (q *Queue) Close() {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.in)
}

// IsClosed - true once Close was called
func (q *Queue) IsClosed() bool {
	q.RLock()
	defer q.RUnlock()
	return q.closed
}

func (q *Queue) forward() {
	buffer := make([]interface{}, 0, 64)

	for {
		if 0 == len(buffer) {
			item, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			buffer = append(buffer, item)
			continue
		}

		select {
		case item, ok := <-q.in:
			if !ok {
				for _, item := range buffer {
					q.out <- item
					q.pending.Decrement()
				}
				close(q.out)
				return
			}
			buffer = append(buffer, item)

		case q.out <- buffer[0]:
			q.pending.Decrement()
			buffer[0] = nil
			buffer = buffer[1:]
		}
	}
}
