// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/background"
)

type looper struct {
	count uint64
}

func (l *looper) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		atomic.AddUint64(&l.count, 1)
		time.Sleep(time.Millisecond)
	}
}

// finishes when its queue is closed, ignoring shutdown
type drainer struct {
	queue    chan int
	received int
}

func (d *drainer) Run(args interface{}, shutdown <-chan struct{}) {
	for range d.queue {
		d.received += 1
	}
}

func TestStartStop(t *testing.T) {
	l1 := &looper{}
	l2 := &looper{}

	p := background.Start(background.Processes{l1, l2}, nil)
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	c1 := atomic.LoadUint64(&l1.count)
	c2 := atomic.LoadUint64(&l2.count)
	assert.NotZero(t, c1, "first process did not run")
	assert.NotZero(t, c2, "second process did not run")

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, c1, atomic.LoadUint64(&l1.count), "process still running after stop")

	// second stop must not panic on closed channels
	p.Stop()
}

func TestWaitForSelfTerminatingProcess(t *testing.T) {
	d := &drainer{queue: make(chan int, 10)}
	for i := 0; i < 10; i += 1 {
		d.queue <- i
	}

	p := background.Start(background.Processes{d}, nil)
	close(d.queue)
	p.Wait()

	assert.Equal(t, 10, d.received, "buffered items not drained")
}
