// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - start and stop the long-lived processes of
// the node
//
// each process runs in its own goroutine and receives a shutdown
// channel; a process may also finish on its own (e.g. when its input
// queue is closed) and Stop still waits for it
package background

import (
	"sync"
)

// Process - a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of processes
type T struct {
	sync.Mutex
	shutdown []chan struct{}
	finished sync.WaitGroup
	stopped  bool
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		register.shutdown[i] = shutdown
		register.finished.Add(1)
		go func(p Process) {
			defer register.finished.Done()
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - signal all processes to shutdown and wait for them to finish
//
// calling Stop more than once only waits
func (t *T) Stop() {
	t.Lock()
	if !t.stopped {
		for _, shutdown := range t.shutdown {
			close(shutdown)
		}
		t.stopped = true
	}
	t.Unlock()

	t.finished.Wait()
}

// Wait - wait for all processes to finish without signalling them
func (t *T) Wait() {
	t.finished.Wait()
}
