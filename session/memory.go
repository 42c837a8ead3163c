// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"sync"

	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/wire"
)

// DefaultQueueSize - outbound messages buffered per session
const DefaultQueueSize = 1024

// Memory - in-process session, outbound messages are read from
// Outbound()
type Memory struct {
	sync.Mutex
	id     peer.ID
	out    chan wire.Message
	closed bool
	reason error
}

// NewMemory - create an in-process session
func NewMemory(id peer.ID, queueSize int) *Memory {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Memory{
		id:  id,
		out: make(chan wire.Message, queueSize),
	}
}

// ID - remote peer
func (s *Memory) ID() peer.ID {
	return s.id
}

// Send - queue without blocking
func (s *Memory) Send(m wire.Message) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return fault.SessionClosed
	}

	select {
	case s.out <- m:
		return nil
	default:
		return fault.SendQueueFull
	}
}

// Disconnect - close the session, queued messages remain readable
func (s *Memory) Disconnect(reason error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.reason = reason
	close(s.out)
}

// Outbound - messages sent to the peer
func (s *Memory) Outbound() <-chan wire.Message {
	return s.out
}

// IsClosed - true after Disconnect
func (s *Memory) IsClosed() bool {
	s.Lock()
	defer s.Unlock()
	return s.closed
}

// Reason - the error given to Disconnect
func (s *Memory) Reason() error {
	s.Lock()
	defer s.Unlock()
	return s.reason
}
