// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"bufio"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	p2pnet "github.com/libp2p/go-libp2p-core/network"
	peerlib "github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/wire"
)

// streamSession - session.Session over one libp2p stream
type streamSession struct {
	sync.Mutex

	id     peerlib.ID
	log    *logger.L
	stream p2pnet.Stream
	out    chan wire.Message
	closed bool
	reason error
}

func newStreamSession(stream p2pnet.Stream, queueSize int, log *logger.L) *streamSession {
	if queueSize <= 0 {
		queueSize = session.DefaultQueueSize
	}
	return &streamSession{
		id:     stream.Conn().RemotePeer(),
		log:    log,
		stream: stream,
		out:    make(chan wire.Message, queueSize),
	}
}

// ID - remote peer
func (s *streamSession) ID() peerlib.ID {
	return s.id
}

// Send - queue for the writer without blocking
func (s *streamSession) Send(m wire.Message) error {
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

// Disconnect - stop accepting messages; the writer flushes what is
// queued and the reader is given closeGrace to finish
func (s *streamSession) Disconnect(reason error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.reason = reason
	close(s.out)
	s.stream.SetReadDeadline(time.Now().Add(closeGrace))
	s.log.Infof("peer: %s  disconnect: %v", s.id.ShortString(), reason)
}

// cause - the first reason given to Disconnect
func (s *streamSession) cause() error {
	s.Lock()
	defer s.Unlock()
	return s.reason
}

// writer - one goroutine per session
func (s *streamSession) writer() {
	w := bufio.NewWriter(s.stream)
	for m := range s.out {
		err := wire.WriteMessage(w, m)
		if nil == err && 0 == len(s.out) {
			err = w.Flush()
		}
		if nil != err {
			s.log.Warnf("peer: %s  write error: %s", s.id.ShortString(), err)
			s.Disconnect(err)
			s.stream.Reset()
			for range s.out {
			}
			return
		}
	}
	w.Flush()
	s.stream.Close()
}

// reader - deliver inbound messages in order, then Closed
func (n *Node) reader(s *streamSession) {
	r := bufio.NewReader(s.stream)

	var err error
loop:
	for {
		var m wire.Message
		m, err = wire.ReadMessage(r)
		switch err {
		case nil:
			n.emit(session.Received(s, m))

		case fault.DecodeFailed, fault.InvalidMessageCode:
			// whole frame consumed, stream still in step
			n.emit(session.Bad(s, err))

		case fault.MessageTooLarge:
			// payload not read so framing is lost
			n.emit(session.Bad(s, err))
			break loop

		default:
			break loop
		}
	}

	s.Disconnect(err)
	s.stream.Reset()
	n.unregister(s)
	n.emit(session.Closed(s, s.cause()))
}
