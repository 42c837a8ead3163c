// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - the contract between a peer transport and the
// network manager
//
// a transport reports each session as a sequence of events: one
// Established, any number of Message or BadMessage, then one Closed.
// Events for a single peer must be delivered in order.
package session

import (
	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/wire"
)

// Session - an established connection to one peer
type Session interface {
	ID() peer.ID

	// Send queues a message for the peer; it must not block, a full
	// outbound queue returns fault.SendQueueFull
	Send(wire.Message) error

	// Disconnect closes the session; the transport then reports Closed
	Disconnect(reason error)
}

// EventKind - what happened to a session
type EventKind int

// event kinds
const (
	EventEstablished EventKind = iota
	EventMessage
	EventBadMessage
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventEstablished:
		return "established"
	case EventMessage:
		return "message"
	case EventBadMessage:
		return "bad message"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event - one step in the life of a session
type Event struct {
	Kind    EventKind
	Peer    peer.ID
	Session Session

	// Established only
	Capabilities []wire.Capability
	Direction    peers.Direction

	// Message only
	Message wire.Message

	// BadMessage and Closed
	Err error
}

// Established - event for a completed handshake
func Established(s Session, capabilities []wire.Capability, direction peers.Direction) Event {
	return Event{
		Kind:         EventEstablished,
		Peer:         s.ID(),
		Session:      s,
		Capabilities: capabilities,
		Direction:    direction,
	}
}

// Received - event for a decoded inbound message
func Received(s Session, m wire.Message) Event {
	return Event{Kind: EventMessage, Peer: s.ID(), Session: s, Message: m}
}

// Bad - event for a frame that violated the protocol
func Bad(s Session, err error) Event {
	return Event{Kind: EventBadMessage, Peer: s.ID(), Session: s, Err: err}
}

// Closed - event for the end of a session
func Closed(s Session, err error) Event {
	return Event{Kind: EventClosed, Peer: s.ID(), Session: s, Err: err}
}
