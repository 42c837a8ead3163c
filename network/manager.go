// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p-core/peer"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// Manager - owner of all peer sessions
type Manager struct {
	sync.Mutex // protects the routes

	log      *logger.L
	settings settings
	handle   Handle
	metrics  *metrics

	events chan session.Event

	// routes, at most one of each
	transactions *messagebus.Queue
	ethRequests  chan<- EthRequest

	// only accessed by the Run loop
	sessions map[peer.ID]*activeSession
}

type activeSession struct {
	session session.Session
	limiter *rate.Limiter
}

// New - create a network manager
func New(config Config, localID peer.ID) (*Manager, error) {
	if "" == localID {
		return nil, fault.MissingLocalID
	}

	s, err := config.settings()
	if nil != err {
		return nil, err
	}

	m := &Manager{
		log:      logger.New("network"),
		settings: s,
		events:   make(chan session.Event, s.eventQueue),
		sessions: make(map[peer.ID]*activeSession),
	}

	m.handle = Handle{
		shared: &handleState{
			commands: messagebus.NewQueue(),
			peers:    peers.New(s.banDuration),
			localID:  localID,
			stats:    &statistics{},
		},
	}

	m.metrics, err = newMetrics(config.Registerer, m.queuedRequests)
	if nil != err {
		m.handle.shared.commands.Close()
		m.handle.shared.peers.Close()
		return nil, err
	}

	return m, nil
}

// Handle - a handle to this manager
func (m *Manager) Handle() Handle {
	return m.handle.Clone()
}

// SessionEvents - where a transport reports session activity
//
// a transport must deliver the events of one peer from one goroutine
// so that they stay in order
func (m *Manager) SessionEvents() chan<- session.Event {
	return m.events
}

// SetTransactions - install the transactions route
//
// a previously installed route is closed so its consumer stops
func (m *Manager) SetTransactions(route *messagebus.Queue) {
	m.Lock()
	defer m.Unlock()

	previous := m.transactions
	m.transactions = route

	if nil != previous && previous != route {
		m.log.Warn("transactions route replaced")
		previous.Close()
		fault.Invariant(m.log, "transactions route installed twice")
	}
}

// SetEthRequestHandler - install the request route
//
// a previously installed route is closed so its consumer stops
func (m *Manager) SetEthRequestHandler(route chan<- EthRequest) {
	m.Lock()
	defer m.Unlock()

	previous := m.ethRequests
	m.ethRequests = route

	if nil != previous && previous != route {
		m.log.Warn("eth request route replaced")
		close(previous)
		fault.Invariant(m.log, "eth request route installed twice")
	}
}

func (m *Manager) queuedRequests() float64 {
	m.Lock()
	defer m.Unlock()
	if nil == m.ethRequests {
		return 0
	}
	return float64(len(m.ethRequests))
}

// Run - the event loop, stops when shutdown is signalled
func (m *Manager) Run(args interface{}, shutdown <-chan struct{}) {
	log := m.log
	shared := m.handle.shared

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case e := <-m.events:
			m.process(e)

		case item := <-shared.commands.Chan():
			m.command(item)

		case item := <-shared.peers.Banned():
			id, ok := item.(peer.ID)
			if !ok {
				fault.Invariant(log, "ban notification: %T", item)
				continue loop
			}
			log.Infof("peer: %s banned", id.ShortString())
			m.disconnect(id, fault.PeerBanned)
		}
	}

	log.Info("shutting down…")
	m.teardown()
	log.Info("stopped")
}

func (m *Manager) process(e session.Event) {
	switch e.Kind {
	case session.EventEstablished:
		m.established(e)

	case session.EventMessage:
		active, ok := m.sessions[e.Peer]
		if !ok || !sameSession(active.session, e.Session) {
			m.dropped(dropUnknownPeer)
			m.log.Debugf("message: %s from unknown peer: %s", e.Message.Code(), e.Peer.ShortString())
			return
		}
		if m.handle.shared.peers.IsBanned(e.Peer) {
			m.dropped(dropBanned)
			m.disconnect(e.Peer, fault.PeerBanned)
			return
		}
		m.route(active, e.Message)

	case session.EventBadMessage:
		active, ok := m.sessions[e.Peer]
		if !ok || !sameSession(active.session, e.Session) {
			return
		}
		m.handle.shared.stats.badMessages.Increment()
		m.log.Warnf("peer: %s bad message: %s", e.Peer.ShortString(), e.Err)
		m.penalise(e.Peer, protocolPenalty(e.Err))

	case session.EventClosed:
		active, ok := m.sessions[e.Peer]
		if !ok || !sameSession(active.session, e.Session) {
			return
		}
		m.log.Infof("peer: %s closed: %v", e.Peer.ShortString(), e.Err)
		m.remove(e.Peer)

	default:
		fault.Invariant(m.log, "unknown session event: %d", e.Kind)
	}
}

// nil in an event matches any session of that peer
func sameSession(active session.Session, other session.Session) bool {
	return nil == other || active == other
}

func protocolPenalty(err error) peers.ReputationKind {
	switch err {
	case fault.MessageTooLarge, fault.InvalidMessageCode:
		return peers.BadProtocol
	default:
		return peers.BadMessage
	}
}

func (m *Manager) established(e session.Event) {
	shared := m.handle.shared
	id := e.Peer
	s := e.Session

	reject := func(reason error) {
		shared.stats.rejected.Increment()
		m.log.Infof("peer: %s rejected: %s", id.ShortString(), reason)
		s.Disconnect(reason)
	}

	if nil == s {
		fault.Invariant(m.log, "established event without session for peer: %s", id.ShortString())
		return
	}
	if shared.peers.IsBanned(id) {
		reject(fault.PeerBanned)
		return
	}
	if _, ok := m.sessions[id]; ok {
		reject(fault.PeerAlreadyConnected)
		return
	}
	if len(m.sessions) >= m.settings.maxPeers {
		reject(fault.TooManyPeers)
		return
	}
	if err := shared.peers.Add(id, e.Capabilities, e.Direction); nil != err {
		reject(err)
		return
	}

	m.sessions[id] = &activeSession{
		session: s,
		limiter: m.newLimiter(),
	}
	shared.stats.established.Increment()
	m.metrics.sessions.Set(float64(len(m.sessions)))
	m.log.Infof("peer: %s established %s", id.ShortString(), e.Direction)

	m.forwardTransactions(SessionEstablished{Peer: id, Capabilities: e.Capabilities})
}

func (m *Manager) newLimiter() *rate.Limiter {
	if m.settings.requestRate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(m.settings.requestRate), m.settings.requestBurst)
}

// drop a peer's session and tell the transactions consumer
func (m *Manager) remove(id peer.ID) {
	shared := m.handle.shared

	delete(m.sessions, id)
	shared.peers.Remove(id)
	shared.stats.closed.Increment()
	m.metrics.sessions.Set(float64(len(m.sessions)))

	m.forwardTransactions(SessionClosed{Peer: id})
}

func (m *Manager) disconnect(id peer.ID, reason error) {
	active, ok := m.sessions[id]
	if !ok {
		return
	}
	active.session.Disconnect(reason)
	m.remove(id)
}

func (m *Manager) penalise(id peer.ID, kind peers.ReputationKind) {
	m.handle.shared.peers.ChangeReputation(id, kind)
}

func (m *Manager) dropped(reason string) {
	m.metrics.dropped.WithLabelValues(reason).Inc()
}

// route - classify an inbound message and forward it
func (m *Manager) route(active *activeSession, message wire.Message) {
	id := active.session.ID()

	switch wire.CategoryOf(message) {
	case wire.CategoryTransactions:
		event, err := transactionsEvent(id, message)
		if nil != err {
			m.handle.shared.stats.badMessages.Increment()
			m.log.Warnf("peer: %s %s: %s", id.ShortString(), message.Code(), err)
			m.penalise(id, peers.BadMessage)
			return
		}
		m.forwardTransactions(event)

	case wire.CategoryRequest:
		request, ok := message.(wire.Request)
		if !ok {
			fault.Invariant(m.log, "request category message: %s is not a request", message.Code())
			return
		}
		m.forwardRequest(active, request)

	case wire.CategoryResponse:
		// no outstanding block data requests are made by this node
		m.dropped(dropResponse)
		m.log.Debugf("peer: %s unsolicited: %s", id.ShortString(), message.Code())

	default:
		// status is only valid during the handshake
		m.handle.shared.stats.badMessages.Increment()
		m.log.Warnf("peer: %s unexpected: %s", id.ShortString(), message.Code())
		m.penalise(id, peers.BadMessage)
	}
}

func transactionsEvent(id peer.ID, message wire.Message) (TransactionsEvent, error) {
	switch msg := message.(type) {
	case *wire.Transactions:
		return IncomingTransactions{Peer: id, Transactions: msg.Transactions}, nil

	case *wire.PooledTransactions:
		return IncomingTransactions{Peer: id, Transactions: msg.Transactions, Pooled: true}, nil

	case *wire.NewPooledTransactionHashes:
		if len(msg.Hashes) > wire.MaxAnnouncedHashes {
			return nil, fault.MalformedRequest
		}
		hashes, err := types.BytesToHashes(msg.Hashes)
		if nil != err {
			return nil, err
		}
		return IncomingPooledHashes{Peer: id, Hashes: hashes}, nil

	case *wire.GetPooledTransactions:
		if len(msg.Hashes) > wire.MaxRequestItems {
			return nil, fault.MalformedRequest
		}
		hashes, err := types.BytesToHashes(msg.Hashes)
		if nil != err {
			return nil, err
		}
		return GetPooledTransactions{Peer: id, RequestID: msg.RequestID, Hashes: hashes}, nil

	default:
		return nil, fault.InvalidMessageCode
	}
}

func (m *Manager) forwardTransactions(event TransactionsEvent) {
	m.Lock()
	route := m.transactions
	m.Unlock()

	if nil == route {
		m.handle.shared.stats.unrouted.Increment()
		m.dropped(dropNoRoute)
		m.log.Debugf("no transactions route, dropped: %T", event)
		return
	}

	if err := route.Send(event); nil != err {
		m.dropped(dropClosed)
		m.log.Debugf("transactions route: %s", err)
		return
	}
	m.handle.shared.stats.transactions.Increment()
	m.metrics.routed.WithLabelValues(wire.CategoryTransactions.String()).Inc()
}

func (m *Manager) forwardRequest(active *activeSession, request wire.Request) {
	stats := m.handle.shared.stats
	s := active.session
	id := s.ID()

	if !active.limiter.Allow() {
		stats.rateLimited.Increment()
		m.dropped(dropRateLimited)
		m.log.Debugf("peer: %s rate limited: %s", id.ShortString(), request.Code())
		m.penalise(id, peers.RateLimited)
		return
	}

	reply := func(response wire.Message) error {
		err := s.Send(response)
		if nil == err {
			stats.responses.Increment()
		} else {
			stats.sendFailures.Increment()
		}
		return err
	}
	item := NewEthRequest(id, request, reply)

	m.Lock()
	defer m.Unlock()

	if nil == m.ethRequests {
		stats.unrouted.Increment()
		m.dropped(dropNoRoute)
		m.log.Debugf("no eth request route, dropped: %s", request.Code())
		return
	}

	select {
	case m.ethRequests <- item:
		stats.requests.Increment()
		m.metrics.routed.WithLabelValues(wire.CategoryRequest.String()).Inc()
		return
	default:
	}

	stats.dropped.Increment()
	m.dropped(dropQueueFull)
	m.log.Debugf("peer: %s request queue full, dropped: %s", id.ShortString(), request.Code())

	switch m.settings.policy {
	case PolicySignal:
		_ = reply(wire.EmptyResponse(request))
	case PolicyPenalise:
		m.penalise(id, peers.DroppedRequest)
	}
}

func (m *Manager) command(item interface{}) {
	switch c := item.(type) {
	case setTransactionsCommand:
		m.SetTransactions(c.route)

	case setEthRequestsCommand:
		m.SetEthRequestHandler(c.route)

	case sendCommand:
		active, ok := m.sessions[c.peer]
		if !ok {
			m.log.Debugf("send: %s to unknown peer: %s", c.message.Code(), c.peer.ShortString())
			return
		}
		if err := active.session.Send(c.message); nil != err {
			m.handle.shared.stats.sendFailures.Increment()
			m.log.Debugf("send: %s to peer: %s error: %s", c.message.Code(), c.peer.ShortString(), err)
		}

	case disconnectCommand:
		m.disconnect(c.peer, c.reason)

	default:
		fault.Invariant(m.log, "unknown command: %T", item)
	}
}

// close both routes so their consumers drain and stop
func (m *Manager) teardown() {
	for id, active := range m.sessions {
		active.session.Disconnect(fault.SessionClosed)
		delete(m.sessions, id)
		m.handle.shared.peers.Remove(id)
	}
	m.metrics.sessions.Set(0)

	m.Lock()
	if nil != m.transactions {
		m.transactions.Close()
		m.transactions = nil
	}
	if nil != m.ethRequests {
		close(m.ethRequests)
		m.ethRequests = nil
	}
	m.Unlock()

	m.handle.shared.commands.Close()
	m.handle.shared.peers.Close()
}
