// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactions - bridge between the peer network and the
// local transaction pool
//
// new pool transactions are sent in full to the square root of the
// connected peers and announced by hash to the rest. A peer is never
// sent a hash it is known to have, whether it got it from us or gave
// it to us; the known set of each peer is bounded and a hash joins it
// only once the message carrying it has been queued. Peers without
// pooled transaction announcements get full transactions instead.
package transactions

import (
	"math"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	lru "github.com/hashicorp/golang-lru"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/limitedset"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

const (
	// most new pool transactions gathered into one propagation round
	propagationBatch = 256

	// an announced hash is fetched again if it has not arrived by then
	fetchTimeout = 10 * time.Second

	// first eth version with pooled transaction announcements, older
	// peers are sent full transactions
	minAnnounceVersion = 65
)

// Manager - the transactions manager
type Manager struct {
	sync.Mutex

	log      *logger.L
	handle   network.Handle
	pool     Pool
	incoming *messagebus.Queue
	config   Config
	metrics  *metrics

	known     map[peer.ID]*limitedset.LimitedSet
	imported  *lru.Cache   // hashes recently accepted by the pool
	requested *cache.Cache // hashes being fetched from some peer
}

// New - create a transactions manager reading the transactions route
func New(handle network.Handle, pool Pool, incoming *messagebus.Queue, config Config) *Manager {
	log := logger.New("transactions")
	config = config.withDefaults()

	m, err := newMetrics(config.Registerer)
	if nil != err {
		log.Warnf("metrics not registered: %s", err)
		m, _ = newMetrics(nil)
	}

	imported, err := lru.New(config.RecentlyImported)
	fault.PanicIfError("transactions: imported cache", err)

	return &Manager{
		log:       log,
		handle:    handle,
		pool:      pool,
		incoming:  incoming,
		config:    config,
		metrics:   m,
		known:     make(map[peer.ID]*limitedset.LimitedSet),
		imported:  imported,
		requested: cache.New(fetchTimeout, 2*fetchTimeout),
	}
}

// Handle - the network handle used for propagation
func (m *Manager) Handle() network.Handle {
	return m.handle
}

// Run - process the route until it is closed
//
// shutdown is not used, the network manager closes the route when it
// stops and everything already queued is processed first
func (m *Manager) Run(args interface{}, shutdown <-chan struct{}) {
	log := m.log
	log.Info("starting…")

	subscription := m.pool.SubscribeNew()
	defer subscription.Unsubscribe()

	items := m.incoming.Chan()
	fresh := subscription.Chan()

loop:
	for {
		select {
		case item, ok := <-items:
			if !ok {
				break loop
			}
			m.process(item)

		case tx, ok := <-fresh:
			if !ok {
				log.Warn("pool subscription closed")
				fresh = nil
				continue loop
			}
			m.propagate(gather(tx, fresh))
		}
	}

	log.Info("stopped")
}

// collect whatever else is immediately available
func gather(first *types.Transaction, fresh <-chan *types.Transaction) []*types.Transaction {
	txs := []*types.Transaction{first}
	for len(txs) < propagationBatch {
		select {
		case tx, ok := <-fresh:
			if !ok {
				return txs
			}
			txs = append(txs, tx)
		default:
			return txs
		}
	}
	return txs
}

func (m *Manager) process(item interface{}) {
	switch e := item.(type) {
	case network.SessionEstablished:
		m.established(e.Peer)

	case network.SessionClosed:
		m.Lock()
		delete(m.known, e.Peer)
		m.metrics.knownPeers.Set(float64(len(m.known)))
		m.Unlock()

	case network.IncomingTransactions:
		m.importTransactions(e.Peer, e.Transactions, e.Pooled)

	case network.IncomingPooledHashes:
		m.fetchAnnounced(e.Peer, e.Hashes)

	case network.GetPooledTransactions:
		m.servePooled(e.Peer, e.RequestID, e.Hashes)

	default:
		fault.Invariant(m.log, "unexpected transactions event: %T", item)
	}
}

// knownSet - caller must hold the lock
func (m *Manager) knownSet(id peer.ID) *limitedset.LimitedSet {
	set, ok := m.known[id]
	if !ok {
		set = limitedset.New(m.config.KnownTransactionsPerPeer)
		m.known[id] = set
		m.metrics.knownPeers.Set(float64(len(m.known)))
	}
	return set
}

// a new peer hears about everything pending
func (m *Manager) established(id peer.ID) {
	fresh := m.unknownTo(id, m.pool.Pending())
	if m.canAnnounce(id) {
		m.announce(id, hashesOf(fresh))
		return
	}
	m.sendFull(id, fresh)
}

// PropagatePending - offer every pending pool transaction to all peers
func (m *Manager) PropagatePending() {
	m.propagate(m.pool.Pending())
}

func (m *Manager) propagate(txs []*types.Transaction) {
	if 0 == len(txs) {
		return
	}

	ids := m.handle.Peers().IDs()
	direct := int(math.Ceil(math.Sqrt(float64(len(ids)))))

	for i, id := range ids {
		fresh := m.unknownTo(id, txs)
		if 0 == len(fresh) {
			continue
		}
		if i < direct || !m.canAnnounce(id) {
			m.sendFull(id, fresh)
		} else {
			m.announce(id, hashesOf(fresh))
		}
	}
}

// Knows - true if the peer is known to have the transaction
func (m *Manager) Knows(id peer.ID, h types.Hash) bool {
	m.Lock()
	defer m.Unlock()

	set, ok := m.known[id]
	return ok && set.Exists(h)
}

// unknownTo - the transactions, without duplicates, that the peer is
// not known to have
func (m *Manager) unknownTo(id peer.ID, txs []*types.Transaction) []*types.Transaction {
	m.Lock()
	defer m.Unlock()

	set := m.knownSet(id)
	seen := make(map[types.Hash]struct{}, len(txs))
	fresh := make([]*types.Transaction, 0, len(txs))
	for _, tx := range txs {
		h := tx.Hash()
		if _, ok := seen[h]; ok || set.Exists(h) {
			continue
		}
		seen[h] = struct{}{}
		fresh = append(fresh, tx)
	}
	return fresh
}

// markKnown - only once the message carrying the hashes is queued
func (m *Manager) markKnown(id peer.ID, hashes []types.Hash) {
	m.Lock()
	m.knownSet(id).AddAll(hashes)
	m.Unlock()
}

func (m *Manager) canAnnounce(id peer.ID) bool {
	info, ok := m.handle.Peers().Get(id)
	return ok && info.HasCapability(wire.ProtocolName, minAnnounceVersion)
}

func (m *Manager) sendFull(id peer.ID, txs []*types.Transaction) {
	for len(txs) > 0 {
		n := len(txs)
		if n > m.config.MaxTransactionsPerMessage {
			n = m.config.MaxTransactionsPerMessage
		}
		if err := m.handle.SendTransactions(id, txs[:n]); nil != err {
			m.log.Debugf("send transactions to: %s error: %s", id.ShortString(), err)
			return
		}
		m.markKnown(id, hashesOf(txs[:n]))
		m.metrics.sent.Add(float64(n))
		txs = txs[n:]
	}
}

func (m *Manager) announce(id peer.ID, hashes []types.Hash) {
	for len(hashes) > 0 {
		n := len(hashes)
		if n > wire.MaxAnnouncedHashes {
			n = wire.MaxAnnouncedHashes
		}
		if err := m.handle.AnnounceTransactionHashes(id, hashes[:n]); nil != err {
			m.log.Debugf("announce to: %s error: %s", id.ShortString(), err)
			return
		}
		m.markKnown(id, hashes[:n])
		m.metrics.announced.Add(float64(n))
		hashes = hashes[n:]
	}
}

func hashesOf(txs []*types.Transaction) []types.Hash {
	hashes := make([]types.Hash, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.Hash()
	}
	return hashes
}

func (m *Manager) importTransactions(id peer.ID, txs []*types.Transaction, pooled bool) {
	if len(txs) > m.config.MaxTransactionsPerMessage {
		m.metrics.inbound.WithLabelValues(outcomeMalformed).Add(float64(len(txs)))
		m.log.Warnf("peer: %s sent: %d transactions in one message", id.ShortString(), len(txs))
		m.handle.ReputationChange(id, peers.BadTransactions)
		return
	}

	bad := false
	seen := false
	answered := false

	for _, tx := range txs {
		if nil == tx || tx.Size() > wire.MaxTransactionSize {
			m.metrics.inbound.WithLabelValues(outcomeMalformed).Inc()
			bad = true
			continue
		}

		h := tx.Hash()

		m.Lock()
		m.knownSet(id).Add(h)
		_, wanted := m.requested.Get(h.String())
		m.requested.Delete(h.String())
		m.Unlock()

		if pooled && !wanted {
			m.metrics.inbound.WithLabelValues(outcomeUnsolicited).Inc()
		}
		answered = answered || (pooled && wanted)

		if m.imported.Contains(h) {
			m.metrics.inbound.WithLabelValues(outcomeRecent).Inc()
			continue
		}

		err := m.pool.Insert(tx)
		switch {
		case nil == err:
			m.imported.Add(h, struct{}{})
			m.metrics.inbound.WithLabelValues(outcomeImported).Inc()

		case fault.IsErrExists(err):
			m.imported.Add(h, struct{}{})
			m.metrics.inbound.WithLabelValues(outcomeKnown).Inc()
			seen = true

		case fault.IsErrInvalid(err):
			m.metrics.inbound.WithLabelValues(outcomeInvalid).Inc()
			m.log.Debugf("peer: %s transaction: %s invalid: %s", id.ShortString(), h, err)
			bad = true

		default:
			m.metrics.inbound.WithLabelValues(outcomeRejected).Inc()
			m.log.Debugf("peer: %s transaction: %s rejected: %s", id.ShortString(), h, err)
		}
	}

	switch {
	case bad:
		m.handle.ReputationChange(id, peers.BadTransactions)
	case answered:
		m.handle.ReputationChange(id, peers.GoodResponse)
	case seen:
		m.handle.ReputationChange(id, peers.AlreadySeenTransaction)
	}
}

func (m *Manager) fetchAnnounced(id peer.ID, hashes []types.Hash) {
	m.Lock()
	m.knownSet(id).AddAll(hashes)

	wanted := make([]types.Hash, 0, len(hashes))
	for _, h := range hashes {
		if len(wanted) >= wire.MaxRequestItems {
			break
		}
		if m.imported.Contains(h) {
			continue
		}
		if _, fetching := m.requested.Get(h.String()); fetching {
			continue
		}
		if m.pool.Contains(h) {
			continue
		}
		m.requested.SetDefault(h.String(), id)
		wanted = append(wanted, h)
	}
	m.Unlock()

	if 0 == len(wanted) {
		return
	}

	if err := m.handle.RequestPooledTransactions(id, wanted); nil != err {
		m.log.Debugf("request from: %s error: %s", id.ShortString(), err)
		return
	}
	m.metrics.requested.Add(float64(len(wanted)))
}

// servePooled - answer from the pool within the response size limit
func (m *Manager) servePooled(id peer.ID, requestID uint64, hashes []types.Hash) {
	txs := make([]*types.Transaction, 0, len(hashes))
	size := 0

	for _, h := range hashes {
		if size >= wire.SoftResponseLimit || len(txs) >= wire.MaxRequestItems {
			break
		}
		tx := m.pool.Get(h)
		if nil == tx {
			continue
		}
		txs = append(txs, tx)
		size += tx.Size()
	}

	if err := m.handle.SendPooledTransactions(id, requestID, txs); nil != err {
		m.log.Debugf("pooled reply to: %s error: %s", id.ShortString(), err)
		return
	}
	m.markKnown(id, hashesOf(txs))
	m.metrics.served.Add(float64(len(txs)))
}
