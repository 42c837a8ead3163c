// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txpool - in-memory transaction pool
//
// transactions expire after a fixed lifetime; admission only checks
// size, gas price and capacity
package txpool

import (
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/transactions"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// defaults
const (
	DefaultCapacity = 4096
	DefaultLifetime = 3 * time.Hour

	subscriptionQueueSize = 256
)

// Config - pool settings
type Config struct {
	Capacity    int    `gluamapper:"capacity" json:"capacity"`
	Lifetime    string `gluamapper:"lifetime" json:"lifetime"`
	MinGasPrice uint64 `gluamapper:"min_gas_price" json:"min_gas_price"`
}

// Memory - the pool
type Memory struct {
	sync.Mutex // protects subscribers and admission

	log         *logger.L
	items       *cache.Cache
	capacity    int
	minGasPrice uint64
	subscribers map[*subscription]struct{}
}

type subscription struct {
	pool *Memory
	ch   chan *types.Transaction
}

// New - create an empty pool
func New(config Config) (*Memory, error) {
	lifetime := DefaultLifetime
	if "" != config.Lifetime {
		d, err := time.ParseDuration(config.Lifetime)
		if nil != err {
			return nil, err
		}
		lifetime = d
	}

	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	log := logger.New("txpool")

	items := cache.New(lifetime, lifetime/2+time.Second)
	items.OnEvicted(func(key string, _ interface{}) {
		log.Debugf("expired: %x", key)
	})

	return &Memory{
		log:         log,
		items:       items,
		capacity:    capacity,
		minGasPrice: config.MinGasPrice,
		subscribers: make(map[*subscription]struct{}),
	}, nil
}

func key(h types.Hash) string {
	return string(h[:])
}

// Insert - admit a transaction and notify subscribers
func (p *Memory) Insert(tx *types.Transaction) error {
	if nil == tx {
		return fault.InvalidTransaction
	}
	if tx.Size() > wire.MaxTransactionSize {
		return fault.TransactionTooLarge
	}
	if tx.GasPrice < p.minGasPrice {
		return fault.TransactionUnderpriced
	}

	p.Lock()
	defer p.Unlock()

	if p.items.ItemCount() >= p.capacity {
		return fault.PoolFull
	}

	h := tx.Hash()
	if err := p.items.Add(key(h), tx, cache.DefaultExpiration); nil != err {
		return fault.TransactionAlreadyKnown
	}
	p.log.Debugf("added: %s", h)

	for s := range p.subscribers {
		select {
		case s.ch <- tx:
		default:
			p.log.Warn("subscriber too slow, notification dropped")
		}
	}
	return nil
}

// Get - a transaction by hash, nil if absent
func (p *Memory) Get(h types.Hash) *types.Transaction {
	item, found := p.items.Get(key(h))
	if !found {
		return nil
	}
	return item.(*types.Transaction)
}

// Contains - true if the pool holds the transaction
func (p *Memory) Contains(h types.Hash) bool {
	_, found := p.items.Get(key(h))
	return found
}

// Remove - drop a transaction, e.g. once it is in a block
func (p *Memory) Remove(h types.Hash) {
	p.items.Delete(key(h))
}

// Len - number of transactions held
func (p *Memory) Len() int {
	return p.items.ItemCount()
}

// Pending - all transactions, highest gas price first
func (p *Memory) Pending() []*types.Transaction {
	items := p.items.Items()

	txs := make([]*types.Transaction, 0, len(items))
	for _, item := range items {
		txs = append(txs, item.Object.(*types.Transaction))
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].GasPrice != txs[j].GasPrice {
			return txs[i].GasPrice > txs[j].GasPrice
		}
		return txs[i].Nonce < txs[j].Nonce
	})
	return txs
}

// SubscribeNew - stream of admitted transactions
func (p *Memory) SubscribeNew() transactions.Subscription {
	s := &subscription{
		pool: p,
		ch:   make(chan *types.Transaction, subscriptionQueueSize),
	}

	p.Lock()
	p.subscribers[s] = struct{}{}
	p.Unlock()

	return s
}

func (s *subscription) Chan() <-chan *types.Transaction {
	return s.ch
}

func (s *subscription) Unsubscribe() {
	p := s.pool
	p.Lock()
	defer p.Unlock()

	if _, ok := p.subscribers[s]; !ok {
		return
	}
	delete(p.subscribers, s)
	close(s.ch)
}
