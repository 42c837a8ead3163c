// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package builder - staged construction of the network components
//
// each stage is a distinct type that only offers the steps still
// open, so a route cannot be installed twice by mistake:
//
//	Builder --Transactions--> WithTransactions --RequestHandler--> Complete
//	Builder --RequestHandler--> WithRequestHandler --Transactions--> Complete
//
// every stage can split into exactly the components it holds
package builder

import (
	"github.com/bitmark-inc/ethnetd/background"
	"github.com/bitmark-inc/ethnetd/ethrequests"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/transactions"
)

// Config - settings for the components a builder creates
type Config struct {
	Transactions transactions.Config `gluamapper:"transactions" json:"transactions"`
	Requests     ethrequests.Config  `gluamapper:"requests" json:"requests"`
}

// Builder - nothing wired yet
type Builder struct {
	manager *network.Manager
	config  Config
}

// WithTransactions - transactions manager wired
type WithTransactions struct {
	base         Builder
	transactions *transactions.Manager
}

// WithRequestHandler - request handler wired
type WithRequestHandler struct {
	base     Builder
	requests *ethrequests.Handler
}

// Complete - everything wired
type Complete struct {
	base         Builder
	transactions *transactions.Manager
	requests     *ethrequests.Handler
}

// New - start building around a network manager
func New(manager *network.Manager, config Config) Builder {
	return Builder{
		manager: manager,
		config:  config,
	}
}

func (b Builder) newTransactions(pool transactions.Pool) *transactions.Manager {
	route := messagebus.NewQueue()
	b.manager.SetTransactions(route)
	return transactions.New(b.manager.Handle(), pool, route, b.config.Transactions)
}

func (b Builder) newRequestHandler(client ethrequests.Client) *ethrequests.Handler {
	route := network.NewEthRequestChannel()
	b.manager.SetEthRequestHandler(route)
	return ethrequests.New(client, b.manager.Handle().Peers(), route, b.config.Requests)
}

// Network - the manager being built around
func (b Builder) Network() *network.Manager {
	return b.manager
}

// Handle - a handle to the manager
func (b Builder) Handle() network.Handle {
	return b.manager.Handle()
}

// Transactions - wire a transactions manager for the pool
func (b Builder) Transactions(pool transactions.Pool) WithTransactions {
	return WithTransactions{
		base:         b,
		transactions: b.newTransactions(pool),
	}
}

// RequestHandler - wire a request handler for the client
func (b Builder) RequestHandler(client ethrequests.Client) WithRequestHandler {
	return WithRequestHandler{
		base:     b,
		requests: b.newRequestHandler(client),
	}
}

// Split - the manager
func (b Builder) Split() *network.Manager {
	return b.manager
}

// SplitWithHandle - the manager and a handle to it
func (b Builder) SplitWithHandle() (*network.Manager, network.Handle) {
	return b.manager, b.Handle()
}

// Processes - the long running parts, for background.Start
func (b Builder) Processes() background.Processes {
	return background.Processes{b.manager}
}

// Network - the manager being built around
func (b WithTransactions) Network() *network.Manager {
	return b.base.manager
}

// Handle - a handle to the manager
func (b WithTransactions) Handle() network.Handle {
	return b.base.Handle()
}

// RequestHandler - wire a request handler for the client
func (b WithTransactions) RequestHandler(client ethrequests.Client) Complete {
	return Complete{
		base:         b.base,
		transactions: b.transactions,
		requests:     b.base.newRequestHandler(client),
	}
}

// Split - the manager and the transactions manager
func (b WithTransactions) Split() (*network.Manager, *transactions.Manager) {
	return b.base.manager, b.transactions
}

// SplitWithHandle - as Split plus a handle
func (b WithTransactions) SplitWithHandle() (*network.Manager, *transactions.Manager, network.Handle) {
	return b.base.manager, b.transactions, b.Handle()
}

// Processes - the long running parts, for background.Start
func (b WithTransactions) Processes() background.Processes {
	return background.Processes{b.base.manager, b.transactions}
}

// Network - the manager being built around
func (b WithRequestHandler) Network() *network.Manager {
	return b.base.manager
}

// Handle - a handle to the manager
func (b WithRequestHandler) Handle() network.Handle {
	return b.base.Handle()
}

// Transactions - wire a transactions manager for the pool
func (b WithRequestHandler) Transactions(pool transactions.Pool) Complete {
	return Complete{
		base:         b.base,
		transactions: b.base.newTransactions(pool),
		requests:     b.requests,
	}
}

// Split - the manager and the request handler
func (b WithRequestHandler) Split() (*network.Manager, *ethrequests.Handler) {
	return b.base.manager, b.requests
}

// SplitWithHandle - as Split plus a handle
func (b WithRequestHandler) SplitWithHandle() (*network.Manager, *ethrequests.Handler, network.Handle) {
	return b.base.manager, b.requests, b.Handle()
}

// Processes - the long running parts, for background.Start
func (b WithRequestHandler) Processes() background.Processes {
	return background.Processes{b.base.manager, b.requests}
}

// Network - the manager being built around
func (b Complete) Network() *network.Manager {
	return b.base.manager
}

// Handle - a handle to the manager
func (b Complete) Handle() network.Handle {
	return b.base.Handle()
}

// Split - all three components
func (b Complete) Split() (*network.Manager, *transactions.Manager, *ethrequests.Handler) {
	return b.base.manager, b.transactions, b.requests
}

// SplitWithHandle - as Split plus a handle
func (b Complete) SplitWithHandle() (*network.Manager, *transactions.Manager, *ethrequests.Handler, network.Handle) {
	return b.base.manager, b.transactions, b.requests, b.Handle()
}

// Processes - the long running parts, for background.Start
func (b Complete) Processes() background.Processes {
	return background.Processes{b.base.manager, b.transactions, b.requests}
}
