// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ethrequests - answers peer requests for headers, bodies and
// receipts
//
// requests arrive on the bounded request route and are served in
// order. Each response is limited by item count, by approximate size
// and by a time budget that is checked between lookups. A lookup that
// has started is not interrupted, so a Client must bound its own
// calls. Missing data or a header step beyond the block numbers gives
// a short or empty response; a malformed request, one over the size
// limits, is reported as a reputation change and gets no response.
package ethrequests

import (
	"math"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// reasons a response was cut short
const (
	limitItems = "items"
	limitBytes = "bytes"
	limitTime  = "time"
)

// Handler - the eth request handler
type Handler struct {
	log      *logger.L
	client   Client
	peers    *peers.Peers
	incoming <-chan network.EthRequest
	limits   limits
	metrics  *metrics
}

// New - create a request handler reading the request route
func New(client Client, peers *peers.Peers, incoming <-chan network.EthRequest, config Config) *Handler {
	log := logger.New("ethrequests")

	m, err := newMetrics(config.Registerer)
	if nil != err {
		log.Warnf("metrics not registered: %s", err)
		m, _ = newMetrics(nil)
	}

	return &Handler{
		log:      log,
		client:   client,
		peers:    peers,
		incoming: incoming,
		limits:   config.limits(),
		metrics:  m,
	}
}

// Run - serve requests until the route is closed
//
// shutdown is not used, the network manager closes the route when it
// stops and everything already queued is served first
func (h *Handler) Run(args interface{}, shutdown <-chan struct{}) {
	h.log.Info("starting…")

	for request := range h.incoming {
		h.serve(request)
	}

	h.log.Info("stopped")
}

func (h *Handler) serve(request network.EthRequest) {
	start := time.Now()
	deadline := start.Add(h.limits.budget)
	code := request.Message.Code().String()

	var response wire.Message
	var err error

	switch m := request.Message.(type) {
	case *wire.GetBlockHeaders:
		response, err = h.headers(m, deadline)
	case *wire.GetBlockBodies:
		response, err = h.bodies(m, deadline)
	case *wire.GetReceipts:
		response, err = h.receipts(m, deadline)
	default:
		fault.Invariant(h.log, "unexpected request: %s", request.Message.Code())
		return
	}

	if nil != err {
		h.metrics.malformed.Inc()
		h.log.Warnf("peer: %s malformed %s: %s", request.Peer.ShortString(), code, err)
		h.peers.ChangeReputation(request.Peer, peers.BadProtocol)
		return
	}

	h.metrics.latency.WithLabelValues(code).Observe(time.Since(start).Seconds())
	h.metrics.served.WithLabelValues(code).Inc()

	if err := request.Reply(response); nil != err {
		h.log.Debugf("peer: %s reply %s error: %s", request.Peer.ShortString(), response.Code(), err)
	}
}

// stop - true when a response must not grow further
func (h *Handler) stop(items int, maxItems int, bytes int, deadline time.Time) bool {
	switch {
	case items >= maxItems:
		h.metrics.truncated.WithLabelValues(limitItems).Inc()
		return true
	case bytes >= h.limits.bytes:
		h.metrics.truncated.WithLabelValues(limitBytes).Inc()
		return true
	case time.Now().After(deadline):
		h.metrics.truncated.WithLabelValues(limitTime).Inc()
		return true
	}
	return false
}

func (h *Handler) headers(q *wire.GetBlockHeaders, deadline time.Time) (*wire.BlockHeaders, error) {
	response := &wire.BlockHeaders{RequestID: q.RequestID}

	hashMode := 0 != len(q.OriginHash)
	var originHash types.Hash
	if hashMode {
		var err error
		originHash, err = types.BytesToHash(q.OriginHash)
		if nil != err {
			return nil, fault.MalformedRequest
		}
	}

	amount := h.limits.headers
	if q.Amount < uint64(amount) {
		amount = int(q.Amount)
	}

	number := q.OriginNumber
	bytes := 0
	first := true

	for len(response.Headers) < amount {
		if !first && h.stop(len(response.Headers), amount, bytes, deadline) {
			break
		}

		var header *types.Header
		var err error
		if hashMode && first {
			header, err = h.client.HeaderByHash(originHash)
		} else {
			header, err = h.client.HeaderByNumber(number)
		}
		first = false

		if nil != err {
			if !fault.IsErrNotFound(err) {
				h.log.Errorf("header lookup error: %s", err)
			}
			break
		}

		response.Headers = append(response.Headers, header)
		bytes += estimatedHeaderSize
		number = header.Number

		// a step past either end of the block numbers ends the response
		if q.Reverse {
			if number <= q.Skip {
				break
			}
			number -= q.Skip + 1
		} else {
			if q.Skip >= math.MaxUint64-number {
				break
			}
			number += q.Skip + 1
		}
	}

	return response, nil
}

func (h *Handler) bodies(q *wire.GetBlockBodies, deadline time.Time) (*wire.BlockBodies, error) {
	hashes, err := requestHashes(q.Hashes)
	if nil != err {
		return nil, err
	}

	response := &wire.BlockBodies{RequestID: q.RequestID}
	bytes := 0

	for _, hash := range hashes {
		if h.stop(len(response.Bodies), h.limits.bodies, bytes, deadline) {
			break
		}

		body, err := h.client.BodyByHash(hash)
		if nil != err {
			if !fault.IsErrNotFound(err) {
				h.log.Errorf("body: %s lookup error: %s", hash, err)
			}
			continue
		}
		response.Bodies = append(response.Bodies, body)
		bytes += body.Size()
	}

	return response, nil
}

func (h *Handler) receipts(q *wire.GetReceipts, deadline time.Time) (*wire.Receipts, error) {
	hashes, err := requestHashes(q.Hashes)
	if nil != err {
		return nil, err
	}

	response := &wire.Receipts{RequestID: q.RequestID}
	bytes := 0

	for _, hash := range hashes {
		if h.stop(len(response.Receipts), h.limits.receipts, bytes, deadline) {
			break
		}

		receipts, err := h.client.ReceiptsByHash(hash)
		if nil != err {
			if !fault.IsErrNotFound(err) {
				h.log.Errorf("receipts: %s lookup error: %s", hash, err)
			}
			continue
		}
		response.Receipts = append(response.Receipts, receipts)
		bytes += receipts.Size()
	}

	return response, nil
}

func requestHashes(list [][]byte) ([]types.Hash, error) {
	if len(list) > wire.MaxRequestItems {
		return nil, fault.MalformedRequest
	}
	hashes, err := types.BytesToHashes(list)
	if nil != err {
		return nil, fault.MalformedRequest
	}
	return hashes, nil
}
