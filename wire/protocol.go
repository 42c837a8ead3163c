// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// protocol identification
const (
	ProtocolName    = "eth"
	ProtocolVersion = 68
)

// protocol limits
const (
	// largest frame accepted from a peer; also the worst case size of a
	// single queued request
	MaxMessageSize = 10 * 1024 * 1024

	// target maximum size of a reply to a data retrieval
	SoftResponseLimit = 2 * 1024 * 1024

	// more hashes than this in a single request is malformed
	MaxRequestItems = 1024

	// more hashes than this in a single announcement is malformed
	MaxAnnouncedHashes = 4096

	// largest acceptable encoded transaction
	MaxTransactionSize = 128 * 1024
)

// Code - message code within the protocol
type Code uint32

// message codes
const (
	StatusCode                     Code = 0x00
	TransactionsCode               Code = 0x02
	GetBlockHeadersCode            Code = 0x03
	BlockHeadersCode               Code = 0x04
	GetBlockBodiesCode             Code = 0x05
	BlockBodiesCode                Code = 0x06
	NewPooledTransactionHashesCode Code = 0x08
	GetPooledTransactionsCode      Code = 0x09
	PooledTransactionsCode         Code = 0x0a
	GetReceiptsCode                Code = 0x0f
	ReceiptsCode                   Code = 0x10
)

var codeNames = map[Code]string{
	StatusCode:                     "Status",
	TransactionsCode:               "Transactions",
	GetBlockHeadersCode:            "GetBlockHeaders",
	BlockHeadersCode:               "BlockHeaders",
	GetBlockBodiesCode:             "GetBlockBodies",
	BlockBodiesCode:                "BlockBodies",
	NewPooledTransactionHashesCode: "NewPooledTransactionHashes",
	GetPooledTransactionsCode:      "GetPooledTransactions",
	PooledTransactionsCode:         "PooledTransactions",
	GetReceiptsCode:                "GetReceipts",
	ReceiptsCode:                   "Receipts",
}

// String - name of the message
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint32(c))
}

// Capability - a protocol and version negotiated with a peer
type Capability struct {
	Name    string `json:"name"`
	Version uint32 `json:"version"`
}

// String - e.g. "eth/68"
func (c Capability) String() string {
	return fmt.Sprintf("%s/%d", c.Name, c.Version)
}

// DefaultCapabilities - what this node offers
func DefaultCapabilities() []Capability {
	return []Capability{{Name: ProtocolName, Version: ProtocolVersion}}
}

// Category - how the network manager routes a message
type Category int

// message categories
const (
	CategoryControl      Category = iota // handled by the session layer
	CategoryTransactions                 // routed to the transactions manager
	CategoryRequest                      // routed to the eth request handler
	CategoryResponse                     // replies to this node's own requests
)

func (c Category) String() string {
	switch c {
	case CategoryControl:
		return "control"
	case CategoryTransactions:
		return "transactions"
	case CategoryRequest:
		return "request"
	case CategoryResponse:
		return "response"
	default:
		return "unknown"
	}
}

// CategoryOf - routing category of a message
func CategoryOf(m Message) Category {
	switch m.Code() {
	case TransactionsCode, NewPooledTransactionHashesCode, GetPooledTransactionsCode, PooledTransactionsCode:
		return CategoryTransactions
	case GetBlockHeadersCode, GetBlockBodiesCode, GetReceiptsCode:
		return CategoryRequest
	case BlockHeadersCode, BlockBodiesCode, ReceiptsCode:
		return CategoryResponse
	default:
		return CategoryControl
	}
}
