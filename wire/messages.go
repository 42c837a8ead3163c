// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/gogo/protobuf/proto"

	"github.com/bitmark-inc/ethnetd/types"
)

// Message - any protocol message
type Message interface {
	proto.Message
	Code() Code
}

// Request - a data retrieval that expects a reply carrying the same ID
type Request interface {
	Message
	ID() uint64
}

// Frame - envelope for a single message
type Frame struct {
	Code    uint32 `protobuf:"varint,1,opt,name=code,proto3" json:"code"`
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload"`
}

func (m *Frame) Reset()         { *m = Frame{} }
func (m *Frame) String() string { return proto.CompactTextString(m) }
func (*Frame) ProtoMessage()    {}

// Status - handshake, first message in each direction
type Status struct {
	ProtocolVersion uint32 `protobuf:"varint,1,opt,name=protocol_version,json=protocolVersion,proto3" json:"protocolVersion"`
	NetworkID       uint64 `protobuf:"varint,2,opt,name=network_id,json=networkId,proto3" json:"networkId"`
	Genesis         []byte `protobuf:"bytes,3,opt,name=genesis,proto3" json:"genesis"`
	Head            []byte `protobuf:"bytes,4,opt,name=head,proto3" json:"head"`
	HeadNumber      uint64 `protobuf:"varint,5,opt,name=head_number,json=headNumber,proto3" json:"headNumber"`
}

func (m *Status) Reset()         { *m = Status{} }
func (m *Status) String() string { return proto.CompactTextString(m) }
func (*Status) ProtoMessage()    {}
func (*Status) Code() Code       { return StatusCode }

// Transactions - full transactions pushed to a peer
type Transactions struct {
	Transactions []*types.Transaction `protobuf:"bytes,1,rep,name=transactions,proto3" json:"transactions"`
}

func (m *Transactions) Reset()         { *m = Transactions{} }
func (m *Transactions) String() string { return proto.CompactTextString(m) }
func (*Transactions) ProtoMessage()    {}
func (*Transactions) Code() Code       { return TransactionsCode }

// NewPooledTransactionHashes - announcement of transactions available
// for retrieval
type NewPooledTransactionHashes struct {
	Hashes [][]byte `protobuf:"bytes,1,rep,name=hashes,proto3" json:"hashes"`
}

func (m *NewPooledTransactionHashes) Reset()         { *m = NewPooledTransactionHashes{} }
func (m *NewPooledTransactionHashes) String() string { return proto.CompactTextString(m) }
func (*NewPooledTransactionHashes) ProtoMessage()    {}
func (*NewPooledTransactionHashes) Code() Code       { return NewPooledTransactionHashesCode }

// GetPooledTransactions - retrieve announced transactions
type GetPooledTransactions struct {
	RequestID uint64   `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Hashes    [][]byte `protobuf:"bytes,2,rep,name=hashes,proto3" json:"hashes"`
}

func (m *GetPooledTransactions) Reset()         { *m = GetPooledTransactions{} }
func (m *GetPooledTransactions) String() string { return proto.CompactTextString(m) }
func (*GetPooledTransactions) ProtoMessage()    {}
func (*GetPooledTransactions) Code() Code       { return GetPooledTransactionsCode }
func (m *GetPooledTransactions) ID() uint64     { return m.RequestID }

// PooledTransactions - reply to GetPooledTransactions
type PooledTransactions struct {
	RequestID    uint64               `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Transactions []*types.Transaction `protobuf:"bytes,2,rep,name=transactions,proto3" json:"transactions"`
}

func (m *PooledTransactions) Reset()         { *m = PooledTransactions{} }
func (m *PooledTransactions) String() string { return proto.CompactTextString(m) }
func (*PooledTransactions) ProtoMessage()    {}
func (*PooledTransactions) Code() Code       { return PooledTransactionsCode }

// GetBlockHeaders - header range query, origin by hash if OriginHash
// is set, otherwise by number
type GetBlockHeaders struct {
	RequestID    uint64 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	OriginHash   []byte `protobuf:"bytes,2,opt,name=origin_hash,json=originHash,proto3" json:"originHash"`
	OriginNumber uint64 `protobuf:"varint,3,opt,name=origin_number,json=originNumber,proto3" json:"originNumber"`
	Amount       uint64 `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Skip         uint64 `protobuf:"varint,5,opt,name=skip,proto3" json:"skip"`
	Reverse      bool   `protobuf:"varint,6,opt,name=reverse,proto3" json:"reverse"`
}

func (m *GetBlockHeaders) Reset()         { *m = GetBlockHeaders{} }
func (m *GetBlockHeaders) String() string { return proto.CompactTextString(m) }
func (*GetBlockHeaders) ProtoMessage()    {}
func (*GetBlockHeaders) Code() Code       { return GetBlockHeadersCode }
func (m *GetBlockHeaders) ID() uint64     { return m.RequestID }

// BlockHeaders - reply to GetBlockHeaders
type BlockHeaders struct {
	RequestID uint64          `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Headers   []*types.Header `protobuf:"bytes,2,rep,name=headers,proto3" json:"headers"`
}

func (m *BlockHeaders) Reset()         { *m = BlockHeaders{} }
func (m *BlockHeaders) String() string { return proto.CompactTextString(m) }
func (*BlockHeaders) ProtoMessage()    {}
func (*BlockHeaders) Code() Code       { return BlockHeadersCode }

// GetBlockBodies - retrieve bodies by block hash
type GetBlockBodies struct {
	RequestID uint64   `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Hashes    [][]byte `protobuf:"bytes,2,rep,name=hashes,proto3" json:"hashes"`
}

func (m *GetBlockBodies) Reset()         { *m = GetBlockBodies{} }
func (m *GetBlockBodies) String() string { return proto.CompactTextString(m) }
func (*GetBlockBodies) ProtoMessage()    {}
func (*GetBlockBodies) Code() Code       { return GetBlockBodiesCode }
func (m *GetBlockBodies) ID() uint64     { return m.RequestID }

// BlockBodies - reply to GetBlockBodies
type BlockBodies struct {
	RequestID uint64        `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Bodies    []*types.Body `protobuf:"bytes,2,rep,name=bodies,proto3" json:"bodies"`
}

func (m *BlockBodies) Reset()         { *m = BlockBodies{} }
func (m *BlockBodies) String() string { return proto.CompactTextString(m) }
func (*BlockBodies) ProtoMessage()    {}
func (*BlockBodies) Code() Code       { return BlockBodiesCode }

// GetReceipts - retrieve receipts by block hash
type GetReceipts struct {
	RequestID uint64   `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Hashes    [][]byte `protobuf:"bytes,2,rep,name=hashes,proto3" json:"hashes"`
}

func (m *GetReceipts) Reset()         { *m = GetReceipts{} }
func (m *GetReceipts) String() string { return proto.CompactTextString(m) }
func (*GetReceipts) ProtoMessage()    {}
func (*GetReceipts) Code() Code       { return GetReceiptsCode }
func (m *GetReceipts) ID() uint64     { return m.RequestID }

// Receipts - reply to GetReceipts, one list per block
type Receipts struct {
	RequestID uint64               `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"requestId"`
	Receipts  []*types.ReceiptList `protobuf:"bytes,2,rep,name=receipts,proto3" json:"receipts"`
}

func (m *Receipts) Reset()         { *m = Receipts{} }
func (m *Receipts) String() string { return proto.CompactTextString(m) }
func (*Receipts) ProtoMessage()    {}
func (*Receipts) Code() Code       { return ReceiptsCode }

// create an empty message for a code
func newMessage(code Code) (Message, bool) {
	switch code {
	case StatusCode:
		return &Status{}, true
	case TransactionsCode:
		return &Transactions{}, true
	case NewPooledTransactionHashesCode:
		return &NewPooledTransactionHashes{}, true
	case GetPooledTransactionsCode:
		return &GetPooledTransactions{}, true
	case PooledTransactionsCode:
		return &PooledTransactions{}, true
	case GetBlockHeadersCode:
		return &GetBlockHeaders{}, true
	case BlockHeadersCode:
		return &BlockHeaders{}, true
	case GetBlockBodiesCode:
		return &GetBlockBodies{}, true
	case BlockBodiesCode:
		return &BlockBodies{}, true
	case GetReceiptsCode:
		return &GetReceipts{}, true
	case ReceiptsCode:
		return &Receipts{}, true
	default:
		return nil, false
	}
}

// EmptyResponse - a reply with no data for a request, nil if the
// message is not a request
func EmptyResponse(request Message) Message {
	switch r := request.(type) {
	case *GetBlockHeaders:
		return &BlockHeaders{RequestID: r.RequestID}
	case *GetBlockBodies:
		return &BlockBodies{RequestID: r.RequestID}
	case *GetReceipts:
		return &Receipts{RequestID: r.RequestID}
	case *GetPooledTransactions:
		return &PooledTransactions{RequestID: r.RequestID}
	default:
		return nil
	}
}
