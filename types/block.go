// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"github.com/gogo/protobuf/proto"
)

// Transaction - a signed transaction as propagated between peers
type Transaction struct {
	Nonce     uint64 `protobuf:"varint,1,opt,name=nonce,proto3" json:"nonce"`
	GasPrice  uint64 `protobuf:"varint,2,opt,name=gas_price,json=gasPrice,proto3" json:"gasPrice"`
	Gas       uint64 `protobuf:"varint,3,opt,name=gas,proto3" json:"gas"`
	To        []byte `protobuf:"bytes,4,opt,name=to,proto3" json:"to"`
	Value     []byte `protobuf:"bytes,5,opt,name=value,proto3" json:"value"`
	Data      []byte `protobuf:"bytes,6,opt,name=data,proto3" json:"data"`
	Signature []byte `protobuf:"bytes,7,opt,name=signature,proto3" json:"signature"`
}

func (m *Transaction) Reset()         { *m = Transaction{} }
func (m *Transaction) String() string { return proto.CompactTextString(m) }
func (*Transaction) ProtoMessage()    {}

// Hash - identifying digest
func (m *Transaction) Hash() Hash {
	return digest(m)
}

// Size - encoded size in bytes
func (m *Transaction) Size() int {
	return proto.Size(m)
}

// Header - block header
type Header struct {
	ParentHash  []byte `protobuf:"bytes,1,opt,name=parent_hash,json=parentHash,proto3" json:"parentHash"`
	Number      uint64 `protobuf:"varint,2,opt,name=number,proto3" json:"number"`
	Time        uint64 `protobuf:"varint,3,opt,name=time,proto3" json:"time"`
	TxRoot      []byte `protobuf:"bytes,4,opt,name=tx_root,json=txRoot,proto3" json:"transactionsRoot"`
	ReceiptRoot []byte `protobuf:"bytes,5,opt,name=receipt_root,json=receiptRoot,proto3" json:"receiptsRoot"`
	GasLimit    uint64 `protobuf:"varint,6,opt,name=gas_limit,json=gasLimit,proto3" json:"gasLimit"`
	GasUsed     uint64 `protobuf:"varint,7,opt,name=gas_used,json=gasUsed,proto3" json:"gasUsed"`
	Extra       []byte `protobuf:"bytes,8,opt,name=extra,proto3" json:"extraData"`
}

func (m *Header) Reset()         { *m = Header{} }
func (m *Header) String() string { return proto.CompactTextString(m) }
func (*Header) ProtoMessage()    {}

// Hash - identifying digest
func (m *Header) Hash() Hash {
	return digest(m)
}

// Size - encoded size in bytes
func (m *Header) Size() int {
	return proto.Size(m)
}

// Body - the transactions and uncles of a block
type Body struct {
	Transactions []*Transaction `protobuf:"bytes,1,rep,name=transactions,proto3" json:"transactions"`
	Uncles       []*Header      `protobuf:"bytes,2,rep,name=uncles,proto3" json:"uncles"`
}

func (m *Body) Reset()         { *m = Body{} }
func (m *Body) String() string { return proto.CompactTextString(m) }
func (*Body) ProtoMessage()    {}

// Size - encoded size in bytes
func (m *Body) Size() int {
	return proto.Size(m)
}

// Receipt - result of executing one transaction
type Receipt struct {
	TxHash            []byte `protobuf:"bytes,1,opt,name=tx_hash,json=txHash,proto3" json:"transactionHash"`
	Status            uint64 `protobuf:"varint,2,opt,name=status,proto3" json:"status"`
	CumulativeGasUsed uint64 `protobuf:"varint,3,opt,name=cumulative_gas_used,json=cumulativeGasUsed,proto3" json:"cumulativeGasUsed"`
	Bloom             []byte `protobuf:"bytes,4,opt,name=bloom,proto3" json:"logsBloom"`
}

func (m *Receipt) Reset()         { *m = Receipt{} }
func (m *Receipt) String() string { return proto.CompactTextString(m) }
func (*Receipt) ProtoMessage()    {}

// ReceiptList - all receipts of one block
type ReceiptList struct {
	Receipts []*Receipt `protobuf:"bytes,1,rep,name=receipts,proto3" json:"receipts"`
}

func (m *ReceiptList) Reset()         { *m = ReceiptList{} }
func (m *ReceiptList) String() string { return proto.CompactTextString(m) }
func (*ReceiptList) ProtoMessage()    {}

// Size - encoded size in bytes
func (m *ReceiptList) Size() int {
	return proto.Size(m)
}

// proto3 structures without required fields always marshal
func digest(m proto.Message) Hash {
	b, err := proto.Marshal(m)
	if nil != err {
		return Hash{}
	}
	return Keccak256Hash(b)
}
