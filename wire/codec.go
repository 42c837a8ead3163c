// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/gogo/protobuf/proto"

	"github.com/bitmark-inc/ethnetd/fault"
)

const lengthPrefixSize = 4

// Pack - encode a message into a frame
func Pack(m Message) ([]byte, error) {
	payload, err := proto.Marshal(m)
	if nil != err {
		return nil, err
	}
	packed, err := proto.Marshal(&Frame{Code: uint32(m.Code()), Payload: payload})
	if nil != err {
		return nil, err
	}
	if len(packed) > MaxMessageSize {
		return nil, fault.MessageTooLarge
	}
	return packed, nil
}

// Unpack - decode a frame into a message
func Unpack(packed []byte) (Message, error) {
	if len(packed) > MaxMessageSize {
		return nil, fault.MessageTooLarge
	}

	frame := Frame{}
	if err := proto.Unmarshal(packed, &frame); nil != err {
		return nil, fault.DecodeFailed
	}

	m, ok := newMessage(Code(frame.Code))
	if !ok {
		return nil, fault.InvalidMessageCode
	}
	if err := proto.Unmarshal(frame.Payload, m); nil != err {
		return nil, fault.DecodeFailed
	}
	return m, nil
}

// WriteMessage - write a length prefixed frame
func WriteMessage(w io.Writer, m Message) error {
	packed, err := Pack(m)
	if nil != err {
		return err
	}

	buffer := make([]byte, lengthPrefixSize+len(packed))
	binary.BigEndian.PutUint32(buffer, uint32(len(packed)))
	copy(buffer[lengthPrefixSize:], packed)

	_, err = w.Write(buffer)
	return err
}

// ReadMessage - read a length prefixed frame
//
// the length is checked before any allocation so an oversized frame
// costs nothing
func ReadMessage(r io.Reader) (Message, error) {
	prefix := make([]byte, lengthPrefixSize)
	if _, err := io.ReadFull(r, prefix); nil != err {
		return nil, err
	}

	length := binary.BigEndian.Uint32(prefix)
	if length > MaxMessageSize {
		return nil, fault.MessageTooLarge
	}

	packed := make([]byte, length)
	if _, err := io.ReadFull(r, packed); nil != err {
		return nil, err
	}
	return Unpack(packed)
}
