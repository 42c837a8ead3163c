// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ProtocolError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ExistsError("already initialised")
	BodyNotFound            = NotFoundError("block body not found")
	DecodeFailed            = ProtocolError("message decode failed")
	GenesisMismatch         = ProtocolError("genesis mismatch")
	HandshakeFailed         = ProtocolError("handshake failed")
	HeaderNotFound          = NotFoundError("block header not found")
	InvalidCapacity         = InvalidError("invalid channel capacity")
	InvalidChain            = InvalidError("invalid chain")
	InvalidConfiguration    = InvalidError("configuration must return a table")
	InvalidDnsTxtRecord     = InvalidError("invalid node domain TXT record")
	InvalidHashLength       = InvalidError("invalid hash length")
	InvalidLoggerChannel    = ProcessError("invalid logger channel")
	InvalidMessageCode      = ProtocolError("invalid message code")
	InvalidNodeDomain       = InvalidError("invalid node domain")
	InvalidPeerAddress      = InvalidError("invalid peer address")
	InvalidPolicy           = InvalidError("invalid full queue policy")
	InvalidPortNumber       = InvalidError("invalid port number")
	InvalidPrivateKey       = InvalidError("invalid private key")
	InvalidStructPointer    = InvalidError("invalid struct pointer")
	InvalidTransaction      = InvalidError("invalid transaction")
	MalformedRequest        = ProtocolError("malformed request")
	MessageTooLarge         = ProtocolError("message too large")
	MissingLocalID          = InvalidError("missing local peer id")
	MissingPeerID           = InvalidError("peer address has no peer id")
	NetworkMismatch         = ProtocolError("network id mismatch")
	NoListenAddrs           = InvalidError("no listen addresses")
	NotInitialised          = NotFoundError("not initialised")
	NotPlainName            = InvalidError("file name must not contain a directory")
	PeerAlreadyConnected    = ExistsError("peer already connected")
	PeerBanned              = InvalidError("peer is banned")
	PeerNotFound            = NotFoundError("peer not found")
	PoolFull                = ProcessError("transaction pool is full")
	ProtocolVersionMismatch = ProtocolError("protocol version mismatch")
	QueueClosed             = ProcessError("queue closed")
	ReceiptsNotFound        = NotFoundError("receipts not found")
	SendQueueFull           = ProcessError("session send queue full")
	SessionClosed           = ProcessError("session closed")
	TooManyPeers            = ProcessError("too many peers")
	TransactionAlreadyKnown = ExistsError("transaction already known")
	TransactionTooLarge     = InvalidError("transaction too large")
	TransactionUnderpriced  = ProcessError("transaction underpriced")
	UnexpectedStatus        = ProtocolError("unexpected status message")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e ProtocolError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrProtocol(e error) bool { _, ok := e.(ProtocolError); return ok }
