// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peers

import (
	"math"
)

// ReputationKind - a kind of peer behaviour that changes reputation
type ReputationKind int

// kinds of reputation change
const (
	BadProtocol ReputationKind = iota
	BadMessage
	BadTransactions
	AlreadySeenTransaction
	DroppedRequest
	RateLimited
	GoodResponse
)

const (
	reputationUnit = -1024

	// BanThreshold - reputation at or below this bans the peer
	BanThreshold = 50 * reputationUnit

	// MaxReputation - good behaviour cannot raise reputation further
	MaxReputation = 0

	// load related penalties alone never take a peer below this
	softFloor = BanThreshold / 2
)

var reputationWeights = map[ReputationKind]int{
	BadProtocol:            math.MinInt32,
	BadMessage:             16 * reputationUnit,
	BadTransactions:        16 * reputationUnit,
	AlreadySeenTransaction: reputationUnit / 4,
	DroppedRequest:         reputationUnit / 4,
	RateLimited:            2 * reputationUnit,
	GoodResponse:           -reputationUnit / 8,
}

// penalties caused by load rather than misbehaviour
func (k ReputationKind) isSoft() bool {
	return RateLimited == k || DroppedRequest == k
}

// Weight - change applied for a kind
func (k ReputationKind) Weight() int {
	return reputationWeights[k]
}

func (k ReputationKind) String() string {
	switch k {
	case BadProtocol:
		return "bad protocol"
	case BadMessage:
		return "bad message"
	case BadTransactions:
		return "bad transactions"
	case AlreadySeenTransaction:
		return "already seen transaction"
	case DroppedRequest:
		return "dropped request"
	case RateLimited:
		return "rate limited"
	case GoodResponse:
		return "good response"
	default:
		return "unknown"
	}
}

// saturating add so BadProtocol cannot wrap round
func applyReputation(current int, kind ReputationKind) int {
	w := kind.Weight()
	if w < 0 && current < math.MinInt32-w {
		return math.MinInt32
	}
	n := current + w
	if n > MaxReputation {
		return MaxReputation
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return n
}
