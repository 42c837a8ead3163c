// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethrequests

import (
	"github.com/bitmark-inc/ethnetd/types"
)

// Client - read access to chain data
//
// missing data is reported with a fault.NotFoundError
type Client interface {
	HeaderByHash(types.Hash) (*types.Header, error)
	HeaderByNumber(uint64) (*types.Header, error)
	BodyByHash(types.Hash) (*types.Body, error)
	ReceiptsByHash(types.Hash) (*types.ReceiptList, error)
}
