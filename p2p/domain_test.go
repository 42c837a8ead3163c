// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/p2p"
)

const seedID = "QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N"

func TestParseTXT(t *testing.T) {
	type testItem struct {
		id  int
		txt string
		err error
	}

	testData := []testItem{
		{
			id:  1,
			txt: "ethnetd-p2p=v1 a=118.163.120.178;2001:b030:2314:0200:4649:583d:0001:0120 c=2136 i=" + seedID,
			err: nil,
		},
		{
			id:  2,
			txt: "ethnetd-p2p=v1 a=118.163.120.178;[2001:b030:2314:0200:4649:583d:0001:0120] c=2136 i=" + seedID,
			err: nil,
		},
		{
			id:  3,
			txt: "ethnetd-p2p=v1  a=127.0.0.1  c=2136  i=" + seedID,
			err: nil,
		},

		// corrupt record
		{
			id:  4,
			txt: "ethnetd-p2p=v1 a=",
			err: fault.InvalidDnsTxtRecord,
		},
		{
			id:  5,
			txt: "bitmark=v3 a=127.0.0.1 c=2136 i=" + seedID,
			err: fault.InvalidDnsTxtRecord,
		},
		{
			id:  6,
			txt: "ethnetd-p2p=v1 a=300.1.1.1 c=2136 i=" + seedID,
			err: fault.InvalidPeerAddress,
		},
		{
			id:  7,
			txt: "ethnetd-p2p=v1 a=127.0.0.1 c=0 i=" + seedID,
			err: fault.InvalidPortNumber,
		},
		{
			id:  8,
			txt: "ethnetd-p2p=v1 a=127.0.0.1 c=2136 i=not-an-id",
			err: fault.MissingPeerID,
		},
		{
			id:  9,
			txt: "ethnetd-p2p=v1 a=127.0.0.1 c=2136",
			err: fault.InvalidDnsTxtRecord,
		},
	}

	for _, item := range testData {
		txt, err := p2p.ParseTXT(item.txt)
		assert.Equal(t, item.err, err, "record: %d", item.id)
		if nil == item.err && nil != txt {
			assert.Equal(t, uint16(2136), txt.ConnectPort, "record: %d wrong port", item.id)
			assert.Equal(t, seedID, txt.PeerID.Pretty(), "record: %d wrong id", item.id)
		}
	}
}

func TestTXTAddrs(t *testing.T) {
	txt, err := p2p.ParseTXT("ethnetd-p2p=v1 a=127.0.0.1;[::1] c=2136 i=" + seedID)
	assert.Nil(t, err, "parse error")

	addrs := txt.Addrs()
	assert.Equal(t, 2, len(addrs), "wrong address count")
	assert.Contains(t, addrs[0].String(), "/ip4/127.0.0.1/tcp/2136/", "wrong ipv4 address")
	assert.Contains(t, addrs[1].String(), "/ip6/::1/tcp/2136/", "wrong ipv6 address")
}

func TestDomainLookup(t *testing.T) {
	records := []string{
		"ethnetd-p2p=v1 a=127.0.0.1 c=2136 i=" + seedID,
		"garbage",
		"ethnetd-p2p=v1 a=127.0.0.2 c=2137 i=" + seedID,
	}
	lookup := func(name string) ([]string, error) {
		assert.Equal(t, "nodes.example.org", name, "wrong domain")
		return records, nil
	}

	d, err := p2p.NewDomain("nodes.example.org", nil, lookup)
	assert.Nil(t, err, "create error")

	addrs, err := d.Lookup()
	assert.Nil(t, err, "lookup error")
	assert.Equal(t, 2, len(addrs), "invalid record not skipped")

	failing := func(string) ([]string, error) { return nil, errors.New("no such host") }
	d, _ = p2p.NewDomain("nodes.example.org", nil, failing)
	_, err = d.Lookup()
	assert.NotNil(t, err, "lookup error hidden")

	_, err = p2p.NewDomain("", nil, lookup)
	assert.Equal(t, fault.InvalidNodeDomain, err, "empty domain accepted")
}
