// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/wire"
)

func TestAddRemove(t *testing.T) {
	p := peers.New(time.Minute)

	a := peer.ID("peer-a")
	b := peer.ID("peer-b")

	assert.Nil(t, p.Add(b, wire.DefaultCapabilities(), peers.Outbound), "wrong add")
	assert.Nil(t, p.Add(a, wire.DefaultCapabilities(), peers.Inbound), "wrong add")
	assert.Equal(t, fault.PeerAlreadyConnected, p.Add(a, nil, peers.Inbound), "duplicate accepted")

	assert.Equal(t, 2, p.Len(), "wrong count")
	assert.Equal(t, []peer.ID{a, b}, p.IDs(), "wrong order")

	info, ok := p.Get(b)
	assert.True(t, ok, "missing peer")
	assert.Equal(t, peers.Outbound, info.Direction, "wrong direction")
	assert.True(t, info.HasCapability(wire.ProtocolName, 68), "missing capability")
	assert.False(t, info.HasCapability(wire.ProtocolName, 69), "capability too new")

	assert.True(t, p.Remove(a), "wrong remove")
	assert.False(t, p.Remove(a), "second remove succeeded")
	assert.False(t, p.Contains(a), "still present")
}

func TestReputationBan(t *testing.T) {
	p := peers.New(time.Minute)
	a := peer.ID("peer-a")

	_ = p.Add(a, nil, peers.Inbound)

	r := p.ChangeReputation(a, peers.BadTransactions)
	assert.Equal(t, peers.BadTransactions.Weight(), r, "wrong reputation")
	assert.False(t, p.IsBanned(a), "banned too early")

	for i := 0; i < 3; i += 1 {
		p.ChangeReputation(a, peers.BadTransactions)
	}
	assert.True(t, p.IsBanned(a), "not banned")

	select {
	case id := <-p.Banned():
		assert.Equal(t, a, id, "wrong peer banned")
	case <-time.After(time.Second):
		t.Fatal("no ban notification")
	}

	p.Remove(a)
	assert.Equal(t, fault.PeerBanned, p.Add(a, nil, peers.Inbound), "banned peer accepted")

	p.Unban(a)
	assert.Nil(t, p.Add(a, nil, peers.Inbound), "unbanned peer refused")
}

func TestBadProtocolBansImmediately(t *testing.T) {
	p := peers.New(time.Minute)
	a := peer.ID("peer-a")
	_ = p.Add(a, nil, peers.Inbound)

	p.ChangeReputation(a, peers.BadProtocol)
	assert.True(t, p.IsBanned(a), "not banned")

	// further penalties saturate and do not notify again
	p.ChangeReputation(a, peers.BadProtocol)
	<-p.Banned()
	select {
	case <-p.Banned():
		t.Fatal("second notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBansAreNotLostWithoutReader(t *testing.T) {
	p := peers.New(time.Minute)
	defer p.Close()

	total := 100
	for i := 0; i < total; i += 1 {
		id := peer.ID(fmt.Sprintf("peer-%03d", i))
		_ = p.Add(id, nil, peers.Inbound)
		p.ChangeReputation(id, peers.BadProtocol)
	}

	seen := make(map[peer.ID]bool)
	for i := 0; i < total; i += 1 {
		select {
		case item := <-p.Banned():
			seen[item.(peer.ID)] = true
		case <-time.After(time.Second):
			t.Fatalf("only %d of %d ban notifications", i, total)
		}
	}
	assert.Equal(t, total, len(seen), "duplicate notifications")
}

func TestLoadPenaltiesDoNotBan(t *testing.T) {
	p := peers.New(time.Minute)
	a := peer.ID("peer-a")
	_ = p.Add(a, nil, peers.Inbound)

	r := 0
	for i := 0; i < 1000; i += 1 {
		r = p.ChangeReputation(a, peers.RateLimited)
		p.ChangeReputation(a, peers.DroppedRequest)
	}
	assert.True(t, r < 0, "reputation not lowered")
	assert.True(t, r > peers.BanThreshold, "reputation at ban threshold")
	assert.False(t, p.IsBanned(a), "banned for load")

	// misbehaviour still bans
	for i := 0; i < 4; i += 1 {
		p.ChangeReputation(a, peers.BadMessage)
	}
	assert.True(t, p.IsBanned(a), "not banned")
}

func TestGoodResponseIsCapped(t *testing.T) {
	p := peers.New(time.Minute)
	a := peer.ID("peer-a")
	_ = p.Add(a, nil, peers.Inbound)

	assert.Equal(t, peers.MaxReputation, p.ChangeReputation(a, peers.GoodResponse), "reputation above maximum")
	assert.Equal(t, 0, p.ChangeReputation(peer.ID("unknown"), peers.BadMessage), "unknown peer changed")
}
