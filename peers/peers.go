// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peers

import (
	"sort"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/messagebus"
	"github.com/bitmark-inc/ethnetd/wire"
)

const (
	// DefaultBanDuration - how long a banned peer is refused
	DefaultBanDuration = 12 * time.Hour

	banCleanupInterval = 10 * time.Minute
)

// Direction - which side opened the connection
type Direction int

// connection directions
const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if Outbound == d {
		return "outbound"
	}
	return "inbound"
}

// Info - snapshot of one peer
type Info struct {
	ID           peer.ID           `json:"id"`
	Capabilities []wire.Capability `json:"capabilities"`
	Direction    Direction         `json:"direction"`
	Reputation   int               `json:"reputation"`
	ConnectedAt  time.Time         `json:"connectedAt"`
}

// HasCapability - true if the peer negotiated the named protocol at
// or above the version
func (i Info) HasCapability(name string, version uint32) bool {
	for _, c := range i.Capabilities {
		if c.Name == name && c.Version >= version {
			return true
		}
	}
	return false
}

// Peers - the live peer set
type Peers struct {
	sync.RWMutex
	peers       map[peer.ID]*Info
	banned      *cache.Cache
	banDuration time.Duration
	bans        *messagebus.Queue
}

// New - create an empty peer set
func New(banDuration time.Duration) *Peers {
	if banDuration <= 0 {
		banDuration = DefaultBanDuration
	}
	return &Peers{
		peers:       make(map[peer.ID]*Info),
		banned:      cache.New(banDuration, banCleanupInterval),
		banDuration: banDuration,
		bans:        messagebus.NewQueue(),
	}
}

// Add - register a connected peer
func (p *Peers) Add(id peer.ID, capabilities []wire.Capability, direction Direction) error {
	if p.IsBanned(id) {
		return fault.PeerBanned
	}

	p.Lock()
	defer p.Unlock()

	if _, ok := p.peers[id]; ok {
		return fault.PeerAlreadyConnected
	}

	caps := make([]wire.Capability, len(capabilities))
	copy(caps, capabilities)

	p.peers[id] = &Info{
		ID:           id,
		Capabilities: caps,
		Direction:    direction,
		ConnectedAt:  time.Now(),
	}
	return nil
}

// Remove - forget a peer, returns false if it was not present
func (p *Peers) Remove(id peer.ID) bool {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.peers[id]; !ok {
		return false
	}
	delete(p.peers, id)
	return true
}

// Get - copy of a peer's metadata
func (p *Peers) Get(id peer.ID) (Info, bool) {
	p.RLock()
	defer p.RUnlock()

	info, ok := p.peers[id]
	if !ok {
		return Info{}, false
	}
	return *info, true
}

// Contains - true if the peer is connected
func (p *Peers) Contains(id peer.ID) bool {
	p.RLock()
	_, ok := p.peers[id]
	p.RUnlock()
	return ok
}

// IDs - connected peers in a stable order
func (p *Peers) IDs() []peer.ID {
	p.RLock()
	ids := make([]peer.ID, 0, len(p.peers))
	for id := range p.peers {
		ids = append(ids, id)
	}
	p.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len - number of connected peers
func (p *Peers) Len() int {
	p.RLock()
	defer p.RUnlock()
	return len(p.peers)
}

// ChangeReputation - apply a reputation change and return the new
// value; a peer that is not connected is ignored
func (p *Peers) ChangeReputation(id peer.ID, kind ReputationKind) int {
	p.Lock()
	info, ok := p.peers[id]
	if !ok {
		p.Unlock()
		return 0
	}
	before := info.Reputation
	info.Reputation = applyReputation(info.Reputation, kind)
	if kind.isSoft() && info.Reputation < softFloor {
		info.Reputation = before
		if before > softFloor {
			info.Reputation = softFloor
		}
	}
	after := info.Reputation
	p.Unlock()

	if after <= BanThreshold && before > BanThreshold {
		p.Ban(id)
	}
	return after
}

// Ban - refuse the peer for the ban duration and notify the manager
func (p *Peers) Ban(id peer.ID) {
	p.banned.Set(id.String(), time.Now(), p.banDuration)

	// only fails after Close, when nobody is left to disconnect the peer
	_ = p.bans.Send(id)
}

// IsBanned - true while a ban is in force
func (p *Peers) IsBanned(id peer.ID) bool {
	_, found := p.banned.Get(id.String())
	return found
}

// Unban - lift a ban early
func (p *Peers) Unban(id peer.ID) {
	p.banned.Delete(id.String())
}

// Banned - peers newly banned, each item is a peer.ID
//
// every ban is delivered however slowly the manager reads
func (p *Peers) Banned() <-chan interface{} {
	return p.bans.Chan()
}

// Close - stop ban notifications, bans already made are still
// delivered
func (p *Peers) Close() {
	p.bans.Close()
}
