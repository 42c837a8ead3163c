// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package p2p - libp2p transport for eth sessions
//
// every session is a single libp2p stream speaking the eth protocol;
// after a Status handshake the stream is reported to the network
// manager as a sequence of session events
package p2p

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	libp2p "github.com/libp2p/go-libp2p"
	connmgr "github.com/libp2p/go-libp2p-connmgr"
	p2pcore "github.com/libp2p/go-libp2p-core"
	crypto "github.com/libp2p/go-libp2p-core/crypto"
	peerlib "github.com/libp2p/go-libp2p-core/peer"
	protocol "github.com/libp2p/go-libp2p-core/protocol"
	tls "github.com/libp2p/go-libp2p-tls"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/types"
	"github.com/bitmark-inc/ethnetd/wire"
)

// ProtocolID - libp2p protocol of an eth session stream
const ProtocolID = protocol.ID("/ethnetd/eth/68")

const (
	nodeInitial       = 2 * time.Second  // startup delay before first dial
	nodeInterval      = 1 * time.Minute  // redial static peers
	connectCancelTime = 30 * time.Second // single dial
	closeGrace        = 5 * time.Second  // read side after local disconnect

	defaultHandshakeTimeout = 10 * time.Second
	defaultLowWater         = 40
)

// Chain - the local chain identity sent in the handshake
type Chain interface {
	Head() (*types.Header, error)
	Genesis() (*types.Header, error)
}

// StaticConnection - hardwired connection
// this is read from the configuration file
type StaticConnection struct {
	Address string `gluamapper:"address" json:"address"`
}

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Listen           []string           `gluamapper:"listen" json:"listen"`
	PrivateKey       string             `gluamapper:"private_key" json:"private_key"`
	Connect          []StaticConnection `gluamapper:"connect" json:"connect,omitempty"`
	Nodes            string             `gluamapper:"nodes" json:"nodes"` // domain publishing seed TXT records
	LowWater         int                `gluamapper:"low_water" json:"low_water"`
	HighWater        int                `gluamapper:"high_water" json:"high_water"`
	SendQueue        int                `gluamapper:"send_queue" json:"send_queue"`
	HandshakeTimeout string             `gluamapper:"handshake_timeout" json:"handshake_timeout"`
}

// Node - a p2p node
type Node struct {
	sync.RWMutex // to allow locking

	log       *logger.L
	host      p2pcore.Host
	networkID uint64
	chain     Chain
	events    chan<- session.Event

	static           []ma.Multiaddr
	sessions         map[peerlib.ID]*streamSession
	sendQueue        int
	handshakeTimeout time.Duration

	// closed when the node stops so blocked event writers give up
	done     chan struct{}
	doneOnce sync.Once

	// signalled when the static list changes
	redial chan struct{}

	*MetricsNetwork
}

// New - create a node listening on the configured addresses
//
// established sessions and their messages are written to events
func New(configuration *Configuration, networkID uint64, chain Chain, events chan<- session.Event) (*Node, error) {
	if nil == configuration || nil == chain || nil == events {
		return nil, fault.InvalidStructPointer
	}

	log := logger.New("p2p")

	prvKey, err := DecodeHexToPrvKey(configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	listenIPPorts := makeDualStackAddrs(configuration.Listen)
	listenAddrs := ipPortToMultiAddr(listenIPPorts)
	if 0 == len(listenAddrs) {
		return nil, fault.NoListenAddrs
	}

	static, err := staticAddrs(configuration.Connect, log)
	if nil != err {
		return nil, err
	}

	handshakeTimeout := defaultHandshakeTimeout
	if "" != configuration.HandshakeTimeout {
		handshakeTimeout, err = time.ParseDuration(configuration.HandshakeTimeout)
		if nil != err {
			return nil, err
		}
	}

	n := &Node{
		log:              log,
		networkID:        networkID,
		chain:            chain,
		events:           events,
		static:           static,
		sessions:         make(map[peerlib.ID]*streamSession),
		sendQueue:        configuration.SendQueue,
		handshakeTimeout: handshakeTimeout,
		done:             make(chan struct{}),
		redial:           make(chan struct{}, 1),
	}

	err = n.newHost(listenAddrs, prvKey, configuration.LowWater, configuration.HighWater)
	if nil != err {
		return nil, err
	}

	n.MetricsNetwork = NewMetricsNetwork(n.host, log)
	n.host.SetStreamHandler(ProtocolID, n.handleStream)
	return n, nil
}

// newHost - libp2p host with tls security and a connection manager
func (n *Node) newHost(listenAddrs []ma.Multiaddr, prvKey crypto.PrivKey, low int, high int) error {
	if low <= 0 {
		low = defaultLowWater
	}
	if high <= low {
		high = low * 2
	}

	options := []libp2p.Option{
		libp2p.Identity(prvKey),
		libp2p.Security(tls.ID, tls.New),
		libp2p.ListenAddrs(listenAddrs...),
		libp2p.ConnectionManager(connmgr.NewConnManager(low, high, time.Minute)),
	}
	newHost, err := libp2p.New(context.Background(), options...)
	if nil != err {
		return err
	}
	n.host = newHost
	for _, a := range n.Addrs() {
		n.log.Infof("host address: %s", a)
	}
	return nil
}

// ID - local peer id
func (n *Node) ID() peerlib.ID {
	return n.host.ID()
}

// Addrs - full listening addresses including the peer id
func (n *Node) Addrs() []ma.Multiaddr {
	p2pMa, err := ma.NewMultiaddr("/" + nodeProtocol + "/" + n.host.ID().Pretty())
	if nil != err {
		return nil
	}
	addrs := make([]ma.Multiaddr, 0, len(n.host.Addrs()))
	for _, a := range n.host.Addrs() {
		addrs = append(addrs, a.Encapsulate(p2pMa))
	}
	return addrs
}

// Run - dial static peers until shutdown
func (n *Node) Run(args interface{}, shutdown <-chan struct{}) {
	log := n.log
	log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	var dialing sync.WaitGroup

	delay := time.After(nodeInitial)
loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case <-n.redial:
		case <-delay:
			delay = time.After(nodeInterval)
		}

		n.RLock()
		static := n.static
		n.RUnlock()

		for _, addr := range static {
			dialing.Add(1)
			go func(addr ma.Multiaddr) {
				defer dialing.Done()
				if err := n.Connect(ctx, addr); nil != err {
					log.Warnf("connect to: %s  error: %s", addr, err)
				}
			}(addr)
		}
	}

	log.Info("shutting down…")
	cancel()
	dialing.Wait()
	n.Close()
	log.Info("stopped")
}

// SetStatic - replace the static peer list and dial it
//
// peers dropped from the list stay connected
func (n *Node) SetStatic(connections []StaticConnection) error {
	static, err := staticAddrs(connections, n.log)
	if nil != err {
		return err
	}

	n.Lock()
	n.static = static
	n.Unlock()

	select {
	case n.redial <- struct{}{}:
	default:
	}
	return nil
}

func staticAddrs(connections []StaticConnection, log *logger.L) ([]ma.Multiaddr, error) {
	static := make([]ma.Multiaddr, 0, len(connections))
	for _, c := range connections {
		addr, err := ma.NewMultiaddr(c.Address)
		if nil != err {
			log.Errorf("static peer: %q  error: %s", c.Address, err)
			return nil, fault.InvalidPeerAddress
		}
		static = append(static, addr)
	}
	return static, nil
}

// Close - stop all sessions and the host
func (n *Node) Close() {
	n.doneOnce.Do(func() {
		close(n.done)
	})

	n.Lock()
	sessions := make([]*streamSession, 0, len(n.sessions))
	for _, s := range n.sessions {
		sessions = append(sessions, s)
	}
	n.Unlock()

	for _, s := range sessions {
		s.Disconnect(fault.SessionClosed)
	}
	n.host.Close()
}

// emit - deliver an event unless the node is stopping
func (n *Node) emit(e session.Event) {
	select {
	case n.events <- e:
	case <-n.done:
	}
}

// localStatus - handshake message for this node
func (n *Node) localStatus() (*wire.Status, error) {
	genesis, err := n.chain.Genesis()
	if nil != err {
		return nil, err
	}
	head, err := n.chain.Head()
	if nil != err {
		return nil, err
	}
	return &wire.Status{
		ProtocolVersion: wire.ProtocolVersion,
		NetworkID:       n.networkID,
		Genesis:         genesis.Hash().Bytes(),
		Head:            head.Hash().Bytes(),
		HeadNumber:      head.Number,
	}, nil
}

// isConnected - a session to the peer is running
func (n *Node) isConnected(id peerlib.ID) bool {
	n.RLock()
	defer n.RUnlock()
	_, ok := n.sessions[id]
	return ok
}

func (n *Node) register(s *streamSession) {
	n.Lock()
	n.sessions[s.id] = s
	n.Unlock()
}

// only the session that registered may remove itself
func (n *Node) unregister(s *streamSession) {
	n.Lock()
	if current, ok := n.sessions[s.id]; ok && current == s {
		delete(n.sessions, s.id)
	}
	n.Unlock()
}
