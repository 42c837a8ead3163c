// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	peerlib "github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/bitmark-inc/ethnetd/fault"
)

var nodeProtocol = ma.ProtocolWithCode(ma.P_P2P).Name

// ParseHostPort - parse host:port  return version(ip4/ip6), ip, port, error
//
// port zero asks the system for a free port
func ParseHostPort(hostPort string) (string, string, string, error) {
	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return "", "", "", err
	}
	ip := strings.Trim(host, " ")
	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return "", "", "", err
	}
	if numericPort < 0 || numericPort > 65535 {
		return "", "", "", fault.InvalidPortNumber
	}
	netIP := net.ParseIP(ip)
	if nil == netIP {
		return "", "", "", fault.InvalidPeerAddress
	}
	ver := "ip6"
	if nil != netIP.To4() {
		ver = "ip4"
	}
	return ver, ip, strconv.Itoa(numericPort), nil
}

// "*:port" listens on both 0.0.0.0:port and [::]:port
func makeDualStackAddrs(ipPorts []string) []string {
	uniqIPs := make(map[string]struct{})
	result := make([]string, 0, len(ipPorts)+1)
	add := func(s string) {
		if _, ok := uniqIPs[s]; !ok {
			uniqIPs[s] = struct{}{}
			result = append(result, s)
		}
	}
	for _, ipPort := range ipPorts {
		sep := strings.Split(ipPort, ":")
		if len(sep) == 2 && "*" == sep[0] {
			add("0.0.0.0:" + sep[1])
			add("[::]:" + sep[1])
		} else {
			add(ipPort)
		}
	}
	return result
}

// ip:port list to tcp multiaddrs, unparsable entries are skipped
func ipPortToMultiAddr(addrsStr []string) []ma.Multiaddr {
	var maAddrs []ma.Multiaddr
loop:
	for _, ipPort := range addrsStr {
		ver, ip, port, err := ParseHostPort(ipPort)
		if nil != err {
			continue loop
		}
		addr, err := ma.NewMultiaddr(fmt.Sprintf("/%s/%s/tcp/%s", ver, ip, port))
		if nil != err {
			continue loop
		}
		maAddrs = append(maAddrs, addr)
	}
	return maAddrs
}

// resolve - expand dns components and group the result by peer
//
// every address must end in /p2p/<id>
func resolve(ctx context.Context, addr ma.Multiaddr) ([]peerlib.AddrInfo, error) {
	if _, err := addr.ValueForProtocol(ma.P_P2P); nil != err {
		return nil, fault.MissingPeerID
	}

	addrs := []ma.Multiaddr{addr}
	if madns.Matches(addr) {
		resolved, err := madns.Resolve(ctx, addr)
		if nil != err {
			return nil, err
		}
		addrs = resolved
	}
	if 0 == len(addrs) {
		return nil, fault.InvalidPeerAddress
	}

	infos, err := peerlib.AddrInfosFromP2pAddrs(addrs...)
	if nil != err {
		return nil, err
	}
	return infos, nil
}
