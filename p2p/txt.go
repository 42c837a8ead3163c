// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	peerlib "github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/ethnetd/fault"
)

// the tag to detect applicable TXT records from DNS
var supportedTags = map[string]struct{}{
	"ethnetd-p2p=v1": {},
}

// DnsTXT - a seed node published in DNS
type DnsTXT struct {
	IPv4        net.IP
	IPv6        net.IP
	ConnectPort uint16
	PeerID      peerlib.ID
}

// ParseTXT - decode DNS TXT records of the form
//
//	<TAG> a=<IPv4;IPv6> c=<PORT> i=<PEER-ID>
//
// other invalid combinations or extraneous items are rejected
func ParseTXT(s string) (*DnsTXT, error) {

	t := &DnsTXT{}

	countA := 0
	countC := 0
	countI := 0

words:
	for i, w := range strings.Split(strings.TrimSpace(s), " ") {

		if 0 == i {
			if _, ok := supportedTags[w]; ok {
				continue words
			}
			return nil, fault.InvalidDnsTxtRecord
		}

		// ignore empty
		if "" == w {
			continue words
		}

		// require form: <letter>=<word>
		if len(w) < 3 || '=' != w[1] {
			return nil, fault.InvalidDnsTxtRecord
		}

		// w[0]=tag character; w[1]= char('='); w[2:]=parameter
		parameter := w[2:]
		err := error(nil)
		switch w[0] {
		case 'a':
		addresses:
			for _, address := range strings.Split(parameter, ";") {
				if "" == address {
					err = fault.InvalidPeerAddress
					break addresses
				}
				if '[' == address[0] {
					end := len(address) - 1
					if ']' == address[end] {
						address = address[1:end]
					}
				}
				IP := net.ParseIP(address)
				if nil == IP {
					err = fault.InvalidPeerAddress
					break addresses
				}
				if nil != IP.To4() {
					t.IPv4 = IP
				} else {
					t.IPv6 = IP
				}
			}
			countA += 1

		case 'c':
			t.ConnectPort, err = getPort(parameter)
			countC += 1

		case 'i':
			t.PeerID, err = peerlib.IDB58Decode(parameter)
			if nil != err {
				err = fault.MissingPeerID
			}
			countI += 1

		default:
			err = fault.InvalidDnsTxtRecord
		}
		if nil != err {
			return nil, err
		}
	}

	// ensure that there is only one each of the required items
	if countA != 1 || countC != 1 || countI != 1 {
		return nil, fault.InvalidDnsTxtRecord
	}

	return t, nil
}

// Addrs - dialable addresses of the record
func (t *DnsTXT) Addrs() []ma.Multiaddr {
	var addrs []ma.Multiaddr
	for _, ip := range []net.IP{t.IPv4, t.IPv6} {
		if nil == ip {
			continue
		}
		ver := "ip6"
		if nil != ip.To4() {
			ver = "ip4"
		}
		s := fmt.Sprintf("/%s/%s/tcp/%d/%s/%s", ver, ip, t.ConnectPort, nodeProtocol, t.PeerID.Pretty())
		if addr, err := ma.NewMultiaddr(s); nil == err {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

func getPort(s string) (uint16, error) {

	port, err := strconv.Atoi(s)
	if nil != err {
		return 0, fault.InvalidPortNumber
	}
	if port < 1 || port > 65535 {
		return 0, fault.InvalidPortNumber
	}
	return uint16(port), nil
}
