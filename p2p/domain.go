// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/ethnetd/fault"
)

// startup node connection information is provided through DNS TXT
// records, see ParseTXT for the format

const (
	timeInterval = 1 * time.Hour // time interval for re-fetching nodes domain
	configFile   = "/etc/resolv.conf"
)

// Connector - something that can dial a peer address
type Connector interface {
	Connect(ctx context.Context, addr ma.Multiaddr) error
}

// Domain - background process dialling the seed nodes of a domain
type Domain struct {
	log        *logger.L
	domainName string
	connector  Connector
	lookup     func(string) ([]string, error)
}

// NewDomain - seed nodes from the TXT records of domainName
//
// lookup is normally net.LookupTXT
func NewDomain(domainName string, connector Connector, lookup func(string) ([]string, error)) (*Domain, error) {
	if "" == domainName {
		return nil, fault.InvalidNodeDomain
	}
	return &Domain{
		log:        logger.New("domain"),
		domainName: domainName,
		connector:  connector,
		lookup:     lookup,
	}, nil
}

// Run - background processing interface
func (d *Domain) Run(_ interface{}, shutdown <-chan struct{}) {
	log := d.log
	log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timer := time.After(nodeInitial)

loop:
	for {
		select {
		case <-timer:
			timer = time.After(interval(d.domainName, log))
			addrs, err := d.Lookup()
			if nil != err {
				continue loop
			}
			for _, addr := range addrs {
				if err := d.connector.Connect(ctx, addr); nil != err {
					log.Warnf("connect to: %s  error: %s", addr, err)
				}
			}

		case <-shutdown:
			break loop
		}
	}
	log.Info("stopped")
}

// Lookup - addresses from all valid TXT records, invalid ones are
// skipped
func (d *Domain) Lookup() ([]ma.Multiaddr, error) {
	log := d.log

	txts, err := d.lookup(d.domainName)
	if nil != err {
		log.Errorf("lookup TXT record error: %s", err)
		return nil, err
	}

	var result []ma.Multiaddr
	for i, t := range txts {
		t = strings.TrimSpace(t)
		txt, err := ParseTXT(t)
		if nil != err {
			log.Debugf("ignore TXT[%d]: %q  error: %s", i, t, err)
			continue
		}
		log.Infof("process TXT[%d]: %q", i, t)
		result = append(result, txt.Addrs()...)
	}
	return result, nil
}

// get interval time for lookup node domain txt record
func interval(domain string, log *logger.L) time.Duration {
	t := timeInterval
	var servers []string // dns name server

	// reading default configuration file
	conf, err := dns.ClientConfigFromFile(configFile)

	if nil != err {
		log.Warnf("reading %s error: %s", configFile, err)
		goto done
	}

	if 0 == len(conf.Servers) {
		log.Warnf("cannot get dns name server")
		goto done
	}

	servers = conf.Servers
	// limit the nameservers to lookup
	// https://www.freebsd.org/cgi/man.cgi?resolv.conf
	if len(servers) > 3 {
		servers = servers[:3]
	}

loop:
	for _, server := range servers {

		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(dns.Fqdn(domain), dns.TypeSOA)

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			continue loop
		}

		for _, section := range [][]dns.RR{r.Answer, r.Ns, r.Extra} {
			ttl := ttl(section)
			if 0 < ttl {
				ttlSec := time.Duration(ttl) * time.Second
				if timeInterval > ttlSec {
					t = ttlSec
					break loop
				}
			}
		}
	}

done:
	log.Debugf("time to re-fetching node domain: %v", t)
	return t
}

// get TTL record from a resource record
func ttl(rrs []dns.RR) uint32 {
	for _, rr := range rrs {
		if soa, ok := rr.(*dns.SOA); ok {
			return soa.Hdr.Ttl
		}
		return rr.Header().Ttl
	}
	return 0
}
