// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/ethnetd/background"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/peers"
	"github.com/bitmark-inc/ethnetd/session"
	"github.com/bitmark-inc/ethnetd/wire"
)

const (
	dir         = "testing"
	logCategory = "testing"

	localID = peer.ID("local")
)

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

func start(t *testing.T, config network.Config) (*network.Manager, *background.T) {
	m, err := network.New(config, localID)
	if nil != err {
		t.Fatalf("create manager error: %s", err)
	}
	return m, background.Start(background.Processes{m}, nil)
}

func establish(m *network.Manager, id peer.ID) *session.Memory {
	s := session.NewMemory(id, 0)
	m.SessionEvents() <- session.Established(s, wire.DefaultCapabilities(), peers.Inbound)
	return s
}

// wait for the manager loop to reach some state
func waitFor(t *testing.T, what string, condition func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for: %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func connected(h network.Handle, n int) func() bool {
	return func() bool { return n == h.NumConnected() }
}
