// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/p2p"
)

func TestSampleConfiguration(t *testing.T) {
	dir, err := ioutil.TempDir("", "ethnetd")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	sample, err := ioutil.ReadFile("ethnetd.conf.sample")
	assert.Nil(t, err, "read sample error")
	name := filepath.Join(dir, "ethnetd.conf")
	assert.Nil(t, ioutil.WriteFile(name, sample, 0600), "write error")

	key, _ := p2p.GenRandPrvKey()
	hexKey, _ := p2p.EncodePrvKeyToHex(key)
	assert.Nil(t, ioutil.WriteFile(filepath.Join(dir, "peer.private"), []byte(hexKey+"\n"), 0600), "write key error")

	options, err := getConfiguration(name)
	if !assert.Nil(t, err, "configuration error") {
		return
	}

	assert.Equal(t, "local", options.Chain, "wrong chain")
	assert.Equal(t, hexKey, options.Peering.PrivateKey, "key not loaded")
	assert.Equal(t, filepath.Join(dir, "data", "local.leveldb"), options.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(dir, "log"), options.Logging.Directory, "wrong log directory")
	assert.Equal(t, string(network.PolicyDrop), options.Network.FullQueuePolicy, "wrong policy")
	assert.Equal(t, 50, options.Network.MaxPeers, "wrong max peers")
	assert.Equal(t, "2s", options.Requests.ResponseTimeBudget, "wrong budget")
	assert.Equal(t, []string{"*:2136"}, options.Peering.Listen, "wrong listen")
}

func TestUnknownChain(t *testing.T) {
	dir, err := ioutil.TempDir("", "ethnetd")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "ethnetd.conf")
	content := `return { data_directory = ".", chain = "nowhere" }`
	assert.Nil(t, ioutil.WriteFile(name, []byte(content), 0600), "write error")

	_, err = getConfiguration(name)
	assert.NotNil(t, err, "unknown chain accepted")
}
