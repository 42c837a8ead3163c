// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ethnetd/chain"
	"github.com/bitmark-inc/ethnetd/configuration"
	"github.com/bitmark-inc/ethnetd/ethrequests"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/p2p"
	"github.com/bitmark-inc/ethnetd/transactions"
	"github.com/bitmark-inc/ethnetd/txpool"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPeerKeyFile = "peer.private"

	defaultLevelDBDirectory = "data"
	defaultMainDatabase     = chain.Main + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "ethnetd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the chain database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the whole daemon configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	PeerKeyFile   string       `gluamapper:"peer_key_file" json:"peer_key_file"`
	MetricsListen string       `gluamapper:"metrics_listen" json:"metrics_listen"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Network      network.Config       `gluamapper:"network" json:"network"`
	Transactions transactions.Config  `gluamapper:"transactions" json:"transactions"`
	Requests     ethrequests.Config   `gluamapper:"requests" json:"requests"`
	Peering      p2p.Configuration    `gluamapper:"peering" json:"peering"`
	Pool         txpool.Config        `gluamapper:"pool" json:"pool"`
	Logging      logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Main,
		PeerKeyFile:   defaultPeerKeyFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultMainDatabase,
		},

		Network:      network.DefaultConfig(),
		Transactions: transactions.DefaultConfig(),
		Requests:     ethrequests.DefaultConfig(),

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultMainDatabase {
		switch options.Chain {
		case chain.Main:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	options.PeerKeyFile = configuration.EnsureAbsolute(options.DataDirectory, options.PeerKeyFile)
	if "" != options.PidFile {
		options.PidFile = configuration.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d, err = configuration.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// file item must be plain names, then add the directory prefix
	if err := configuration.PlainName(options.Database.Name); nil != err {
		return nil, fmt.Errorf("Files: %q %s", options.Database.Name, err)
	}
	options.Database.Name = configuration.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	if err := configuration.PlainName(options.Logging.File); nil != err {
		return nil, fmt.Errorf("Files: %q %s", options.Logging.File, err)
	}

	// an inline key takes precedence over the key file
	if "" == options.Peering.PrivateKey {
		key, err := ioutil.ReadFile(options.PeerKeyFile)
		if nil != err {
			return nil, err
		}
		options.Peering.PrivateKey = strings.TrimSpace(string(key))
	}

	// done
	return options, nil
}
