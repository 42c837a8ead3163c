// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/ethnetd/background"
	"github.com/bitmark-inc/ethnetd/builder"
	"github.com/bitmark-inc/ethnetd/chain"
	"github.com/bitmark-inc/ethnetd/network"
	"github.com/bitmark-inc/ethnetd/p2p"
	"github.com/bitmark-inc/ethnetd/txpool"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("chain: %s  database: %q", theConfiguration.Chain, theConfiguration.Database.Name)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	networkID, _ := chain.NetworkID(theConfiguration.Chain)

	// start the data storage
	log.Info("initialise chain store")
	store, err := chain.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("chain store open error: %s", err)
		exitwithstatus.Message("chain store open error: %s", err)
	}
	defer store.Close()

	genesis, err := store.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("chain initialise error: %s", err)
		exitwithstatus.Message("chain initialise error: %s", err)
	}
	log.Infof("network: %d  genesis: %s", networkID, genesis.Hash())

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(arguments, store) {
		return
	}

	log.Info("initialise transaction pool")
	pool, err := txpool.New(theConfiguration.Pool)
	if nil != err {
		log.Criticalf("txpool initialise error: %s", err)
		exitwithstatus.Message("txpool initialise error: %s", err)
	}

	// optional metrics
	if "" != theConfiguration.MetricsListen {
		registry := prometheus.NewRegistry()
		theConfiguration.Network.Registerer = registry
		theConfiguration.Transactions.Registerer = registry
		theConfiguration.Requests.Registerer = registry

		go func() {
			log.Warnf("metrics listener on: %s", theConfiguration.MetricsListen)
			handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
			err := http.ListenAndServe(theConfiguration.MetricsListen, handler)
			log.Errorf("metrics listener error: %s", err)
		}()
	}

	localID, err := p2p.IDFromHex(theConfiguration.Peering.PrivateKey)
	if nil != err {
		log.Criticalf("peer identity error: %s", err)
		exitwithstatus.Message("peer identity error: %s", err)
	}
	log.Infof("peer id: %s", localID.Pretty())

	// network components
	manager, err := network.New(theConfiguration.Network, localID)
	if nil != err {
		log.Criticalf("network initialise error: %s", err)
		exitwithstatus.Message("network initialise error: %s", err)
	}

	complete := builder.New(manager, builder.Config{
		Transactions: theConfiguration.Transactions,
		Requests:     theConfiguration.Requests,
	}).Transactions(pool).RequestHandler(store)

	// transport feeding the network manager
	node, err := p2p.New(&theConfiguration.Peering, networkID, store, manager.SessionEvents())
	if nil != err {
		log.Criticalf("p2p initialise error: %s", err)
		exitwithstatus.Message("p2p initialise error: %s", err)
	}
	for _, a := range node.Addrs() {
		log.Infof("listening: %s", a)
	}

	processes := append(complete.Processes(), node)

	if "" != theConfiguration.Peering.Nodes {
		seeds, err := p2p.NewDomain(theConfiguration.Peering.Nodes, node, net.LookupTXT)
		if nil != err {
			log.Criticalf("nodes domain error: %s", err)
			exitwithstatus.Message("nodes domain error: %s", err)
		}
		processes = append(processes, seeds)
	}

	// static peers follow edits to the configuration file
	watcher, err := newFileWatcher(configurationFile, logger.New("config"), func() {
		reloaded, err := getConfiguration(configurationFile)
		if nil != err {
			log.Errorf("reload configuration error: %s", err)
			return
		}
		if err := node.SetStatic(reloaded.Peering.Connect); nil != err {
			log.Errorf("reload static peers error: %s", err)
			return
		}
		log.Infof("static peers: %d", len(reloaded.Peering.Connect))
	})
	if nil != err {
		log.Warnf("configuration watcher error: %s", err)
	} else {
		processes = append(processes, watcher)
	}

	running := background.Start(processes, log)

	stopStats := make(chan struct{})
	go netstats(complete.Handle(), node, stopStats)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	close(stopStats)
	running.Stop()
}
