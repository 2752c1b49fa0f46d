// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/background"
	"github.com/lholznagel/caph-sub001/dispatch"
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/server"
	"github.com/lholznagel/caph-sub001/snapshot"
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
		{Long: "save", HasArg: getoptions.NO_ARGUMENT, Short: 's'},
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

	// these commands do not require the configuration
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

	// these commands require the configuration but no stores
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	quiet := len(options["quiet"]) > 0
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

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

	// all stores and their snapshot files
	log.Infof("snapshot directory: %q", theConfiguration.Snapshot.Directory)
	stores := dispatch.NewStores(theConfiguration.Snapshot.Directory, theConfiguration.MarketOptions())

	manager := snapshot.NewManager()
	err = registerStores(manager, stores)
	if nil != err {
		log.Criticalf("snapshot register error: %s", err)
		exitwithstatus.Message("snapshot register error: %s", err)
	}

	log.Info("loading snapshots")
	err = manager.LoadAll()
	if nil != err {
		log.Criticalf("snapshot load error: %s", err)
		exitwithstatus.Message("snapshot load error: %s", err)
	}

	// rewrite every file and stop
	if len(options["save"]) > 0 {
		errs := manager.SaveAll()
		if 0 != len(errs) {
			exitwithstatus.Message("%s: %d snapshots failed to save, first error: %s", program, len(errs), errs[0])
		}
		return
	}

	dispatcher := dispatch.New(stores)

	log.Debugf("%s = %#v", "Server", theConfiguration.Server)
	srv, err := server.New(&theConfiguration.Server, dispatcher)
	if nil != err {
		log.Criticalf("server initialise error: %s", err)
		exitwithstatus.Message("server initialise error: %s", err)
	}
	err = srv.Start()
	if nil != err {
		log.Criticalf("server start error: %s", err)
		exitwithstatus.Message("server start error: %s", err)
	}

	processes := background.Processes{
		snapshot.NewProcess(manager, theConfiguration.SnapshotInterval()),
	}
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &statistics{
			dispatcher: dispatcher,
			stores:     stores,
		})
	}
	bg := background.Start(processes, nil)

	// wait for termination, a hang up requests an explicit save
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-ch
		log.Infof("received signal: %v", sig)
		if syscall.SIGHUP == sig {
			manager.Request()
			continue
		}
		if !quiet {
			fmt.Printf("\nreceived signal: %v\n", sig)
			fmt.Printf("\nshutting down…\n")
		}
		break
	}
	signal.Stop(ch)

	log.Info("shutting down…")
	srv.Stop()
	bg.Stop()

	// nothing inserts any more, make the last save complete
	if stores.MarketOrders.Pending() {
		log.Warn("committing pending market order history")
		stores.MarketOrders.Commit()
	}
	errs := manager.SaveAll()
	if 0 != len(errs) {
		log.Errorf("%d snapshots failed to save", len(errs))
	}
	log.Infof("requests: %v", dispatcher.Stats())
}

// a store together with its name
type persistent interface {
	Name() string
	snapshot.Saver
}

func registerStores(manager *snapshot.Manager, stores *dispatch.Stores) error {
	for _, s := range []persistent{
		stores.Blueprints,
		stores.IdNames,
		stores.Items,
		stores.Materials,
		stores.OrderInfos,
		stores.Regions,
		stores.Stations,
		stores.MarketOrders,
	} {
		if err := manager.Register(s.Name(), s); nil != err {
			return err
		}
	}
	return nil
}
