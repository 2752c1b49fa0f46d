// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/configuration"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/server"
	"github.com/lholznagel/caph-sub001/snapshot"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the configuration file

	defaultListen             = "127.0.0.1:9000"
	defaultMaximumConnections = 100
	defaultRequestRateLimit   = 1000
	defaultRequestBurst       = 100

	defaultSnapshotDirectory = "snapshots"
	defaultSnapshotInterval  = 0 // save on signal only

	defaultResponseCacheSeconds = 60

	defaultLogDirectory = "log"
	defaultLogFile      = "carinad.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

// MarketConfiguration - behaviour of the market order history
type MarketConfiguration struct {
	AutoCommit           bool `gluamapper:"auto_commit" json:"auto_commit"`
	ResponseCacheSeconds int  `gluamapper:"response_cache_seconds" json:"response_cache_seconds"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`

	Server   server.Configuration   `gluamapper:"server" json:"server"`
	Snapshot snapshot.Configuration `gluamapper:"snapshot" json:"snapshot"`
	Market   MarketConfiguration    `gluamapper:"market" json:"market"`
	Logging  logger.Configuration   `gluamapper:"logging" json:"logging"`
}

// MarketOptions - store options from the market section
func (c *Configuration) MarketOptions() marketorder.Options {
	return marketorder.Options{
		AutoCommit:    c.Market.AutoCommit,
		ResponseCache: time.Duration(c.Market.ResponseCacheSeconds) * time.Second,
	}
}

// SnapshotInterval - time between background saves, zero for none
func (c *Configuration) SnapshotInterval() time.Duration {
	return time.Duration(c.Snapshot.Interval) * time.Second
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

		Server: server.Configuration{
			Listen:             []string{defaultListen},
			MaximumConnections: defaultMaximumConnections,
			RequestRateLimit:   defaultRequestRateLimit,
			RequestBurst:       defaultRequestBurst,
		},

		Snapshot: snapshot.Configuration{
			Directory: defaultSnapshotDirectory,
			Interval:  defaultSnapshotInterval,
		},

		Market: MarketConfiguration{
			AutoCommit:           false,
			ResponseCacheSeconds: defaultResponseCacheSeconds,
		},

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

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = configuration.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	if options.Snapshot.Interval < 0 {
		return nil, fmt.Errorf("snapshot interval: %d must not be negative", options.Snapshot.Interval)
	}
	if options.Market.ResponseCacheSeconds < 0 {
		return nil, fmt.Errorf("response cache: %d must not be negative", options.Market.ResponseCacheSeconds)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = configuration.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// the log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Snapshot.Directory,
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := configuration.EnsureDirectory(*d); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
