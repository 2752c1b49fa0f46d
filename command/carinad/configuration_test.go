// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/dispatch"
	"github.com/lholznagel/caph-sub001/snapshot"
)

func writeConfiguration(t *testing.T, contents string) (string, string) {
	directory := t.TempDir()
	fileName := filepath.Join(directory, "carinad.conf")
	assert.Nil(t, os.WriteFile(fileName, []byte(contents), 0600), "write")
	return directory, fileName
}

func TestDefaultConfiguration(t *testing.T) {
	directory, fileName := writeConfiguration(t, "return {}")

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Clean(directory), filepath.Clean(c.DataDirectory), "data directory")
	assert.Equal(t, []string{defaultListen}, c.Server.Listen, "listen")
	assert.Equal(t, uint64(defaultMaximumConnections), c.Server.MaximumConnections, "maximum connections")
	assert.Equal(t, filepath.Join(directory, defaultSnapshotDirectory), c.Snapshot.Directory, "snapshot directory")
	assert.Equal(t, filepath.Join(directory, defaultLogDirectory), c.Logging.Directory, "log directory")
	assert.Equal(t, time.Duration(0), c.SnapshotInterval(), "interval")
	assert.Equal(t, time.Minute, c.MarketOptions().ResponseCache, "response cache")
	assert.False(t, c.MarketOptions().AutoCommit, "auto commit")

	info, err := os.Stat(c.Snapshot.Directory)
	assert.Nil(t, err, "snapshot directory created")
	assert.True(t, info.IsDir(), "snapshot directory is a directory")
}

func TestConfigurationFile(t *testing.T) {
	directory, fileName := writeConfiguration(t, `
local M = {}
M.pidfile = "carinad.pid"
M.server = {
    listen = { "*:9100" },
    maximum_connections = 10,
    request_rate_limit = 50,
    request_burst = 5,
}
M.snapshot = {
    directory = "/tmp/carina-test-snapshots",
    interval = 300,
}
M.market = {
    auto_commit = true,
    response_cache_seconds = 0,
}
return M
`)
	defer os.RemoveAll("/tmp/carina-test-snapshots")

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Join(directory, "carinad.pid"), c.PidFile, "pid file")
	assert.Equal(t, []string{"*:9100"}, c.Server.Listen, "listen")
	assert.Equal(t, uint64(10), c.Server.MaximumConnections, "maximum connections")
	assert.Equal(t, float64(50), c.Server.RequestRateLimit, "rate")
	assert.Equal(t, 5, c.Server.RequestBurst, "burst")
	assert.Equal(t, "/tmp/carina-test-snapshots", c.Snapshot.Directory, "absolute snapshot directory")
	assert.Equal(t, 300*time.Second, c.SnapshotInterval(), "interval")
	assert.True(t, c.MarketOptions().AutoCommit, "auto commit")
	assert.Equal(t, time.Duration(0), c.MarketOptions().ResponseCache, "response cache")
}

func TestConfigurationErrors(t *testing.T) {
	_, fileName := writeConfiguration(t, `return { data_directory = "absent" }`)
	_, err := getConfiguration(fileName)
	assert.NotNil(t, err, "missing data directory")

	_, fileName = writeConfiguration(t, `return { snapshot = { interval = -1 } }`)
	_, err = getConfiguration(fileName)
	assert.NotNil(t, err, "negative interval")

	_, fileName = writeConfiguration(t, `return { logging = { file = "log/carinad.log" } }`)
	_, err = getConfiguration(fileName)
	assert.NotNil(t, err, "log file with a path")
}

func TestRegisterStores(t *testing.T) {
	stores := dispatch.NewStores(t.TempDir(), (&Configuration{}).MarketOptions())
	manager := snapshot.NewManager()
	assert.Nil(t, registerStores(manager, stores), "register")
	assert.Equal(t, []string{
		"blueprints",
		"id_names",
		"items",
		"item_materials",
		"market_order_infos",
		"regions",
		"stations",
		"market_orders",
	}, manager.Names(), "names")
}
