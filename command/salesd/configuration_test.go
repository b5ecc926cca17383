// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/sweeper"
)

func writeConfiguration(t *testing.T, content string) (string, string) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "salesd.conf")
	err := ioutil.WriteFile(fileName, []byte(content), 0600)
	require.NoError(t, err, "write configuration")
	return dir, fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName := writeConfiguration(t, `
return {
    data_directory = ".",
    authority = owner,
    pidfile = "salesd.pid",
}
`)

	c, err := getConfiguration(fileName, map[string]string{"owner": "market.near"})
	require.NoError(t, err, "configuration")

	assert.Equal(t, "market.near", c.Authority, "authority from define")
	assert.Equal(t, filepath.Join(dir, "salesd.pid"), c.PidFile, "pid file")
	assert.Equal(t, filepath.Join(dir, "data", "sales.leveldb"), c.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
	assert.DirExists(t, filepath.Join(dir, "data"), "database directory created")

	options, err := c.migrationOptions()
	require.NoError(t, err, "options")
	assert.Equal(t, migration.Options{
		Authority:  "market.near",
		Allocation: migration.Monotonic,
		Strategy:   migration.Lazy,
	}, options, "options")

	assert.Equal(t, sweeper.Configuration{Interval: sweeper.DefaultInterval}, c.sweeperConfiguration(), "sweeper")

	assert.Equal(t, []string{"127.0.0.1:2132"}, c.AdminRPC.Listen, "admin listens on loopback")
	assert.Equal(t, uint64(2), c.AdminRPC.MaximumConnections, "admin connections")
	assert.Empty(t, c.ClientRPC.Listen, "client listen")
}

func TestGetConfigurationMigration(t *testing.T) {
	_, fileName := writeConfiguration(t, `
return {
    data_directory = ".",
    authority = "market.near",
    migration = {
        strategy = "eager",
        allocation = "cardinality",
        budget = 5000,
        sweep_interval = 5,
        sweep_batch = 20,
    },
    admin_rpc = {
        listen = { "10.0.0.1:2132" },
        allow = { "10.0.0.0/24" },
    },
}
`)

	c, err := getConfiguration(fileName, nil)
	require.NoError(t, err, "configuration")

	options, err := c.migrationOptions()
	require.NoError(t, err, "options")
	assert.Equal(t, migration.Eager, options.Strategy, "strategy")
	assert.Equal(t, migration.Cardinality, options.Allocation, "allocation")
	assert.Equal(t, uint64(5000), c.Migration.Budget, "budget")
	assert.Equal(t, sweeper.Configuration{Interval: 5 * time.Second, Batch: 20}, c.sweeperConfiguration(), "sweeper")

	assert.Equal(t, []string{"10.0.0.1:2132"}, c.AdminRPC.Listen, "admin listen")
	assert.Equal(t, []string{"10.0.0.0/24"}, c.AdminRPC.Allow, "admin allow")
}

func TestGetConfigurationErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		err     error
	}{
		{"no authority", `return { data_directory = "." }`, fault.InvalidAuthority},
		{"no data directory", `return { authority = "a.near" }`, fault.InvalidPath},
		{"strategy", `return { data_directory = ".", authority = "a.near", migration = { strategy = "later" } }`, fault.InvalidStrategy},
		{"allocation", `return { data_directory = ".", authority = "a.near", migration = { allocation = "random" } }`, fault.InvalidAllocation},
		{"database path", `return { data_directory = ".", authority = "a.near", database = { name = "x/sales.leveldb" } }`, fault.InvalidFileName},
	}

	_, err := getConfiguration(filepath.Join(t.TempDir(), "absent.conf"), nil)
	assert.Equal(t, fault.ConfigurationFileNotFound, err, "absent file")

	for _, c := range cases {
		_, fileName := writeConfiguration(t, c.content)
		_, err := getConfiguration(fileName, nil)
		assert.Equal(t, c.err, err, c.name)
	}
}
