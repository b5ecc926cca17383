// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/configuration"
	"github.com/bitmark-inc/salesd/fault"
)

type migrationBlock struct {
	Strategy string `gluamapper:"strategy"`
	Budget   uint64 `gluamapper:"budget"`
}

type sample struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Authority     string            `gluamapper:"authority"`
	Migration     migrationBlock    `gluamapper:"migration"`
	Listen        []string          `gluamapper:"listen"`
	Levels        map[string]string `gluamapper:"levels"`
}

const sampleLua = `
local M = {}
M.data_directory = arg[0]:match("(.*/)")
M.authority = owner or "nobody"
M.migration = {
    strategy = "eager",
    budget = 5000,
}
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.levels = { main = "info", DEFAULT = "error" }
return M
`

func writeFile(t *testing.T, name string, content string) string {
	dir, err := ioutil.TempDir("", "salesd-configuration-")
	require.NoError(t, err, "temp dir")
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	fileName := filepath.Join(dir, name)
	err = ioutil.WriteFile(fileName, []byte(content), 0600)
	require.NoError(t, err, "write file")
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	fileName := writeFile(t, "salesd.conf", sampleLua)

	var s sample
	err := configuration.ParseConfigurationFile(fileName, &s, map[string]string{"owner": "market.near"})
	require.NoError(t, err, "parse")

	assert.Equal(t, filepath.Dir(fileName)+"/", s.DataDirectory, "data directory from arg[0]")
	assert.Equal(t, "market.near", s.Authority, "variable passed as a global")
	assert.Equal(t, "eager", s.Migration.Strategy, "nested table")
	assert.Equal(t, uint64(5000), s.Migration.Budget, "number")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, s.Listen, "array")
	assert.Equal(t, "info", s.Levels["main"], "map")
}

func TestParseConfigurationFileDefaultsRetained(t *testing.T) {
	fileName := writeFile(t, "partial.conf", `return { authority = "a.near" }`)

	s := sample{
		Migration: migrationBlock{Strategy: "lazy", Budget: 100},
	}
	err := configuration.ParseConfigurationFile(fileName, &s, nil)
	require.NoError(t, err, "parse")

	assert.Equal(t, "a.near", s.Authority, "authority")
	assert.Equal(t, "lazy", s.Migration.Strategy, "strategy default kept")
	assert.Equal(t, uint64(100), s.Migration.Budget, "budget default kept")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	var s sample

	err := configuration.ParseConfigurationFile(filepath.Join(os.TempDir(), "no-such-salesd.conf"), &s, nil)
	assert.Error(t, err, "missing file")

	fileName := writeFile(t, "bad.conf", `return {`)
	err = configuration.ParseConfigurationFile(fileName, &s, nil)
	assert.Error(t, err, "syntax error")

	fileName = writeFile(t, "string.conf", `return "hello"`)
	err = configuration.ParseConfigurationFile(fileName, &s, nil)
	assert.Equal(t, fault.ConfigurationNotTable, err, "not a table")
}
