// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/configuration"
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/rpc/listeners"
	"github.com/bitmark-inc/salesd/sweeper"
	"github.com/bitmark-inc/salesd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultSalesDatabase    = "sales.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "salesd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients   = 10
	defaultAdminClients = 2
	defaultAdminListen  = "127.0.0.1:2132"
	defaultCallBudget   = 10000000
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the LevelDB store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// MigrationType - how the first release layout is brought forward
type MigrationType struct {
	Strategy      string `gluamapper:"strategy" json:"strategy"`
	Allocation    string `gluamapper:"allocation" json:"allocation"`
	Budget        uint64 `gluamapper:"budget" json:"budget"`
	SweepInterval int    `gluamapper:"sweep_interval" json:"sweep_interval"` // seconds
	SweepBatch    int    `gluamapper:"sweep_batch" json:"sweep_batch"`
}

// Configuration - the decoded configuration file
type Configuration struct {
	DataDirectory string        `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string        `gluamapper:"pidfile" json:"pidfile"`
	Authority     string        `gluamapper:"authority" json:"authority"`
	Database      DatabaseType  `gluamapper:"database" json:"database"`
	Migration     MigrationType `gluamapper:"migration" json:"migration"`

	ClientRPC listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	AdminRPC  listeners.RPCConfiguration   `gluamapper:"admin_rpc" json:"admin_rpc"`
	HttpsRPC  listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging   logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	if !util.EnsureFileExists(configurationFileName) {
		return nil, fault.ConfigurationFileNotFound
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultSalesDatabase,
		},

		Migration: MigrationType{
			Strategy:      migration.Lazy.String(),
			Allocation:    migration.Monotonic.String(),
			Budget:        defaultCallBudget,
			SweepInterval: int(sweeper.DefaultInterval / time.Second),
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		AdminRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultAdminClients,
		},

		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if "" == options.Authority {
		return nil, fault.InvalidAuthority
	}
	if _, err := options.migrationOptions(); nil != err {
		return nil, err
	}

	// Admin.Migrate must stay reachable, loopback only unless configured
	if 0 == len(options.AdminRPC.Listen) {
		options.AdminRPC.Listen = []string{defaultAdminListen}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.InvalidPath
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.InvalidPath
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fault.InvalidFileName
		}
	}

	// done
	return options, nil
}

// the deployment options fixed at migration time
func (c *Configuration) migrationOptions() (migration.Options, error) {
	strategy, err := migration.StrategyFromString(c.Migration.Strategy)
	if nil != err {
		return migration.Options{}, err
	}
	allocation, err := migration.AllocationFromString(c.Migration.Allocation)
	if nil != err {
		return migration.Options{}, err
	}
	return migration.Options{
		Authority:  c.Authority,
		Allocation: allocation,
		Strategy:   strategy,
	}, nil
}

// background sweeper settings
func (c *Configuration) sweeperConfiguration() sweeper.Configuration {
	return sweeper.Configuration{
		Interval: time.Duration(c.Migration.SweepInterval) * time.Second,
		Batch:    c.Migration.SweepBatch,
	}
}
