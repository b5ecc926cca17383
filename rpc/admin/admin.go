// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package admin

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/mode"
	"github.com/bitmark-inc/salesd/rpc/ratelimit"
)

const (
	rateLimitAdmin = 10
	rateBurstAdmin = 5
)

// Administrator - the operations behind the admin service
type Administrator interface {
	Migrate(caller string) (*migration.State, error)
	Status() (*market.Status, error)
}

// Admin - type for RPC
type Admin struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Admin    Administrator
	SetMode  func(mode.Mode)
	Mode     func() string
	Start    time.Time
	Version  string
	ReadOnly bool
}

// New - create the admin service
func New(log *logger.L,
	administrator Administrator,
	setMode func(mode.Mode),
	currentMode func() string,
	start time.Time,
	version string,
	readOnly bool,
) *Admin {
	return &Admin{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitAdmin, rateBurstAdmin),
		Admin:    administrator,
		SetMode:  setMode,
		Mode:     currentMode,
		Start:    start,
		Version:  version,
		ReadOnly: readOnly,
	}
}

// migrate the stored layout
// -------------------------

// MigrateArguments - arguments for RPC
type MigrateArguments struct {
	Caller string `json:"caller"`
}

// MigrateReply - the state written by the migration
type MigrateReply struct {
	State *migration.State `json:"state"`
}

// Migrate - convert the first release layout, authority only
func (admin *Admin) Migrate(arguments *MigrateArguments, reply *MigrateReply) error {
	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}
	if admin.ReadOnly {
		return fault.NotAvailableInReadOnly
	}
	if nil == arguments || "" == arguments.Caller {
		return fault.MissingParameters
	}

	admin.Log.Infof("Admin.Migrate: %+v", arguments)

	state, err := admin.Admin.Migrate(arguments.Caller)
	if nil != err {
		return err
	}

	admin.SetMode(mode.Normal)
	reply.State = state
	return nil
}

// daemon status
// -------------

// StatusArguments - arguments for RPC
type StatusArguments struct{}

// StatusReply - daemon and store summary
type StatusReply struct {
	Mode    string         `json:"mode"`
	Version string         `json:"version"`
	Uptime  string         `json:"uptime"`
	Store   *market.Status `json:"store"`
}

// Status - daemon and store summary
func (admin *Admin) Status(_ *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}

	status, err := admin.Admin.Status()
	if nil != err {
		return err
	}

	reply.Mode = admin.Mode()
	reply.Version = admin.Version
	reply.Uptime = time.Since(admin.Start).String()
	reply.Store = status
	return nil
}
