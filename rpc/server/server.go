// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/mode"
	"github.com/bitmark-inc/salesd/rpc/admin"
	"github.com/bitmark-inc/salesd/rpc/sales"
	"github.com/bitmark-inc/salesd/storage"
)

// Create - an RPC server with the Sales service registered
func Create(log *logger.L, m *market.Market) *rpc.Server {
	server := rpc.NewServer()
	_ = server.Register(sales.New(log, mode.Is, m, storage.IsReadOnly()))
	return server
}

// CreateAdmin - an RPC server with the Admin service registered
//
// served on its own listener, never beside Sales
func CreateAdmin(log *logger.L, version string, m *market.Market) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()
	_ = server.Register(admin.New(log, m, mode.Set, mode.String, start, version, storage.IsReadOnly()))
	return server
}
