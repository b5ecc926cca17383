// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring salesd services
//
// standard golang RPC services can be used on the client side to
// access these services.  Sales is also reachable through HTTPS POST
// to /salesd/rpc; Admin only through the admin listener, which
// defaults to loopback and can carry its own allow list
package rpc
