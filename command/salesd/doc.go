// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// salesd - sales store daemon
//
// serves the sales store over JSON-RPC and HTTPS.  A database written
// by the first release is detected at start up and the daemon waits
// for the deploying authority to call Admin.Migrate on the admin
// listener (loopback by default); an empty database is initialised
// directly in the current layout.
//
// see salesd.conf.sample for the configuration file format
package main
