// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/salesd/command/sales-cli/rpccalls"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	return dial(m, m.connect)
}

// Admin is only served on the admin listener
func connectAdmin(m *metadata) (*rpccalls.Client, error) {
	return dial(m, m.adminConnect)
}

func dial(m *metadata, address string) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", address)
	}
	return rpccalls.NewClient(address, m.fingerprint, m.verbose, m.e)
}

func checkAccount(account string) (string, error) {
	return checkRequired("account", account)
}

func checkRequired(name string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}
