// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runMigrate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(m.account)
	if nil != err {
		return err
	}

	client, err := connectAdmin(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Migrate(caller)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connectAdmin(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetStatus()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
