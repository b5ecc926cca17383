// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/salesd/rpc/admin"
)

// Migrate - ask the daemon to convert the first release layout
func (client *Client) Migrate(caller string) (*admin.MigrateReply, error) {

	migrateArgs := admin.MigrateArguments{
		Caller: caller,
	}

	client.printJson("Migrate Request", migrateArgs)

	var reply admin.MigrateReply
	err := client.client.Call("Admin.Migrate", migrateArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Migrate Reply", reply)

	return &reply, nil
}

// GetStatus - daemon and store summary
func (client *Client) GetStatus() (*admin.StatusReply, error) {

	var reply admin.StatusReply
	err := client.client.Call("Admin.Status", admin.StatusArguments{}, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return &reply, nil
}
