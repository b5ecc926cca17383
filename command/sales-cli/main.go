// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect      string
	adminConnect string
	fingerprint  string
	account      string
	verbose      bool
	e            io.Writer
	w            io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "sales-cli"
	app.Usage = "client for the salesd sales store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " salesd `HOST:PORT`",
			EnvVar: "SALESD_CONNECT",
		},
		cli.StringFlag{
			Name:   "admin-connect, A",
			Value:  "127.0.0.1:2132",
			Usage:  " salesd admin `HOST:PORT` for migrate and status",
			EnvVar: "SALESD_ADMIN_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " pin the server certificate SHA3-256 `HEX`",
			EnvVar: "SALESD_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "account, a",
			Value:  "",
			Usage:  " calling account `NAME`",
			EnvVar: "SALESD_ACCOUNT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "add",
			Usage:     "list a new sale owned by the calling account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "item, i",
					Value: "",
					Usage: "*item description `STRING`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "*unit price `DECIMAL`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 1,
					Usage: " units for sale `COUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "buy",
			Usage:     "buy one unit of a sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, n",
					Usage: "*sale `ID`",
				},
				cli.StringFlag{
					Name:  "deposit, d",
					Value: "",
					Usage: " attached deposit `DECIMAL` [default: current discounted price]",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "get",
			Usage:     "show a sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, n",
					Usage: "*sale `ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "price",
			Usage:     "price of a sale after the calling account's discount",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, n",
					Usage: "*sale `ID`",
				},
			},
			Action: runPrice,
		},
		{
			Name:   "discount",
			Usage:  "discount accumulated by the calling account",
			Action: runDiscount,
		},
		{
			Name:   "migrate",
			Usage:  "convert a first release store, calling account must be the authority",
			Action: runMigrate,
		},
		{
			Name:   "status",
			Usage:  "daemon and store status",
			Action: runStatus,
		},
		{
			Name:  "version",
			Usage: "display sales-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:      c.GlobalString("connect"),
			adminConnect: c.GlobalString("admin-connect"),
			fingerprint:  c.GlobalString("fingerprint"),
			account:      c.GlobalString("account"),
			verbose:      c.GlobalBool("verbose"),
			e:            c.App.ErrWriter,
			w:            c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
