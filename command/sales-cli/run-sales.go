// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/salesd/command/sales-cli/rpccalls"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(m.account)
	if nil != err {
		return err
	}
	item, err := checkRequired("item", c.String("item"))
	if nil != err {
		return err
	}
	price, err := checkRequired("price", c.String("price"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "seller: %s\n", caller)
		fmt.Fprintf(m.e, "item: %q\n", item)
		fmt.Fprintf(m.e, "price: %s\n", price)
		fmt.Fprintf(m.e, "quantity: %d\n", c.Uint64("quantity"))
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.AddSale(&rpccalls.AddData{
		Caller:   caller,
		Item:     item,
		Price:    price,
		Quantity: c.Uint64("quantity"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(m.account)
	if nil != err {
		return err
	}
	if !c.IsSet("id") {
		return fmt.Errorf("sale id is required")
	}
	id := c.Uint64("id")

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	// pay exactly the current price unless told otherwise
	deposit := c.String("deposit")
	if "" == deposit {
		price, err := client.GetPrice(id, caller)
		if nil != err {
			return err
		}
		deposit = price.Price.String()
	}

	if m.verbose {
		fmt.Fprintf(m.e, "buyer: %s\n", caller)
		fmt.Fprintf(m.e, "id: %d\n", id)
		fmt.Fprintf(m.e, "deposit: %s\n", deposit)
	}

	response, err := client.Buy(&rpccalls.BuyData{
		Caller:  caller,
		ID:      id,
		Deposit: deposit,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.IsSet("id") {
		return fmt.Errorf("sale id is required")
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetSale(c.Uint64("id"))
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runPrice(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(m.account)
	if nil != err {
		return err
	}
	if !c.IsSet("id") {
		return fmt.Errorf("sale id is required")
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetPrice(c.Uint64("id"), caller)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDiscount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(m.account)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetDiscount(caller)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
