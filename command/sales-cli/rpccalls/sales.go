// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/rpc/sales"
	"github.com/bitmark-inc/salesd/salerecord"
)

// AddData - request data for listing a sale
type AddData struct {
	Caller   string
	Item     string
	Price    string // decimal
	Quantity uint64
}

// AddSale - perform an add request
func (client *Client) AddSale(addConfig *AddData) (*sales.AddReply, error) {

	price, err := salerecord.PriceFromString(addConfig.Price)
	if nil != err {
		return nil, err
	}

	addArgs := sales.AddArguments{
		Caller:   addConfig.Caller,
		Item:     addConfig.Item,
		Price:    price,
		Quantity: addConfig.Quantity,
	}

	client.printJson("Add Request", addArgs)

	var reply sales.AddReply
	err = client.client.Call("Sales.Add", addArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Add Reply", reply)

	return &reply, nil
}

// BuyData - request data for a purchase
type BuyData struct {
	Caller  string
	ID      uint64
	Deposit string // decimal
}

// Buy - perform a buy request
func (client *Client) Buy(buyConfig *BuyData) (*market.Receipt, error) {

	deposit, err := salerecord.PriceFromString(buyConfig.Deposit)
	if nil != err {
		return nil, err
	}

	buyArgs := sales.BuyArguments{
		Caller:  buyConfig.Caller,
		ID:      buyConfig.ID,
		Deposit: deposit,
	}

	client.printJson("Buy Request", buyArgs)

	var reply market.Receipt
	err = client.client.Call("Sales.Buy", buyArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Buy Reply", reply)

	return &reply, nil
}

// GetSale - fetch one sale, nil listing if absent
func (client *Client) GetSale(id uint64) (*sales.GetReply, error) {

	getArgs := sales.GetArguments{
		ID: id,
	}

	client.printJson("Get Request", getArgs)

	var reply sales.GetReply
	err := client.client.Call("Sales.Get", getArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return &reply, nil
}

// GetPrice - discounted price of a sale for an account
func (client *Client) GetPrice(id uint64, account string) (*sales.PriceReply, error) {

	priceArgs := sales.PriceArguments{
		ID:      id,
		Account: account,
	}

	client.printJson("Price Request", priceArgs)

	var reply sales.PriceReply
	err := client.client.Call("Sales.Price", priceArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Price Reply", reply)

	return &reply, nil
}

// GetDiscount - accumulated discount of an account
func (client *Client) GetDiscount(account string) (*sales.DiscountReply, error) {

	discountArgs := sales.DiscountArguments{
		Account: account,
	}

	client.printJson("Discount Request", discountArgs)

	var reply sales.DiscountReply
	err := client.client.Call("Sales.Discount", discountArgs, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Discount Reply", reply)

	return &reply, nil
}
