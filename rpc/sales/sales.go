// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sales

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/mode"
	"github.com/bitmark-inc/salesd/rpc/ratelimit"
	"github.com/bitmark-inc/salesd/salerecord"
)

const (
	rateLimitSales = 200
	rateBurstSales = 100
)

// Market - the operations behind the sales service
type Market interface {
	AddSale(caller string, item string, price salerecord.Price, quantity uint64) (uint64, error)
	Buy(caller string, id uint64, deposit salerecord.Price) (*market.Receipt, error)
	GetSale(id uint64) (*salerecord.Listing, error)
	GetPrice(id uint64, account string) (salerecord.Price, error)
	GetDiscount(account string) (uint64, error)
}

// Sales - type for RPC
type Sales struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Market       Market
	ReadOnly     bool
}

// New - create the sales service
func New(log *logger.L,
	isNormalMode func(mode.Mode) bool,
	m Market,
	readOnly bool,
) *Sales {
	return &Sales{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitSales, rateBurstSales),
		IsNormalMode: isNormalMode,
		Market:       m,
		ReadOnly:     readOnly,
	}
}

// list a sale
// -----------

// AddArguments - arguments for RPC
type AddArguments struct {
	Caller   string           `json:"caller"`
	Item     string           `json:"item"`
	Price    salerecord.Price `json:"price"`
	Quantity uint64           `json:"quantity,string"`
}

// AddReply - result of listing a sale
type AddReply struct {
	ID uint64 `json:"id,string"`
}

// Add - list a new sale owned by the caller
func (sales *Sales) Add(arguments *AddArguments, reply *AddReply) error {
	if err := sales.mutable(); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Caller {
		return fault.MissingParameters
	}

	sales.Log.Infof("Sales.Add: %+v", arguments)

	id, err := sales.Market.AddSale(arguments.Caller, arguments.Item, arguments.Price, arguments.Quantity)
	if nil != err {
		return err
	}
	reply.ID = id
	return nil
}

// buy one unit
// ------------

// BuyArguments - arguments for RPC
type BuyArguments struct {
	Caller  string           `json:"caller"`
	ID      uint64           `json:"id,string"`
	Deposit salerecord.Price `json:"deposit"`
}

// Buy - purchase one unit of a sale
func (sales *Sales) Buy(arguments *BuyArguments, reply *market.Receipt) error {
	if err := sales.mutable(); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Caller {
		return fault.MissingParameters
	}

	sales.Log.Infof("Sales.Buy: %+v", arguments)

	receipt, err := sales.Market.Buy(arguments.Caller, arguments.ID, arguments.Deposit)
	if nil != err {
		return err
	}
	*reply = *receipt
	return nil
}

// queries
// -------

// GetArguments - arguments for RPC
type GetArguments struct {
	ID uint64 `json:"id,string"`
}

// GetReply - a sale, absent if the id is unknown
type GetReply struct {
	Sale *salerecord.Listing `json:"sale"`
}

// Get - fetch a sale in its current form
func (sales *Sales) Get(arguments *GetArguments, reply *GetReply) error {
	if err := sales.query(); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	listing, err := sales.Market.GetSale(arguments.ID)
	if nil != err {
		return err
	}
	reply.Sale = listing
	return nil
}

// PriceArguments - arguments for RPC
type PriceArguments struct {
	ID      uint64 `json:"id,string"`
	Account string `json:"account"`
}

// PriceReply - the deposit needed by an account
type PriceReply struct {
	Price salerecord.Price `json:"price"`
}

// Price - the discounted price of a sale for an account
func (sales *Sales) Price(arguments *PriceArguments, reply *PriceReply) error {
	if err := sales.query(); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Account {
		return fault.MissingParameters
	}

	price, err := sales.Market.GetPrice(arguments.ID, arguments.Account)
	if nil != err {
		return err
	}
	reply.Price = price
	return nil
}

// DiscountArguments - arguments for RPC
type DiscountArguments struct {
	Account string `json:"account"`
}

// DiscountReply - the discount percentage of an account
type DiscountReply struct {
	Discount uint64 `json:"discount,string"`
}

// Discount - the accumulated discount of an account
func (sales *Sales) Discount(arguments *DiscountArguments, reply *DiscountReply) error {
	if err := sales.query(); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Account {
		return fault.MissingParameters
	}

	discount, err := sales.Market.GetDiscount(arguments.Account)
	if nil != err {
		return err
	}
	reply.Discount = discount
	return nil
}

func (sales *Sales) mutable() error {
	if err := ratelimit.Limit(sales.Limiter); nil != err {
		return err
	}
	if sales.ReadOnly {
		return fault.NotAvailableInReadOnly
	}
	if !sales.IsNormalMode(mode.Normal) {
		return fault.NotMigrated
	}
	return nil
}

func (sales *Sales) query() error {
	if err := ratelimit.Limit(sales.Limiter); nil != err {
		return err
	}
	if !sales.IsNormalMode(mode.Normal) {
		return fault.NotMigrated
	}
	return nil
}
