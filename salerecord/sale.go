// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salerecord

import (
	"unicode/utf8"

	"github.com/bitmark-inc/salesd/fault"
)

// byte sizes for various fields
const (
	minItemLength   = 1
	maxItemLength   = 256
	minSellerLength = 1
	maxSellerLength = 64
	quantityLength  = 8
)

// Packed - a packed record body is just a byte slice
type Packed []byte

// SaleV1 - the first layout, written untagged by the initial release
type SaleV1 struct {
	Item  string `json:"item"`  // utf-8
	Price Price  `json:"price"` // decimal string
}

// SaleV2 - single unit layout
type SaleV2 struct {
	Item  string `json:"item"`  // utf-8
	Price Price  `json:"price"` // decimal string
	Sold  bool   `json:"sold"`
}

// Sale - the current layout, the only shape callers ever see
type Sale struct {
	Seller   string `json:"seller"`          // utf-8 account name
	Item     string `json:"item"`            // utf-8
	Price    Price  `json:"price"`           // decimal string
	Quantity uint64 `json:"quantity,string"` // units still available
}

// Listing - a sale together with its key, for external responses
type Listing struct {
	ID uint64 `json:"id,string"`
	Sale
}

// Remaining - true while at least one unit can still be bought
func (sale *Sale) Remaining() bool {
	return sale.Quantity > 0
}

func checkItem(item string) error {
	if len(item) < minItemLength || len(item) > maxItemLength || !utf8.ValidString(item) {
		return fault.InvalidItem
	}
	return nil
}

func checkSeller(seller string) error {
	if len(seller) < minSellerLength || len(seller) > maxSellerLength || !utf8.ValidString(seller) {
		return fault.InvalidSeller
	}
	return nil
}

func checkPrice(price Price) error {
	if !price.valid() {
		return fault.PriceOverflow
	}
	return nil
}
