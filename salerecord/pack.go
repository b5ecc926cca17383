// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salerecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/salesd/util"
)

// Pack - pack SaleV1 fields in order: item price
func (sale *SaleV1) Pack() (Packed, error) {
	if err := checkItem(sale.Item); nil != err {
		return nil, err
	}
	if err := checkPrice(sale.Price); nil != err {
		return nil, err
	}

	body := make([]byte, 0, 1+len(sale.Item)+PriceLength)
	body = util.AppendBytes(body, []byte(sale.Item))
	body = append(body, sale.Price.Bytes()...)
	return body, nil
}

// Pack - pack SaleV2 fields in order: item price sold
func (sale *SaleV2) Pack() (Packed, error) {
	if err := checkItem(sale.Item); nil != err {
		return nil, err
	}
	if err := checkPrice(sale.Price); nil != err {
		return nil, err
	}

	body := make([]byte, 0, 2+len(sale.Item)+PriceLength)
	body = util.AppendBytes(body, []byte(sale.Item))
	body = append(body, sale.Price.Bytes()...)
	if sale.Sold {
		body = append(body, 0x01)
	} else {
		body = append(body, 0x00)
	}
	return body, nil
}

// Pack - pack Sale fields in order: seller item price quantity
func (sale *Sale) Pack() (Packed, error) {
	if err := checkSeller(sale.Seller); nil != err {
		return nil, err
	}
	if err := checkItem(sale.Item); nil != err {
		return nil, err
	}
	if err := checkPrice(sale.Price); nil != err {
		return nil, err
	}

	body := make([]byte, 0, 2+len(sale.Seller)+len(sale.Item)+PriceLength+quantityLength)
	body = util.AppendBytes(body, []byte(sale.Seller))
	body = util.AppendBytes(body, []byte(sale.Item))
	body = append(body, sale.Price.Bytes()...)
	body = appendUint64(body, sale.Quantity)
	return body, nil
}

func appendUint64(buffer []byte, value uint64) []byte {
	var b [quantityLength]byte
	binary.BigEndian.PutUint64(b[:], value)
	return append(buffer, b[:]...)
}
