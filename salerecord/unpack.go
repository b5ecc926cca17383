// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salerecord

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/util"
)

// UnpackV1 - decode a SaleV1 body, which must be consumed exactly
func UnpackV1(body Packed) (*SaleV1, error) {
	r := reader{buffer: body}
	item := r.text(minItemLength, maxItemLength)
	price := r.price()
	if !r.finished() {
		return nil, fault.MalformedRecord
	}
	return &SaleV1{
		Item:  item,
		Price: price,
	}, nil
}

// UnpackV2 - decode a SaleV2 body, which must be consumed exactly
func UnpackV2(body Packed) (*SaleV2, error) {
	r := reader{buffer: body}
	item := r.text(minItemLength, maxItemLength)
	price := r.price()
	sold := r.flag()
	if !r.finished() {
		return nil, fault.MalformedRecord
	}
	return &SaleV2{
		Item:  item,
		Price: price,
		Sold:  sold,
	}, nil
}

// UnpackV3 - decode a current Sale body, which must be consumed exactly
func UnpackV3(body Packed) (*Sale, error) {
	r := reader{buffer: body}
	seller := r.text(minSellerLength, maxSellerLength)
	item := r.text(minItemLength, maxItemLength)
	price := r.price()
	quantity := r.quantity()
	if !r.finished() {
		return nil, fault.MalformedRecord
	}
	return &Sale{
		Seller:   seller,
		Item:     item,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// positional field reader
//
// the first failure sets bad and every later read is a no-op
type reader struct {
	buffer []byte
	n      int
	bad    bool
}

func (r *reader) take(count int) []byte {
	if r.bad || r.n+count > len(r.buffer) {
		r.bad = true
		return nil
	}
	b := r.buffer[r.n : r.n+count]
	r.n += count
	return b
}

func (r *reader) text(minimum int, maximum int) string {
	if r.bad {
		return ""
	}
	b, count := util.ReadBytes(r.buffer[r.n:], minimum, maximum)
	if 0 == count || !utf8.Valid(b) {
		r.bad = true
		return ""
	}
	r.n += count
	return string(b)
}

func (r *reader) price() Price {
	b := r.take(PriceLength)
	if nil == b {
		return Price{}
	}
	p, _ := PriceFromBytes(b)
	return p
}

func (r *reader) flag() bool {
	b := r.take(1)
	if nil == b {
		return false
	}
	switch b[0] {
	case 0x00:
		return false
	case 0x01:
		return true
	default:
		r.bad = true
		return false
	}
}

func (r *reader) quantity() uint64 {
	b := r.take(quantityLength)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// finished - all fields decoded and nothing left over
func (r *reader) finished() bool {
	return !r.bad && r.n == len(r.buffer)
}
