// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salerecord

import (
	"encoding/json"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/salesd/fault"
)

// PriceLength - bytes in the binary form of a price
const PriceLength = 16

const maxPriceBits = 8 * PriceLength

// Price - an exact unsigned integer of at most 128 bits
//
// JSON form is a decimal string so no client rounds it through a float
type Price struct {
	value uint256.Int
}

// NewPrice - price from a native integer
func NewPrice(n uint64) Price {
	p := Price{}
	p.value.SetUint64(n)
	return p
}

// PriceFromString - parse a decimal price
func PriceFromString(s string) (Price, error) {
	p := Price{}
	if "" == s {
		return p, fault.InvalidPrice
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return p, fault.InvalidPrice
		}
	}
	if err := p.value.SetFromDecimal(s); nil != err {
		return p, fault.PriceOverflow
	}
	if p.value.BitLen() > maxPriceBits {
		return Price{}, fault.PriceOverflow
	}
	return p, nil
}

// PriceFromBytes - decode the 16 byte big endian form
func PriceFromBytes(buffer []byte) (Price, error) {
	p := Price{}
	if PriceLength != len(buffer) {
		return p, fault.MalformedRecord
	}
	p.value.SetBytes(buffer)
	return p, nil
}

// Bytes - 16 byte big endian form
func (p Price) Bytes() []byte {
	b32 := p.value.Bytes32()
	return b32[32-PriceLength:]
}

// String - decimal form
func (p Price) String() string {
	return p.value.Dec()
}

// IsZero - true for a zero price
func (p Price) IsZero() bool {
	return p.value.IsZero()
}

// Equal - exact comparison
func (p Price) Equal(q Price) bool {
	return p.value.Eq(&q.value)
}

// Percent - price × percent / 100, truncated
//
// cannot overflow: a 128 bit price times a percentage fits in 256 bits
func (p Price) Percent(percent uint64) Price {
	result := Price{}
	result.value.Mul(&p.value, uint256.NewInt(percent))
	result.value.Div(&result.value, uint256.NewInt(100))
	return result
}

// valid - the price fits the binary layout
func (p Price) valid() bool {
	return p.value.BitLen() <= maxPriceBits
}

// MarshalJSON - convert price to a JSON decimal string
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value.Dec())
}

// UnmarshalJSON - convert a JSON decimal string to a price
//
// bare JSON numbers are rejected
func (p *Price) UnmarshalJSON(s []byte) error {
	var text string
	if err := json.Unmarshal(s, &text); nil != err {
		return fault.InvalidPrice
	}
	price, err := PriceFromString(text)
	if nil != err {
		return err
	}
	*p = price
	return nil
}
