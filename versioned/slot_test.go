// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package versioned_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/versioned"
)

var (
	bikeV1 = &salerecord.SaleV1{
		Item:  "bike",
		Price: salerecord.NewPrice(1000),
	}
	bikeV2Sold = &salerecord.SaleV2{
		Item:  "bike",
		Price: salerecord.NewPrice(1000),
		Sold:  true,
	}
	bikeV2Unsold = &salerecord.SaleV2{
		Item:  "bike",
		Price: salerecord.NewPrice(1000),
		Sold:  false,
	}
	bikeV3 = &salerecord.Sale{
		Seller:   "bob",
		Item:     "bike",
		Price:    salerecord.NewPrice(1000),
		Quantity: 5,
	}

	defaults = versioned.Defaults{Seller: "market.near"}
)

func TestEncodeDecode(t *testing.T) {
	slots := []versioned.Slot{
		versioned.SlotV1{Sale: bikeV1},
		versioned.SlotV2{Sale: bikeV2Sold},
		versioned.SlotV2{Sale: bikeV2Unsold},
		versioned.SlotV3{Sale: bikeV3},
	}

	for i, slot := range slots {
		packed, err := versioned.Encode(slot)
		require.NoError(t, err, "%d", i)

		assert.Equal(t, byte(slot.Version()), packed[0], "%d: tag must come first", i)
		assert.Equal(t, slot.Version(), packed.Version(), "%d: packed tag", i)

		decoded, err := versioned.Decode(packed)
		require.NoError(t, err, "%d", i)
		assert.Equal(t, slot, decoded, "%d", i)
		assert.Equal(t, versioned.TagOf(slot), versioned.TagOf(decoded), "%d", i)
	}
}

func TestDecodeErrors(t *testing.T) {
	v1, err := versioned.Encode(versioned.SlotV1{Sale: bikeV1})
	require.NoError(t, err)

	wrongTag := append(versioned.Packed{byte(versioned.V3)}, v1[1:]...)
	newer := append(versioned.Packed{byte(versioned.Latest + 1)}, v1[1:]...)

	tests := []struct {
		name   string
		packed versioned.Packed
		err    error
	}{
		{"empty", versioned.Packed{}, fault.MalformedSlot},
		{"null tag", append(versioned.Packed{0x00}, v1[1:]...), fault.MalformedSlot},
		{"truncated tag", versioned.Packed{0x80}, fault.MalformedSlot},
		{"body does not match tag", wrongTag, fault.MalformedSlot},
		{"truncated body", v1[:len(v1)-2], fault.MalformedSlot},
		{"newer version", newer, fault.SlotVersionTooNew},
		{"far newer version", versioned.Packed{0xff, 0x7f}, fault.SlotVersionTooNew},
	}

	for _, item := range tests {
		slot, err := versioned.Decode(item.packed)
		assert.Nil(t, slot, item.name)
		assert.Equal(t, item.err, err, item.name)
	}

	assert.Equal(t, versioned.Null, versioned.Packed{}.Version(), "empty tag")
}

func TestEncodeInvalidRecord(t *testing.T) {
	_, err := versioned.Encode(versioned.AsLatest(&salerecord.Sale{Item: "bike", Quantity: 1}))
	assert.Equal(t, fault.InvalidSeller, err)
}
