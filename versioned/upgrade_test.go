// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package versioned_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/versioned"
)

func TestUpgradeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		slot     versioned.Slot
		expected *salerecord.Sale
	}{
		{
			name: "v1 gets one unit and the store seller",
			slot: versioned.SlotV1{Sale: bikeV1},
			expected: &salerecord.Sale{
				Seller:   "market.near",
				Item:     "bike",
				Price:    salerecord.NewPrice(1000),
				Quantity: 1,
			},
		},
		{
			name: "sold v2 has nothing left",
			slot: versioned.SlotV2{Sale: bikeV2Sold},
			expected: &salerecord.Sale{
				Seller:   "market.near",
				Item:     "bike",
				Price:    salerecord.NewPrice(1000),
				Quantity: 0,
			},
		},
		{
			name: "unsold v2 has one unit",
			slot: versioned.SlotV2{Sale: bikeV2Unsold},
			expected: &salerecord.Sale{
				Seller:   "market.near",
				Item:     "bike",
				Price:    salerecord.NewPrice(1000),
				Quantity: 1,
			},
		},
		{
			name:     "v3 is unchanged",
			slot:     versioned.SlotV3{Sale: bikeV3},
			expected: bikeV3,
		},
	}

	for _, item := range tests {
		assert.Equal(t, item.expected, versioned.Upgrade(item.slot, defaults), item.name)
	}
}

// upgrading an already current record changes nothing
func TestUpgradeIdempotent(t *testing.T) {
	slots := []versioned.Slot{
		versioned.SlotV1{Sale: bikeV1},
		versioned.SlotV2{Sale: bikeV2Sold},
		versioned.SlotV3{Sale: bikeV3},
	}

	for i, slot := range slots {
		once := versioned.Upgrade(slot, defaults)
		twice := versioned.Upgrade(versioned.AsLatest(once), defaults)
		assert.Equal(t, once, twice, "%d", i)

		// must also survive a storage round trip
		packed, err := versioned.Encode(versioned.AsLatest(once))
		require.NoError(t, err, "%d", i)
		decoded, err := versioned.Decode(packed)
		require.NoError(t, err, "%d", i)
		assert.Equal(t, versioned.Latest, decoded.Version(), "%d", i)
		assert.Equal(t, once, versioned.Upgrade(decoded, defaults), "%d", i)
	}
}

// the copy returned for a current slot must not alias the stored record
func TestUpgradeCopies(t *testing.T) {
	sale := &salerecord.Sale{Seller: "bob", Item: "bike", Price: salerecord.NewPrice(1), Quantity: 3}
	upgraded := versioned.Upgrade(versioned.SlotV3{Sale: sale}, defaults)
	upgraded.Quantity = 2
	assert.Equal(t, uint64(3), sale.Quantity)
}
