// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package versioned

import (
	"github.com/bitmark-inc/salesd/salerecord"
)

// DefaultQuantity - units available for a record that predates quantities
const DefaultQuantity = 1

// Defaults - values for fields absent from older versions
//
// Seller is fixed in the store state at migration time so every older
// record upgrades to the same owner for the life of the store
type Defaults struct {
	Seller string
}

// Upgrade - convert any variant to the current record
//
// the conversions are:
//   V1 → quantity 1, seller from defaults
//   V2 → quantity 0 when sold otherwise 1, seller from defaults
//   V3 → unchanged copy
func Upgrade(slot Slot, defaults Defaults) *salerecord.Sale {
	switch s := slot.(type) {
	case SlotV1:
		return &salerecord.Sale{
			Seller:   defaults.Seller,
			Item:     s.Sale.Item,
			Price:    s.Sale.Price,
			Quantity: DefaultQuantity,
		}

	case SlotV2:
		quantity := uint64(DefaultQuantity)
		if s.Sale.Sold {
			quantity = 0
		}
		return &salerecord.Sale{
			Seller:   defaults.Seller,
			Item:     s.Sale.Item,
			Price:    s.Sale.Price,
			Quantity: quantity,
		}

	case SlotV3:
		sale := *s.Sale
		return &sale
	}

	// unreachable: Slot cannot be implemented outside this package
	panic("versioned: unknown slot variant")
}
