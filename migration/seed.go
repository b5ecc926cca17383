// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
)

// Seed - append sales using the first release layout
//
// brings first release data into a database that has not been
// migrated yet; ids continue from the stored next sale id.
// returns the id given to the first sale
func Seed(trx storage.Transaction, sales []*salerecord.SaleV1) (uint64, error) {
	old := stateV1{
		sales: storage.Pool.Sales.Prefix(),
	}

	blob := trx.Get(storage.Pool.State, stateKey)
	switch layoutOf(blob) {
	case LayoutV2:
		return 0, fault.AlreadyMigrated
	case LayoutV1:
		var err error
		old, err = unpackStateV1(blob)
		if nil != err {
			return 0, err
		}
	}

	pool, err := storage.PoolByPrefix(old.sales)
	if nil != err {
		return 0, fault.MalformedState
	}

	first := old.nextSaleID
	for _, sale := range sales {
		body, err := sale.Pack()
		if nil != err {
			return 0, err
		}
		trx.Put(pool, SaleKey(old.nextSaleID), body)
		old.nextSaleID += 1
	}

	trx.Put(storage.Pool.State, stateKey, packStateV1(old))
	return first, nil
}
