// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"unicode/utf8"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
	"github.com/bitmark-inc/salesd/versioned"
)

// Detect - the layout currently stored
//
// a blob that matches neither layout is reported as fault.MalformedState
func Detect(trx storage.Transaction) (Layout, error) {
	blob := trx.Get(storage.Pool.State, stateKey)
	layout := layoutOf(blob)
	switch layout {
	case LayoutV1:
		if _, err := unpackStateV1(blob); nil != err {
			return layout, err
		}
	case LayoutV2:
		if _, err := unpackState(blob); nil != err {
			return layout, err
		}
	}
	return layout, nil
}

// Load - read the current state
func Load(trx storage.Transaction) (*State, error) {
	blob := trx.Get(storage.Pool.State, stateKey)
	switch layoutOf(blob) {
	case LayoutNone:
		return nil, fault.NotInitialised
	case LayoutV1:
		return nil, fault.NotMigrated
	default:
		return unpackState(blob)
	}
}

// Save - write back a state changed by a call
func Save(trx storage.Transaction, state *State) {
	trx.Put(storage.Pool.State, stateKey, state.pack())
}

// Initialise - create the current layout in an empty database
func Initialise(trx storage.Transaction, options Options) (*State, error) {
	if err := checkAuthority(options.Authority); nil != err {
		return nil, err
	}
	if nil != trx.Get(storage.Pool.State, stateKey) {
		return nil, fault.AlreadyInitialised
	}

	state := &State{
		Legacy:     storage.Pool.Sales.Prefix(),
		Current:    storage.Pool.Current.Prefix(),
		Discount:   storage.Pool.Discount.Prefix(),
		Allocation: options.Allocation,
		Authority:  options.Authority,
	}
	if err := state.resolve(); nil != err {
		return nil, err
	}
	Save(trx, state)
	return state, nil
}

// Migrate - reinterpret a first release state as the current layout
//
// only the deploying authority may call this and only once: an empty
// database gives fault.NoPriorState and a migrated one
// fault.AlreadyMigrated, in both cases without writing anything
//
// the old sales container is not copied, it is recorded as the legacy
// container; the current and discount containers start empty.  With
// the Eager strategy every legacy record is also moved, which costs
// budget in proportion to the number of records: if the call runs out
// the whole migration is rolled back and Lazy remains available
func Migrate(trx storage.Transaction, caller string, options Options) (*State, error) {
	if err := checkAuthority(options.Authority); nil != err {
		return nil, err
	}
	if caller != options.Authority {
		return nil, fault.InvalidAuthority
	}

	blob := trx.Get(storage.Pool.State, stateKey)
	switch layoutOf(blob) {
	case LayoutNone:
		return nil, fault.NoPriorState
	case LayoutV2:
		return nil, fault.AlreadyMigrated
	}

	old, err := unpackStateV1(blob)
	if nil != err {
		return nil, err
	}

	state := &State{
		Legacy:     old.sales,
		Current:    storage.Pool.Current.Prefix(),
		Discount:   storage.Pool.Discount.Prefix(),
		NextSaleID: old.nextSaleID,
		Allocation: options.Allocation,
		Authority:  options.Authority,
	}
	if err := state.resolve(); nil != err {
		return nil, fault.MalformedState
	}

	for _, p := range []*storage.PoolHandle{state.current, state.discount} {
		elements, err := trx.NewFetchCursor(p).Fetch(1)
		if nil != err {
			return nil, err
		}
		if 0 != len(elements) {
			return nil, fault.ContainerInUse
		}
	}

	if Cardinality == state.Allocation {
		n, err := trx.NewFetchCursor(state.legacy).Count()
		if nil != err {
			return nil, err
		}
		state.Live = uint64(n)
	}

	if Eager == options.Strategy {
		if err := moveAll(trx, state); nil != err {
			return nil, err
		}
	}

	Save(trx, state)
	return state, nil
}

// move every legacy record to the current container as the latest version
func moveAll(trx storage.Transaction, state *State) error {
	return trx.NewFetchCursor(state.legacy).Map(func(key []byte, value []byte) error {
		if _, ok := SaleID(key); !ok {
			return fault.MalformedRecord
		}
		sale, err := salerecord.UnpackV1(value)
		if nil != err {
			return err
		}
		upgraded := upgrade(trx, state, versioned.SlotV1{Sale: sale}, len(value))
		packed, err := versioned.Encode(versioned.AsLatest(upgraded))
		if nil != err {
			return err
		}
		trx.Put(state.current, key, packed)
		trx.Delete(state.legacy, key)
		return nil
	})
}

func checkAuthority(authority string) error {
	if 0 == len(authority) || len(authority) > maxAuthorityLength || !utf8.ValidString(authority) {
		return fault.InvalidAuthority
	}
	return nil
}
