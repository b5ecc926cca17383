// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
	"github.com/bitmark-inc/salesd/util"
	"github.com/bitmark-inc/salesd/versioned"
)

// Defaults - values given to fields missing from older records
func (state *State) Defaults() versioned.Defaults {
	return versioned.Defaults{
		Seller: state.Authority,
	}
}

// ReadCurrent - fetch a sale in its current shape
//
// the current container is searched first, then the legacy one.  A
// legacy hit is moved: written to the current container as a V1 slot
// and deleted from legacy in the same call.  The caller must write the
// record back with the latest version if it changes anything.
//
// returns nil, nil if the sale does not exist
func ReadCurrent(trx storage.Transaction, state *State, id uint64) (*salerecord.Sale, error) {
	return read(trx, state, id, true)
}

// Peek - as ReadCurrent but never writes, for views
func Peek(trx storage.Transaction, state *State, id uint64) (*salerecord.Sale, error) {
	return read(trx, state, id, false)
}

func read(trx storage.Transaction, state *State, id uint64, move bool) (*salerecord.Sale, error) {
	key := SaleKey(id)

	if packed := trx.Get(state.current, key); nil != packed {
		slot, err := versioned.Decode(packed)
		if nil != err {
			return nil, err
		}
		return upgrade(trx, state, slot, len(packed)), nil
	}

	body := trx.Get(state.legacy, key)
	if nil == body {
		return nil, nil
	}
	sale, err := salerecord.UnpackV1(body)
	if nil != err {
		return nil, err
	}
	slot := versioned.SlotV1{Sale: sale}

	if move {
		if err := moveSlot(trx, state, key, slot); nil != err {
			return nil, err
		}
	}

	return upgrade(trx, state, slot, len(body)), nil
}

// convert to the current shape, charging for any conversion
func upgrade(trx storage.Transaction, state *State, slot versioned.Slot, size int) *salerecord.Sale {
	if versioned.Latest != versioned.TagOf(slot) {
		trx.Charge(storage.UpgradeCost + storage.UpgradeByteCost*uint64(size))
	}
	return versioned.Upgrade(slot, state.Defaults())
}

// Retire - move at most limit legacy records in key order
//
// stops early rather than exhaust the call's budget, so a partial
// batch still commits.  Returns the number moved.
func Retire(trx storage.Transaction, state *State, limit int) (int, error) {
	elements, err := trx.NewFetchCursor(state.legacy).Fetch(limit)
	if nil != err {
		return 0, err
	}
	for i, e := range elements {
		if _, ok := SaleID(e.Key); !ok {
			return 0, fault.MalformedRecord
		}
		if trx.Remaining() < moveCost(e.Key, e.Value) {
			return i, nil
		}

		// a record already written back supersedes the legacy copy
		if trx.Has(state.current, e.Key) {
			trx.Delete(state.legacy, e.Key)
			continue
		}

		sale, err := salerecord.UnpackV1(e.Value)
		if nil != err {
			return 0, err
		}
		if err := moveSlot(trx, state, e.Key, versioned.SlotV1{Sale: sale}); nil != err {
			return 0, err
		}
	}
	return len(elements), nil
}

// upper bound of the charges for moving one legacy record
func moveCost(key []byte, value []byte) uint64 {
	size := uint64(len(key) + len(value) + util.Varint64MaximumBytes)
	return storage.ReadCost + storage.WriteCost + storage.WriteByteCost*size + storage.DeleteCost
}

func moveSlot(trx storage.Transaction, state *State, key []byte, slot versioned.Slot) error {
	packed, err := versioned.Encode(slot)
	if nil != err {
		return err
	}
	trx.Put(state.current, key, packed)
	trx.Delete(state.legacy, key)
	return nil
}
