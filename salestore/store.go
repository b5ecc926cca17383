// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salestore

import (
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
	"github.com/bitmark-inc/salesd/versioned"
)

// Store - migration aware access to the sales map for one call
type Store struct {
	trx   storage.Transaction
	state *migration.State
	view  bool
}

// Open - bind a mutating call to the stored state
func Open(trx storage.Transaction) (*Store, error) {
	return open(trx, false)
}

// OpenView - bind a read only call, legacy records are not moved
func OpenView(trx storage.Transaction) (*Store, error) {
	return open(trx, true)
}

func open(trx storage.Transaction, view bool) (*Store, error) {
	state, err := migration.Load(trx)
	if nil != err {
		return nil, err
	}
	return &Store{
		trx:   trx,
		state: state,
		view:  view,
	}, nil
}

// State - the state this store is bound to
func (s *Store) State() *migration.State {
	return s.state
}

// Get - the current form of a sale, nil if absent
func (s *Store) Get(id uint64) (*salerecord.Sale, error) {
	if s.view {
		return migration.Peek(s.trx, s.state, id)
	}
	return migration.ReadCurrent(s.trx, s.state, id)
}

// Put - store a sale as the latest version
func (s *Store) Put(id uint64, sale *salerecord.Sale) error {
	packed, err := versioned.Encode(versioned.AsLatest(sale))
	if nil != err {
		return err
	}

	key := migration.SaleKey(id)
	inCurrent := s.trx.Has(s.state.CurrentPool(), key)
	inLegacy := s.trx.Has(s.state.LegacyPool(), key)

	s.trx.Put(s.state.CurrentPool(), key, packed)
	if inLegacy {
		s.trx.Delete(s.state.LegacyPool(), key)
	}
	if !inCurrent && !inLegacy {
		s.state.Live += 1
		migration.Save(s.trx, s.state)
	}
	return nil
}

// Remove - delete a sale from both containers
//
// returns false if there was nothing to remove
func (s *Store) Remove(id uint64) bool {
	key := migration.SaleKey(id)
	existed := false

	if s.trx.Has(s.state.CurrentPool(), key) {
		s.trx.Delete(s.state.CurrentPool(), key)
		existed = true
	}
	if s.trx.Has(s.state.LegacyPool(), key) {
		s.trx.Delete(s.state.LegacyPool(), key)
		existed = true
	}
	if existed && s.state.Live > 0 {
		s.state.Live -= 1
		migration.Save(s.trx, s.state)
	}
	return existed
}

// NextID - allocate an identifier for a new sale
//
// monotonic allocation never hands out an id twice.  Cardinality
// allocation returns the live count, which can coincide with a sale
// still present after an earlier removal; that case is refused
func (s *Store) NextID() (uint64, error) {
	var id uint64

	switch s.state.Allocation {
	case migration.Cardinality:
		id = s.state.Live
	default:
		id = s.state.NextSaleID
	}

	if s.exists(id) {
		return 0, fault.IdentifierInUse
	}

	if id >= s.state.NextSaleID {
		s.state.NextSaleID = id + 1
		migration.Save(s.trx, s.state)
	}
	return id, nil
}

func (s *Store) exists(id uint64) bool {
	key := migration.SaleKey(id)
	return s.trx.Has(s.state.CurrentPool(), key) || s.trx.Has(s.state.LegacyPool(), key)
}
