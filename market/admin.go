// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/salestore"
	"github.com/bitmark-inc/salesd/storage"
)

// Status - operational summary of the store
type Status struct {
	Layout          string `json:"layout"`
	NextSaleID      uint64 `json:"nextSaleId,string"`
	Live            uint64 `json:"live,string"`
	LegacyRemaining int    `json:"legacyRemaining"`
	Allocation      string `json:"allocation"`
	Authority       string `json:"authority"`
}

// Migrate - convert a first release database to the current layout
func (m *Market) Migrate(caller string) (*migration.State, error) {
	var state *migration.State
	err := storage.Execute("migrate", m.budget, func(trx storage.Transaction) error {
		var err error
		state, err = migration.Migrate(trx, caller, m.options)
		return err
	})
	if nil != err {
		m.log.Errorf("migrate by: %q  strategy: %s  error: %s", caller, m.options.Strategy, err)
		return nil, err
	}

	m.log.Infof("migrated by: %q  strategy: %s  legacy: %q  current: %q  next id: %d",
		caller, m.options.Strategy, state.Legacy, state.Current, state.NextSaleID)
	migrations.WithLabelValues(m.options.Strategy.String()).Inc()
	return state, nil
}

// Status - summary of the stored state
//
// counting the legacy container is linear so this runs outside the
// call budget
func (m *Market) Status() (*Status, error) {
	status := &Status{}
	err := storage.View("status", storage.Unlimited, func(trx storage.Transaction) error {
		layout, err := migration.Detect(trx)
		if nil != err {
			return err
		}
		status.Layout = layout.String()
		if migration.LayoutV2 != layout {
			return nil
		}

		store, err := salestore.OpenView(trx)
		if nil != err {
			return err
		}
		state := store.State()
		status.NextSaleID = state.NextSaleID
		status.Live = state.Live
		status.Allocation = state.Allocation.String()
		status.Authority = state.Authority
		status.LegacyRemaining, err = store.LegacyRemaining()
		return err
	})
	if nil != err {
		return nil, err
	}
	legacyRemaining.Set(float64(status.LegacyRemaining))
	return status, nil
}

// LegacyRemaining - records still in the legacy container, zero before migration
func (m *Market) LegacyRemaining() (int, error) {
	n := 0
	err := storage.View("legacy", storage.Unlimited, func(trx storage.Transaction) error {
		layout, err := migration.Detect(trx)
		if nil != err || migration.LayoutV2 != layout {
			return err
		}
		store, err := salestore.OpenView(trx)
		if nil != err {
			return err
		}
		n, err = store.LegacyRemaining()
		return err
	})
	if nil != err {
		return 0, err
	}
	legacyRemaining.Set(float64(n))
	return n, nil
}

// Sweep - move up to limit legacy records in one call
func (m *Market) Sweep(limit int) (int, error) {
	moved := 0
	err := storage.Execute("sweep", m.budget, func(trx storage.Transaction) error {
		state, err := migration.Load(trx)
		if nil != err {
			return err
		}
		moved, err = migration.Retire(trx, state, limit)
		return err
	})
	if nil != err {
		return 0, err
	}
	swept.Add(float64(moved))
	return moved, nil
}

// SeedLegacy - load first release sales into an unmigrated database
//
// returns the id of the first seeded sale
func (m *Market) SeedLegacy(sales []*salerecord.SaleV1) (uint64, error) {
	first := uint64(0)
	err := storage.Execute("seed", storage.Unlimited, func(trx storage.Transaction) error {
		var err error
		first, err = migration.Seed(trx, sales)
		return err
	})
	if nil != err {
		m.log.Errorf("seed: %d sales  error: %s", len(sales), err)
		return 0, err
	}
	m.log.Infof("seeded: %d legacy sales from id: %d", len(sales), first)
	return first, nil
}
