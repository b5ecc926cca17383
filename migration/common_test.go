// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/fixtures"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var lazyOptions = migration.Options{
	Authority:  fixtures.Authority,
	Allocation: migration.Monotonic,
	Strategy:   migration.Lazy,
}

func setup(t *testing.T) {
	err := storage.Initialise(filepath.Join(t.TempDir(), "migration.leveldb"), storage.ReadWrite)
	require.NoError(t, err, "storage initialise")
}

func teardown(t *testing.T) {
	storage.Finalise()
}

// first release records used by most tests
func legacySales() []*salerecord.SaleV1 {
	return []*salerecord.SaleV1{
		{Item: "bike", Price: salerecord.NewPrice(1000)},
		{Item: "lamp", Price: salerecord.NewPrice(25)},
		{Item: "piano", Price: salerecord.NewPrice(75000)},
		{Item: "kite", Price: salerecord.NewPrice(12)},
		{Item: "boat", Price: salerecord.NewPrice(990000)},
	}
}

func seed(t *testing.T, sales []*salerecord.SaleV1) {
	err := storage.Execute("seed", storage.Unlimited, func(trx storage.Transaction) error {
		_, err := migration.Seed(trx, sales)
		return err
	})
	require.NoError(t, err, "seed")
}

func migrate(caller string, options migration.Options, budget uint64) (*migration.State, error) {
	var state *migration.State
	err := storage.Execute("migrate", budget, func(trx storage.Transaction) error {
		var err error
		state, err = migration.Migrate(trx, caller, options)
		return err
	})
	return state, err
}

func countPool(t *testing.T, pool func(*migration.State) *storage.PoolHandle) int {
	n := 0
	err := storage.View("count", storage.Unlimited, func(trx storage.Transaction) error {
		state, err := migration.Load(trx)
		if nil != err {
			return err
		}
		n, err = trx.NewFetchCursor(pool(state)).Count()
		return err
	})
	require.NoError(t, err, "count")
	return n
}

func legacyCount(t *testing.T) int {
	return countPool(t, (*migration.State).LegacyPool)
}

func currentCount(t *testing.T) int {
	return countPool(t, (*migration.State).CurrentPool)
}

func rawState(t *testing.T) []byte {
	var blob []byte
	err := storage.View("raw", storage.Unlimited, func(trx storage.Transaction) error {
		blob = append([]byte{}, trx.Get(storage.Pool.State, []byte("state"))...)
		return nil
	})
	require.NoError(t, err)
	return blob
}
