// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/fixtures"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/storage"
)

func TestMigrateNoPriorState(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	assert.Equal(t, fault.NoPriorState, err)
	assert.Equal(t, []byte{}, rawState(t), "nothing written")
}

func TestMigrateRequiresAuthority(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())
	before := rawState(t)

	_, err := migrate("mallory.near", lazyOptions, storage.Unlimited)
	assert.Equal(t, fault.InvalidAuthority, err)

	_, err = migrate("", migration.Options{}, storage.Unlimited)
	assert.Equal(t, fault.InvalidAuthority, err, "no authority configured")

	assert.Equal(t, before, rawState(t))
}

func TestMigrateLazy(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())

	state, err := migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	require.NoError(t, err)

	assert.Equal(t, byte('s'), state.Legacy)
	assert.Equal(t, byte('n'), state.Current)
	assert.Equal(t, byte('d'), state.Discount)
	assert.Equal(t, uint64(5), state.NextSaleID, "counter carried over")
	assert.Equal(t, migration.Monotonic, state.Allocation)
	assert.Equal(t, fixtures.Authority, state.Authority)

	// nothing copied: legacy keeps every record, current starts empty
	assert.Equal(t, 5, legacyCount(t))
	assert.Equal(t, 0, currentCount(t))

	err = storage.View("load", storage.Unlimited, func(trx storage.Transaction) error {
		loaded, err := migration.Load(trx)
		require.NoError(t, err)
		assert.Equal(t, state, loaded)

		layout, err := migration.Detect(trx)
		assert.NoError(t, err)
		assert.Equal(t, migration.LayoutV2, layout)

		elements, err := trx.NewFetchCursor(loaded.DiscountPool()).Fetch(1)
		assert.NoError(t, err)
		assert.Empty(t, elements, "discount table starts empty")
		return nil
	})
	require.NoError(t, err)
}

func TestMigrateTwice(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())

	_, err := migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	require.NoError(t, err)
	before := rawState(t)

	_, err = migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	assert.Equal(t, fault.AlreadyMigrated, err)
	assert.Equal(t, before, rawState(t), "state unchanged")
	assert.Equal(t, 5, legacyCount(t))
}

func TestMigrateMalformedState(t *testing.T) {
	setup(t)
	defer teardown(t)

	blobs := [][]byte{
		{0x01, 's', 0x00},                               // short
		{0x02, 's', 's', 0, 0, 0, 0, 0, 0, 0},           // bad prefix length
		{0x01, 'q', 0, 0, 0, 0, 0, 0, 0, 0},             // unknown container
		{0x01, 'n', 0, 0, 0, 0, 0, 0, 0, 0},             // claims the current container
		{0x01, 's', 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x00}, // trailing bytes
	}

	for i, blob := range blobs {
		err := storage.Execute("corrupt", storage.Unlimited, func(trx storage.Transaction) error {
			trx.Put(storage.Pool.State, []byte("state"), blob)
			return nil
		})
		require.NoError(t, err)

		_, err = migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
		assert.Equal(t, fault.MalformedState, err, "%d", i)
		assert.Equal(t, blob, rawState(t), "%d: state unchanged", i)
	}
}

func TestMigrateFreshContainerInUse(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())
	err := storage.Execute("stray", storage.Unlimited, func(trx storage.Transaction) error {
		trx.Put(storage.Pool.Discount, []byte("someone"), []byte{0, 0, 0, 0, 0, 0, 0, 1})
		return nil
	})
	require.NoError(t, err)

	_, err = migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	assert.Equal(t, fault.ContainerInUse, err)
}

func TestMigrateCardinalityCountsLegacy(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())

	options := lazyOptions
	options.Allocation = migration.Cardinality
	state, err := migrate(fixtures.Authority, options, storage.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), state.Live)
	assert.Equal(t, migration.Cardinality, state.Allocation)
}

func TestMigrateEagerBudgetExceeded(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales())
	before := rawState(t)

	options := lazyOptions
	options.Strategy = migration.Eager
	_, err := migrate(fixtures.Authority, options, 3*storage.WriteCost)
	assert.Equal(t, fault.BudgetExceeded, err)

	assert.Equal(t, before, rawState(t), "still the first release layout")

	// lazy remains available
	_, err = migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	assert.NoError(t, err)
	assert.Equal(t, 5, legacyCount(t))
}

// eager migration gives each record exactly what lazy migration gives it
func TestMigrateEagerMatchesLazy(t *testing.T) {
	sales := legacySales()

	read := func(strategy migration.Strategy) map[uint64]*salerecord.Sale {
		setup(t)
		defer teardown(t)

		seed(t, sales)
		options := lazyOptions
		options.Strategy = strategy
		_, err := migrate(fixtures.Authority, options, storage.Unlimited)
		require.NoError(t, err)

		if migration.Eager == strategy {
			assert.Equal(t, 0, legacyCount(t), "eager empties legacy")
			assert.Equal(t, len(sales), currentCount(t))
		}

		result := make(map[uint64]*salerecord.Sale)
		err = storage.Execute("read-all", storage.Unlimited, func(trx storage.Transaction) error {
			state, err := migration.Load(trx)
			if nil != err {
				return err
			}
			for id := uint64(0); id < uint64(len(sales)); id += 1 {
				sale, err := migration.ReadCurrent(trx, state, id)
				if nil != err {
					return err
				}
				result[id] = sale
			}
			return nil
		})
		require.NoError(t, err)
		return result
	}

	lazy := read(migration.Lazy)
	eager := read(migration.Eager)

	assert.Equal(t, len(sales), len(lazy))
	assert.Equal(t, lazy, eager)
	for id, sale := range sales {
		assert.Equal(t, sale.Item, lazy[uint64(id)].Item)
		assert.True(t, sale.Price.Equal(lazy[uint64(id)].Price))
		assert.Equal(t, uint64(1), lazy[uint64(id)].Quantity)
		assert.Equal(t, fixtures.Authority, lazy[uint64(id)].Seller)
	}
}

func TestInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.Execute("initialise", storage.Unlimited, func(trx storage.Transaction) error {
		state, err := migration.Initialise(trx, lazyOptions)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), state.NextSaleID)
		assert.Equal(t, byte('s'), state.Legacy)

		_, err = migration.Initialise(trx, lazyOptions)
		assert.Equal(t, fault.AlreadyInitialised, err)
		return nil
	})
	require.NoError(t, err)

	_, err = migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	assert.Equal(t, fault.AlreadyMigrated, err)

	err = storage.Execute("seed", storage.Unlimited, func(trx storage.Transaction) error {
		_, err := migration.Seed(trx, legacySales())
		return err
	})
	assert.Equal(t, fault.AlreadyMigrated, err)
}

func TestLoadBeforeMigration(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.View("empty", storage.Unlimited, func(trx storage.Transaction) error {
		_, err := migration.Load(trx)
		assert.Equal(t, fault.NotInitialised, err)
		layout, err := migration.Detect(trx)
		assert.NoError(t, err)
		assert.Equal(t, migration.LayoutNone, layout)
		return nil
	})
	require.NoError(t, err)

	seed(t, legacySales())

	err = storage.View("v1", storage.Unlimited, func(trx storage.Transaction) error {
		_, err := migration.Load(trx)
		assert.Equal(t, fault.NotMigrated, err)
		layout, err := migration.Detect(trx)
		assert.NoError(t, err)
		assert.Equal(t, migration.LayoutV1, layout)
		return nil
	})
	require.NoError(t, err)
}

func TestSeedContinuesIds(t *testing.T) {
	setup(t)
	defer teardown(t)

	seed(t, legacySales()[:2])

	var first uint64
	err := storage.Execute("seed", storage.Unlimited, func(trx storage.Transaction) error {
		var err error
		first, err = migration.Seed(trx, legacySales()[2:])
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), first)

	state, err := migrate(fixtures.Authority, lazyOptions, storage.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), state.NextSaleID)
}

// legacy records written earlier in the same call are counted and moved
func TestSeedAndMigrateInOneCall(t *testing.T) {
	for i, item := range []struct {
		allocation migration.Allocation
		strategy   migration.Strategy
		live       uint64
		legacy     int
		current    int
	}{
		{migration.Cardinality, migration.Lazy, 5, 5, 0},
		{migration.Cardinality, migration.Eager, 5, 0, 5},
		{migration.Monotonic, migration.Eager, 0, 0, 5},
	} {
		setup(t)

		options := lazyOptions
		options.Allocation = item.allocation
		options.Strategy = item.strategy

		var state *migration.State
		err := storage.Execute("seed-and-migrate", storage.Unlimited, func(trx storage.Transaction) error {
			_, err := migration.Seed(trx, legacySales())
			if nil != err {
				return err
			}
			state, err = migration.Migrate(trx, fixtures.Authority, options)
			return err
		})
		require.NoError(t, err, "%d: seed and migrate", i)

		assert.Equal(t, item.live, state.Live, "%d: live", i)
		assert.Equal(t, uint64(5), state.NextSaleID, "%d: next id", i)
		assert.Equal(t, item.legacy, legacyCount(t), "%d: legacy", i)
		assert.Equal(t, item.current, currentCount(t), "%d: current", i)

		teardown(t)
	}
}
