// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
)

// Transaction - the store as seen by a single call
//
// reads see the call's own pending writes; nothing reaches the
// database until the call returns without error
//
// an exhausted budget or a write inside a view unwinds the call
// immediately, so the methods have no error returns
type Transaction interface {
	ID() string
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	NewFetchCursor(*PoolHandle) *FetchCursor
	Charge(uint64)
	Remaining() uint64
}

// the operations shared by *leveldb.DB and *leveldb.Snapshot
type reader interface {
	Get([]byte, *opt.ReadOptions) ([]byte, error)
	Has([]byte, *opt.ReadOptions) (bool, error)
	NewIterator(*ldb_util.Range, *opt.ReadOptions) iterator.Iterator
}

type transaction struct {
	id     string
	name   string
	source reader
	batch  *leveldb.Batch // nil for a view
	cache  Cache
	meter  meter
	log    *logger.L
}

// Execute - run f as one atomic call
//
// the call commits as a single batch if f returns nil; on error, on
// budget exhaustion or on any abort every change is discarded
func Execute(name string, budget uint64, f func(Transaction) error) error {
	callLock.Lock()
	defer callLock.Unlock()

	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return fault.DatabaseIsNotSet
	}
	if poolData.readOnly {
		return fault.NotAvailableInReadOnly
	}

	trx := &transaction{
		id:     uuid.New().String(),
		name:   name,
		source: poolData.database,
		batch:  new(leveldb.Batch),
		cache:  newCache(),
		meter:  meter{limit: budget},
		log:    poolData.log,
	}
	start := time.Now()

	err := trx.run(f)
	if nil == err {
		err = poolData.database.Write(trx.batch, nil)
	}
	trx.finish(start, err)
	return err
}

// View - run f against a consistent snapshot, writes are refused
func View(name string, budget uint64, f func(Transaction) error) error {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return fault.DatabaseIsNotSet
	}

	snapshot, err := poolData.database.GetSnapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	trx := &transaction{
		id:     uuid.New().String(),
		name:   name,
		source: snapshot,
		cache:  newCache(),
		meter:  meter{limit: budget},
		log:    poolData.log,
	}
	start := time.Now()

	err = trx.run(f)
	trx.finish(start, err)
	return err
}

// run f, converting an abort into the error it carries
func (t *transaction) run(f func(Transaction) error) (err error) {
	defer func() {
		if r := recover(); nil != r {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = a.err
		}
	}()
	return f(t)
}

func (t *transaction) finish(start time.Time, err error) {
	outcome := "commit"
	switch {
	case nil == t.batch && nil == err:
		outcome = "view"
	case nil != err:
		outcome = "abort"
	}

	callCounter.WithLabelValues(t.name, outcome).Inc()
	budgetHistogram.WithLabelValues(t.name).Observe(float64(t.meter.used))

	if nil != err {
		t.log.Warnf("call: %s  id: %s  aborted: %s  used: %d", t.name, t.id, err, t.meter.used)
	} else {
		t.log.Debugf("call: %s  id: %s  %s: %d writes  used: %d  time: %s", t.name, t.id, outcome, t.cache.Count(), t.meter.used, time.Since(start))
	}
	t.cache.Clear()
}

// ID - unique identifier of this call, for log correlation
func (t *transaction) ID() string {
	return t.id
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	t.meter.charge(ReadCost)

	prefixedKey := p.prefixKey(key)
	value, state := t.cache.Get(string(prefixedKey))
	switch state {
	case cachedPut:
		return value
	case cachedDelete:
		return nil
	}

	value, err := t.source.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	t.meter.chargeBytes(0, ReadByteCost, len(value))
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key exists
func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	t.meter.charge(ReadCost)

	prefixedKey := p.prefixKey(key)
	_, state := t.cache.Get(string(prefixedKey))
	switch state {
	case cachedPut:
		return true
	case cachedDelete:
		return false
	}

	found, err := t.source.Has(prefixedKey, nil)
	logger.PanicIfError("transaction.Has", err)
	return found
}

// Put - store a key/value bytes pair
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.writable()
	t.meter.chargeBytes(WriteCost, WriteByteCost, len(key)+len(value))

	prefixedKey := p.prefixKey(key)
	stored := make([]byte, len(value))
	copy(stored, value)

	t.batch.Put(prefixedKey, stored)
	t.cache.Set(dbPut, string(prefixedKey), stored)
}

// PutN - store a uint64 as an 8 byte big endian value
func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(p, key, buffer)
}

// Delete - remove a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.writable()
	t.meter.charge(DeleteCost)

	prefixedKey := p.prefixKey(key)
	t.batch.Delete(prefixedKey)
	t.cache.Set(dbDelete, string(prefixedKey), nil)
}

// NewFetchCursor - cursor over a pool including this call's pending writes
func (t *transaction) NewFetchCursor(p *PoolHandle) *FetchCursor {
	return newFetchCursor(p, t.source, t.cache, &t.meter)
}

// Charge - explicit compute cost for work outside storage access
func (t *transaction) Charge(cost uint64) {
	t.meter.charge(cost)
}

// Remaining - budget left to this call
func (t *transaction) Remaining() uint64 {
	return t.meter.remaining()
}

func (t *transaction) writable() {
	if nil == t.batch {
		panic(abort{err: fault.WriteInView})
	}
}
