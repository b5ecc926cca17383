// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	source   reader
	pending  Cache
	meter    *meter
	maxRange util.Range
}

func newFetchCursor(p *PoolHandle, source reader, pending Cache, m *meter) *FetchCursor {
	return &FetchCursor{
		pool:    p,
		source:  source,
		pending: pending,
		meter:   m,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements and advance the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.iterate(func(key []byte, value []byte) bool {
		results = append(results, Element{
			Key:   key,
			Value: value,
		})
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// the smallest key greater than the last one returned
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	var err error
	iterErr := cursor.iterate(func(key []byte, value []byte) bool {
		err = f(key, value)
		return nil == err
	})
	if nil == err {
		err = iterErr
	}
	return err
}

// Count - number of elements remaining in the range
func (cursor *FetchCursor) Count() (int, error) {
	n := 0
	err := cursor.iterate(func(key []byte, value []byte) bool {
		n += 1
		return true
	})
	return n, err
}

// iterate calls f with copies of each key (prefix removed) and value
// until f returns false
//
// the call's pending writes are merged over the committed contents: a
// pending put replaces or adds a key and a pending delete hides it.
// Writes made by f while iterating are not seen by this pass.
func (cursor *FetchCursor) iterate(f func(key []byte, value []byte) bool) error {
	pending := cursor.pending.Pending(cursor.maxRange.Start, cursor.maxRange.Limit)

	iter := cursor.source.NewIterator(&cursor.maxRange, nil)
	defer iter.Release()

	more := iter.Next()
	for more || 0 != len(pending) {
		var key, value []byte

		if more && (0 == len(pending) || bytes.Compare(iter.Key(), pending[0].key) < 0) {
			// contents of the returned slice must not be modified, and are
			// only valid until the next call to Next
			key = copyBytes(iter.Key())
			value = copyBytes(iter.Value())
			more = iter.Next()
		} else {
			p := pending[0]
			pending = pending[1:]
			if more && bytes.Equal(iter.Key(), p.key) {
				more = iter.Next()
			}
			if p.deleted {
				continue
			}
			key = p.key
			value = copyBytes(p.value)
		}

		cursor.meter.charge(IterateCost)

		if !f(key[1:], value) { // strip the prefix
			break
		}
	}
	err := iter.Error()
	if nil != err {
		logger.Criticalf("cursor on pool: %s  error: %s", cursor.pool.name, err)
	}
	return err
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
