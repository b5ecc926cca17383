// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"

	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the call in progress
type Cache interface {
	Get(string) ([]byte, cacheState)
	Set(int, string, []byte)
	Pending(start []byte, limit []byte) []pendingWrite
	Count() int
	Clear()
}

const (
	dbPut = iota
	dbDelete
)

// result of a cache lookup
type cacheState int

const (
	notCached = cacheState(iota) // fall through to the database
	cachedPut                    // value written by this call
	cachedDelete                 // deleted by this call
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

// one pending write, deleted marks a removal of a committed key
type pendingWrite struct {
	key     []byte
	value   []byte
	deleted bool
}

// entries must live exactly as long as the call, so never expire
func newCache() Cache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *dbCache) Get(key string) ([]byte, cacheState) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, notCached
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, cachedDelete
	}
	return data.value, cachedPut
}

func (c *dbCache) Set(op int, key string, value []byte) {
	c.cache.Set(key, cacheData{
		op:    op,
		value: value,
	}, cache.NoExpiration)
}

// Pending - writes with start <= key < limit in key order, nil limit is unbounded
func (c *dbCache) Pending(start []byte, limit []byte) []pendingWrite {
	items := c.cache.Items()
	if 0 == len(items) {
		return nil
	}

	pending := make([]pendingWrite, 0, len(items))
	for k, item := range items {
		key := []byte(k)
		if bytes.Compare(key, start) < 0 || (nil != limit && bytes.Compare(key, limit) >= 0) {
			continue
		}
		data := item.Object.(cacheData)
		pending = append(pending, pendingWrite{
			key:     key,
			value:   data.value,
			deleted: dbDelete == data.op,
		})
	}
	sort.Slice(pending, func(i, j int) bool {
		return bytes.Compare(pending[i].key, pending[j].key) < 0
	})
	return pending
}

func (c *dbCache) Count() int {
	return c.cache.ItemCount()
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
