// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	State    *PoolHandle `prefix:"C"`
	Sales    *PoolHandle `prefix:"s"`
	Current  *PoolHandle `prefix:"n"`
	Discount *PoolHandle `prefix:"d"`
	TestData *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	database *leveldb.DB
	readOnly bool
	prefixes map[byte]*PoolHandle
	log      *logger.L
}

// serializes every call
var callLock sync.Mutex

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.database {
		return fault.AlreadyInitialised
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	poolData.log = logger.New("storage")

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.database = db
	poolData.readOnly = readOnly

	// ensure no database downgrade
	if version > currentDBVersion {
		poolData.log.Criticalf("database version: 0x%x > current version: 0x%x", version, currentDBVersion)
		return fault.DatabaseVersionTooNew
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return err
		}
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	poolData.prefixes = make(map[byte]*PoolHandle)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if 0x00 == prefix {
			return fmt.Errorf("pool: %v uses the reserved prefix", fieldInfo)
		}
		if _, found := poolData.prefixes[prefix]; found {
			return fmt.Errorf("pool: %v duplicates prefix: %q", fieldInfo, prefixTag)
		}
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
			limit:  limit,
		}
		poolData.prefixes[prefix] = p
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	poolData.log.Infof("opened: %q  version: 0x%x  read only: %t", database, currentDBVersion, readOnly)

	ok = true // prevent db close
	return nil
}

func dbClose() {
	if nil != poolData.database {
		poolData.database.Close()
		poolData.database = nil
	}
}

// Finalise - close the database connection
//
// waits for any call in progress
func Finalise() {
	callLock.Lock()
	defer callLock.Unlock()

	poolData.Lock()
	defer poolData.Unlock()

	dbClose()
	Pool = pools{}
	poolData.prefixes = nil
	if nil != poolData.log {
		poolData.log.Info("closed")
		poolData.log.Flush()
	}
}

// IsReadOnly - true if opened read only
func IsReadOnly() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.readOnly
}

// PoolByPrefix - find the pool that owns a prefix recorded in persisted state
func PoolByPrefix(prefix byte) (*PoolHandle, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	p, ok := poolData.prefixes[prefix]
	if !ok {
		return nil, fault.InvalidPrefix
	}
	return p, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
