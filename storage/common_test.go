// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/salesd/fixtures"
	"github.com/bitmark-inc/salesd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// configure for testing
func setup(t *testing.T) string {
	database := filepath.Join(t.TempDir(), "test.leveldb")
	err := storage.Initialise(database, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return database
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// load some elements into the test pool
func loadElements(t *testing.T, input []stringElement) {
	err := storage.Execute("load", storage.Unlimited, func(trx storage.Transaction) error {
		for _, e := range input {
			trx.Put(storage.Pool.TestData, []byte(e.key), []byte(e.value))
		}
		return nil
	})
	if nil != err {
		t.Fatalf("load error: %s", err)
	}
}

// data for various test routines, in key order
var sortedElements = []stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
}
