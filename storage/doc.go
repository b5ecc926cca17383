// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.  A prefix
// is baked into every key already written, so once assigned it must
// never change or be reused for a different purpose.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. sale id      = big endian uint64 (8 bytes)
// 4. account      = utf-8 account name
// 5. *others*     = byte values of various length
//
// State:
//
//   C ++ "state"               - top level state blob
//                                data: layout dependent, see package migration
//
// Sales:
//
//   s ++ sale id               - sales written by the first release
//                                data: untagged V1 sale body
//                                after migration this is the legacy container
//   n ++ sale id               - current sales
//                                data: versioned slot (tag ++ body)
//
// Discounts:
//
//   d ++ account               - purchases made by an account
//                                data: count (big endian uint64, 8 bytes)
//
// Testing:
//   Z ++ key                   - testing data
//
// All changes are made inside a call (see Execute): a call reads its
// own pending writes, is charged for every access against a fixed
// budget and either commits as a single batch or leaves the database
// untouched.  Calls are serialized.
package storage
