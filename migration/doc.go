// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package migration - top level state layouts and record upgrades
//
// The first release stored a single sales container and an untagged
// state blob:
//
//   state V1:  Varint64(1) ++ sales prefix ++ next sale id (8 bytes)
//
// The current layout splits that container in two.  The old one is
// kept, by prefix, as the legacy container; new and touched records
// live in a fresh current container as versioned slots, next to a
// fresh discount table:
//
//   state V2:  0x00 ++ "SALES" ++ Varint64(2) ++
//              legacy prefix ++ current prefix ++ discount prefix ++
//              next sale id (8 bytes) ++ live count (8 bytes) ++
//              allocation (1 byte) ++ Varint64(length) ++ authority
//
// A V1 blob always starts with 0x01 so the two cannot be confused.
//
// Migrate converts V1 to V2 once.  Afterwards ReadCurrent moves each
// legacy record into the current container the first time it is
// touched, so the legacy container only ever shrinks.
package migration
