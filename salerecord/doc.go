// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package salerecord - sale records and their binary layouts
//
// Every schema version of a sale has its own positional layout:
//
//   V1:  item price
//   V2:  item price sold
//   V3:  seller item price quantity
//
// where strings are Varint64(length) followed by UTF-8 bytes, the
// price is 16 bytes big endian, sold is a single 0x00/0x01 byte and
// quantity is 8 bytes big endian.
//
// Only the bodies are handled here; the version tag that precedes a
// body in storage belongs to the versioned package.
//
// Integers wider than 53 bits are carried as decimal strings in JSON.
package salerecord
