// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package versioned - the tagged slot stored under each sale key
//
// A slot is Varint64(version) followed by that version's record body,
// so the layout of any stored value can be found from its first bytes
// alone. Slot is a closed set: only the variants declared here
// implement it, and Upgrade maps every one of them to the current
// salerecord.Sale.
//
// Nothing is ever written back in an older version; see AsLatest.
package versioned
