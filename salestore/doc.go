// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package salestore - the sales map as seen by business code
//
// a Store binds one storage call to the migrated state.  Callers see
// only current records: reads upgrade on the fly, writes always use the
// latest version and the legacy container is drained as a side effect.
package salestore
