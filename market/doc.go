// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the sales operations offered to callers
//
// every exported method is a single storage call: it either commits
// all of its effects or none of them
package market
