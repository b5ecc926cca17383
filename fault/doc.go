// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// The classes map onto how a failed call is reported:
//   RecordError       - persisted bytes are corrupt, never defaulted
//   PreconditionError - caller visible failure, the call is rolled back
//   NotFoundError     - empty result on reads, failure on mutations
//   LimitError        - the call ran out of budget or was throttled
package fault
