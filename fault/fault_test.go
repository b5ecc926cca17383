// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/salesd/fault"
)

var (
	ErrExistsOne       = fault.ExistsError("exists one ")
	ErrExistsTwo       = fault.ExistsError("exists two")
	ErrInvalidOne      = fault.InvalidError("invalid one")
	ErrLimitOne        = fault.LimitError("limit one")
	ErrNotFoundOne     = fault.NotFoundError("not found one")
	ErrPreconditionOne = fault.PreconditionError("precondition one")
	ErrProcessOne      = fault.ProcessError("process one")
	ErrRecordOne       = fault.RecordError("record one")
)

// test that errors can be classified
func TestClasses(t *testing.T) {
	errorList := []struct {
		err          error
		exists       bool
		invalid      bool
		limit        bool
		notFound     bool
		precondition bool
		process      bool
		record       bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false},
		{ErrLimitOne, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false},
		{ErrPreconditionOne, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, true},
		{fault.AlreadyMigrated, true, false, false, false, false, false, false},
		{fault.BudgetExceeded, false, false, true, false, false, false, false},
		{fault.RecordNotFound, false, false, false, true, false, false, false},
		{fault.NoPriorState, false, false, false, true, false, false, false},
		{fault.DepositMismatch, false, false, false, false, true, false, false},
		{fault.MalformedSlot, false, false, false, false, false, false, true},
		{fmt.Errorf("key 7: %w", fault.MalformedRecord), false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLimit(err) != e.limit {
			t.Errorf("%d: expected 'limit' == %v for err = %v", i, e.limit, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPrecondition(err) != e.precondition {
			t.Errorf("%d: expected 'precondition' == %v for err = %v", i, e.precondition, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}
