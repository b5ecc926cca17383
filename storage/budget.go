// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"math"

	"github.com/bitmark-inc/salesd/fault"
)

// charges for each storage access
const (
	ReadCost      = 200
	ReadByteCost  = 1
	WriteCost     = 5000
	WriteByteCost = 10
	DeleteCost    = 2500
	IterateCost   = 100
)

// charges for work outside storage access, see Transaction.Charge
const (
	UpgradeCost     = 300
	UpgradeByteCost = 2
)

// Unlimited - budget for operational views that run outside any call limit
const Unlimited = math.MaxUint64

// carried by panic to unwind a call, see run
type abort struct {
	err error
}

// meter - compute used by one call
type meter struct {
	limit uint64
	used  uint64
}

// charge - add cost, aborting the call if the limit would be passed
func (m *meter) charge(cost uint64) {
	if cost > math.MaxUint64-m.used || m.used+cost > m.limit {
		m.used = m.limit
		panic(abort{err: fault.BudgetExceeded})
	}
	m.used += cost
}

// chargeBytes - fixed cost plus a per byte cost, overflow checked
func (m *meter) chargeBytes(fixed uint64, perByte uint64, length int) {
	n := uint64(length)
	if 0 != n && perByte > (math.MaxUint64-fixed)/n {
		m.charge(math.MaxUint64)
	}
	m.charge(fixed + perByte*n)
}

func (m *meter) remaining() uint64 {
	return m.limit - m.used
}
