// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"strings"

	"github.com/bitmark-inc/salesd/fault"
)

// Allocation - how the next sale id is chosen
type Allocation byte

// allocation strategies, persisted as a single byte
const (
	Monotonic   = Allocation(0) // counter, ids are never reused
	Cardinality = Allocation(1) // number of live sales, ids are reused after removal
)

// Strategy - what the migration call does with legacy records
type Strategy int

// migration strategies
const (
	Lazy  = Strategy(iota) // leave legacy records to be moved on first touch
	Eager                  // move every legacy record inside the migration call
)

// Options - deployment choices fixed at migration time
type Options struct {
	Authority  string
	Allocation Allocation
	Strategy   Strategy
}

// AllocationFromString - parse a configuration value
func AllocationFromString(s string) (Allocation, error) {
	switch strings.ToLower(s) {
	case "", "monotonic":
		return Monotonic, nil
	case "cardinality":
		return Cardinality, nil
	default:
		return Monotonic, fault.InvalidAllocation
	}
}

func (a Allocation) String() string {
	switch a {
	case Monotonic:
		return "monotonic"
	case Cardinality:
		return "cardinality"
	default:
		return "*unknown*"
	}
}

// StrategyFromString - parse a configuration value
func StrategyFromString(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "lazy":
		return Lazy, nil
	case "eager":
		return Eager, nil
	default:
		return Lazy, fault.InvalidStrategy
	}
}

func (s Strategy) String() string {
	switch s {
	case Lazy:
		return "lazy"
	case Eager:
		return "eager"
	default:
		return "*unknown*"
	}
}
