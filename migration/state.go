// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package migration

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/storage"
	"github.com/bitmark-inc/salesd/util"
)

// Layout - which top level layout the database holds
type Layout int

// possible layouts
const (
	LayoutNone = Layout(iota) // empty database
	LayoutV1                  // first release, must be migrated
	LayoutV2                  // current
)

func (l Layout) String() string {
	switch l {
	case LayoutNone:
		return "none"
	case LayoutV1:
		return "v1"
	case LayoutV2:
		return "v2"
	default:
		return "*unknown*"
	}
}

// key of the state blob in storage.Pool.State
var stateKey = []byte("state")

var stateV2Magic = []byte{0x00, 'S', 'A', 'L', 'E', 'S'}

const (
	stateV2Version     = 2
	stateV1Length      = 1 + 1 + 8
	maxAuthorityLength = 64
)

// first release layout
type stateV1 struct {
	sales      byte
	nextSaleID uint64
}

// State - the current top level layout
type State struct {
	Legacy     byte       `json:"legacy"`
	Current    byte       `json:"current"`
	Discount   byte       `json:"discount"`
	NextSaleID uint64     `json:"nextSaleId,string"`
	Live       uint64     `json:"live,string"`
	Allocation Allocation `json:"allocation"`
	Authority  string     `json:"authority"`

	legacy   *storage.PoolHandle
	current  *storage.PoolHandle
	discount *storage.PoolHandle
}

// LegacyPool - container of untouched first release records
func (state *State) LegacyPool() *storage.PoolHandle { return state.legacy }

// CurrentPool - container of versioned slots
func (state *State) CurrentPool() *storage.PoolHandle { return state.current }

// DiscountPool - per account purchase counters
func (state *State) DiscountPool() *storage.PoolHandle { return state.discount }

// resolve prefixes to pools, which must be distinct
func (state *State) resolve() error {
	if state.Legacy == state.Current || state.Legacy == state.Discount || state.Current == state.Discount {
		return fault.InvalidPrefix
	}
	var err error
	if state.legacy, err = storage.PoolByPrefix(state.Legacy); nil != err {
		return err
	}
	if state.current, err = storage.PoolByPrefix(state.Current); nil != err {
		return err
	}
	state.discount, err = storage.PoolByPrefix(state.Discount)
	return err
}

// detect the layout of a stored blob
func layoutOf(blob []byte) Layout {
	switch {
	case nil == blob:
		return LayoutNone
	case bytes.HasPrefix(blob, stateV2Magic):
		return LayoutV2
	default:
		return LayoutV1
	}
}

func packStateV1(old stateV1) []byte {
	buffer := util.AppendBytes(make([]byte, 0, stateV1Length), []byte{old.sales})
	return appendUint64(buffer, old.nextSaleID)
}

// the blob must be exactly the first release layout
func unpackStateV1(blob []byte) (stateV1, error) {
	if stateV1Length != len(blob) || 0x01 != blob[0] {
		return stateV1{}, fault.MalformedState
	}
	return stateV1{
		sales:      blob[1],
		nextSaleID: binary.BigEndian.Uint64(blob[2:]),
	}, nil
}

func (state *State) pack() []byte {
	buffer := make([]byte, 0, 64)
	buffer = append(buffer, stateV2Magic...)
	buffer = util.AppendVarint64(buffer, stateV2Version)
	buffer = append(buffer, state.Legacy, state.Current, state.Discount)
	buffer = appendUint64(buffer, state.NextSaleID)
	buffer = appendUint64(buffer, state.Live)
	buffer = append(buffer, byte(state.Allocation))
	return util.AppendBytes(buffer, []byte(state.Authority))
}

func unpackState(blob []byte) (*State, error) {
	if !bytes.HasPrefix(blob, stateV2Magic) {
		return nil, fault.MalformedState
	}
	n := len(stateV2Magic)

	version, count := util.FromVarint64(blob[n:])
	if 0 == count || stateV2Version != version {
		return nil, fault.MalformedState
	}
	n += count

	const fixed = 3 + 8 + 8 + 1
	if n+fixed > len(blob) {
		return nil, fault.MalformedState
	}
	state := &State{
		Legacy:     blob[n],
		Current:    blob[n+1],
		Discount:   blob[n+2],
		NextSaleID: binary.BigEndian.Uint64(blob[n+3:]),
		Live:       binary.BigEndian.Uint64(blob[n+11:]),
		Allocation: Allocation(blob[n+19]),
	}
	n += fixed

	if Monotonic != state.Allocation && Cardinality != state.Allocation {
		return nil, fault.MalformedState
	}

	authority, count := util.ReadBytes(blob[n:], 1, maxAuthorityLength)
	if 0 == count || n+count != len(blob) {
		return nil, fault.MalformedState
	}
	state.Authority = string(authority)

	if err := state.resolve(); nil != err {
		return nil, fault.MalformedState
	}
	return state, nil
}

// SaleKey - storage key of a sale id, big endian so keys sort by id
func SaleKey(id uint64) []byte {
	return appendUint64(make([]byte, 0, 8), id)
}

// SaleID - inverse of SaleKey
func SaleID(key []byte) (uint64, bool) {
	if 8 != len(key) {
		return 0, false
	}
	return binary.BigEndian.Uint64(key), true
}

func appendUint64(buffer []byte, value uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	return append(buffer, b[:]...)
}
