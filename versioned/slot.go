// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package versioned

import (
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/util"
)

// Version - schema version of a stored sale
type Version uint64

// enumerate the schema versions
// this is encoded as a Varint64 at the start of "Packed"
const (
	// null marks an unreadable tag - not a valid version
	Null = Version(iota)

	V1 = Version(iota) // item price
	V2 = Version(iota) // item price sold
	V3 = Version(iota) // seller item price quantity

	// the newest version this code can read and the only one it writes
	Latest = V3
)

// Packed - a tagged slot as stored
type Packed []byte

// Slot - one of SlotV1, SlotV2, SlotV3
type Slot interface {
	Version() Version
	body() (salerecord.Packed, error)
}

// SlotV1 - slot holding the first layout
type SlotV1 struct{ Sale *salerecord.SaleV1 }

// SlotV2 - slot holding the single unit layout
type SlotV2 struct{ Sale *salerecord.SaleV2 }

// SlotV3 - slot holding the current layout
type SlotV3 struct{ Sale *salerecord.Sale }

func (SlotV1) Version() Version { return V1 }
func (SlotV2) Version() Version { return V2 }
func (SlotV3) Version() Version { return V3 }

func (s SlotV1) body() (salerecord.Packed, error) { return s.Sale.Pack() }
func (s SlotV2) body() (salerecord.Packed, error) { return s.Sale.Pack() }
func (s SlotV3) body() (salerecord.Packed, error) { return s.Sale.Pack() }

// AsLatest - wrap a current record as the newest variant
func AsLatest(sale *salerecord.Sale) Slot {
	return SlotV3{Sale: sale}
}

// Version - the tag of a stored slot, without decoding the body
//
// returns Null if the tag is unreadable
func (packed Packed) Version() Version {
	v, n := util.FromVarint64(packed)
	if 0 == n {
		return Null
	}
	return Version(v)
}

// TagOf - the version of a decoded slot
func TagOf(slot Slot) Version {
	return slot.Version()
}

// Encode - tag followed by body
func Encode(slot Slot) (Packed, error) {
	body, err := slot.body()
	if nil != err {
		return nil, err
	}
	buffer := make([]byte, 0, util.Varint64MaximumBytes+len(body))
	buffer = util.AppendVarint64(buffer, uint64(slot.Version()))
	return append(buffer, body...), nil
}

// Decode - select the layout from the tag and unpack the body
//
// a tag beyond Latest means the store was written by newer code and is
// reported separately from an unknown or damaged slot
func Decode(packed Packed) (Slot, error) {
	v, n := util.FromVarint64(packed)
	if 0 == n {
		return nil, fault.MalformedSlot
	}
	body := salerecord.Packed(packed[n:])

	switch Version(v) {
	case V1:
		sale, err := salerecord.UnpackV1(body)
		if nil != err {
			return nil, fault.MalformedSlot
		}
		return SlotV1{Sale: sale}, nil

	case V2:
		sale, err := salerecord.UnpackV2(body)
		if nil != err {
			return nil, fault.MalformedSlot
		}
		return SlotV2{Sale: sale}, nil

	case V3:
		sale, err := salerecord.UnpackV3(body)
		if nil != err {
			return nil, fault.MalformedSlot
		}
		return SlotV3{Sale: sale}, nil

	case Null:
		return nil, fault.MalformedSlot

	default:
		if Version(v) > Latest {
			return nil, fault.SlotVersionTooNew
		}
		return nil, fault.MalformedSlot
	}
}
