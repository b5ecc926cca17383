// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the Varint64 form of value to buffer
//
// seven bits per byte, least significant group first, with the high
// bit set on every byte except the last; the ninth byte carries a
// full eight bits so no value needs more than Varint64MaximumBytes
func AppendVarint64(buffer []byte, value uint64) []byte {
	for n := 1; n < Varint64MaximumBytes; n += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// FromVarint64 - decode a Varint64 from the start of buffer
//
// returns the value and the number of bytes consumed
// or 0, 0 if the buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		if i == Varint64MaximumBytes-1 {
			return value | uint64(b)<<(7*uint(i)), i + 1
		}
		value |= uint64(b&0x7f) << (7 * uint(i))
		if 0 == b&0x80 {
			return value, i + 1
		}
	}
	return 0, 0
}

// ClippedVarint64 - decode a Varint64 that must lie in minimum..maximum
//
// returns 0, 0 on truncation or if the value is out of range
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}
	value, count := FromVarint64(buffer)
	if 0 == count || value > uint64(maximum) || value < uint64(minimum) {
		return 0, 0
	}
	return int(value), count
}

// AppendBytes - append a Varint64 length followed by the data
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// ReadBytes - read length prefixed data whose length lies in minimum..maximum
//
// returns the data (sharing the buffer) and the total bytes consumed
// or nil, 0 on any inconsistency
func ReadBytes(buffer []byte, minimum int, maximum int) ([]byte, int) {
	length, n := ClippedVarint64(buffer, minimum, maximum)
	if 0 == n || n+length > len(buffer) {
		return nil, 0
	}
	return buffer[n : n+length], n + length
}
