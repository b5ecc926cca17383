// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package salestore

// Discount - purchases counted for an account, zero if none
func (s *Store) Discount(account string) uint64 {
	n, found := s.trx.GetN(s.state.DiscountPool(), []byte(account))
	if !found {
		return 0
	}
	return n
}

// SetDiscount - replace the counter of an account
func (s *Store) SetDiscount(account string, n uint64) {
	s.trx.PutN(s.state.DiscountPool(), []byte(account), n)
}

// LegacyRemaining - records not yet moved out of the legacy container
//
// this walks the whole container so run it in a view with an
// unlimited budget
func (s *Store) LegacyRemaining() (int, error) {
	return s.trx.NewFetchCursor(s.state.LegacyPool()).Count()
}
