// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/migration"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/salestore"
	"github.com/bitmark-inc/salesd/storage"
)

// MaxDiscount - highest percentage an account can accumulate
const MaxDiscount = 20

// Market - handle for the sales operations
type Market struct {
	log     *logger.L
	budget  uint64
	options migration.Options
}

// Receipt - result of a successful purchase
type Receipt struct {
	ID        uint64           `json:"id,string"`
	Seller    string           `json:"seller"`
	Item      string           `json:"item"`
	Paid      salerecord.Price `json:"paid"`
	Remaining uint64           `json:"remaining,string"`
	Discount  uint64           `json:"discount,string"`
}

// New - create a market whose calls run with the given budget
func New(budget uint64, options migration.Options) *Market {
	return &Market{
		log:     logger.New("market"),
		budget:  budget,
		options: options,
	}
}

// Options - the deployment options in use
func (m *Market) Options() migration.Options {
	return m.options
}

// Start - examine the stored layout, creating a fresh state in an empty database
func (m *Market) Start() (migration.Layout, error) {
	layout := migration.LayoutNone
	err := storage.View("detect", m.budget, func(trx storage.Transaction) error {
		var err error
		layout, err = migration.Detect(trx)
		return err
	})
	if nil != err {
		return layout, err
	}
	if migration.LayoutNone != layout {
		m.log.Infof("stored layout: %s", layout)
		return layout, nil
	}

	err = storage.Execute("initialise", m.budget, func(trx storage.Transaction) error {
		_, err := migration.Initialise(trx, m.options)
		return err
	})
	if nil != err {
		return layout, err
	}
	m.log.Infof("initialised empty database for: %q", m.options.Authority)
	return migration.LayoutV2, nil
}

// AddSale - list a new sale owned by the caller
func (m *Market) AddSale(caller string, item string, price salerecord.Price, quantity uint64) (uint64, error) {
	if 0 == quantity {
		return 0, fault.InvalidQuantity
	}

	var id uint64
	err := storage.Execute("add", m.budget, func(trx storage.Transaction) error {
		store, err := salestore.Open(trx)
		if nil != err {
			return err
		}
		id, err = store.NextID()
		if fault.IdentifierInUse == err {
			allocationStalls.Inc()
			m.log.Warnf("%s: sale creation stalled: derived id: %d is held by a live sale until removals bring the live count to a free id", trx.ID(), store.State().Live)
		}
		if nil != err {
			return err
		}
		err = store.Put(id, &salerecord.Sale{
			Seller:   caller,
			Item:     item,
			Price:    price,
			Quantity: quantity,
		})
		if nil != err {
			return err
		}
		m.log.Debugf("%s: add id: %d  seller: %q  item: %q  price: %s  quantity: %d", trx.ID(), id, caller, item, price, quantity)
		return nil
	})
	if nil != err {
		m.log.Warnf("add sale for: %q  error: %s", caller, err)
		return 0, err
	}

	salesAdded.Inc()
	return id, nil
}

// Buy - purchase one unit of a sale
//
// the deposit must equal the price after the buyer's discount.  The
// buyer's discount then grows by one up to MaxDiscount
func (m *Market) Buy(caller string, id uint64, deposit salerecord.Price) (*Receipt, error) {
	var receipt *Receipt
	err := storage.Execute("buy", m.budget, func(trx storage.Transaction) error {
		store, err := salestore.Open(trx)
		if nil != err {
			return err
		}
		sale, err := store.Get(id)
		if nil != err {
			return err
		}
		if nil == sale {
			return fault.RecordNotFound
		}
		if !sale.Remaining() {
			return fault.SaleAlreadySold
		}

		discount := store.Discount(caller)
		price := discounted(sale.Price, discount)
		if !price.Equal(deposit) {
			return fault.DepositMismatch
		}

		sale.Quantity -= 1
		if 0 == sale.Quantity {
			store.Remove(id)
		} else if err := store.Put(id, sale); nil != err {
			return err
		}

		if discount < MaxDiscount {
			discount += 1
			store.SetDiscount(caller, discount)
		}

		receipt = &Receipt{
			ID:        id,
			Seller:    sale.Seller,
			Item:      sale.Item,
			Paid:      price,
			Remaining: sale.Quantity,
			Discount:  discount,
		}
		m.log.Debugf("%s: buy id: %d  buyer: %q  paid: %s  remaining: %d", trx.ID(), id, caller, price, sale.Quantity)
		return nil
	})
	if nil != err {
		m.log.Warnf("buy id: %d for: %q  error: %s", id, caller, err)
		return nil, err
	}

	purchases.Inc()
	if 0 == receipt.Remaining {
		salesClosed.Inc()
	}
	return receipt, nil
}

// GetSale - a sale in its current form, nil if there is none
func (m *Market) GetSale(id uint64) (*salerecord.Listing, error) {
	var listing *salerecord.Listing
	err := storage.View("get", m.budget, func(trx storage.Transaction) error {
		store, err := salestore.OpenView(trx)
		if nil != err {
			return err
		}
		sale, err := store.Get(id)
		if nil != err || nil == sale {
			return err
		}
		listing = &salerecord.Listing{
			ID:   id,
			Sale: *sale,
		}
		return nil
	})
	return listing, err
}

// GetPrice - the deposit an account must make to buy a sale
func (m *Market) GetPrice(id uint64, account string) (salerecord.Price, error) {
	var price salerecord.Price
	err := storage.View("price", m.budget, func(trx storage.Transaction) error {
		store, err := salestore.OpenView(trx)
		if nil != err {
			return err
		}
		sale, err := store.Get(id)
		if nil != err {
			return err
		}
		if nil == sale {
			return fault.RecordNotFound
		}
		price = discounted(sale.Price, store.Discount(account))
		return nil
	})
	return price, err
}

// GetDiscount - the discount percentage of an account
func (m *Market) GetDiscount(account string) (uint64, error) {
	var discount uint64
	err := storage.View("discount", m.budget, func(trx storage.Transaction) error {
		store, err := salestore.OpenView(trx)
		if nil != err {
			return err
		}
		discount = store.Discount(account)
		return nil
	})
	return discount, err
}

func discounted(price salerecord.Price, discount uint64) salerecord.Price {
	if discount > MaxDiscount {
		discount = MaxDiscount
	}
	return price.Percent(100 - discount)
}
