// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/prometheus/client_golang/prometheus"
)

// counters only move after a call has committed
var (
	salesAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "sales_added_total",
		Help:      "Sales listed",
	})

	purchases = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "purchases_total",
		Help:      "Units bought",
	})

	salesClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "sales_closed_total",
		Help:      "Sales removed after the last unit was bought",
	})

	migrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "migrations_total",
		Help:      "Successful layout migrations by strategy",
	}, []string{"strategy"})

	swept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "swept_total",
		Help:      "Legacy records moved by the background sweeper",
	})

	// refusals, counted even though the call aborts
	allocationStalls = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "allocation_stalls_total",
		Help:      "Sales refused because the derived identifier was held by a live sale",
	})

	legacyRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "salesd",
		Subsystem: "market",
		Name:      "legacy_remaining",
		Help:      "Records not yet moved out of the legacy container",
	})
)

func init() {
	prometheus.MustRegister(salesAdded, purchases, salesClosed, migrations, swept, allocationStalls, legacyRemaining)
}
