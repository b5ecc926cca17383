// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	callCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesd",
		Subsystem: "storage",
		Name:      "calls_total",
		Help:      "Calls run against the store by name and outcome (commit, abort, view)",
	}, []string{"call", "outcome"})

	budgetHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salesd",
		Subsystem: "storage",
		Name:      "budget_used",
		Help:      "Compute budget consumed per call",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
	}, []string{"call"})
)

func init() {
	prometheus.MustRegister(callCounter, budgetHistogram)
}
