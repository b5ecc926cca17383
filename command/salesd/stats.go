// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/mode"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// memory use reporter, run as a background process
type memstats struct {
	log   *logger.L
	delay time.Duration
}

func newMemstats() *memstats {
	return &memstats{
		log:   logger.New("memory"),
		delay: statsDelay,
	}
}

// Run - log memory use until shutdown
func (s *memstats) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *memstats) report() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.log.Debugf("heap objects: %d  gc cycles: %d  pause total: %s",
		m.HeapObjects, m.NumGC, time.Duration(m.PauseTotalNs))
	s.log.Infof("mode: %s  allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d",
		mode.String(), m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega, runtime.NumGoroutine())
}
