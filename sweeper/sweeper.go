// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sweeper - drains the legacy container in the background
//
// lazy migration alone only moves records that are touched.  The
// sweeper reports how many remain and, if a batch size is configured,
// moves that many per interval in separate bounded calls.
package sweeper

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/mode"
)

// default timing
const (
	DefaultInterval = 30 * time.Second
	minimumInterval = 10 * time.Millisecond
)

// Legacy - the operations the sweeper drives
type Legacy interface {
	LegacyRemaining() (int, error)
	Sweep(limit int) (int, error)
}

// Configuration - sweeper settings
type Configuration struct {
	Interval time.Duration
	Batch    int // zero disables moving, the count is still reported
}

// Sweeper - background process draining the legacy container
type Sweeper struct {
	log      *logger.L
	legacy   Legacy
	interval time.Duration
	batch    int
	drained  bool
}

// New - create the background process
func New(legacy Legacy, configuration Configuration) *Sweeper {
	interval := configuration.Interval
	if interval < minimumInterval {
		interval = DefaultInterval
	}
	batch := configuration.Batch
	if batch < 0 {
		batch = 0
	}
	return &Sweeper{
		log:      logger.New("sweeper"),
		legacy:   legacy,
		interval: interval,
		batch:    batch,
	}
}

// Run - background process loop
func (s *Sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("starting…  interval: %s  batch: %d", s.interval, s.batch)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-timer.C:
			s.process()
			timer.Reset(s.interval)
		}
	}

	s.log.Info("shutting down…")
	s.log.Flush()
}

// one pass: only runs against a migrated store
func (s *Sweeper) process() {
	if s.drained || mode.IsNot(mode.Normal) {
		return
	}

	remaining, err := s.legacy.LegacyRemaining()
	if nil != err {
		s.log.Errorf("legacy count error: %s", err)
		return
	}
	s.log.Debugf("legacy remaining: %d", remaining)

	if 0 == remaining {
		s.log.Info("legacy container empty")
		s.drained = true
		return
	}
	if 0 == s.batch {
		return
	}

	moved, err := s.legacy.Sweep(s.batch)
	if nil != err {
		s.log.Errorf("sweep error: %s", err)
		return
	}
	s.log.Infof("moved: %d of: %d", moved, remaining)
}
