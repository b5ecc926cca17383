// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Authority - deploying account used throughout the tests
const Authority = "market.near"

// SetupTestLogger - send all log output to a throwaway directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - flush and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

var certificate struct {
	sync.Once
	cert []byte
	key  []byte
}

// Certificate - a self signed PEM certificate and key for local listeners
//
// generated once per test binary
func Certificate() (string, string) {
	certificate.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair("salesd test certificate", validUntil, false, []string{"127.0.0.1"})
		if nil != err {
			panic(fmt.Sprintf("certificate generation error: %s", err))
		}
		certificate.cert = cert
		certificate.key = key
	})
	return string(certificate.cert), string(certificate.key)
}
