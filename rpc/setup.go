// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/rpc/certificate"
	"github.com/bitmark-inc/salesd/rpc/handler"
	"github.com/bitmark-inc/salesd/rpc/listeners"
	"github.com/bitmark-inc/salesd/rpc/server"
)

const (
	rpcName   = "client_rpc"
	adminName = "admin_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the JSON-RPC, admin and HTTPS listeners
//
// Sales is served by the client and HTTPS listeners, Admin only by
// the admin listener
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	adminConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	version string,
	m *market.Market,
) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Get(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcName,
		rpcConfiguration,
		log,
		server.Create(log, m),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	err = initialiseAdmin(adminConfiguration, rpcConfiguration, version, m)
	if nil != err {
		return err
	}

	err = initialiseHTTPS(httpsConfiguration, version, m)
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// the admin listener falls back to the client certificate
func initialiseAdmin(configuration *listeners.RPCConfiguration, client *listeners.RPCConfiguration, version string, m *market.Market) error {
	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", adminName)
		return nil
	}

	certificatePEM := configuration.Certificate
	keyPEM := configuration.PrivateKey
	if "" == certificatePEM && "" == keyPEM {
		certificatePEM = client.Certificate
		keyPEM = client.PrivateKey
	}

	tlsConfig, fingerprint, err := certificate.Get(log, adminName, certificatePEM, keyPEM)
	if nil != err {
		return err
	}

	adminListener, err := listeners.NewRPC(
		adminName,
		configuration,
		log,
		server.CreateAdmin(log, version, m),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	return adminListener.Serve()
}

func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, version string, m *market.Market) error {
	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil
	}

	tlsConfig, fingerprint, err := certificate.Get(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	hdlr := handler.New(
		log,
		server.Create(log, m),
		time.Now(),
		version,
		configuration.MaximumConnections,
		m,
	)

	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfig, hdlr)
	if nil != err {
		return err
	}
	return httpsListener.Serve()
}

// Finalise - stop all background tasks
//
// listeners run until the process exits
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
