// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
)

// RPCConfiguration - configuration file data for RPC setup
//
// an empty Allow accepts connections from any address
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Allow              []string `gluamapper:"allow" json:"allow"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	name            string
	log             *logger.L
	allow           []*net.IPNet
	count           *uint64
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
}

// NewRPC - JSON-RPC over TLS listener, name labels its logs and metrics
func NewRPC(
	name string,
	configuration *RPCConfiguration,
	log *logger.L,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", name, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", name)
		return nil, fault.MissingParameters
	}

	allow, err := parseCIDRs(configuration.Allow)
	if nil != err {
		log.Errorf("invalid %s allow: %s", name, err)
		return nil, err
	}

	r := rpcListener{
		name:            name,
		allow:           allow,
		log:             log,
		count:           new(uint64),
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: configuration.Listen,
		server:          server,
		tlsConfig:       tlsConfig,
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", name, certificateFingerprint)

	// validate all listen addresses
	r.ipType, err = parseListenAddress(configuration.Listen, r.log)
	if nil != err {
		return nil, err
	}

	return &r, nil
}

// Serve - start accepting on every listen address
func (r rpcListener) Serve() error {
	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting server: %s on: %q", r.name, listen)
		listener, err := tls.Listen(r.ipType[i], listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}

		go r.accept(listener)
	}
	return nil
}

func (r rpcListener) accept(listen net.Listener) {
	gauge := connectionGauge.WithLabelValues(r.name)
	for {
		conn, err := listen.Accept()
		if err != nil {
			r.log.Errorf("%s terminated: accept error: %s", r.name, err)
			break
		}
		if 0 != len(r.allow) && !contains(r.allow, conn.RemoteAddr()) {
			r.log.Warnf("%s: deny access: %q", r.name, conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		if atomic.AddUint64(r.count, 1) <= r.maxConnections {
			gauge.Inc()
			go func() {
				r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				atomic.AddUint64(r.count, ^uint64(0))
				gauge.Dec()
			}()
		} else {
			atomic.AddUint64(r.count, ^uint64(0))
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	r.log.Error("RPC accept terminated")
}
