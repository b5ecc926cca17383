// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/rpc/handler"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
	keepAlivePeriod  = 3 * time.Minute
)

// HTTPSConfiguration - configuration file data for HTTPS setup
//
// Allow maps an endpoint name (rpc, status, metrics) to the CIDR
// blocks permitted to use it
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	log             *logger.L
	listenIPAndPort []string
	tlsConfig       *tls.Config
	mux             *http.ServeMux
}

// NewHTTPS - HTTPS listener for the JSON-RPC, status and metrics endpoints
//
// returns nil, nil if no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	h := httpsListener{
		log:             log,
		listenIPAndPort: configuration.Listen,
		tlsConfig:       tlsConfig,
	}

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set, err := parseCIDRs(addresses)
		if nil != err {
			return nil, err
		}
		local[path] = set
	}

	hdlr.SetAllow(local)

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("/salesd/rpc", hdlr.RPC)
	h.mux.HandleFunc("/salesd/status", hdlr.Status)
	h.mux.HandleFunc("/metrics", hdlr.Metrics)
	h.mux.HandleFunc("/", hdlr.Root)

	return &h, nil
}

// Serve - start a server goroutine per listen address
func (h httpsListener) Serve() error {
	for _, listen := range h.listenIPAndPort {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}
		go h.serve(listen, ln)
	}

	return nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}

func (h httpsListener) serve(addr string, ln net.Listener) {
	s := &http.Server{
		Addr:           addr,
		Handler:        h.mux,
		ReadTimeout:    readWriteTimeout,
		WriteTimeout:   readWriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	cfg := h.tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, cfg)

	err := s.Serve(tlsListener)
	h.log.Errorf("%s on: %q terminated: %s", httpsLogName, addr, err)
}
