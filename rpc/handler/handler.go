// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/mode"
)

// endpoint names used in the allow configuration
const (
	AllowRPC     = "rpc"
	AllowStatus  = "status"
	AllowMetrics = "metrics"
)

// Handler - the HTTPS endpoints
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Status(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// StatusSource - provides the store summary for the status endpoint
type StatusSource interface {
	Status() (*market.Status, error)
}

type handler struct {
	sync.RWMutex
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	count              uint64
	maximumConnections uint64
	allow              map[string][]*net.IPNet
	status             StatusSource
	metrics            http.Handler
}

// New - create the HTTPS handler set
func New(
	log *logger.L,
	server *rpc.Server,
	start time.Time,
	version string,
	maximumConnections uint64,
	status StatusSource,
) Handler {
	return &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
		allow:              make(map[string][]*net.IPNet),
		status:             status,
		metrics:            promhttp.Handler(),
	}
}

// SetAllow - replace the access control lists
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.Lock()
	h.allow = allow
	h.Unlock()
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
//
// open to all unless an "rpc" allow list is configured
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if h.restricted(AllowRPC) && !h.allowed(AllowRPC, r) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.leave()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc serve error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// Status - daemon and store summary (restricted)
func (h *handler) Status(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed(AllowStatus, r) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.leave()

	store, err := h.status.Status()
	if nil != err {
		h.log.Errorf("status error: %s", err)
		sendInternalServerError(w)
		return
	}

	type theReply struct {
		Mode        string         `json:"mode"`
		Version     string         `json:"version"`
		Uptime      string         `json:"uptime"`
		Connections uint64         `json:"connections"`
		Store       *market.Status `json:"store"`
	}

	sendReply(w, theReply{
		Mode:        mode.String(),
		Version:     h.version,
		Uptime:      time.Since(h.start).String(),
		Connections: atomic.LoadUint64(&h.count),
		Store:       store,
	})
}

// Metrics - prometheus exposition (restricted)
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed(AllowMetrics, r) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	h.metrics.ServeHTTP(w, r)
}

func (h *handler) enter() bool {
	if atomic.AddUint64(&h.count, 1) > h.maximumConnections {
		atomic.AddUint64(&h.count, ^uint64(0))
		return false
	}
	return true
}

func (h *handler) leave() {
	atomic.AddUint64(&h.count, ^uint64(0))
}

func (h *handler) restricted(name string) bool {
	h.RLock()
	defer h.RUnlock()
	_, ok := h.allow[name]
	return ok
}

// check the remote address against an allow list
func (h *handler) allowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}

	h.RLock()
	defer h.RUnlock()
	for _, cidr := range h.allow[name] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
