// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/fixtures"
	"github.com/bitmark-inc/salesd/rpc/certificate"
	"github.com/bitmark-inc/salesd/rpc/listeners"
)

type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h *testHandler) Status(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Status"))
}

func (h *testHandler) Metrics(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Metrics"))
}

func (h *testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

var client *http.Client

func init() {
	customTransport := http.DefaultTransport.(*http.Transport).Clone()
	customTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // ignore certificate verification

	client = &http.Client{
		Transport: customTransport,
	}
}

func testTLS(t *testing.T) *tls.Config {
	cer, key := fixtures.Certificate()
	tlsConf, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	require.NoError(t, err, "get certificate")
	return tlsConf
}

func setupHTTPS(t *testing.T, hdlr *testHandler) (int, listeners.Listener) {
	allow := "127.0.0.1/32"
	port := rand.Intn(30000) + 30000

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
		Allow: map[string][]string{
			"rpc":     {allow},
			"status":  {allow},
			"metrics": {" " + allow + " "},
		},
	}

	h, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), testTLS(t), hdlr)
	require.NoError(t, err, "NewHTTPS")
	require.NotNil(t, h, "NewHTTPS")

	return port, h
}

func TestHttpsListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	hdlr := &testHandler{}
	port, h := setupHTTPS(t, hdlr)

	err := h.Serve()
	assert.Nil(t, err, "wrong Serve")

	assert.Len(t, hdlr.allow["metrics"], 1, "allow list not passed to handler")

	tests := []struct {
		path     string
		expected string
	}{
		{"/salesd/rpc", "RPC"},
		{"/salesd/status", "Status"},
		{"/metrics", "Metrics"},
		{"/salesd/", "Root"},
		{"/", "Root"},
	}

	for _, item := range tests {
		resp, err := client.Get(fmt.Sprintf("https://127.0.0.1:%d%s", port, item.path))
		require.NoError(t, err, "client get: %s", item.path)
		content, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, item.expected, string(content), "wrong handler for: %s", item.path)
	}
}

func TestHttpsListenerDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, logger.New(fixtures.LogCategory), nil, &testHandler{})
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, h, "listener created")
}

func TestHttpsListenerWhenMaxConnectionCountTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:2136"},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestHttpsListenerWhenInvalidAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:2136"},
		Allow: map[string][]string{
			"status": {"127.0.0.1"},
		},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.NotNil(t, err, "CIDR without mask accepted")
}
