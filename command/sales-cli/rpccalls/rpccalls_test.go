// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/salesd/command/sales-cli/rpccalls"
	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/fixtures"
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/rpc/admin"
	"github.com/bitmark-inc/salesd/rpc/certificate"
	"github.com/bitmark-inc/salesd/rpc/sales"
	"github.com/bitmark-inc/salesd/salerecord"
)

type fakeSales struct {
	added *sales.AddArguments
}

func (f *fakeSales) Add(arguments *sales.AddArguments, reply *sales.AddReply) error {
	f.added = arguments
	reply.ID = 7
	return nil
}

func (f *fakeSales) Buy(arguments *sales.BuyArguments, reply *market.Receipt) error {
	if !salerecord.NewPrice(950).Equal(arguments.Deposit) {
		return fault.DepositMismatch
	}
	*reply = market.Receipt{ID: arguments.ID, Seller: "seller.near", Item: "bike", Paid: arguments.Deposit}
	return nil
}

func (f *fakeSales) Get(arguments *sales.GetArguments, reply *sales.GetReply) error {
	return nil
}

type fakeAdmin struct{}

func (fakeAdmin) Status(_ *admin.StatusArguments, reply *admin.StatusReply) error {
	reply.Mode = "AwaitingMigration"
	reply.Store = &market.Status{Layout: "v1", LegacyRemaining: 3}
	return nil
}

// serve jsonrpc over TLS on a loopback port
func serve(t *testing.T, s *fakeSales) (string, [32]byte) {
	cert, key := fixtures.Certificate()
	keyPair, err := tls.X509KeyPair([]byte(cert), []byte(key))
	require.NoError(t, err, "key pair")

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Sales", s), "register sales")
	require.NoError(t, server.RegisterName("Admin", fakeAdmin{}), "register admin")

	l, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{keyPair}})
	require.NoError(t, err, "listen")
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	return l.Addr().String(), certificate.Fingerprint(keyPair.Certificate[0])
}

func TestAddAndBuy(t *testing.T) {
	s := &fakeSales{}
	address, fingerprint := serve(t, s)

	var out bytes.Buffer
	client, err := rpccalls.NewClient(address, hex.EncodeToString(fingerprint[:]), true, &out)
	require.NoError(t, err, "connect")
	defer client.Close()

	reply, err := client.AddSale(&rpccalls.AddData{
		Caller:   "seller.near",
		Item:     "bike",
		Price:    "100000000000000000000",
		Quantity: 2,
	})
	require.NoError(t, err, "add")
	assert.Equal(t, uint64(7), reply.ID, "id")
	require.NotNil(t, s.added, "server saw arguments")
	assert.Equal(t, "100000000000000000000", s.added.Price.String(), "price crosses the wire as a decimal string")
	assert.True(t, strings.Contains(out.String(), `"price": "100000000000000000000"`), "verbose output")

	receipt, err := client.Buy(&rpccalls.BuyData{Caller: "buyer.near", ID: 7, Deposit: "950"})
	require.NoError(t, err, "buy")
	assert.Equal(t, "seller.near", receipt.Seller, "seller")

	_, err = client.Buy(&rpccalls.BuyData{Caller: "buyer.near", ID: 7, Deposit: "1000"})
	require.Error(t, err, "mismatch")
	assert.Equal(t, fault.DepositMismatch.Error(), err.Error(), "error text")

	_, err = client.AddSale(&rpccalls.AddData{Caller: "seller.near", Item: "bike", Price: "ten"})
	assert.Error(t, err, "bad price rejected before sending")

	get, err := client.GetSale(99)
	require.NoError(t, err, "get")
	assert.Nil(t, get.Sale, "absent sale")

	status, err := client.GetStatus()
	require.NoError(t, err, "status")
	assert.Equal(t, "AwaitingMigration", status.Mode, "mode")
	assert.Equal(t, 3, status.Store.LegacyRemaining, "legacy")
}

func TestFingerprintMismatch(t *testing.T) {
	address, _ := serve(t, &fakeSales{})

	var wrong [32]byte
	_, err := rpccalls.NewClient(address, hex.EncodeToString(wrong[:]), false, nil)
	assert.Error(t, err, "pinned fingerprint must match")

	_, err = rpccalls.NewClient(address, "zz", false, nil)
	assert.Error(t, err, "fingerprint must be hex")
}
