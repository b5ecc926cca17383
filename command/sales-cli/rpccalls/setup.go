// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/salesd/rpc/certificate"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a salesd
//
// the daemon uses a self signed certificate so it is not verified
// against any CA; if fingerprint is given (hex SHA3-256 of the DER
// certificate) the connection is refused unless it matches
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err {
			return nil, err
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fmt.Errorf("no server certificate")
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fmt.Errorf("server fingerprint: %x does not match: %x", actual, expected)
			}
			return nil
		}
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the salesd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
