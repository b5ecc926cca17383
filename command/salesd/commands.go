// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/salesd/fault"
	"github.com/bitmark-inc/salesd/market"
	"github.com/bitmark-inc/salesd/rpc/certificate"
	"github.com/bitmark-inc/salesd/salerecord"
	"github.com/bitmark-inc/salesd/util"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		fingerprint, err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)
		fmt.Printf("SHA3-256 fingerprint: %x\n", fingerprint)

	case "start", "run":
		return false // continue processing

	case "seed-legacy", "seed", "status", "st":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--define=NAME=VALUE...] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  seed-legacy FILE           (seed)   - append a JSON array of first release sales\n")
		fmt.Printf("                                        only runs before the store is migrated\n")
		fmt.Printf("\n")

		fmt.Printf("  status                     (st)     - print the store status as JSON\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the storage pools are open so these commands can access and/or
// change the database
func processDataCommand(log *logger.L, arguments []string, m *market.Market) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "seed-legacy", "seed":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing file name argument")
		}
		filename := arguments[0]
		if "" == filename {
			exitwithstatus.Message("missing file name")
		}
		sales, err := readLegacySales(filename)
		if nil != err {
			exitwithstatus.Message("failed reading: %q  error: %s", filename, err)
		}
		first, err := m.SeedLegacy(sales)
		if nil != err {
			exitwithstatus.Message("seed error: %s", err)
		}
		log.Infof("seeded: %d sales from: %q", len(sales), filename)
		fmt.Printf("seeded: %d sales, ids: %d to: %d\n", len(sales), first, first+uint64(len(sales))-1)

	case "status", "st":
		status, err := m.Status()
		if nil != err {
			exitwithstatus.Message("status error: %s", err)
		}
		printJSON(status)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// true if the command must not write to the database
func isReadOnlyCommand(arguments []string) bool {
	if 0 == len(arguments) {
		return false
	}
	switch arguments[0] {
	case "status", "st":
		return true
	default:
		return false
	}
}

// a JSON array of {"item": "…", "price": "…"}
func readLegacySales(filename string) ([]*salerecord.SaleV1, error) {
	data, err := ioutil.ReadFile(filename)
	if nil != err {
		return nil, err
	}
	sales := make([]*salerecord.SaleV1, 0)
	err = json.Unmarshal(data, &sales)
	if nil != err {
		return nil, err
	}
	if 0 == len(sales) {
		return nil, fault.MissingParameters
	}
	return sales, nil
}

func printJSON(item interface{}) {
	b, err := json.Marshal(item)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "  ")
	_, _ = out.WriteTo(os.Stdout)
	_, _ = os.Stdout.WriteString("\n")
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) ([32]byte, error) {
	var fingerprint [32]byte

	if util.EnsureFileExists(certificateFileName) {
		return fingerprint, fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fingerprint, fault.KeyFileAlreadyExists
	}

	org := "salesd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return fingerprint, err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return fingerprint, err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		_ = os.Remove(certificateFileName)
		return fingerprint, err
	}

	keyPair, err := tls.X509KeyPair(cert, key)
	if err != nil {
		return fingerprint, err
	}
	return certificate.Fingerprint(keyPair.Certificate[0]), nil
}

// optional directory as first argument
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
