// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/salesd/fault"
)

const minConnectionCount = 1

// Listener - a configured server ready to accept connections
type Listener interface {
	Serve() error
}

var connectionGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "salesd",
	Subsystem: "rpc",
	Name:      "connections",
	Help:      "Open client connections by listener",
}, []string{"listener"})

func init() {
	prometheus.MustRegister(connectionGauge)
}

// parse a list of CIDR blocks
func parseCIDRs(addresses []string) ([]*net.IPNet, error) {
	set := make([]*net.IPNet, len(addresses))
	for i, ip := range addresses {
		_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
		if nil != err {
			return nil, err
		}
		set[i] = cidr
	}
	return set, nil
}

// true if the address of a connection lies in one of the blocks
func contains(set []*net.IPNet, addr net.Addr) bool {
	host, _, err := net.SplitHostPort(addr.String())
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range set {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// normalise listen addresses, returning the network of each
//
// "*:PORT" becomes "[::]:PORT" on the assumption that this will listen
// on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if 0 == len(listen) {
			return nil, fault.InvalidIpAddress
		}
		if '*' == listen[0] {
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
