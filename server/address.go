// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net"
	"strings"

	"github.com/lholznagel/caph-sub001/fault"
)

type listenAddress struct {
	network string
	address string
}

// accepts "IP:PORT", "*:PORT" and "[IPv6]:PORT"
func parseListenAddress(addresses []string) ([]listenAddress, error) {
	if 0 == len(addresses) {
		return nil, fault.MissingListenAddress
	}

	parsed := make([]listenAddress, 0, len(addresses))
	for _, listen := range addresses {
		listen = strings.TrimSpace(listen)

		host, port, err := net.SplitHostPort(listen)
		if nil != err || "" == port {
			return nil, fault.InvalidListenAddress
		}

		network := "tcp4"
		switch {
		case "*" == host:
			// both tcp4 and tcp6
			host = "::"
			listen = net.JoinHostPort(host, port)
			network = "tcp"
		case strings.HasPrefix(listen, "["):
			network = "tcp6"
		}

		if ip := net.ParseIP(host); nil == ip {
			return nil, fault.InvalidListenAddress
		}
		parsed = append(parsed, listenAddress{
			network: network,
			address: listen,
		})
	}
	return parsed, nil
}
