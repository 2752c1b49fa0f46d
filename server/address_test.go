// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/fault"
)

func TestParseListenAddress(t *testing.T) {
	parsed, err := parseListenAddress([]string{"127.0.0.1:9000", "*:9001", "[::1]:9002"})
	assert.Nil(t, err, "parse")
	assert.Equal(t, []listenAddress{
		{network: "tcp4", address: "127.0.0.1:9000"},
		{network: "tcp", address: "[::]:9001"},
		{network: "tcp6", address: "[::1]:9002"},
	}, parsed, "parsed")
}

func TestParseListenAddressErrors(t *testing.T) {
	items := []struct {
		listen []string
		err    error
	}{
		{nil, fault.MissingListenAddress},
		{[]string{"localhost:9000"}, fault.InvalidListenAddress},
		{[]string{"127.0.0.1"}, fault.InvalidListenAddress},
		{[]string{"127.0.0.1:"}, fault.InvalidListenAddress},
		{[]string{"127.0.0.1:9000", "[::1"}, fault.InvalidListenAddress},
	}

	for i, item := range items {
		_, err := parseListenAddress(item.listen)
		assert.Equal(t, item.err, err, "%d: %q", i, item.listen)
	}
}
