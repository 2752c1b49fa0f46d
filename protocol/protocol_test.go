// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
)

func TestHeaderValues(t *testing.T) {
	items := []struct {
		header   protocol.Header
		expected []byte
	}{
		{protocol.Header{Action: protocol.Fetch, Kind: protocol.Blueprint}, []byte{0, 0}},
		{protocol.Header{Action: protocol.Insert, Kind: protocol.IdName}, []byte{1, 1}},
		{protocol.Header{Action: protocol.Update, Kind: protocol.MarketOrder}, []byte{2, 7}},
		{protocol.Header{Action: protocol.Delete, Kind: protocol.Station}, []byte{3, 10}},
		{protocol.Header{Action: protocol.Lookup, Kind: protocol.MarketOrderInfo}, []byte{4, 8}},
		{protocol.Header{Action: protocol.Fetch, Kind: protocol.Region}, []byte{0, 9}},
	}

	for i, item := range items {
		w := packed.NewWriter(2)
		item.header.Pack(w)
		if !bytes.Equal(item.expected, w.Bytes()) {
			t.Errorf("%d: %s: expected: %x  actual: %x", i, item.header, item.expected, w.Bytes())
		}

		h, err := protocol.ReadHeader(bytes.NewReader(w.Bytes()))
		if nil != err {
			t.Errorf("%d: %s: error: %s", i, item.header, err)
		}
		if item.header != h {
			t.Errorf("%d: expected: %s  actual: %s", i, item.header, h)
		}
	}
}

func TestReadHeaderErrors(t *testing.T) {
	_, err := protocol.ReadHeader(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)

	_, err = protocol.ReadHeader(bytes.NewReader([]byte{0}))
	assert.Equal(t, fault.UnexpectedEof, err)

	_, err = protocol.ReadHeader(bytes.NewReader([]byte{5, 0}))
	assert.Equal(t, fault.UnknownAction, err)
	assert.True(t, fault.IsErrProtocolViolation(err))

	_, err = protocol.ReadHeader(bytes.NewReader([]byte{0, 4}))
	assert.Equal(t, fault.UnknownCacheKind, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Lookup", protocol.Lookup.String())
	assert.Equal(t, "Action(9)", protocol.Action(9).String())
	assert.Equal(t, "MarketOrderInfo", protocol.MarketOrderInfo.String())
	assert.Equal(t, "CacheKind(5)", protocol.CacheKind(5).String())
	assert.Equal(t, "Fetch/Region", protocol.Header{Action: protocol.Fetch, Kind: protocol.Region}.String())
	assert.Equal(t, "Empty", protocol.StatusEmpty.String())

	for _, k := range protocol.Kinds {
		parsed, err := protocol.ParseCacheKind(uint8(k))
		assert.Nil(t, err)
		assert.Equal(t, k, parsed)
	}
}
