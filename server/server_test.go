// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/dispatch"
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
	"github.com/lholznagel/caph-sub001/record"
	"github.com/lholznagel/caph-sub001/server"
	"github.com/lholznagel/caph-sub001/server/mocks"
)

const timeout = 5 * time.Second

func configuration(maximum uint64) *server.Configuration {
	return &server.Configuration{
		Listen:             []string{"127.0.0.1:0"},
		MaximumConnections: maximum,
		RequestRateLimit:   0,
		RequestBurst:       10,
	}
}

func start(t *testing.T, c *server.Configuration, handler server.Handler) *server.Server {
	s, err := server.New(c, handler)
	if !assert.Nil(t, err, "new") {
		t.FailNow()
	}
	if !assert.Nil(t, s.Start(), "start") {
		t.FailNow()
	}
	t.Cleanup(s.Stop)
	return s
}

func dial(t *testing.T, s *server.Server) net.Conn {
	addresses := s.Addresses()
	if !assert.Equal(t, 1, len(addresses), "addresses") {
		t.FailNow()
	}
	conn, err := net.DialTimeout("tcp", addresses[0].String(), timeout)
	if !assert.Nil(t, err, "dial") {
		t.FailNow()
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn net.Conn, action protocol.Action, kind protocol.CacheKind, body func(*packed.Writer)) {
	w := packed.NewWriter(64)
	protocol.Header{Action: action, Kind: kind}.Pack(w)
	if nil != body {
		body(w)
	}
	_, err := conn.Write(w.Bytes())
	assert.Nil(t, err, "write")
}

// true if the server closed the connection
func closed(conn net.Conn) bool {
	var b [1]byte
	_, err := conn.Read(b[:])
	return nil != err
}

func TestRequestsOnOneConnection(t *testing.T) {
	s := start(t, configuration(5), dispatch.New(dispatch.NewStores(t.TempDir(), marketorder.Options{})))
	conn := dial(t, s)
	reply := packed.NewStreamReader(bufio.NewReader(conn))

	// pipelined, answered in order
	send(t, conn, protocol.Insert, protocol.Item, func(w *packed.Writer) {
		packed.WriteSequence(w, []record.Item{{ItemId: 34, Volume: 0.01}}, record.PackItem)
	})
	send(t, conn, protocol.Fetch, protocol.Item, func(w *packed.Writer) {
		w.Uint32(34)
	})
	send(t, conn, protocol.Fetch, protocol.Item, func(w *packed.Writer) {
		w.Uint32(35)
	})

	status, err := packed.Uint8(reply)
	assert.Nil(t, err, "status")
	assert.Equal(t, protocol.StatusOk, protocol.Status(status), "insert status")
	changes, err := packed.Uint32(reply)
	assert.Nil(t, err, "changes")
	assert.Equal(t, uint32(1), changes, "changes")

	status, err = packed.Uint8(reply)
	assert.Nil(t, err, "status")
	assert.Equal(t, protocol.StatusOk, protocol.Status(status), "fetch status")
	item, err := record.UnpackItem(reply)
	assert.Nil(t, err, "item")
	assert.Equal(t, record.Item{ItemId: 34, Volume: 0.01}, item, "item")

	status, err = packed.Uint8(reply)
	assert.Nil(t, err, "status")
	assert.Equal(t, protocol.StatusEmpty, protocol.Status(status), "missing status")
}

func TestViolationClosesOnlyThatConnection(t *testing.T) {
	s := start(t, configuration(5), dispatch.New(dispatch.NewStores(t.TempDir(), marketorder.Options{})))

	bad := dial(t, s)
	good := dial(t, s)

	_, err := bad.Write([]byte{9, 0})
	assert.Nil(t, err, "write")
	assert.True(t, closed(bad), "bad connection closed")

	send(t, good, protocol.Fetch, protocol.Region, nil)
	reply := packed.NewStreamReader(bufio.NewReader(good))
	status, err := packed.Uint8(reply)
	assert.Nil(t, err, "status")
	assert.Equal(t, protocol.StatusOk, protocol.Status(status), "status")
	regions, err := packed.ReadSequence(reply, packed.Uint32)
	assert.Nil(t, err, "regions")
	assert.Equal(t, 0, len(regions), "regions")
}

func TestConnectionLimit(t *testing.T) {
	s := start(t, configuration(1), dispatch.New(dispatch.NewStores(t.TempDir(), marketorder.Options{})))

	first := dial(t, s)
	send(t, first, protocol.Fetch, protocol.Region, nil)
	_, err := packed.Uint8(packed.NewStreamReader(bufio.NewReader(first)))
	assert.Nil(t, err, "first served")

	second := dial(t, s)
	assert.True(t, closed(second), "second refused")

	_ = first.Close()
	deadline := time.Now().Add(timeout)
	for s.Connections() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, uint64(0), s.Connections(), "connections released")

	third := dial(t, s)
	send(t, third, protocol.Fetch, protocol.Region, nil)
	_, err = packed.Uint8(packed.NewStreamReader(bufio.NewReader(third)))
	assert.Nil(t, err, "third served")
}

func TestHandlerPanicClosesConnection(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	handler := mocks.NewMockHandler(ctl)
	handler.EXPECT().
		Handle(protocol.Header{Action: protocol.Fetch, Kind: protocol.Item}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(protocol.Header, packed.Source, *packed.Writer) error {
			panic("store failure")
		}).
		Times(1)
	handler.EXPECT().
		Handle(protocol.Header{Action: protocol.Fetch, Kind: protocol.Region}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ protocol.Header, _ packed.Source, w *packed.Writer) error {
			w.Uint8(uint8(protocol.StatusEmpty))
			return nil
		}).
		Times(1)

	s := start(t, configuration(5), handler)

	conn := dial(t, s)
	send(t, conn, protocol.Fetch, protocol.Item, nil)
	assert.True(t, closed(conn), "closed after panic")

	// the server keeps running
	other := dial(t, s)
	send(t, other, protocol.Fetch, protocol.Region, nil)
	status, err := packed.Uint8(packed.NewStreamReader(bufio.NewReader(other)))
	assert.Nil(t, err, "status")
	assert.Equal(t, protocol.StatusEmpty, protocol.Status(status), "status")
}

func TestStopClosesConnections(t *testing.T) {
	s, err := server.New(configuration(5), dispatch.New(dispatch.NewStores(t.TempDir(), marketorder.Options{})))
	assert.Nil(t, err, "new")
	assert.Nil(t, s.Start(), "start")

	conn := dial(t, s)
	send(t, conn, protocol.Fetch, protocol.Region, nil)
	_, err = packed.Uint8(packed.NewStreamReader(bufio.NewReader(conn)))
	assert.Nil(t, err, "served")

	s.Stop()
	assert.True(t, closed(conn), "closed by stop")
	assert.Equal(t, uint64(0), s.Connections(), "connections")
}

func TestNewValidation(t *testing.T) {
	c := configuration(0)
	_, err := server.New(c, nil)
	assert.Equal(t, fault.InvalidConnectionLimit, err, "connections")

	c = configuration(1)
	c.RequestBurst = 0
	_, err = server.New(c, nil)
	assert.Equal(t, fault.InvalidRequestBurst, err, "burst")

	c = configuration(1)
	c.Listen = nil
	_, err = server.New(c, nil)
	assert.Equal(t, fault.MissingListenAddress, err, "listen")
}
