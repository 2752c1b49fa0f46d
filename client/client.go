// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - connection to a carina server
//
// requests are sent one at a time, a Client is safe for concurrent use
// but calls are serialised
package client

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
)

// Client - one connection
type Client struct {
	sync.Mutex
	conn    net.Conn
	writer  *bufio.Writer
	reader  *packed.StreamReader
	request *packed.Writer
	timeout time.Duration
	broken  bool // stream position unknown, no further requests
	log     *logger.L
}

// Dial - connect to address
//
// timeout applies to connecting and to every request, zero for none
func Dial(address string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if nil != err {
		return nil, fault.Wrap(fault.ConnectionReadFailed, err)
	}
	c := New(conn)
	c.timeout = timeout
	return c, nil
}

// New - client over an existing connection
func New(conn net.Conn) *Client {
	return &Client{
		conn:    conn,
		writer:  bufio.NewWriter(conn),
		reader:  packed.NewStreamReader(bufio.NewReader(conn)),
		request: packed.NewWriter(4096),
		log:     logger.New("client"),
	}
}

// Close - close the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// send one request and decode its response
//
// returns false for an empty response, a response carrying an error
// message is returned as an InvalidError. Any failure after the
// request started leaves the stream mid-frame, so the connection is
// closed and every later call returns ConnectionClosed
func (c *Client) call(header protocol.Header, body func(*packed.Writer), reply func(packed.Source) error) (bool, error) {
	c.Lock()
	defer c.Unlock()

	if c.broken {
		return false, fault.ConnectionClosed
	}

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}

	c.request.Reset()
	header.Pack(c.request)
	if nil != body {
		body(c.request)
	}
	if err := c.request.Err(); nil != err {
		return false, err
	}

	_, err := c.writer.Write(c.request.Bytes())
	if nil == err {
		err = c.writer.Flush()
	}
	if nil != err {
		return false, c.fail(header, fault.Wrap(fault.ConnectionWriteFailed, err))
	}

	b, err := packed.Uint8(c.reader)
	if nil != err {
		return false, c.fail(header, err)
	}

	switch protocol.Status(b) {
	case protocol.StatusOk:
		if nil == reply {
			return true, nil
		}
		if err := reply(c.reader); nil != err {
			return true, c.fail(header, err)
		}
		return true, nil
	case protocol.StatusEmpty:
		return false, nil
	case protocol.StatusError:
		message, err := packed.String(c.reader)
		if nil != err {
			return false, c.fail(header, err)
		}
		c.log.Debugf("%s: error: %s", header, message)
		return false, fault.InvalidError(message)
	default:
		return false, c.fail(header, fault.UnknownStatus)
	}
}

// mark the client unusable and drop the connection, returns err
func (c *Client) fail(header protocol.Header, err error) error {
	c.broken = true
	_ = c.conn.Close()
	c.log.Warnf("%s: connection dropped: %s", header, err)
	return err
}
