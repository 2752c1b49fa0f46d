// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/lholznagel/caph-sub001/counter"
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
)

const (
	bufferSize       = 64 * 1024
	responseCapacity = 4096
)

// Configuration - the server section of the configuration file
type Configuration struct {
	Listen             []string `gluamapper:"listen" json:"listen"`
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	RequestRateLimit   float64  `gluamapper:"request_rate_limit" json:"request_rate_limit"`
	RequestBurst       int      `gluamapper:"request_burst" json:"request_burst"`
}

// Handler - executes one decoded request
//
// a returned error closes the connection, the response in w is then
// discarded
type Handler interface {
	Handle(header protocol.Header, body packed.Source, w *packed.Writer) error
}

// Server - the listeners and their open connections
type Server struct {
	log       *logger.L
	handler   Handler
	addresses []listenAddress
	maximum   uint64
	rate      rate.Limit
	burst     int

	count counter.Counter

	sync.Mutex
	listeners   []net.Listener
	connections map[net.Conn]struct{}
	stopping    bool

	wg sync.WaitGroup
}

// New - validate the configuration, nothing is opened until Start
func New(configuration *Configuration, handler Handler) (*Server, error) {
	log := logger.New("server")

	addresses, err := parseListenAddress(configuration.Listen)
	if nil != err {
		log.Errorf("listen: %q  error: %s", configuration.Listen, err)
		return nil, err
	}
	if configuration.MaximumConnections < 1 {
		return nil, fault.InvalidConnectionLimit
	}
	if configuration.RequestBurst < 1 {
		return nil, fault.InvalidRequestBurst
	}

	limit := rate.Inf
	if configuration.RequestRateLimit > 0 {
		limit = rate.Limit(configuration.RequestRateLimit)
	}

	return &Server{
		log:         log,
		handler:     handler,
		addresses:   addresses,
		maximum:     configuration.MaximumConnections,
		rate:        limit,
		burst:       configuration.RequestBurst,
		connections: make(map[net.Conn]struct{}),
	}, nil
}

// Start - open all listeners and begin accepting
//
// if any listener fails the ones already opened are closed again
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()

	for _, a := range s.addresses {
		listener, err := net.Listen(a.network, a.address)
		if nil != err {
			s.log.Errorf("listen: %s  error: %s", a.address, err)
			for _, l := range s.listeners {
				_ = l.Close()
			}
			s.listeners = nil
			return err
		}
		s.log.Infof("listening on: %s", listener.Addr())
		s.listeners = append(s.listeners, listener)

		s.wg.Add(1)
		go s.accept(listener)
	}
	return nil
}

// Addresses - the bound addresses, resolves port 0
func (s *Server) Addresses() []net.Addr {
	s.Lock()
	defer s.Unlock()

	addresses := make([]net.Addr, 0, len(s.listeners))
	for _, l := range s.listeners {
		addresses = append(addresses, l.Addr())
	}
	return addresses
}

// Connections - number of open connections
func (s *Server) Connections() uint64 {
	return s.count.Uint64()
}

// Stop - close listeners and every open connection then wait for
// their goroutines to finish
func (s *Server) Stop() {
	s.Lock()
	s.stopping = true
	for _, l := range s.listeners {
		_ = l.Close()
	}
	s.listeners = nil
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.Unlock()

	s.wg.Wait()
	s.log.Info("stopped")
}

func (s *Server) isStopping() bool {
	s.Lock()
	defer s.Unlock()
	return s.stopping
}

func (s *Server) accept(listener net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := listener.Accept()
		if nil != err {
			if !s.isStopping() {
				s.log.Errorf("accept: %s  error: %s", listener.Addr(), err)
			}
			return
		}

		if !s.count.IncrementBelow(s.maximum) {
			s.log.Warnf("connection from: %s  error: %s", conn.RemoteAddr(), fault.ConnectionLimitReached)
			_ = conn.Close()
			continue
		}

		if !s.track(conn) {
			s.count.Decrement()
			_ = conn.Close()
			return
		}

		s.wg.Add(1)
		go s.serve(conn)
	}
}

// register an open connection, false once stopping
func (s *Server) track(conn net.Conn) bool {
	s.Lock()
	defer s.Unlock()
	if s.stopping {
		return false
	}
	s.connections[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.Lock()
	delete(s.connections, conn)
	s.Unlock()
}

func (s *Server) serve(conn net.Conn) {
	remote := conn.RemoteAddr().String()

	defer func() {
		if r := recover(); nil != r {
			_ = fault.Recovered("connection: "+remote, r)
		}
		_ = conn.Close()
		s.untrack(conn)
		s.count.Decrement()
		s.wg.Done()
	}()

	s.log.Debugf("connected: %s", remote)

	err := s.loop(conn)
	switch {
	case nil == err:
		s.log.Debugf("closed: %s", remote)
	case s.isStopping():
		s.log.Debugf("closed by shutdown: %s", remote)
	default:
		s.failure(remote, err)
	}
}

// one request at a time until the stream ends or fails
func (s *Server) loop(conn net.Conn) error {
	reader := bufio.NewReaderSize(conn, bufferSize)
	writer := bufio.NewWriterSize(conn, bufferSize)
	body := packed.NewStreamReader(reader)
	response := packed.NewWriter(responseCapacity)
	limiter := rate.NewLimiter(s.rate, s.burst)

	for {
		header, err := protocol.ReadHeader(reader)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if nil != err {
			return err
		}

		err = limit(limiter)
		if nil != err {
			return err
		}

		response.Reset()
		err = s.handler.Handle(header, body, response)
		if nil != err {
			return err
		}

		_, err = writer.Write(response.Bytes())
		if nil == err {
			err = writer.Flush()
		}
		if nil != err {
			return fault.Wrap(fault.ConnectionWriteFailed, err)
		}
	}
}

// delay until the limiter allows the next request
func limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

func (s *Server) failure(remote string, err error) {
	switch kind := fault.Kind(err); kind {
	case fault.KindDecode, fault.KindProtocolViolation:
		s.log.Warnf("closed: %s  kind: %s  error: %s", remote, kind, err)
	default:
		s.log.Errorf("closed: %s  kind: %s  error: %s", remote, kind, err)
	}
}
