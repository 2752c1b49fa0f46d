// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
)

// HeaderSize - bytes before the body
const HeaderSize = 2

// Header - selects one operation on one cache
type Header struct {
	Action Action
	Kind   CacheKind
}

func (h Header) String() string {
	return fmt.Sprintf("%s/%s", h.Action, h.Kind)
}

// Pack - append the two header bytes
func (h Header) Pack(w *packed.Writer) {
	w.Uint8(uint8(h.Action))
	w.Uint8(uint8(h.Kind))
}

// ReadHeader - next request header from a connection
//
// io.EOF is returned unchanged when the stream ends cleanly before
// the first byte, a stream ending between the two bytes is a decode
// error
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	_, err := io.ReadFull(r, b[:])
	if errors.Is(err, io.EOF) {
		return Header{}, io.EOF
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Header{}, fault.UnexpectedEof
	}
	if nil != err {
		return Header{}, fault.Wrap(fault.ConnectionReadFailed, err)
	}

	action, err := ParseAction(b[0])
	if nil != err {
		return Header{}, err
	}
	kind, err := ParseCacheKind(b[1])
	if nil != err {
		return Header{}, err
	}
	return Header{Action: action, Kind: kind}, nil
}

// Status - first response byte
type Status uint8

// the statuses
const (
	StatusOk    Status = 0 // body follows
	StatusEmpty Status = 1 // nothing found, no body
	StatusError Status = 2 // packed error message follows
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusEmpty:
		return "Empty"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// FetchMode - first body byte of a market order fetch
type FetchMode uint8

// the modes
const (
	FetchHistory FetchMode = 0 // u32 item, u64 start, u64 stop
	FetchCurrent FetchMode = 1 // u64 order id
	FetchLatest  FetchMode = 2 // u32 item
	FetchRaw     FetchMode = 3 // u32 item
)
