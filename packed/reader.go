// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package packed

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"

	"github.com/lholznagel/caph-sub001/fault"
)

// limits applied while decoding
const (
	MaximumCount        = 10_000_000
	MaximumStringLength = 16 * 1024 * 1024
)

// Source - anything values can be decoded from
type Source interface {
	// Next - return exactly n bytes, the slice is only valid until
	// the next call
	Next(n int) ([]byte, error)
}

// Unpacker - decode from an in-memory buffer
type Unpacker struct {
	buffer []byte
	offset int
}

// NewUnpacker - decoder over a byte slice
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Next - implements Source
func (u *Unpacker) Next(n int) ([]byte, error) {
	if n < 0 || len(u.buffer)-u.offset < n {
		u.offset = len(u.buffer)
		return nil, fault.UnexpectedEof
	}
	b := u.buffer[u.offset : u.offset+n]
	u.offset += n
	return b, nil
}

// Remaining - number of bytes not yet consumed
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.offset
}

// StreamReader - decode from a buffered stream such as a connection
type StreamReader struct {
	reader  *bufio.Reader
	scratch []byte
}

// NewStreamReader - decoder over a buffered reader
func NewStreamReader(reader *bufio.Reader) *StreamReader {
	return &StreamReader{
		reader:  reader,
		scratch: make([]byte, 64),
	}
}

// Next - implements Source
//
// end of stream in the middle of a value maps to fault.UnexpectedEof,
// any other failure is a connection error
func (s *StreamReader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fault.UnexpectedEof
	}
	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}
	b := s.scratch[:n]
	_, err := io.ReadFull(s.reader, b)
	if nil != err {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fault.UnexpectedEof
		}
		return nil, fault.Wrap(fault.ConnectionReadFailed, err)
	}
	return b, nil
}

func Uint8(src Source) (uint8, error) {
	b, err := src.Next(1)
	if nil != err {
		return 0, err
	}
	return b[0], nil
}

func Uint16(src Source) (uint16, error) {
	b, err := src.Next(2)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func Uint32(src Source) (uint32, error) {
	b, err := src.Next(4)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func Uint64(src Source) (uint64, error) {
	b, err := src.Next(8)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func Int32(src Source) (int32, error) {
	v, err := Uint32(src)
	return int32(v), err
}

func Int64(src Source) (int64, error) {
	v, err := Uint64(src)
	return int64(v), err
}

func Float32(src Source) (float32, error) {
	v, err := Uint32(src)
	return math.Float32frombits(v), err
}

func Float64(src Source) (float64, error) {
	v, err := Uint64(src)
	return math.Float64frombits(v), err
}

func Bool(src Source) (bool, error) {
	v, err := Uint8(src)
	return 0 != v, err
}

// String - u32 length prefix then UTF-8 bytes
func String(src Source) (string, error) {
	n, err := Uint32(src)
	if nil != err {
		return "", err
	}
	if n > MaximumStringLength {
		return "", fault.StringTooLong
	}
	b, err := src.Next(int(n))
	if nil != err {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fault.InvalidUtf8
	}
	return string(b), nil
}

// Count - the u32 prefix of a sequence, set or map
func Count(src Source) (int, error) {
	n, err := Uint32(src)
	if nil != err {
		return 0, err
	}
	if n > MaximumCount {
		return 0, fault.CountTooLarge
	}
	return int(n), nil
}

// capacity hint that does not trust a corrupt count
func preallocate(n int) int {
	if n > 1024 {
		return 1024
	}
	return n
}

// ReadSequence - count prefix followed by the elements
func ReadSequence[T any](src Source, unpack func(Source) (T, error)) ([]T, error) {
	n, err := Count(src)
	if nil != err {
		return nil, err
	}
	items := make([]T, 0, preallocate(n))
	for i := 0; i < n; i += 1 {
		item, err := unpack(src)
		if nil != err {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadOption - presence flag followed by the value, nil when absent
func ReadOption[T any](src Source, unpack func(Source) (T, error)) (*T, error) {
	flag, err := Uint8(src)
	if nil != err {
		return nil, err
	}
	switch flag {
	case 0:
		return nil, nil
	case 1:
		item, err := unpack(src)
		if nil != err {
			return nil, err
		}
		return &item, nil
	default:
		return nil, fault.InvalidOptionFlag
	}
}

// ReadSet - count prefix followed by the members, duplicates collapse
func ReadSet[K comparable](src Source, unpack func(Source) (K, error)) (map[K]struct{}, error) {
	n, err := Count(src)
	if nil != err {
		return nil, err
	}
	set := make(map[K]struct{}, preallocate(n))
	for i := 0; i < n; i += 1 {
		k, err := unpack(src)
		if nil != err {
			return nil, err
		}
		set[k] = struct{}{}
	}
	return set, nil
}

// ReadMap - count prefix followed by key, value pairs
func ReadMap[K comparable, V any](src Source, unpackKey func(Source) (K, error), unpackValue func(Source) (V, error)) (map[K]V, error) {
	n, err := Count(src)
	if nil != err {
		return nil, err
	}
	m := make(map[K]V, preallocate(n))
	for i := 0; i < n; i += 1 {
		k, err := unpackKey(src)
		if nil != err {
			return nil, err
		}
		v, err := unpackValue(src)
		if nil != err {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
