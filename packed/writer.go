// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package packed

import (
	"encoding/binary"
	"math"

	"github.com/lholznagel/caph-sub001/fault"
)

// Writer - accumulates an encoded byte stream
//
// the first error is kept and all later writes are ignored,
// check Err() once when finished
type Writer struct {
	buffer []byte
	err    error
}

// NewWriter - create a writer with some initial capacity
func NewWriter(capacity int) *Writer {
	return &Writer{
		buffer: make([]byte, 0, capacity),
	}
}

// Bytes - the encoded data so far
func (w *Writer) Bytes() []byte {
	return w.buffer
}

// Len - number of encoded bytes
func (w *Writer) Len() int {
	return len(w.buffer)
}

// Err - first error encountered
func (w *Writer) Err() error {
	return w.err
}

// Reset - discard the contents but keep the allocated space
func (w *Writer) Reset() {
	w.buffer = w.buffer[:0]
	w.err = nil
}

func (w *Writer) Uint8(v uint8) {
	if nil == w.err {
		w.buffer = append(w.buffer, v)
	}
}

func (w *Writer) Uint16(v uint16) {
	if nil == w.err {
		w.buffer = binary.BigEndian.AppendUint16(w.buffer, v)
	}
}

func (w *Writer) Uint32(v uint32) {
	if nil == w.err {
		w.buffer = binary.BigEndian.AppendUint32(w.buffer, v)
	}
}

func (w *Writer) Uint64(v uint64) {
	if nil == w.err {
		w.buffer = binary.BigEndian.AppendUint64(w.buffer, v)
	}
}

func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// String - u32 length prefix then the bytes
func (w *Writer) String(s string) {
	if len(s) > MaximumStringLength {
		w.fail(fault.StringTooLong)
		return
	}
	w.Uint32(uint32(len(s)))
	if nil == w.err {
		w.buffer = append(w.buffer, s...)
	}
}

// Count - the u32 prefix of a sequence, set or map
func (w *Writer) Count(n int) {
	if n < 0 || n > MaximumCount {
		w.fail(fault.CountTooLarge)
		return
	}
	w.Uint32(uint32(n))
}

// Raw - append already encoded bytes
func (w *Writer) Raw(b []byte) {
	if nil == w.err {
		w.buffer = append(w.buffer, b...)
	}
}

func (w *Writer) fail(err error) {
	if nil == w.err {
		w.err = err
	}
}

// WriteSequence - count prefix followed by each element
func WriteSequence[T any](w *Writer, items []T, pack func(*Writer, T)) {
	w.Count(len(items))
	for _, item := range items {
		pack(w, item)
	}
}

// WriteOption - presence flag followed by the value if present
func WriteOption[T any](w *Writer, item *T, pack func(*Writer, T)) {
	if nil == item {
		w.Uint8(0)
		return
	}
	w.Uint8(1)
	pack(w, *item)
}

// WriteMap - count prefix followed by key, value pairs in map iteration order
func WriteMap[K comparable, V any](w *Writer, m map[K]V, packKey func(*Writer, K), packValue func(*Writer, V)) {
	w.Count(len(m))
	for k, v := range m {
		packKey(w, k)
		packValue(w, v)
	}
}

// element packers for the primitive types, suitable for WriteSequence
func PackUint32(w *Writer, v uint32) { w.Uint32(v) }
func PackUint64(w *Writer, v uint64) { w.Uint64(v) }
func PackString(w *Writer, v string) { w.String(v) }
