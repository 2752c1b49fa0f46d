// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package packed - binary codec shared by the wire protocol and the
// snapshot files
//
// All values are big-endian:
//
//   u8 u16 u32 u64 i32 i64   fixed width
//   f32 f64                  IEEE-754 bit pattern, fixed width
//   bool                     one byte, 0 is false
//   string                   u32 byte count, then UTF-8 bytes
//   option                   u8 presence flag (0/1), then the value if present
//   sequence / set / map     u32 element count, then the elements
//
// Decoding past the end of the data gives fault.UnexpectedEof
package packed
