// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the value types held by each cache and their
// packed representation
//
// Field order of each struct is the order on the wire and in the
// snapshot files.
package record
