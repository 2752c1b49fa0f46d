// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package protocol - framing of requests and responses
//
// Request:
//
//   byte 0   action
//   byte 1   cache kind
//   ...      packed body, its shape is fixed by the (action, kind) pair
//
// Response:
//
//   byte 0   status
//   ...      packed body for StatusOk, a packed string for StatusError,
//            nothing for StatusEmpty
package protocol
