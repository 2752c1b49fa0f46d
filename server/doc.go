// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - TCP listeners for the cache protocol
//
// every accepted connection is served by its own goroutine which
// loops over: wait for a header, decode the body, execute, write the
// response and flush. Any failure closes that connection only, a
// clean end of stream between requests is a normal close.
package server
