// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - file persistence of the in memory stores
//
// every store is written as a single file that is replaced atomically
// by a rename. A Manager holds all registered stores, loads them at
// startup and saves them on shutdown, on an explicit request or on a
// timer from the background process.
package snapshot
