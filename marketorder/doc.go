// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package marketorder - remaining volume history of market orders
//
//  ***** Data Structure *****
//
//  history   item id -> order id -> []record.Observation   (left-right)
//  current   order id -> record.MarketOrder                 (mutex)
//
//  An observation is added only when the remaining volume of an order
//  differs from the previous observation of that order, timestamps of
//  one order are strictly increasing and aligned to the 30 minute grid.
//
//  Inserts are staged on the inactive side of the history and become
//  visible to Fetch after Commit. The current snapshot is replaced by
//  each insert batch and is visible immediately.
//
//  ***** Timestamp collisions *****
//
//  Samples of one order that align to the same tick are merged, the
//  sample appearing last in the batch decides the volume. A sample
//  that aligns to the tick already recorded last for the order
//  replaces that volume. A sample older than the last recorded tick
//  is dropped. No sample is ever moved to a different tick.
package marketorder
