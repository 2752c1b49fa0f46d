// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache maintains the in-memory reference tables
//
//  ***** Data Structure *****
//
//  Store            Key                 Value                    File
//  |___ Blueprints   item id (u32)       record.Blueprint         blueprints.carina
//  |___ IdNames      item id (u32)       record.IdName            id_names.carina
//  |___ Items        item id (u32)       record.Item              items.carina
//  |___ Materials    item id (u32)       record.Materials         item_materials.carina
//  |___ OrderInfos   order id (u64)      record.MarketOrderInfo   market_order_infos.carina
//  |___ Regions      region id (u32)     region id (u32)          regions.carina
//  |___ Stations     station id (u32)    record.Station           stations.carina
//
//  ***** Updates *****
//
//  A published map is never modified. Insert and Delete build a new map
//  from a clone of the current one and swap it in under the exclusive
//  lock, so the exclusive lock is only held for the pointer swap. The
//  clone costs O(n) for every batch that changes something, a batch
//  that changes nothing leaves the map and its version untouched.
//
//  ***** Files *****
//
//  u32 record count followed by that many packed records, written to
//  a temporary file then renamed over the previous one.
package cache
