// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
	"github.com/lholznagel/caph-sub001/record"
)

func header(action protocol.Action, kind protocol.CacheKind) protocol.Header {
	return protocol.Header{Action: action, Kind: kind}
}

func fetch[K any, V any](c *Client, kind protocol.CacheKind, key K, packKey func(*packed.Writer, K), unpack func(packed.Source) (V, error)) (V, bool, error) {
	var value V
	found, err := c.call(
		header(protocol.Fetch, kind),
		func(w *packed.Writer) { packKey(w, key) },
		func(src packed.Source) error {
			var err error
			value, err = unpack(src)
			return err
		},
	)
	return value, found, err
}

func sequence[T any](c *Client, h protocol.Header, body func(*packed.Writer), unpack func(packed.Source) (T, error)) ([]T, bool, error) {
	var items []T
	found, err := c.call(h, body, func(src packed.Source) error {
		var err error
		items, err = packed.ReadSequence(src, unpack)
		return err
	})
	return items, found, err
}

// a request answered with a single u32
func count[T any](c *Client, action protocol.Action, kind protocol.CacheKind, items []T, pack func(*packed.Writer, T)) (uint32, error) {
	var n uint32
	_, err := c.call(
		header(action, kind),
		func(w *packed.Writer) { packed.WriteSequence(w, items, pack) },
		func(src packed.Source) error {
			var err error
			n, err = packed.Uint32(src)
			return err
		},
	)
	return n, err
}

// Blueprint - fetch one blueprint
func (c *Client) Blueprint(itemId uint32) (record.Blueprint, bool, error) {
	return fetch(c, protocol.Blueprint, itemId, packed.PackUint32, record.UnpackBlueprint)
}

// IdName - fetch one name
func (c *Client) IdName(id uint32) (record.IdName, bool, error) {
	return fetch(c, protocol.IdName, id, packed.PackUint32, record.UnpackIdName)
}

// Item - fetch one item
func (c *Client) Item(itemId uint32) (record.Item, bool, error) {
	return fetch(c, protocol.Item, itemId, packed.PackUint32, record.UnpackItem)
}

// Materials - reprocessing materials of an item
func (c *Client) Materials(itemId uint32) (record.Materials, bool, error) {
	return fetch(c, protocol.ItemMaterial, itemId, packed.PackUint32, record.UnpackMaterials)
}

// Station - fetch one station
func (c *Client) Station(stationId uint32) (record.Station, bool, error) {
	return fetch(c, protocol.Station, stationId, packed.PackUint32, record.UnpackStation)
}

// MarketOrderInfo - fetch the metadata of an order
func (c *Client) MarketOrderInfo(orderId uint64) (record.MarketOrderInfo, bool, error) {
	return fetch(c, protocol.MarketOrderInfo, orderId, packed.PackUint64, record.UnpackMarketOrderInfo)
}

// Regions - every region id, ascending
func (c *Client) Regions() ([]uint32, error) {
	ids, _, err := sequence(c, header(protocol.Fetch, protocol.Region), nil, packed.Uint32)
	return ids, err
}

// Names - bulk fetch, unknown ids are left out
func (c *Client) Names(ids []uint32) ([]record.IdName, error) {
	names, _, err := sequence(c, header(protocol.Lookup, protocol.IdName), func(w *packed.Writer) {
		packed.WriteSequence(w, ids, packed.PackUint32)
	}, record.UnpackIdName)
	return names, err
}

// MissingOrderInfos - the order ids that have no metadata yet
func (c *Client) MissingOrderInfos(orderIds []uint64) ([]uint64, error) {
	ids, _, err := sequence(c, header(protocol.Lookup, protocol.MarketOrderInfo), func(w *packed.Writer) {
		packed.WriteSequence(w, orderIds, packed.PackUint64)
	}, packed.Uint64)
	return ids, err
}

// History - order volumes of an item at every tick from start to stop
func (c *Client) History(itemId uint32, start uint64, stop uint64) ([]marketorder.TickOrders, bool, error) {
	return sequence(c, header(protocol.Fetch, protocol.MarketOrder), func(w *packed.Writer) {
		w.Uint8(uint8(protocol.FetchHistory))
		w.Uint32(itemId)
		w.Uint64(start)
		w.Uint64(stop)
	}, marketorder.UnpackTickOrders)
}

// CurrentOrder - latest sample of an order
func (c *Client) CurrentOrder(orderId uint64) (record.MarketOrder, bool, error) {
	var sample record.MarketOrder
	found, err := c.call(header(protocol.Fetch, protocol.MarketOrder), func(w *packed.Writer) {
		w.Uint8(uint8(protocol.FetchCurrent))
		w.Uint64(orderId)
	}, func(src packed.Source) error {
		var err error
		sample, err = record.UnpackMarketOrder(src)
		return err
	})
	return sample, found, err
}

// LatestOrders - samples of the most recent batch for an item
func (c *Client) LatestOrders(itemId uint32) ([]record.MarketOrder, error) {
	samples, _, err := sequence(c, header(protocol.Fetch, protocol.MarketOrder), func(w *packed.Writer) {
		w.Uint8(uint8(protocol.FetchLatest))
		w.Uint32(itemId)
	}, record.UnpackMarketOrder)
	return samples, err
}

// RawHistory - all recorded observations of an item
func (c *Client) RawHistory(itemId uint32) ([]marketorder.OrderHistory, bool, error) {
	return sequence(c, header(protocol.Fetch, protocol.MarketOrder), func(w *packed.Writer) {
		w.Uint8(uint8(protocol.FetchRaw))
		w.Uint32(itemId)
	}, marketorder.UnpackOrderHistory)
}

// MarketItems - items with committed history
func (c *Client) MarketItems() ([]uint32, error) {
	ids, _, err := sequence(c, header(protocol.Lookup, protocol.MarketOrder), nil, packed.Uint32)
	return ids, err
}

// InsertBlueprints - returns the number changed
func (c *Client) InsertBlueprints(blueprints []record.Blueprint) (uint32, error) {
	return count(c, protocol.Insert, protocol.Blueprint, blueprints, record.PackBlueprint)
}

// InsertIdNames - returns the number changed
func (c *Client) InsertIdNames(names []record.IdName) (uint32, error) {
	return count(c, protocol.Insert, protocol.IdName, names, record.PackIdName)
}

// InsertItems - returns the number changed
func (c *Client) InsertItems(items []record.Item) (uint32, error) {
	return count(c, protocol.Insert, protocol.Item, items, record.PackItem)
}

// InsertMaterials - flat list for any number of items, returns the
// number of items changed
func (c *Client) InsertMaterials(materials []record.ItemMaterial) (uint32, error) {
	return count(c, protocol.Insert, protocol.ItemMaterial, materials, record.PackItemMaterial)
}

// InsertStations - returns the number changed
func (c *Client) InsertStations(stations []record.Station) (uint32, error) {
	return count(c, protocol.Insert, protocol.Station, stations, record.PackStation)
}

// InsertMarketOrderInfos - returns the number of new orders
func (c *Client) InsertMarketOrderInfos(infos []record.MarketOrderInfo) (uint32, error) {
	return count(c, protocol.Insert, protocol.MarketOrderInfo, infos, record.PackMarketOrderInfo)
}

// InsertMarketOrders - returns the number of observations appended
func (c *Client) InsertMarketOrders(samples []record.MarketOrder) (uint32, error) {
	return count(c, protocol.Insert, protocol.MarketOrder, samples, record.PackMarketOrder)
}

// ReplaceRegions - install a new region set, returns its size
func (c *Client) ReplaceRegions(ids []uint32) (uint32, error) {
	return count(c, protocol.Insert, protocol.Region, ids, packed.PackUint32)
}

// Delete - remove records keyed by a u32 id
func (c *Client) Delete(kind protocol.CacheKind, ids []uint32) (uint32, error) {
	return count(c, protocol.Delete, kind, ids, packed.PackUint32)
}

// DeleteOrderInfos - remove order metadata
func (c *Client) DeleteOrderInfos(orderIds []uint64) (uint32, error) {
	return count(c, protocol.Delete, protocol.MarketOrderInfo, orderIds, packed.PackUint64)
}

// Commit - publish staged market history
func (c *Client) Commit() error {
	_, err := c.call(header(protocol.Update, protocol.MarketOrder), nil, func(src packed.Source) error {
		_, err := packed.Uint8(src)
		return err
	})
	return err
}
