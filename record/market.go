// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/lholznagel/caph-sub001/packed"
)

// MarketOrderInfo - the immutable part of a market order
//
// timestamps are milliseconds since the unix epoch
type MarketOrderInfo struct {
	OrderId     uint64  `json:"order_id" yaml:"order_id"`
	Issued      uint64  `json:"issued" yaml:"issued"`
	Expire      uint64  `json:"expire" yaml:"expire"`
	VolumeTotal uint32  `json:"volume_total" yaml:"volume_total"`
	SystemId    uint32  `json:"system_id" yaml:"system_id"`
	ItemId      uint32  `json:"item_id" yaml:"item_id"`
	LocationId  uint64  `json:"location_id" yaml:"location_id"`
	Price       float32 `json:"price" yaml:"price"`
	IsBuyOrder  bool    `json:"is_buy_order" yaml:"is_buy_order"`
}

// MarketOrder - one raw sample of an order as delivered by a collector
type MarketOrder struct {
	OrderId      uint64 `json:"order_id" yaml:"order_id"`
	ItemId       uint32 `json:"item_id" yaml:"item_id"`
	Timestamp    uint64 `json:"timestamp" yaml:"timestamp"`
	VolumeRemain uint32 `json:"volume_remain" yaml:"volume_remain"`
}

// Observation - remaining volume of an order at a tick
type Observation struct {
	OrderId   uint64 `json:"order_id"`
	Timestamp uint64 `json:"timestamp"`
	Volume    uint32 `json:"volume"`
}

// MarketOrderInfoKey - cache key of an order's metadata
func MarketOrderInfoKey(r MarketOrderInfo) uint64 { return r.OrderId }

func PackMarketOrderInfo(w *packed.Writer, r MarketOrderInfo) {
	w.Uint64(r.OrderId)
	w.Uint64(r.Issued)
	w.Uint64(r.Expire)
	w.Uint32(r.VolumeTotal)
	w.Uint32(r.SystemId)
	w.Uint32(r.ItemId)
	w.Uint64(r.LocationId)
	w.Float32(r.Price)
	w.Bool(r.IsBuyOrder)
}

func UnpackMarketOrderInfo(src packed.Source) (MarketOrderInfo, error) {
	var r MarketOrderInfo
	var err error
	if r.OrderId, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.Issued, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.Expire, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.VolumeTotal, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.SystemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.LocationId, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.Price, err = packed.Float32(src); nil != err {
		return r, err
	}
	r.IsBuyOrder, err = packed.Bool(src)
	return r, err
}

func PackMarketOrder(w *packed.Writer, r MarketOrder) {
	w.Uint64(r.OrderId)
	w.Uint32(r.ItemId)
	w.Uint64(r.Timestamp)
	w.Uint32(r.VolumeRemain)
}

func UnpackMarketOrder(src packed.Source) (MarketOrder, error) {
	var r MarketOrder
	var err error
	if r.OrderId, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.Timestamp, err = packed.Uint64(src); nil != err {
		return r, err
	}
	r.VolumeRemain, err = packed.Uint32(src)
	return r, err
}

func PackObservation(w *packed.Writer, r Observation) {
	w.Uint64(r.OrderId)
	w.Uint64(r.Timestamp)
	w.Uint32(r.Volume)
}

func UnpackObservation(src packed.Source) (Observation, error) {
	var r Observation
	var err error
	if r.OrderId, err = packed.Uint64(src); nil != err {
		return r, err
	}
	if r.Timestamp, err = packed.Uint64(src); nil != err {
		return r, err
	}
	r.Volume, err = packed.Uint32(src)
	return r, err
}
