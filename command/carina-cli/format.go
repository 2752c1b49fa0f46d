// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/record"
)

// exact decimal output of floating point fields
type itemDisplay struct {
	ItemId uint32          `json:"item_id"`
	Volume decimal.Decimal `json:"volume"`
}

type stationDisplay struct {
	StationId uint32          `json:"station_id"`
	RegionId  uint32          `json:"region_id"`
	SystemId  uint32          `json:"system_id"`
	Security  decimal.Decimal `json:"security"`
}

type orderInfoDisplay struct {
	OrderId     uint64          `json:"order_id"`
	ItemId      uint32          `json:"item_id"`
	LocationId  uint64          `json:"location_id"`
	SystemId    uint32          `json:"system_id"`
	IsBuyOrder  bool            `json:"is_buy_order"`
	Price       decimal.Decimal `json:"price"`
	VolumeTotal uint32          `json:"volume_total"`
	Value       decimal.Decimal `json:"value"`
	Issued      string          `json:"issued"`
	Expire      string          `json:"expire"`
}

type tickDisplay struct {
	Timestamp uint64                    `json:"timestamp"`
	Time      string                    `json:"time"`
	Total     uint64                    `json:"total"`
	Orders    []marketorder.OrderVolume `json:"orders"`
}

func formatTime(milliseconds uint64) string {
	return time.UnixMilli(int64(milliseconds)).UTC().Format(time.RFC3339)
}

func formatItem(r record.Item) itemDisplay {
	return itemDisplay{
		ItemId: r.ItemId,
		Volume: decimal.NewFromFloat32(r.Volume),
	}
}

func formatStation(r record.Station) stationDisplay {
	return stationDisplay{
		StationId: r.StationId,
		RegionId:  r.RegionId,
		SystemId:  r.SystemId,
		Security:  decimal.NewFromFloat32(r.Security).Round(2),
	}
}

func formatOrderInfo(r record.MarketOrderInfo) orderInfoDisplay {
	price := decimal.NewFromFloat32(r.Price).Round(2)
	return orderInfoDisplay{
		OrderId:     r.OrderId,
		ItemId:      r.ItemId,
		LocationId:  r.LocationId,
		SystemId:    r.SystemId,
		IsBuyOrder:  r.IsBuyOrder,
		Price:       price,
		VolumeTotal: r.VolumeTotal,
		Value:       price.Mul(decimal.NewFromInt(int64(r.VolumeTotal))),
		Issued:      formatTime(r.Issued),
		Expire:      formatTime(r.Expire),
	}
}

func formatHistory(ticks []marketorder.TickOrders) []tickDisplay {
	display := make([]tickDisplay, 0, len(ticks))
	for _, t := range ticks {
		total := uint64(0)
		for _, o := range t.Orders {
			total += uint64(o.Volume)
		}
		display = append(display, tickDisplay{
			Timestamp: t.Timestamp,
			Time:      formatTime(t.Timestamp),
			Total:     total,
			Orders:    t.Orders,
		})
	}
	return display
}
