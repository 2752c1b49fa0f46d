// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder

import (
	"fmt"
	"sort"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/record"
)

// OrderVolume - remaining volume of one order at a tick
type OrderVolume struct {
	OrderId uint64 `json:"order_id"`
	Volume  uint32 `json:"volume"`
}

// TickOrders - every live order of an item at one tick
type TickOrders struct {
	Timestamp uint64        `json:"timestamp"`
	Orders    []OrderVolume `json:"orders"`
}

// Fetch - rebuild the order book volumes of an item at every tick
// from start to stop inclusive
//
// both bounds are aligned down to the grid. An order contributes the
// volume of its latest observation at or before the tick, or zero if
// it has none yet, and disappears once the tick is past its expiry.
// Orders without metadata are treated as live: an order missing from
// the info source is kept with its forward filled volume instead of
// being dropped from the book. Returns false if the item has no
// committed history.
//
// cached responses are keyed by the commit generation and the info
// source version read before the history, so a result computed
// across a commit or a metadata change is never served afterwards
func (s *Store) Fetch(itemId uint32, start uint64, stop uint64) ([]TickOrders, bool, error) {
	start = AlignTimestamp(start)
	stop = AlignTimestamp(stop)
	if start > stop {
		return nil, false, fault.InvalidRange
	}
	if (stop-start)/Tick >= MaximumTicks {
		return nil, false, fault.RangeTooWide
	}

	cacheKey := ""
	if nil != s.responses {
		infoVersion := uint64(0)
		if nil != s.info {
			infoVersion = s.info.Version()
		}
		cacheKey = fmt.Sprintf("%d:%d:%d:%d:%d", itemId, start, stop, s.generation.Load(), infoVersion)
		if cached, ok := s.responses.Get(cacheKey); ok {
			return cached.([]TickOrders), true, nil
		}
	}

	// copy the lists of this item only, the reconstruction then runs
	// without holding the read side
	var byOrder orders
	found := false
	s.history.Read(func(h history) {
		o, ok := h[itemId]
		if !ok {
			return
		}
		found = true
		byOrder = make(orders, len(o))
		for orderId, list := range o {
			byOrder[orderId] = append([]record.Observation(nil), list...)
		}
	})
	if !found {
		return nil, false, nil
	}

	orderIds := make([]uint64, 0, len(byOrder))
	for orderId := range byOrder {
		orderIds = append(orderIds, orderId)
	}
	sort.Slice(orderIds, func(i, j int) bool { return orderIds[i] < orderIds[j] })

	expiries := map[uint64]uint64{}
	if nil != s.info {
		expiries = s.info.Expiries(orderIds)
	}

	result := reconstruct(byOrder, orderIds, expiries, start, stop)

	if nil != s.responses {
		s.responses.SetDefault(cacheKey, result)
	}
	return result, true, nil
}

// walk the ticks once, keeping a cursor per order that points past the
// last observation at or before the current tick
func reconstruct(byOrder orders, orderIds []uint64, expiries map[uint64]uint64, start uint64, stop uint64) []TickOrders {
	cursor := make([]int, len(orderIds))
	result := make([]TickOrders, 0, (stop-start)/Tick+1)

	for t := start; t <= stop; t += Tick {
		entries := make([]OrderVolume, 0, len(orderIds))
		for i, orderId := range orderIds {
			list := byOrder[orderId]
			for cursor[i] < len(list) && list[cursor[i]].Timestamp <= t {
				cursor[i] += 1
			}

			if expire, ok := expiries[orderId]; ok && expire < t {
				continue
			}

			volume := uint32(0)
			if cursor[i] > 0 {
				volume = list[cursor[i]-1].Volume
			}
			entries = append(entries, OrderVolume{
				OrderId: orderId,
				Volume:  volume,
			})
		}
		result = append(result, TickOrders{
			Timestamp: t,
			Orders:    entries,
		})

		// stop would overflow on the last tick of the range
		if stop-t < Tick {
			break
		}
	}
	return result
}
