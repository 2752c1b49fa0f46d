// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
	"github.com/lholznagel/caph-sub001/record"
)

func (d *Dispatcher) marketOrder(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.MarketOrders
	switch action {
	case protocol.Fetch:
		return d.fetchMarketOrder(s, body, w)

	case protocol.Insert:
		samples, err := packed.ReadSequence(body, record.UnpackMarketOrder)
		if nil != err {
			return err
		}
		result := s.Insert(samples)
		ok(w)
		w.Uint32(uint32(result.Appended))
		return nil

	case protocol.Update:
		s.Commit()
		ok(w)
		w.Uint8(1)
		return nil

	case protocol.Lookup:
		ok(w)
		packed.WriteSequence(w, s.ItemIds(), packed.PackUint32)
		return nil

	default:
		return unsupported(action, protocol.MarketOrder)
	}
}

func (d *Dispatcher) fetchMarketOrder(s *marketorder.Store, body packed.Source, w *packed.Writer) error {
	mode, err := packed.Uint8(body)
	if nil != err {
		return err
	}

	switch protocol.FetchMode(mode) {
	case protocol.FetchHistory:
		itemId, err := packed.Uint32(body)
		if nil != err {
			return err
		}
		start, err := packed.Uint64(body)
		if nil != err {
			return err
		}
		stop, err := packed.Uint64(body)
		if nil != err {
			return err
		}

		ticks, found, err := s.Fetch(itemId, start, stop)
		if fault.IsErrInvalid(err) {
			d.log.Debugf("history: item: %d  error: %s", itemId, err)
			failed(w, err)
			return nil
		}
		if nil != err {
			return err
		}
		if !found {
			empty(w)
			return nil
		}
		ok(w)
		packed.WriteSequence(w, ticks, marketorder.PackTickOrders)
		return nil

	case protocol.FetchCurrent:
		orderId, err := packed.Uint64(body)
		if nil != err {
			return err
		}
		sample, found := s.Current(orderId)
		if !found {
			empty(w)
			return nil
		}
		ok(w)
		record.PackMarketOrder(w, sample)
		return nil

	case protocol.FetchLatest:
		itemId, err := packed.Uint32(body)
		if nil != err {
			return err
		}
		ok(w)
		packed.WriteSequence(w, s.Latest(itemId), record.PackMarketOrder)
		return nil

	case protocol.FetchRaw:
		itemId, err := packed.Uint32(body)
		if nil != err {
			return err
		}
		raw, found := s.Raw(itemId)
		if !found {
			empty(w)
			return nil
		}
		ok(w)
		packed.WriteSequence(w, raw, marketorder.PackOrderHistory)
		return nil

	default:
		return fault.UnknownFetchMode
	}
}
