// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder

import (
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/record"
)

func PackOrderVolume(w *packed.Writer, v OrderVolume) {
	w.Uint64(v.OrderId)
	w.Uint32(v.Volume)
}

func UnpackOrderVolume(src packed.Source) (OrderVolume, error) {
	var v OrderVolume
	var err error
	if v.OrderId, err = packed.Uint64(src); nil != err {
		return v, err
	}
	v.Volume, err = packed.Uint32(src)
	return v, err
}

func PackTickOrders(w *packed.Writer, t TickOrders) {
	w.Uint64(t.Timestamp)
	packed.WriteSequence(w, t.Orders, PackOrderVolume)
}

func UnpackTickOrders(src packed.Source) (TickOrders, error) {
	var t TickOrders
	var err error
	if t.Timestamp, err = packed.Uint64(src); nil != err {
		return t, err
	}
	t.Orders, err = packed.ReadSequence(src, UnpackOrderVolume)
	return t, err
}

func PackOrderHistory(w *packed.Writer, h OrderHistory) {
	w.Uint64(h.OrderId)
	packed.WriteSequence(w, h.Observations, record.PackObservation)
}

func UnpackOrderHistory(src packed.Source) (OrderHistory, error) {
	var h OrderHistory
	var err error
	if h.OrderId, err = packed.Uint64(src); nil != err {
		return h, err
	}
	h.Observations, err = packed.ReadSequence(src, record.UnpackObservation)
	return h, err
}
