// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sort"

	"github.com/lholznagel/caph-sub001/cache"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
	"github.com/lholznagel/caph-sub001/record"
)

// key: single record or Empty
func fetchOne[K comparable, V any](s *cache.Store[K, V], readKey func(packed.Source) (K, error), pack func(*packed.Writer, V), body packed.Source, w *packed.Writer) error {
	key, err := readKey(body)
	if nil != err {
		return err
	}
	value, found := s.Get(key)
	if !found {
		empty(w)
		return nil
	}
	ok(w)
	pack(w, value)
	return nil
}

// []record: u32 changes
func insertBatch[K comparable, V any](s *cache.Store[K, V], unpack func(packed.Source) (V, error), body packed.Source, w *packed.Writer) error {
	batch, err := packed.ReadSequence(body, unpack)
	if nil != err {
		return err
	}
	changes := s.Insert(batch)
	ok(w)
	w.Uint32(uint32(changes))
	return nil
}

// []key: u32 removed
func deleteKeys[K comparable, V any](s *cache.Store[K, V], readKey func(packed.Source) (K, error), body packed.Source, w *packed.Writer) error {
	keys, err := packed.ReadSequence(body, readKey)
	if nil != err {
		return err
	}
	removed := s.Delete(keys)
	ok(w)
	w.Uint32(uint32(removed))
	return nil
}

func (d *Dispatcher) blueprint(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.Blueprints
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint32, record.PackBlueprint, body, w)
	case protocol.Insert:
		return insertBatch(s, record.UnpackBlueprint, body, w)
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	default:
		return unsupported(action, protocol.Blueprint)
	}
}

func (d *Dispatcher) idName(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.IdNames
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint32, record.PackIdName, body, w)
	case protocol.Insert:
		return insertBatch(s, record.UnpackIdName, body, w)
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	case protocol.Lookup:
		// bulk fetch, only the names that exist are returned
		ids, err := packed.ReadSequence(body, packed.Uint32)
		if nil != err {
			return err
		}
		ok(w)
		packed.WriteSequence(w, s.GetMany(ids), record.PackIdName)
		return nil
	default:
		return unsupported(action, protocol.IdName)
	}
}

func (d *Dispatcher) item(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.Items
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint32, record.PackItem, body, w)
	case protocol.Insert:
		return insertBatch(s, record.UnpackItem, body, w)
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	default:
		return unsupported(action, protocol.Item)
	}
}

func (d *Dispatcher) itemMaterial(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.Materials
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint32, record.PackMaterials, body, w)
	case protocol.Insert:
		// uploaded flat, stored as one list per item
		flat, err := packed.ReadSequence(body, record.UnpackItemMaterial)
		if nil != err {
			return err
		}
		changes := s.Insert(record.GroupMaterials(flat))
		ok(w)
		w.Uint32(uint32(changes))
		return nil
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	default:
		return unsupported(action, protocol.ItemMaterial)
	}
}

func (d *Dispatcher) marketOrderInfo(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.OrderInfos
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint64, record.PackMarketOrderInfo, body, w)
	case protocol.Insert:
		// metadata of an order never changes, known orders are skipped
		batch, err := packed.ReadSequence(body, record.UnpackMarketOrderInfo)
		if nil != err {
			return err
		}
		added := s.InsertNew(batch)
		ok(w)
		w.Uint32(uint32(added))
		return nil
	case protocol.Delete:
		return deleteKeys(s, packed.Uint64, body, w)
	case protocol.Lookup:
		ids, err := packed.ReadSequence(body, packed.Uint64)
		if nil != err {
			return err
		}
		ok(w)
		packed.WriteSequence(w, s.Missing(ids), packed.PackUint64)
		return nil
	default:
		return unsupported(action, protocol.MarketOrderInfo)
	}
}

func (d *Dispatcher) region(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.Regions
	switch action {
	case protocol.Fetch:
		// the whole set, an empty set is still a valid answer
		ids := s.Keys()
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ok(w)
		packed.WriteSequence(w, ids, packed.PackUint32)
		return nil
	case protocol.Insert:
		ids, err := packed.ReadSequence(body, packed.Uint32)
		if nil != err {
			return err
		}
		size := s.Replace(ids)
		ok(w)
		w.Uint32(uint32(size))
		return nil
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	default:
		return unsupported(action, protocol.Region)
	}
}

func (d *Dispatcher) station(action protocol.Action, body packed.Source, w *packed.Writer) error {
	s := d.stores.Stations
	switch action {
	case protocol.Fetch:
		return fetchOne(s, packed.Uint32, record.PackStation, body, w)
	case protocol.Insert:
		return insertBatch(s, record.UnpackStation, body, w)
	case protocol.Delete:
		return deleteKeys(s, packed.Uint32, body, w)
	default:
		return unsupported(action, protocol.Station)
	}
}
