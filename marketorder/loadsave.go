// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder

import (
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/record"
	"github.com/lholznagel/caph-sub001/snapshot"
)

// file layout:
//
//   u32 item count
//   per item:  u32 item id, u32 order count
//   per order: u32 observation count, then the observations
//
// the order id is taken from the observations, empty lists are never written

// Load - replace the committed history with the snapshot file
//
// staged inserts are discarded, an absent or empty file gives an
// empty history
func (s *Store) Load() error {
	log := s.log

	data, err := snapshot.ReadFile(s.fileName)
	if nil != err {
		log.Errorf("load: %s  error: %s", s.fileName, err)
		return err
	}

	loaded := make(history, itemCapacity)
	if 0 != len(data) {
		loaded, err = decodeHistory(data)
		if nil != err {
			log.Errorf("load: %s  error: %s", s.fileName, err)
			return err
		}
	}

	s.history.Write(func(history) history {
		return loaded
	})
	s.Commit()

	log.Infof("loaded: %d items from: %s", len(loaded), s.fileName)
	return nil
}

// Save - write the committed history to the snapshot file
func (s *Store) Save() error {
	log := s.log
	log.Info("saving…")

	w := packed.NewWriter(1024 * 1024)
	items := 0
	s.history.Read(func(h history) {
		items = len(h)
		encodeHistory(w, h)
	})
	if nil != w.Err() {
		log.Errorf("save: encode error: %s", w.Err())
		return fault.Wrap(fault.SnapshotWriteFailed, w.Err())
	}

	err := snapshot.WriteFile(s.fileName, w.Bytes())
	if nil != err {
		log.Errorf("save: %s  error: %s", s.fileName, err)
		return err
	}

	log.Infof("save completed: %d items to: %s", items, s.fileName)
	return nil
}

func encodeHistory(w *packed.Writer, h history) {
	w.Count(len(h))
	for itemId, byOrder := range h {
		w.Uint32(itemId)
		w.Count(len(byOrder))
		for _, list := range byOrder {
			packed.WriteSequence(w, list, record.PackObservation)
		}
	}
}

func decodeHistory(data []byte) (history, error) {
	u := packed.NewUnpacker(data)

	items, err := packed.Count(u)
	if nil != err {
		return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
	}

	h := make(history, items)
	for i := 0; i < items; i += 1 {
		itemId, err := packed.Uint32(u)
		if nil != err {
			return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
		}
		count, err := packed.Count(u)
		if nil != err {
			return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
		}
		byOrder := make(orders, count)
		for j := 0; j < count; j += 1 {
			list, err := packed.ReadSequence(u, record.UnpackObservation)
			if nil != err {
				return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
			}
			if 0 == len(list) {
				continue
			}
			byOrder[list[0].OrderId] = list
		}
		h[itemId] = byOrder
	}
	if 0 != u.Remaining() {
		return nil, fault.Wrap(fault.SnapshotFileCorrupt, fault.TrailingData)
	}
	return h, nil
}
