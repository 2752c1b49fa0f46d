// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/snapshot"
)

// Load - replace the contents of the store with its snapshot file
//
// an absent or empty file gives an empty store
func (s *Store[K, V]) Load() error {
	s.writer.Lock()
	defer s.writer.Unlock()

	log := s.log

	data, err := snapshot.ReadFile(s.fileName)
	if nil != err {
		log.Errorf("load: %s  error: %s", s.fileName, err)
		return err
	}

	items := make(map[K]V, s.options.Capacity)
	if 0 != len(data) {
		items, err = s.decode(data)
		if nil != err {
			log.Errorf("load: %s  error: %s", s.fileName, err)
			return err
		}
	}

	s.install(items)

	log.Infof("loaded: %d records from: %s", len(items), s.fileName)
	return nil
}

// Save - write the current map to the snapshot file
func (s *Store[K, V]) Save() error {
	log := s.log
	log.Info("saving…")

	items := s.published()

	w := packed.NewWriter(64 * (len(items) + 1))
	w.Count(len(items))
	for _, value := range items {
		s.options.Pack(w, value)
	}
	if nil != w.Err() {
		log.Errorf("save: encode error: %s", w.Err())
		return fault.Wrap(fault.SnapshotWriteFailed, w.Err())
	}

	err := snapshot.WriteFile(s.fileName, w.Bytes())
	if nil != err {
		log.Errorf("save: %s  error: %s", s.fileName, err)
		return err
	}

	log.Infof("save completed: %d records to: %s", len(items), s.fileName)
	return nil
}

func (s *Store[K, V]) decode(data []byte) (map[K]V, error) {
	u := packed.NewUnpacker(data)
	n, err := packed.Count(u)
	if nil != err {
		return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
	}

	capacity := s.options.Capacity
	if n > capacity {
		capacity = n
	}
	items := make(map[K]V, capacity)
	for i := 0; i < n; i += 1 {
		value, err := s.options.Unpack(u)
		if nil != err {
			return nil, fault.Wrap(fault.SnapshotFileCorrupt, err)
		}
		items[s.options.Key(value)] = value
	}
	if 0 != u.Remaining() {
		return nil, fault.Wrap(fault.SnapshotFileCorrupt, fault.TrailingData)
	}
	return items, nil
}
