// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/packed"
)

// Options - everything that differs between the kinds of store
type Options[K comparable, V any] struct {
	Name     string // logger channel and snapshot name
	FileName string // relative to the snapshot directory
	Capacity int

	Key    func(V) K
	Equal  func(V, V) bool
	Pack   func(*packed.Writer, V)
	Unpack func(packed.Source) (V, error)
}

// Store - one map per kind of record
type Store[K comparable, V any] struct {
	sync.RWMutex
	items   map[K]V
	version uint64

	// serialises Insert, Delete, Replace and Load
	writer sync.Mutex

	options  Options[K, V]
	fileName string
	log      *logger.L
}

// Comparable - equality for records that have no slices or floats
func Comparable[V comparable](a V, b V) bool {
	return a == b
}

// New - create an empty store backed by a file in directory
func New[K comparable, V any](directory string, options Options[K, V]) *Store[K, V] {
	return &Store[K, V]{
		items:    make(map[K]V, options.Capacity),
		options:  options,
		fileName: filepath.Join(directory, options.FileName),
		log:      logger.New(options.Name),
	}
}

// Name - of the store
func (s *Store[K, V]) Name() string {
	return s.options.Name
}

// FileName - absolute path of the snapshot file
func (s *Store[K, V]) FileName() string {
	return s.fileName
}

// Get - point lookup
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.RLock()
	defer s.RUnlock()

	value, ok := s.items[key]
	return value, ok
}

// GetMany - every value that exists for the keys, in key order
func (s *Store[K, V]) GetMany(keys []K) []V {
	s.RLock()
	defer s.RUnlock()

	values := make([]V, 0, len(keys))
	for _, key := range keys {
		if value, ok := s.items[key]; ok {
			values = append(values, value)
		}
	}
	return values
}

// Items - copy of the whole map
func (s *Store[K, V]) Items() map[K]V {
	s.RLock()
	defer s.RUnlock()

	m := make(map[K]V, len(s.items))
	for k, v := range s.items {
		m[k] = v
	}
	return m
}

// Keys - all keys, unordered
func (s *Store[K, V]) Keys() []K {
	s.RLock()
	defer s.RUnlock()

	keys := make([]K, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

// Size - number of records
func (s *Store[K, V]) Size() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.items)
}

// Version - incremented every time a new map is installed
func (s *Store[K, V]) Version() uint64 {
	s.RLock()
	defer s.RUnlock()

	return s.version
}

// Missing - the requested keys that are not present
//
// order follows the request and each key is reported once
func (s *Store[K, V]) Missing(keys []K) []K {
	s.RLock()
	defer s.RUnlock()

	missing := make([]K, 0)
	seen := make(map[K]struct{})
	for _, key := range keys {
		if _, ok := s.items[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, key)
	}
	return missing
}

// Insert - upsert a batch and return the number of keys changed
//
// a later record in the batch replaces an earlier one with the same key
// and only the last one is compared with the stored value
func (s *Store[K, V]) Insert(batch []V) int {
	s.writer.Lock()
	defer s.writer.Unlock()

	// only writers replace s.items and they are serialised by s.writer,
	// so the current map can be read without the shared lock
	current := s.items

	staged := make(map[K]V, len(batch))
	for _, value := range batch {
		staged[s.options.Key(value)] = value
	}

	changes := 0
	for key, value := range staged {
		if existing, ok := current[key]; ok && s.options.Equal(existing, value) {
			delete(staged, key)
			continue
		}
		changes += 1
	}

	if 0 == changes {
		return 0
	}

	next := make(map[K]V, len(current)+len(staged))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range staged {
		next[k] = v
	}
	s.install(next)

	s.log.Debugf("insert: batch: %d  changes: %d  size: %d", len(batch), changes, len(next))
	return changes
}

// InsertNew - add only the records whose key is not present yet
//
// used for records that never change once created, returns the
// number added
func (s *Store[K, V]) InsertNew(batch []V) int {
	s.writer.Lock()
	defer s.writer.Unlock()

	current := s.items

	staged := make(map[K]V)
	for _, value := range batch {
		key := s.options.Key(value)
		if _, ok := current[key]; ok {
			continue
		}
		if _, ok := staged[key]; ok {
			continue
		}
		staged[key] = value
	}

	if 0 == len(staged) {
		return 0
	}

	next := make(map[K]V, len(current)+len(staged))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range staged {
		next[k] = v
	}
	s.install(next)

	s.log.Debugf("insert new: batch: %d  added: %d  size: %d", len(batch), len(staged), len(next))
	return len(staged)
}

// Replace - install a completely new set of records
func (s *Store[K, V]) Replace(batch []V) int {
	s.writer.Lock()
	defer s.writer.Unlock()

	next := make(map[K]V, len(batch))
	for _, value := range batch {
		next[s.options.Key(value)] = value
	}
	s.install(next)

	s.log.Debugf("replace: size: %d", len(next))
	return len(next)
}

// Delete - remove keys and return the number actually removed
func (s *Store[K, V]) Delete(keys []K) int {
	s.writer.Lock()
	defer s.writer.Unlock()

	current := s.items

	removed := 0
	remove := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := current[key]; !ok {
			continue
		}
		if _, ok := remove[key]; ok {
			continue
		}
		remove[key] = struct{}{}
		removed += 1
	}

	if 0 == removed {
		return 0
	}

	next := make(map[K]V, len(current))
	for k, v := range current {
		if _, ok := remove[k]; !ok {
			next[k] = v
		}
	}
	s.install(next)

	s.log.Debugf("delete: removed: %d  size: %d", removed, len(next))
	return removed
}

// swap in a new map, caller holds s.writer
func (s *Store[K, V]) install(next map[K]V) {
	s.Lock()
	s.items = next
	s.version += 1
	s.Unlock()
}

// the published map, never modified so no lock is needed after return
func (s *Store[K, V]) published() map[K]V {
	s.RLock()
	defer s.RUnlock()

	return s.items
}
