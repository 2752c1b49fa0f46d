// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder

import (
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/lholznagel/caph-sub001/leftright"
	"github.com/lholznagel/caph-sub001/record"
)

// Tick - width of a history bucket in milliseconds
const Tick uint64 = 30 * 60 * 1000

// MaximumTicks - widest range a single fetch may cover
const MaximumTicks = 10_000

// initial sizes
const (
	itemCapacity    = 20_000
	currentCapacity = 1_000_000
)

// FileName - snapshot file of the history
const FileName = "market_orders.carina"

type orders map[uint64][]record.Observation
type history map[uint32]orders

// Options - behaviour switches
type Options struct {
	AutoCommit    bool          // commit after every insert batch
	ResponseCache time.Duration // lifetime of reconstructed responses, 0 for none
}

// Store - history and current snapshot of market orders
type Store struct {
	history    *leftright.T[history]
	generation atomic.Uint64 // bumped after every commit

	mutex   sync.Mutex
	current map[uint64]record.MarketOrder

	info      InfoSource
	responses *gocache.Cache
	options   Options
	fileName  string
	log       *logger.L
}

// InsertResult - what happened to an insert batch
type InsertResult struct {
	Samples  int // samples received
	Appended int // new observations
	Merged   int // observations whose volume was replaced on the same tick
	Dropped  int // samples older than the last recorded tick
}

// AlignTimestamp - floor to the previous 30 minute mark
func AlignTimestamp(timestamp uint64) uint64 {
	return timestamp - timestamp%Tick
}

// New - empty store in directory that asks info for expiry times
func New(directory string, info InfoSource, options Options) *Store {
	s := &Store{
		history:  leftright.New(make(history, itemCapacity), cloneHistory),
		current:  make(map[uint64]record.MarketOrder, currentCapacity),
		info:     info,
		options:  options,
		fileName: filepath.Join(directory, FileName),
		log:      logger.New("marketorder"),
	}
	if options.ResponseCache > 0 {
		s.responses = gocache.New(options.ResponseCache, 2*options.ResponseCache)
	}
	return s
}

// Name - of the store
func (s *Store) Name() string {
	return "market_orders"
}

// FileName - absolute path of the snapshot file
func (s *Store) FileName() string {
	return s.fileName
}

// Insert - record a batch of raw samples
//
// the history changes are staged until Commit unless the store was
// created with AutoCommit, the current snapshot is replaced at once
func (s *Store) Insert(samples []record.MarketOrder) InsertResult {
	result := InsertResult{
		Samples: len(samples),
	}

	staged := mergeBatch(samples)

	s.history.Write(func(h history) history {
		for itemId, batch := range staged {
			byOrder, ok := h[itemId]
			if !ok {
				byOrder = make(orders, len(batch))
				h[itemId] = byOrder
			}
			for orderId, observations := range batch {
				list := byOrder[orderId]
				for _, o := range observations {
					var outcome int
					list, outcome = appendObservation(list, o)
					switch outcome {
					case appended:
						result.Appended += 1
					case merged:
						result.Merged += 1
					case dropped:
						result.Dropped += 1
					}
				}
				if 0 != len(list) {
					byOrder[orderId] = list
				} else {
					delete(byOrder, orderId)
				}
			}
		}
		return h
	})

	current := make(map[uint64]record.MarketOrder, len(samples))
	for _, sample := range samples {
		if previous, ok := current[sample.OrderId]; ok && previous.Timestamp > sample.Timestamp {
			continue
		}
		current[sample.OrderId] = sample
	}
	s.mutex.Lock()
	s.current = current
	s.mutex.Unlock()

	s.log.Debugf("insert: samples: %d  appended: %d  merged: %d  dropped: %d", result.Samples, result.Appended, result.Merged, result.Dropped)

	if s.options.AutoCommit {
		s.Commit()
	}
	return result
}

// Commit - publish staged history changes to readers
func (s *Store) Commit() {
	s.history.Commit()
	s.generation.Add(1)
	if nil != s.responses {
		s.responses.Flush()
	}
	s.log.Debug("committed")
}

// Pending - true if there are inserts not yet committed
func (s *Store) Pending() bool {
	return s.history.Pending()
}

// Current - latest sample of an order from the most recent batch
func (s *Store) Current(orderId uint64) (record.MarketOrder, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sample, ok := s.current[orderId]
	return sample, ok
}

// Latest - every sample of the most recent batch for an item,
// ascending by order id
func (s *Store) Latest(itemId uint32) []record.MarketOrder {
	s.mutex.Lock()
	samples := make([]record.MarketOrder, 0)
	for _, sample := range s.current {
		if itemId == sample.ItemId {
			samples = append(samples, sample)
		}
	}
	s.mutex.Unlock()

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].OrderId < samples[j].OrderId
	})
	return samples
}

// OrderHistory - all observations of one order
type OrderHistory struct {
	OrderId      uint64               `json:"order_id"`
	Observations []record.Observation `json:"observations"`
}

// Raw - committed observations of every order of an item, ascending
// by order id
func (s *Store) Raw(itemId uint32) ([]OrderHistory, bool) {
	var result []OrderHistory
	found := false
	s.history.Read(func(h history) {
		byOrder, ok := h[itemId]
		if !ok {
			return
		}
		found = true
		result = make([]OrderHistory, 0, len(byOrder))
		for orderId, list := range byOrder {
			result = append(result, OrderHistory{
				OrderId:      orderId,
				Observations: append([]record.Observation(nil), list...),
			})
		}
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderId < result[j].OrderId
	})
	return result, found
}

// ItemIds - items with committed history, ascending
func (s *Store) ItemIds() []uint32 {
	ids := leftright.ReadValue(s.history, func(h history) []uint32 {
		ids := make([]uint32, 0, len(h))
		for id := range h {
			ids = append(ids, id)
		}
		return ids
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Size - number of items with committed history
func (s *Store) Size() int {
	return leftright.ReadValue(s.history, func(h history) int { return len(h) })
}

// outcomes of adding one observation
const (
	unchanged = iota
	appended
	merged
	dropped
)

// add an observation to the end of the list of one order
func appendObservation(list []record.Observation, o record.Observation) ([]record.Observation, int) {
	n := len(list)
	if 0 == n {
		return append(list, o), appended
	}
	last := list[n-1]
	switch {
	case o.Timestamp < last.Timestamp:
		return list, dropped

	case o.Timestamp == last.Timestamp:
		if o.Volume == last.Volume {
			return list, unchanged
		}
		// the replaced value may now repeat its predecessor
		if n > 1 && list[n-2].Volume == o.Volume {
			return list[:n-1], merged
		}
		list[n-1].Volume = o.Volume
		return list, merged

	default:
		if o.Volume == last.Volume {
			return list, unchanged
		}
		return append(list, o), appended
	}
}

// group a batch by item and order, align to the grid, collapse samples
// of the same order on the same tick (last one wins) and sort each
// order's samples by time
func mergeBatch(samples []record.MarketOrder) map[uint32]orders {
	type key struct {
		itemId    uint32
		orderId   uint64
		timestamp uint64
	}
	position := make(map[key]int, len(samples))
	staged := make(map[uint32]orders)

	for _, sample := range samples {
		o := record.Observation{
			OrderId:   sample.OrderId,
			Timestamp: AlignTimestamp(sample.Timestamp),
			Volume:    sample.VolumeRemain,
		}
		byOrder, ok := staged[sample.ItemId]
		if !ok {
			byOrder = make(orders)
			staged[sample.ItemId] = byOrder
		}
		k := key{itemId: sample.ItemId, orderId: o.OrderId, timestamp: o.Timestamp}
		if i, ok := position[k]; ok {
			byOrder[o.OrderId][i].Volume = o.Volume
			continue
		}
		position[k] = len(byOrder[o.OrderId])
		byOrder[o.OrderId] = append(byOrder[o.OrderId], o)
	}

	for _, byOrder := range staged {
		for _, list := range byOrder {
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Timestamp < list[j].Timestamp
			})
		}
	}
	return staged
}

func cloneHistory(h history) history {
	c := make(history, len(h))
	for itemId, byOrder := range h {
		o := make(orders, len(byOrder))
		for orderId, list := range byOrder {
			o[orderId] = append([]record.Observation(nil), list...)
		}
		c[itemId] = o
	}
	return c
}
