// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder

import (
	"github.com/lholznagel/caph-sub001/cache"
)

// InfoSource - supplies order expiry times for reconstruction
type InfoSource interface {
	// Expiries - expire timestamp for each known order, unknown
	// orders are absent from the result
	Expiries(orderIds []uint64) map[uint64]uint64

	// Version - changes whenever any expiry may have changed
	Version() uint64
}

// CachedInfo - InfoSource backed by the order metadata store
type CachedInfo struct {
	store *cache.OrderInfos
}

// NewCachedInfo - adapt the metadata store
func NewCachedInfo(store *cache.OrderInfos) *CachedInfo {
	return &CachedInfo{
		store: store,
	}
}

// Expiries - implements InfoSource
func (c *CachedInfo) Expiries(orderIds []uint64) map[uint64]uint64 {
	infos := c.store.GetMany(orderIds)
	expiries := make(map[uint64]uint64, len(infos))
	for _, info := range infos {
		expiries[info.OrderId] = info.Expire
	}
	return expiries
}

// Version - implements InfoSource
func (c *CachedInfo) Version() uint64 {
	return c.store.Version()
}
