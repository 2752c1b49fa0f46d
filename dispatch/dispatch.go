// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - route a decoded header to one operation of one store
package dispatch

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/cache"
	"github.com/lholznagel/caph-sub001/counter"
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/protocol"
)

// Stores - one store for every cache kind
type Stores struct {
	Blueprints   *cache.Blueprints
	IdNames      *cache.IdNames
	Items        *cache.Items
	Materials    *cache.Materials
	OrderInfos   *cache.OrderInfos
	Regions      *cache.Regions
	Stations     *cache.Stations
	MarketOrders *marketorder.Store
}

// NewStores - every store with its snapshot file in directory
func NewStores(directory string, market marketorder.Options) *Stores {
	orderInfos := cache.NewOrderInfos(directory)
	return &Stores{
		Blueprints:   cache.NewBlueprints(directory),
		IdNames:      cache.NewIdNames(directory),
		Items:        cache.NewItems(directory),
		Materials:    cache.NewMaterials(directory),
		OrderInfos:   orderInfos,
		Regions:      cache.NewRegions(directory),
		Stations:     cache.NewStations(directory),
		MarketOrders: marketorder.New(directory, marketorder.NewCachedInfo(orderInfos), market),
	}
}

// highest action and kind values, sizes the request counters
const (
	actionCount = int(protocol.Lookup) + 1
	kindCount   = int(protocol.Station) + 1
)

// Dispatcher - executes requests against the stores
type Dispatcher struct {
	stores   *Stores
	requests [actionCount][kindCount]counter.Counter
	log      *logger.L
}

// New - dispatcher over a set of stores
func New(stores *Stores) *Dispatcher {
	return &Dispatcher{
		stores: stores,
		log:    logger.New("dispatch"),
	}
}

// Handle - decode the body for header from body, run the operation
// and write the complete response to w
//
// a returned error means the request could not be understood and the
// connection should be closed, w must then be discarded
func (d *Dispatcher) Handle(header protocol.Header, body packed.Source, w *packed.Writer) error {
	d.log.Debugf("request: %s", header)

	var err error
	switch header.Kind {
	case protocol.Blueprint:
		err = d.blueprint(header.Action, body, w)
	case protocol.IdName:
		err = d.idName(header.Action, body, w)
	case protocol.Item:
		err = d.item(header.Action, body, w)
	case protocol.ItemMaterial:
		err = d.itemMaterial(header.Action, body, w)
	case protocol.MarketOrder:
		err = d.marketOrder(header.Action, body, w)
	case protocol.MarketOrderInfo:
		err = d.marketOrderInfo(header.Action, body, w)
	case protocol.Region:
		err = d.region(header.Action, body, w)
	case protocol.Station:
		err = d.station(header.Action, body, w)
	default:
		err = fault.UnknownCacheKind
	}
	if nil != err {
		return err
	}

	d.requests[header.Action][header.Kind].Increment()
	return w.Err()
}

// Stats - number of completed requests per header, pairs never
// requested are omitted
func (d *Dispatcher) Stats() map[string]uint64 {
	stats := make(map[string]uint64)
	for a := 0; a < actionCount; a += 1 {
		for k := 0; k < kindCount; k += 1 {
			n := d.requests[a][k].Uint64()
			if 0 == n {
				continue
			}
			h := protocol.Header{Action: protocol.Action(a), Kind: protocol.CacheKind(k)}
			stats[h.String()] = n
		}
	}
	return stats
}

func ok(w *packed.Writer) {
	w.Uint8(uint8(protocol.StatusOk))
}

func empty(w *packed.Writer) {
	w.Uint8(uint8(protocol.StatusEmpty))
}

// request level failure, the connection stays usable
func failed(w *packed.Writer, err error) {
	w.Uint8(uint8(protocol.StatusError))
	w.String(err.Error())
}

func unsupported(action protocol.Action, kind protocol.CacheKind) error {
	return fault.Wrap(fault.UnsupportedOperation, fmt.Errorf("%s/%s", action, kind))
}
