// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/record"
)

// the concrete stores
type (
	Blueprints = Store[uint32, record.Blueprint]
	IdNames    = Store[uint32, record.IdName]
	Items      = Store[uint32, record.Item]
	Materials  = Store[uint32, record.Materials]
	OrderInfos = Store[uint64, record.MarketOrderInfo]
	Regions    = Store[uint32, uint32]
	Stations   = Store[uint32, record.Station]
)

// initial sizes
const (
	blueprintCapacity = 40_000
	idNameCapacity    = 425_000
	itemCapacity      = 45_000
	materialCapacity  = 45_000
	orderInfoCapacity = 1_000_000
	regionCapacity    = 50
	stationCapacity   = 6_000
)

func NewBlueprints(directory string) *Blueprints {
	return New(directory, Options[uint32, record.Blueprint]{
		Name:     "blueprints",
		FileName: "blueprints.carina",
		Capacity: blueprintCapacity,
		Key:      record.BlueprintKey,
		Equal:    record.EqualBlueprint,
		Pack:     record.PackBlueprint,
		Unpack:   record.UnpackBlueprint,
	})
}

func NewIdNames(directory string) *IdNames {
	return New(directory, Options[uint32, record.IdName]{
		Name:     "id_names",
		FileName: "id_names.carina",
		Capacity: idNameCapacity,
		Key:      record.IdNameKey,
		Equal:    Comparable[record.IdName],
		Pack:     record.PackIdName,
		Unpack:   record.UnpackIdName,
	})
}

func NewItems(directory string) *Items {
	return New(directory, Options[uint32, record.Item]{
		Name:     "items",
		FileName: "items.carina",
		Capacity: itemCapacity,
		Key:      record.ItemKey,
		Equal:    record.EqualItem,
		Pack:     record.PackItem,
		Unpack:   record.UnpackItem,
	})
}

func NewMaterials(directory string) *Materials {
	return New(directory, Options[uint32, record.Materials]{
		Name:     "item_materials",
		FileName: "item_materials.carina",
		Capacity: materialCapacity,
		Key:      record.MaterialsKey,
		Equal:    record.EqualMaterials,
		Pack:     record.PackMaterials,
		Unpack:   record.UnpackMaterials,
	})
}

func NewOrderInfos(directory string) *OrderInfos {
	return New(directory, Options[uint64, record.MarketOrderInfo]{
		Name:     "market_order_infos",
		FileName: "market_order_infos.carina",
		Capacity: orderInfoCapacity,
		Key:      record.MarketOrderInfoKey,
		Equal:    Comparable[record.MarketOrderInfo],
		Pack:     record.PackMarketOrderInfo,
		Unpack:   record.UnpackMarketOrderInfo,
	})
}

func NewRegions(directory string) *Regions {
	return New(directory, Options[uint32, uint32]{
		Name:     "regions",
		FileName: "regions.carina",
		Capacity: regionCapacity,
		Key:      func(id uint32) uint32 { return id },
		Equal:    Comparable[uint32],
		Pack:     packed.PackUint32,
		Unpack:   packed.Uint32,
	})
}

func NewStations(directory string) *Stations {
	return New(directory, Options[uint32, record.Station]{
		Name:     "stations",
		FileName: "stations.carina",
		Capacity: stationCapacity,
		Key:      record.StationKey,
		Equal:    record.EqualStation,
		Pack:     record.PackStation,
		Unpack:   record.UnpackStation,
	})
}
