// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"math"

	"github.com/lholznagel/caph-sub001/packed"
)

// Item - a type of thing with a packaged volume in m³
type Item struct {
	ItemId uint32  `json:"item_id" yaml:"item_id"`
	Volume float32 `json:"volume" yaml:"volume"`
}

// IdName - display name for any id (items, systems, characters...)
type IdName struct {
	ItemId uint32 `json:"item_id" yaml:"item_id"`
	Name   string `json:"name" yaml:"name"`
}

// ItemMaterial - one material recovered by reprocessing an item
type ItemMaterial struct {
	ItemId     uint32 `json:"item_id" yaml:"item_id"`
	MaterialId uint32 `json:"material_id" yaml:"material_id"`
	Quantity   uint32 `json:"quantity" yaml:"quantity"`
}

// Station - a dockable location and where it is
type Station struct {
	StationId uint32  `json:"station_id" yaml:"station_id"`
	RegionId  uint32  `json:"region_id" yaml:"region_id"`
	SystemId  uint32  `json:"system_id" yaml:"system_id"`
	Security  float32 `json:"security" yaml:"security"`
}

// EqualItem - compares the volume by its bits so a NaN equals itself
// and a re-sent record is not counted as a change
func EqualItem(a Item, b Item) bool {
	return a.ItemId == b.ItemId && math.Float32bits(a.Volume) == math.Float32bits(b.Volume)
}

// EqualStation - same as EqualItem for the security status
func EqualStation(a Station, b Station) bool {
	return a.StationId == b.StationId &&
		a.RegionId == b.RegionId &&
		a.SystemId == b.SystemId &&
		math.Float32bits(a.Security) == math.Float32bits(b.Security)
}

// ItemKey - cache key of an Item
func ItemKey(r Item) uint32 { return r.ItemId }

// IdNameKey - cache key of an IdName
func IdNameKey(r IdName) uint32 { return r.ItemId }

// StationKey - cache key of a Station
func StationKey(r Station) uint32 { return r.StationId }

func PackItem(w *packed.Writer, r Item) {
	w.Uint32(r.ItemId)
	w.Float32(r.Volume)
}

func UnpackItem(src packed.Source) (Item, error) {
	var r Item
	var err error
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	r.Volume, err = packed.Float32(src)
	return r, err
}

func PackIdName(w *packed.Writer, r IdName) {
	w.Uint32(r.ItemId)
	w.String(r.Name)
}

func UnpackIdName(src packed.Source) (IdName, error) {
	var r IdName
	var err error
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	r.Name, err = packed.String(src)
	return r, err
}

func PackItemMaterial(w *packed.Writer, r ItemMaterial) {
	w.Uint32(r.ItemId)
	w.Uint32(r.MaterialId)
	w.Uint32(r.Quantity)
}

func UnpackItemMaterial(src packed.Source) (ItemMaterial, error) {
	var r ItemMaterial
	var err error
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.MaterialId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	r.Quantity, err = packed.Uint32(src)
	return r, err
}

// Materials - all reprocessing results of one item, cached as a unit
type Materials []ItemMaterial

// MaterialsKey - cache key of a material list
//
// an empty list has no item, callers never store one
func MaterialsKey(m Materials) uint32 {
	if 0 == len(m) {
		return 0
	}
	return m[0].ItemId
}

// EqualMaterials - element wise comparison
func EqualMaterials(a Materials, b Materials) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func PackMaterials(w *packed.Writer, m Materials) {
	packed.WriteSequence(w, m, PackItemMaterial)
}

func UnpackMaterials(src packed.Source) (Materials, error) {
	return packed.ReadSequence(src, UnpackItemMaterial)
}

// GroupMaterials - split a flat upload into one list per item,
// keeping the upload order inside each list
func GroupMaterials(flat []ItemMaterial) []Materials {
	index := make(map[uint32]int)
	grouped := make([]Materials, 0)
	for _, m := range flat {
		i, ok := index[m.ItemId]
		if !ok {
			i = len(grouped)
			index[m.ItemId] = i
			grouped = append(grouped, Materials{})
		}
		grouped[i] = append(grouped[i], m)
	}
	return grouped
}

func PackStation(w *packed.Writer, r Station) {
	w.Uint32(r.StationId)
	w.Uint32(r.RegionId)
	w.Uint32(r.SystemId)
	w.Float32(r.Security)
}

func UnpackStation(src packed.Source) (Station, error) {
	var r Station
	var err error
	if r.StationId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.RegionId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.SystemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	r.Security, err = packed.Float32(src)
	return r, err
}
