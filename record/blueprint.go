// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/lholznagel/caph-sub001/packed"
)

// Blueprint - build time in seconds and the materials consumed or produced
type Blueprint struct {
	ItemId    uint32     `json:"item_id" yaml:"item_id"`
	Time      uint32     `json:"time" yaml:"time"`
	Materials []Material `json:"materials" yaml:"materials"`
}

// Material - one input or output of a blueprint
type Material struct {
	MaterialId uint32 `json:"material_id" yaml:"material_id"`
	Quantity   uint32 `json:"quantity" yaml:"quantity"`
	IsProduct  bool   `json:"is_product" yaml:"is_product"`
}

// BlueprintKey - cache key of a Blueprint
func BlueprintKey(r Blueprint) uint32 { return r.ItemId }

// EqualBlueprint - value comparison including the material list
func EqualBlueprint(a Blueprint, b Blueprint) bool {
	if a.ItemId != b.ItemId || a.Time != b.Time || len(a.Materials) != len(b.Materials) {
		return false
	}
	for i := range a.Materials {
		if a.Materials[i] != b.Materials[i] {
			return false
		}
	}
	return true
}

func PackMaterial(w *packed.Writer, m Material) {
	w.Uint32(m.MaterialId)
	w.Uint32(m.Quantity)
	w.Bool(m.IsProduct)
}

func UnpackMaterial(src packed.Source) (Material, error) {
	var m Material
	var err error
	if m.MaterialId, err = packed.Uint32(src); nil != err {
		return m, err
	}
	if m.Quantity, err = packed.Uint32(src); nil != err {
		return m, err
	}
	m.IsProduct, err = packed.Bool(src)
	return m, err
}

func PackBlueprint(w *packed.Writer, r Blueprint) {
	w.Uint32(r.ItemId)
	w.Uint32(r.Time)
	packed.WriteSequence(w, r.Materials, PackMaterial)
}

func UnpackBlueprint(src packed.Source) (Blueprint, error) {
	var r Blueprint
	var err error
	if r.ItemId, err = packed.Uint32(src); nil != err {
		return r, err
	}
	if r.Time, err = packed.Uint32(src); nil != err {
		return r, err
	}
	r.Materials, err = packed.ReadSequence(src, UnpackMaterial)
	return r, err
}
