// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/packed"
	"github.com/lholznagel/caph-sub001/record"
)

// field order is part of the wire format
func TestStationLayout(t *testing.T) {
	w := packed.NewWriter(16)
	record.PackStation(w, record.Station{
		StationId: 60003760,
		RegionId:  10000002,
		SystemId:  30000142,
		Security:  0.5,
	})

	expected := []byte{
		0x03, 0x93, 0x95, 0xb0, // 60003760
		0x00, 0x98, 0x96, 0x82, // 10000002
		0x01, 0xc9, 0xc4, 0x0e, // 30000142
		0x3f, 0x00, 0x00, 0x00, // 0.5
	}
	assert.Equal(t, expected, w.Bytes())
}

func TestBlueprint(t *testing.T) {
	bp := record.Blueprint{
		ItemId: 691,
		Time:   6000,
		Materials: []record.Material{
			{MaterialId: 34, Quantity: 22222, IsProduct: false},
			{MaterialId: 582, Quantity: 1, IsProduct: true},
		},
	}
	w := packed.NewWriter(64)
	record.PackBlueprint(w, bp)
	assert.Nil(t, w.Err())
	assert.Equal(t, 4+4+4+2*9, w.Len())

	decoded, err := record.UnpackBlueprint(packed.NewUnpacker(w.Bytes()))
	assert.Nil(t, err)
	assert.True(t, record.EqualBlueprint(bp, decoded))

	changed := decoded
	changed.Materials = append([]record.Material{}, decoded.Materials...)
	changed.Materials[1].Quantity = 2
	assert.False(t, record.EqualBlueprint(bp, changed))

	for n := 0; n < w.Len(); n += 1 {
		_, err := record.UnpackBlueprint(packed.NewUnpacker(w.Bytes()[:n]))
		if fault.UnexpectedEof != err {
			t.Errorf("%d: expected unexpected eof, actual: %v", n, err)
		}
	}
}

func TestMarketOrderInfo(t *testing.T) {
	info := record.MarketOrderInfo{
		OrderId:     5880946313,
		Issued:      1609459200000,
		Expire:      1617235200000,
		VolumeTotal: 1000,
		SystemId:    30000142,
		ItemId:      34,
		LocationId:  60003760,
		Price:       4.97,
		IsBuyOrder:  true,
	}
	w := packed.NewWriter(64)
	record.PackMarketOrderInfo(w, info)
	assert.Equal(t, 8+8+8+4+4+4+8+4+1, w.Len())

	decoded, err := record.UnpackMarketOrderInfo(packed.NewUnpacker(w.Bytes()))
	assert.Nil(t, err)
	assert.Equal(t, info, decoded)
}

func TestGroupMaterials(t *testing.T) {
	flat := []record.ItemMaterial{
		{ItemId: 18, MaterialId: 34, Quantity: 107},
		{ItemId: 19, MaterialId: 34, Quantity: 346},
		{ItemId: 18, MaterialId: 35, Quantity: 213},
	}
	grouped := record.GroupMaterials(flat)

	expected := []record.Materials{
		{flat[0], flat[2]},
		{flat[1]},
	}
	assert.Equal(t, expected, grouped)
	assert.Equal(t, uint32(18), record.MaterialsKey(grouped[0]))
	assert.Equal(t, uint32(0), record.MaterialsKey(nil))
	assert.True(t, record.EqualMaterials(grouped[0], record.Materials{flat[0], flat[2]}))
	assert.False(t, record.EqualMaterials(grouped[0], grouped[1]))
}

// floats compare by bits, a NaN is equal to itself and signed zeros differ
func TestFloatRecordsEquality(t *testing.T) {
	nan := float32(math.NaN())

	item := record.Item{ItemId: 34, Volume: nan}
	assert.True(t, record.EqualItem(item, item), "nan volume")
	assert.False(t, record.EqualItem(item, record.Item{ItemId: 34, Volume: 0.01}), "different volume")
	assert.False(t, record.EqualItem(record.Item{ItemId: 34}, record.Item{ItemId: 35}), "different id")
	assert.False(t, record.EqualItem(
		record.Item{ItemId: 34, Volume: float32(math.Copysign(0, -1))},
		record.Item{ItemId: 34, Volume: 0},
	), "signed zero")

	station := record.Station{StationId: 60003760, RegionId: 10000002, SystemId: 30000142, Security: nan}
	assert.True(t, record.EqualStation(station, station), "nan security")
	moved := station
	moved.SystemId = 30000144
	assert.False(t, record.EqualStation(station, moved), "different system")
}
