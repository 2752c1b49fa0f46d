// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/client"
	"github.com/lholznagel/caph-sub001/dispatch"
	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/protocol"
	"github.com/lholznagel/caph-sub001/record"
	"github.com/lholznagel/caph-sub001/server"
)

const hour = uint64(3600 * 1000)

func connect(t *testing.T, options marketorder.Options) *client.Client {
	s, err := server.New(&server.Configuration{
		Listen:             []string{"127.0.0.1:0"},
		MaximumConnections: 2,
		RequestBurst:       100,
	}, dispatch.New(dispatch.NewStores(t.TempDir(), options)))
	if !assert.Nil(t, err, "server") || !assert.Nil(t, s.Start(), "start") {
		t.FailNow()
	}
	t.Cleanup(s.Stop)

	c, err := client.Dial(s.Addresses()[0].String(), 5*time.Second)
	if !assert.Nil(t, err, "dial") {
		t.FailNow()
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestReferenceData(t *testing.T) {
	c := connect(t, marketorder.Options{})

	n, err := c.InsertItems([]record.Item{{ItemId: 34, Volume: 0.01}})
	assert.Nil(t, err, "insert items")
	assert.Equal(t, uint32(1), n, "items")

	item, found, err := c.Item(34)
	assert.Nil(t, err, "item")
	assert.True(t, found, "item found")
	assert.Equal(t, record.Item{ItemId: 34, Volume: 0.01}, item, "item")

	_, found, err = c.Item(35)
	assert.Nil(t, err, "missing item")
	assert.False(t, found, "missing item found")

	_, err = c.InsertIdNames([]record.IdName{{ItemId: 34, Name: "Tritanium"}, {ItemId: 35, Name: "Pyerite"}})
	assert.Nil(t, err, "insert names")
	name, found, err := c.IdName(35)
	assert.Nil(t, err, "name")
	assert.True(t, found, "name found")
	assert.Equal(t, "Pyerite", name.Name, "name")
	names, err := c.Names([]uint32{34, 36})
	assert.Nil(t, err, "names")
	assert.Equal(t, []record.IdName{{ItemId: 34, Name: "Tritanium"}}, names, "names")

	_, err = c.InsertMaterials([]record.ItemMaterial{{ItemId: 100, MaterialId: 34, Quantity: 3}})
	assert.Nil(t, err, "insert materials")
	materials, found, err := c.Materials(100)
	assert.Nil(t, err, "materials")
	assert.True(t, found, "materials found")
	assert.Equal(t, record.Materials{{ItemId: 100, MaterialId: 34, Quantity: 3}}, materials, "materials")

	blueprint := record.Blueprint{ItemId: 1000, Time: 60, Materials: []record.Material{{MaterialId: 34, Quantity: 2}}}
	_, err = c.InsertBlueprints([]record.Blueprint{blueprint})
	assert.Nil(t, err, "insert blueprints")
	b, found, err := c.Blueprint(1000)
	assert.Nil(t, err, "blueprint")
	assert.True(t, found, "blueprint found")
	assert.Equal(t, blueprint, b, "blueprint")

	station := record.Station{StationId: 60003760, RegionId: 10000002, SystemId: 30000142, Security: 0.9}
	_, err = c.InsertStations([]record.Station{station})
	assert.Nil(t, err, "insert stations")
	st, found, err := c.Station(60003760)
	assert.Nil(t, err, "station")
	assert.True(t, found, "station found")
	assert.Equal(t, station, st, "station")

	size, err := c.ReplaceRegions([]uint32{10000043, 10000002})
	assert.Nil(t, err, "regions")
	assert.Equal(t, uint32(2), size, "region count")
	regions, err := c.Regions()
	assert.Nil(t, err, "regions")
	assert.Equal(t, []uint32{10000002, 10000043}, regions, "regions")

	removed, err := c.Delete(protocol.Item, []uint32{34})
	assert.Nil(t, err, "delete")
	assert.Equal(t, uint32(1), removed, "removed")
	_, found, err = c.Item(34)
	assert.Nil(t, err, "deleted item")
	assert.False(t, found, "deleted item found")
}

func TestMarketOrders(t *testing.T) {
	c := connect(t, marketorder.Options{})

	start := 1000 * marketorder.Tick
	expire := start + hour

	added, err := c.InsertMarketOrderInfos([]record.MarketOrderInfo{
		{OrderId: 1, Issued: start, Expire: expire, VolumeTotal: 100, ItemId: 34, Price: 5},
	})
	assert.Nil(t, err, "insert infos")
	assert.Equal(t, uint32(1), added, "added")

	missing, err := c.MissingOrderInfos([]uint64{1, 2})
	assert.Nil(t, err, "missing")
	assert.Equal(t, []uint64{2}, missing, "missing")

	info, found, err := c.MarketOrderInfo(1)
	assert.Nil(t, err, "info")
	assert.True(t, found, "info found")
	assert.Equal(t, expire, info.Expire, "expire")

	appended, err := c.InsertMarketOrders([]record.MarketOrder{
		{OrderId: 1, ItemId: 34, Timestamp: start, VolumeRemain: 100},
		{OrderId: 2, ItemId: 34, Timestamp: start, VolumeRemain: 7},
	})
	assert.Nil(t, err, "insert orders")
	assert.Equal(t, uint32(2), appended, "appended")

	items, err := c.MarketItems()
	assert.Nil(t, err, "items before commit")
	assert.Equal(t, 0, len(items), "items before commit")

	assert.Nil(t, c.Commit(), "commit")

	items, err = c.MarketItems()
	assert.Nil(t, err, "items")
	assert.Equal(t, []uint32{34}, items, "items")

	// order 1 expires one hour in, order 2 has no metadata
	ticks, found, err := c.History(34, start, start+3*marketorder.Tick)
	assert.Nil(t, err, "history")
	assert.True(t, found, "history found")
	assert.Equal(t, 4, len(ticks), "ticks")
	assert.Equal(t, []marketorder.OrderVolume{{OrderId: 1, Volume: 100}, {OrderId: 2, Volume: 7}}, ticks[2].Orders, "at expiry")
	assert.Equal(t, []marketorder.OrderVolume{{OrderId: 2, Volume: 7}}, ticks[3].Orders, "after expiry")

	sample, found, err := c.CurrentOrder(2)
	assert.Nil(t, err, "current")
	assert.True(t, found, "current found")
	assert.Equal(t, uint32(7), sample.VolumeRemain, "current volume")

	latest, err := c.LatestOrders(34)
	assert.Nil(t, err, "latest")
	assert.Equal(t, 2, len(latest), "latest")

	raw, found, err := c.RawHistory(34)
	assert.Nil(t, err, "raw")
	assert.True(t, found, "raw found")
	assert.Equal(t, 2, len(raw), "raw")

	_, _, err = c.History(34, start+marketorder.Tick, start)
	assert.True(t, fault.IsErrInvalid(err), "invalid range: %v", err)

	// the connection survives a request level error
	_, err = c.Regions()
	assert.Nil(t, err, "after error")
}
