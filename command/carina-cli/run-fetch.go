// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runFetchItem(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := uint32Argument(c)
	if nil != err {
		return err
	}
	item, found, err := m.client.Item(id)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, formatItem(item))
}

func runFetchStation(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := uint32Argument(c)
	if nil != err {
		return err
	}
	station, found, err := m.client.Station(id)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, formatStation(station))
}

func runFetchBlueprint(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := uint32Argument(c)
	if nil != err {
		return err
	}
	blueprint, found, err := m.client.Blueprint(id)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, blueprint)
}

func runFetchName(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	ids, err := uint32Arguments(c)
	if nil != err {
		return err
	}
	names, err := m.client.Names(ids)
	if nil != err {
		return err
	}
	return printJson(m.w, names)
}

func runFetchMaterials(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := uint32Argument(c)
	if nil != err {
		return err
	}
	materials, found, err := m.client.Materials(id)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, materials)
}

func runFetchOrderInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := uint64Argument(c)
	if nil != err {
		return err
	}
	info, found, err := m.client.MarketOrderInfo(id)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, formatOrderInfo(info))
}

func runRegions(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	regions, err := m.client.Regions()
	if nil != err {
		return err
	}
	return printJson(m.w, regions)
}
