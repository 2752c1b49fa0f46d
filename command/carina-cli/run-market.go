// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"
)

func runHistory(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	itemId := c.Uint64("item")
	if 0 == itemId || itemId > 0xffffffff {
		return ErrInvalidId
	}

	now := time.Now()
	start, err := parseTime(c.String("start"), now)
	if nil != err {
		return err
	}
	stopText := c.String("stop")
	if "" == stopText {
		stopText = "now"
	}
	stop, err := parseTime(stopText, now)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "history: item: %d  start: %s  stop: %s\n", itemId, formatTime(start), formatTime(stop))
	}

	ticks, found, err := m.client.History(uint32(itemId), start, stop)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, formatHistory(ticks))
}

func runLatest(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	itemId, err := uint32Argument(c)
	if nil != err {
		return err
	}
	samples, err := m.client.LatestOrders(itemId)
	if nil != err {
		return err
	}
	return printJson(m.w, samples)
}

func runCurrent(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	orderId, err := uint64Argument(c)
	if nil != err {
		return err
	}
	sample, found, err := m.client.CurrentOrder(orderId)
	if nil != err {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return printJson(m.w, sample)
}

func runMarketItems(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	items, err := m.client.MarketItems()
	if nil != err {
		return err
	}
	return printJson(m.w, items)
}

func runLookupOrders(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	ids, err := uint64Arguments(c)
	if nil != err {
		return err
	}
	missing, err := m.client.MissingOrderInfos(ids)
	if nil != err {
		return err
	}
	return printJson(m.w, missing)
}

func runCommit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	err := m.client.Commit()
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "committed\n")
	}
	return nil
}
