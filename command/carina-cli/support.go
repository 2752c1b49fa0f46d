// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/lholznagel/caph-sub001/protocol"
)

// record kinds accepted on the command line
var kinds = map[string]protocol.CacheKind{
	"blueprint":  protocol.Blueprint,
	"name":       protocol.IdName,
	"item":       protocol.Item,
	"material":   protocol.ItemMaterial,
	"order":      protocol.MarketOrder,
	"order-info": protocol.MarketOrderInfo,
	"region":     protocol.Region,
	"station":    protocol.Station,
}

func kindNames() string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func parseKind(name string) (protocol.CacheKind, error) {
	kind, ok := kinds[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrUnknownKind
	}
	return kind, nil
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if nil != err {
		return 0, ErrInvalidId
	}
	return uint32(n), nil
}

func parseUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if nil != err {
		return 0, ErrInvalidId
	}
	return n, nil
}

// all positional arguments as ids
func uint32Arguments(c *cli.Context) ([]uint32, error) {
	if 0 == c.NArg() {
		return nil, ErrMissingId
	}
	ids := make([]uint32, 0, c.NArg())
	for _, a := range c.Args() {
		id, err := parseUint32(a)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func uint64Arguments(c *cli.Context) ([]uint64, error) {
	if 0 == c.NArg() {
		return nil, ErrMissingId
	}
	ids := make([]uint64, 0, c.NArg())
	for _, a := range c.Args() {
		id, err := parseUint64(a)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// first positional argument only
func uint32Argument(c *cli.Context) (uint32, error) {
	if 0 == c.NArg() {
		return 0, ErrMissingId
	}
	return parseUint32(c.Args().First())
}

func uint64Argument(c *cli.Context) (uint64, error) {
	if 0 == c.NArg() {
		return 0, ErrMissingId
	}
	return parseUint64(c.Args().First())
}

// milliseconds since the epoch, either given directly or as RFC3339
func parseTime(s string, now time.Time) (uint64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, ErrMissingStart
	case "now":
		return uint64(now.UnixMilli()), nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); nil == err {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if nil != err || t.Before(time.Unix(0, 0)) {
		return 0, ErrInvalidTime
	}
	return uint64(t.UnixMilli()), nil
}
