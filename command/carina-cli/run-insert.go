// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/lholznagel/caph-sub001/client"
	"github.com/lholznagel/caph-sub001/protocol"
)

// decoded records ready to send
type upload struct {
	records interface{}
	count   int
	send    func(*client.Client) (uint32, error)
}

type insertResult struct {
	Kind    string `json:"kind"`
	Records int    `json:"records"`
	Changes uint32 `json:"changes"`
}

func decode[T any](data []byte, send func(*client.Client, []T) (uint32, error)) (upload, error) {
	var records []T
	err := yaml.Unmarshal(data, &records)
	if nil != err {
		return upload{}, err
	}
	return upload{
		records: records,
		count:   len(records),
		send: func(c *client.Client) (uint32, error) {
			return send(c, records)
		},
	}, nil
}

// a YAML list of records of one kind
func decodeUpload(kind protocol.CacheKind, data []byte) (upload, error) {
	switch kind {
	case protocol.Blueprint:
		return decode(data, (*client.Client).InsertBlueprints)
	case protocol.IdName:
		return decode(data, (*client.Client).InsertIdNames)
	case protocol.Item:
		return decode(data, (*client.Client).InsertItems)
	case protocol.ItemMaterial:
		return decode(data, (*client.Client).InsertMaterials)
	case protocol.MarketOrder:
		return decode(data, (*client.Client).InsertMarketOrders)
	case protocol.MarketOrderInfo:
		return decode(data, (*client.Client).InsertMarketOrderInfos)
	case protocol.Region:
		return decode(data, (*client.Client).ReplaceRegions)
	case protocol.Station:
		return decode(data, (*client.Client).InsertStations)
	default:
		return upload{}, ErrUnknownKind
	}
}

func runInsert(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	kindName := c.String("kind")
	kind, err := parseKind(kindName)
	if nil != err {
		return err
	}

	fileName := c.String("file")
	if "" == fileName {
		return ErrMissingFile
	}
	data, err := os.ReadFile(fileName)
	if nil != err {
		return err
	}

	u, err := decodeUpload(kind, data)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "insert: %s  records: %d  from: %q\n", kind, u.count, fileName)
	}

	changes, err := u.send(m.client)
	if nil != err {
		return err
	}

	if c.Bool("commit") && protocol.MarketOrder == kind {
		err = m.client.Commit()
		if nil != err {
			return err
		}
	}

	return printJson(m.w, insertResult{
		Kind:    kindName,
		Records: u.count,
		Changes: changes,
	})
}

type deleteResult struct {
	Kind    string `json:"kind"`
	Removed uint32 `json:"removed"`
}

func runDelete(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	kindName := c.String("kind")
	kind, err := parseKind(kindName)
	if nil != err {
		return err
	}

	var removed uint32
	switch kind {
	case protocol.MarketOrder:
		return ErrUnsupported

	case protocol.MarketOrderInfo:
		ids, err := uint64Arguments(c)
		if nil != err {
			return err
		}
		removed, err = m.client.DeleteOrderInfos(ids)
		if nil != err {
			return err
		}

	default:
		ids, err := uint32Arguments(c)
		if nil != err {
			return err
		}
		removed, err = m.client.Delete(kind, ids)
		if nil != err {
			return err
		}
	}

	return printJson(m.w, deleteResult{
		Kind:    kindName,
		Removed: removed,
	})
}
