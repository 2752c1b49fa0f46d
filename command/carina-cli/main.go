// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/lholznagel/caph-sub001/client"
)

type metadata struct {
	client  *client.Client
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "carina-cli"
	app.Usage = "query and load a carina cache server"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:9000",
			Usage: " carinad host/IP and port, `HOST:PORT`",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 30 * time.Second,
			Usage: " connect and request `TIMEOUT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "fetch-item",
			Usage:     "show one item",
			ArgsUsage: "ITEM_ID",
			Action:    runFetchItem,
		},
		{
			Name:      "fetch-station",
			Usage:     "show one station",
			ArgsUsage: "STATION_ID",
			Action:    runFetchStation,
		},
		{
			Name:      "fetch-blueprint",
			Usage:     "show one blueprint",
			ArgsUsage: "ITEM_ID",
			Action:    runFetchBlueprint,
		},
		{
			Name:      "fetch-name",
			Usage:     "show the names of one or more ids",
			ArgsUsage: "ID...",
			Action:    runFetchName,
		},
		{
			Name:      "fetch-materials",
			Usage:     "show the reprocessing materials of an item",
			ArgsUsage: "ITEM_ID",
			Action:    runFetchMaterials,
		},
		{
			Name:      "fetch-order-info",
			Usage:     "show the metadata of a market order",
			ArgsUsage: "ORDER_ID",
			Action:    runFetchOrderInfo,
		},
		{
			Name:   "regions",
			Usage:  "list all region ids",
			Action: runRegions,
		},
		{
			Name:      "history",
			Usage:     "order volumes of an item at every half hour",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "item, i",
					Usage: "*item `ID`",
				},
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: "*first tick, RFC3339 or milliseconds `TIME`",
				},
				cli.StringFlag{
					Name:  "stop, e",
					Value: "",
					Usage: " last tick, RFC3339 or milliseconds `TIME` [now]",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "latest",
			Usage:     "samples of the most recent batch for an item",
			ArgsUsage: "ITEM_ID",
			Action:    runLatest,
		},
		{
			Name:      "current",
			Usage:     "most recent sample of an order",
			ArgsUsage: "ORDER_ID",
			Action:    runCurrent,
		},
		{
			Name:   "market-items",
			Usage:  "items that have market history",
			Action: runMarketItems,
		},
		{
			Name:      "insert",
			Usage:     "upload records from a YAML file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kind, k",
					Value: "",
					Usage: "*record `KIND` [" + kindNames() + "]",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*YAML `FILE` holding a list of records",
				},
				cli.BoolFlag{
					Name:  "commit",
					Usage: " commit market orders after the upload",
				},
			},
			Action: runInsert,
		},
		{
			Name:      "lookup-orders",
			Usage:     "order ids that have no metadata yet",
			ArgsUsage: "ORDER_ID...",
			Action:    runLookupOrders,
		},
		{
			Name:   "commit",
			Usage:  "publish staged market order history",
			Action: runCommit,
		},
		{
			Name:      "delete",
			Usage:     "remove records",
			ArgsUsage: "ID...\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kind, k",
					Value: "",
					Usage: "*record `KIND` [" + kindNames() + "]",
				},
			},
			Action: runDelete,
		},
		{
			Name:  "version",
			Usage: "display carina-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// connect to the server
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress connecting for certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		address := c.GlobalString("connect")
		if verbose {
			fmt.Fprintf(e, "connect: %q\n", address)
		}

		conn, err := client.Dial(address, c.GlobalDuration("timeout"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			client:  conn,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if m, ok := c.App.Metadata["config"].(*metadata); ok {
			return m.client.Close()
		}
		return nil
	}

	return app
}
