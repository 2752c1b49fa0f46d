// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/dispatch"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and request statistics
type statistics struct {
	dispatcher *dispatch.Dispatcher
	stores     *dispatch.Stores
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {

	log := logger.New("memory")

	delay := time.NewTicker(statsDelay)
	defer delay.Stop()

loop:
	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		text, err := json.Marshal(m)
		if nil != err {
			log.Errorf("marshal error: %s", err)
		} else {
			log.Debugf("stats: %s", text)
		}
		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		o := m.Sys / mega
		log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)
		log.Infof("market items: %d  order infos: %d  names: %d", s.stores.MarketOrders.Size(), s.stores.OrderInfos.Size(), s.stores.IdNames.Size())
		log.Debugf("requests: %v", s.dispatcher.Stats())

		select {
		case <-shutdown:
			break loop
		case <-delay.C:
		}
	}
}
