// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"time"

	"github.com/lholznagel/caph-sub001/background"
)

// Configuration - the snapshot section of the configuration file
type Configuration struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Interval  int    `gluamapper:"interval" json:"interval"` // seconds, 0 saves only on request
}

type saveProcess struct {
	manager  *Manager
	interval time.Duration
}

// NewProcess - background saver for m
func NewProcess(m *Manager, interval time.Duration) background.Process {
	return &saveProcess{
		manager:  m,
		interval: interval,
	}
}

func (p *saveProcess) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.manager.log
	log.Info("starting…")

	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-tick:
			p.manager.SaveAll()
		case <-p.manager.requests:
			log.Info("save requested")
			p.manager.SaveAll()
		}
	}
	log.Info("stopped")
}
