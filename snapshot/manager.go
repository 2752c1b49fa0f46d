// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/lholznagel/caph-sub001/fault"
)

// Saver - a store that can be persisted
type Saver interface {
	Load() error
	Save() error
	Size() int
}

type registration struct {
	name  string
	saver Saver
}

// Manager - the registered stores in registration order
type Manager struct {
	sync.Mutex
	log      *logger.L
	stores   []registration
	names    map[string]struct{}
	requests chan struct{}

	saving sync.Mutex
}

// NewManager - empty manager
func NewManager() *Manager {
	return &Manager{
		log:      logger.New("snapshot"),
		names:    make(map[string]struct{}),
		requests: make(chan struct{}, 1),
	}
}

// Register - add a store, names must be unique
func (m *Manager) Register(name string, s Saver) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.names[name]; ok {
		return fault.DuplicateSnapshotName
	}
	m.names[name] = struct{}{}
	m.stores = append(m.stores, registration{name: name, saver: s})
	return nil
}

// Names - registered names in registration order
func (m *Manager) Names() []string {
	m.Lock()
	defer m.Unlock()

	names := make([]string, len(m.stores))
	for i, r := range m.stores {
		names[i] = r.name
	}
	return names
}

func (m *Manager) registered() []registration {
	m.Lock()
	defer m.Unlock()
	return append([]registration(nil), m.stores...)
}

// LoadAll - load every store, stopping at the first failure
func (m *Manager) LoadAll() error {
	for _, r := range m.registered() {
		start := time.Now()
		err := r.saver.Load()
		if nil != err {
			m.log.Criticalf("load: %s  error: %s", r.name, err)
			return fmt.Errorf("load %s: %w", r.name, err)
		}
		m.log.Infof("loaded: %s  records: %d  time: %s", r.name, r.saver.Size(), time.Since(start))
	}
	return nil
}

// SaveAll - save every store in turn
//
// a failure is logged and the remaining stores are still saved, the
// returned list holds one entry per failed store
func (m *Manager) SaveAll() []error {
	m.saving.Lock()
	defer m.saving.Unlock()

	m.log.Info("saving…")

	var errs []error
	for _, r := range m.registered() {
		start := time.Now()
		err := r.saver.Save()
		if nil != err {
			m.log.Errorf("save: %s  error: %s", r.name, err)
			errs = append(errs, fmt.Errorf("save %s: %w", r.name, err))
			continue
		}
		m.log.Debugf("saved: %s  records: %d  time: %s", r.name, r.saver.Size(), time.Since(start))
	}

	if 0 == len(errs) {
		m.log.Info("save completed")
	} else {
		m.log.Warnf("save completed with %d failures", len(errs))
	}
	return errs
}

// Request - ask the background process for a save
//
// never blocks, requests made while one is waiting are merged
func (m *Manager) Request() {
	select {
	case m.requests <- struct{}{}:
	default:
	}
}
