// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketorder_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/marketorder"
	"github.com/lholznagel/caph-sub001/record"
)

func TestSaveAndLoadHistory(t *testing.T) {
	directory := t.TempDir()

	s := marketorder.New(directory, nil, marketorder.Options{AutoCommit: true})
	s.Insert([]record.MarketOrder{sample(1, 34, tick(0), 100), sample(2, 35, tick(0), 5)})
	s.Insert([]record.MarketOrder{sample(1, 34, tick(1), 90)})
	s.Insert([]record.MarketOrder{sample(3, 36, tick(1), 1)})
	assert.Nil(t, s.Save())

	restored := marketorder.New(directory, nil, marketorder.Options{})
	assert.Nil(t, restored.Load())
	assert.False(t, restored.Pending())

	assert.Equal(t, []uint32{34, 35, 36}, s.ItemIds())
	assert.Equal(t, []uint32{34, 35, 36}, restored.ItemIds())

	original, _ := s.Raw(34)
	loaded, _ := restored.Raw(34)
	assert.Equal(t, original, loaded)
}

func TestSaveSkipsUncommitted(t *testing.T) {
	directory := t.TempDir()

	s := marketorder.New(directory, nil, marketorder.Options{})
	s.Insert([]record.MarketOrder{sample(1, 34, tick(0), 100)})
	assert.Nil(t, s.Save())

	restored := marketorder.New(directory, nil, marketorder.Options{})
	assert.Nil(t, restored.Load())
	assert.Equal(t, 0, restored.Size())
}

func TestLoadMissingHistory(t *testing.T) {
	s := marketorder.New(t.TempDir(), nil, marketorder.Options{})
	assert.Nil(t, s.Load())
	assert.Equal(t, 0, s.Size())
}

func TestLoadCorruptHistory(t *testing.T) {
	s := marketorder.New(t.TempDir(), nil, marketorder.Options{})
	err := os.WriteFile(s.FileName(), []byte{0, 0, 0, 1, 0, 0}, 0600)
	assert.Nil(t, err)

	err = s.Load()
	assert.True(t, fault.IsErrPersistenceIo(err), "error: %v", err)
}
