// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lholznagel/caph-sub001/fault"
	"github.com/lholznagel/caph-sub001/snapshot"
)

func TestReadMissingFile(t *testing.T) {
	data, err := snapshot.ReadFile(filepath.Join(t.TempDir(), "absent.carina"))
	assert.Nil(t, err, "read")
	assert.Nil(t, data, "data")
}

func TestWriteReplacesFile(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "nested", "snapshots")
	fileName := filepath.Join(directory, "items.carina")

	assert.Nil(t, snapshot.WriteFile(fileName, []byte{1, 2, 3}), "first write")
	assert.Nil(t, snapshot.WriteFile(fileName, []byte{4, 5}), "second write")

	data, err := snapshot.ReadFile(fileName)
	assert.Nil(t, err, "read")
	assert.Equal(t, []byte{4, 5}, data, "contents")

	// no temporary files remain
	entries, err := os.ReadDir(directory)
	assert.Nil(t, err, "read dir")
	assert.Equal(t, 1, len(entries), "entries")
}

func TestWriteFailure(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.Nil(t, os.WriteFile(blocker, []byte("x"), 0600), "setup")

	err := snapshot.WriteFile(filepath.Join(blocker, "items.carina"), []byte{1})
	assert.True(t, fault.IsErrPersistenceIo(err), "persistence error: %v", err)
	assert.Equal(t, fault.KindPersistenceIo, fault.Kind(err), "kind")
}
