// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lholznagel/caph-sub001/fault"
)

// ReadFile - contents of a snapshot file
//
// a missing file is not an error and gives nil data
func ReadFile(fileName string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if nil != err {
		return nil, fault.Wrap(fault.SnapshotReadFailed, err)
	}
	return data, nil
}

// WriteFile - replace a snapshot file
//
// data goes to a temporary file in the same directory which is synced
// and then renamed over the target so a reader sees either the old or
// the new contents
func WriteFile(fileName string, data []byte) error {
	directory := filepath.Dir(fileName)
	err := os.MkdirAll(directory, 0700)
	if nil != err {
		return fault.Wrap(fault.SnapshotWriteFailed, err)
	}

	f, err := os.CreateTemp(directory, filepath.Base(fileName)+".*.tmp")
	if nil != err {
		return fault.Wrap(fault.SnapshotWriteFailed, err)
	}
	temporary := f.Name()

	_, err = f.Write(data)
	if nil == err {
		err = f.Sync()
	}
	if closeErr := f.Close(); nil == err {
		err = closeErr
	}
	if nil == err {
		err = os.Rename(temporary, fileName)
	}
	if nil != err {
		_ = os.Remove(temporary)
		return fault.Wrap(fault.SnapshotWriteFailed, err)
	}
	return nil
}
