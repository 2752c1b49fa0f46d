// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/lholznagel/caph-sub001/fault"
)

var (
	ErrConnectionOne = fault.ConnectionIoError("connection one")
	ErrDecodeOne     = fault.DecodeError("decode one")
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrLengthOne     = fault.LengthError("length one")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrPersistOne    = fault.PersistenceIoError("persist one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrProtocolOne   = fault.ProtocolViolationError("protocol one")
	ErrRecordOne     = fault.RecordError("record one")
)

// test that the various classes can be told apart
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		connection bool
		decode     bool
		exists     bool
		invalid    bool
		length     bool
		notFound   bool
		persist    bool
		process    bool
		protocol   bool
		record     bool
	}{
		{ErrConnectionOne, true, false, false, false, false, false, false, false, false, false},
		{ErrDecodeOne, false, true, false, false, false, false, false, false, false, false},
		{ErrExistsOne, false, false, true, false, false, false, false, false, false, false},
		{ErrInvalidOne, false, false, false, true, false, false, false, false, false, false},
		{ErrLengthOne, false, false, false, false, true, false, false, false, false, false},
		{ErrNotFoundOne, false, false, false, false, false, true, false, false, false, false},
		{ErrPersistOne, false, false, false, false, false, false, true, false, false, false},
		{ErrProcessOne, false, false, false, false, false, false, false, true, false, false},
		{ErrProtocolOne, false, false, false, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, false, false, false, true},
		{fmt.Errorf("wrapped: %w", ErrDecodeOne), false, true, false, false, false, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrConnectionIo(err) != e.connection {
			t.Errorf("%d: expected 'connection' == %v for err = %v", i, e.connection, err)
		}
		if fault.IsErrDecode(err) != e.decode {
			t.Errorf("%d: expected 'decode' == %v for err = %v", i, e.decode, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPersistenceIo(err) != e.persist {
			t.Errorf("%d: expected 'persistence' == %v for err = %v", i, e.persist, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrProtocolViolation(err) != e.protocol {
			t.Errorf("%d: expected 'protocol' == %v for err = %v", i, e.protocol, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
	}
}

func TestKind(t *testing.T) {
	kinds := []struct {
		err  error
		kind fault.ErrorKind
	}{
		{nil, fault.KindNone},
		{fault.UnexpectedEof, fault.KindDecode},
		{fault.UnknownAction, fault.KindProtocolViolation},
		{fault.UnknownCacheKind, fault.KindProtocolViolation},
		{fault.Wrap(fault.ConnectionReadFailed, io.ErrClosedPipe), fault.KindConnectionIo},
		{fault.NotFound, fault.KindNotFound},
		{fault.Wrap(fault.SnapshotWriteFailed, errors.New("disk full")), fault.KindPersistenceIo},
		{errors.New("plain"), fault.KindOther},
	}

	for i, k := range kinds {
		if actual := fault.Kind(k.err); actual != k.kind {
			t.Errorf("%d: expected kind %s, actual %s for err = %v", i, k.kind, actual, k.err)
		}
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fault.Wrap(fault.SnapshotWriteFailed, cause)

	if !errors.Is(err, cause) {
		t.Errorf("cause not reachable from: %v", err)
	}
	if !errors.Is(err, fault.SnapshotWriteFailed) {
		t.Errorf("class not reachable from: %v", err)
	}
	if "snapshot write failed: disk full" != err.Error() {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if nil != fault.Wrap(fault.SnapshotWriteFailed, nil) {
		t.Error("wrapping nil should give nil")
	}
}

func TestRecovered(t *testing.T) {
	if nil != fault.Recovered("test", nil) {
		t.Error("nothing recovered should give nil")
	}
	err := fault.Recovered("test", "boom")
	if !fault.IsErrProcess(err) {
		t.Errorf("expected process error, got: %v", err)
	}
}
