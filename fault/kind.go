// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// ErrorKind - the coarse classes a connection or store failure falls into
type ErrorKind int

// the error kinds
const (
	KindNone ErrorKind = iota
	KindConnectionIo
	KindDecode
	KindProtocolViolation
	KindNotFound
	KindPersistenceIo
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindConnectionIo:
		return "ConnectionIo"
	case KindDecode:
		return "Decode"
	case KindProtocolViolation:
		return "ProtocolViolation"
	case KindNotFound:
		return "NotFound"
	case KindPersistenceIo:
		return "PersistenceIo"
	case KindOther:
		return "Other"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Kind - classify an error
//
// a decode error is checked before connection errors so a truncated
// frame is reported as Decode even when it surfaced through the socket
func Kind(err error) ErrorKind {
	switch {
	case nil == err:
		return KindNone
	case IsErrDecode(err):
		return KindDecode
	case IsErrProtocolViolation(err):
		return KindProtocolViolation
	case IsErrConnectionIo(err):
		return KindConnectionIo
	case IsErrNotFound(err):
		return KindNotFound
	case IsErrPersistenceIo(err):
		return KindPersistenceIo
	default:
		return KindOther
	}
}

// Wrap - attach a class to an underlying error so that both the class
// and the cause survive errors.Is / errors.As
func Wrap(class error, err error) error {
	if nil == err {
		return nil
	}
	return &wrapped{class: class, cause: err}
}

type wrapped struct {
	class error
	cause error
}

func (w *wrapped) Error() string {
	return w.class.Error() + ": " + w.cause.Error()
}

// Unwrap - both the class and the cause are reachable
func (w *wrapped) Unwrap() []error {
	return []error{w.class, w.cause}
}
