// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConnectionIoError GenericError
type DecodeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PersistenceIoError GenericError
type ProcessError GenericError
type ProtocolViolationError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ExistsError("already initialised")
	ConnectionClosed         = ConnectionIoError("connection closed")
	ConnectionLimitReached   = ConnectionIoError("connection limit reached")
	ConnectionReadFailed     = ConnectionIoError("connection read failed")
	ConnectionWriteFailed    = ConnectionIoError("connection write failed")
	CountTooLarge            = DecodeError("element count too large")
	DuplicateSnapshotName    = ExistsError("snapshot name already registered")
	InvalidConnectionLimit   = InvalidError("maximum connections must be at least one")
	InvalidListenAddress     = InvalidError("invalid listen address")
	InvalidOptionFlag        = DecodeError("invalid option flag")
	InvalidRange             = InvalidError("invalid timestamp range")
	InvalidRequestBurst      = InvalidError("request burst must be at least one")
	InvalidUtf8              = DecodeError("string is not valid utf-8")
	MissingConfigurationFile = NotFoundError("configuration file is required")
	MissingListenAddress     = InvalidError("at least one listen address is required")
	NotFound                 = NotFoundError("not found")
	NotInitialised           = NotFoundError("not initialised")
	RangeTooWide             = InvalidError("timestamp range too wide")
	RateLimiting             = InvalidError("rate limiting")
	SnapshotFileCorrupt      = PersistenceIoError("snapshot file is corrupt")
	SnapshotReadFailed       = PersistenceIoError("snapshot read failed")
	SnapshotWriteFailed      = PersistenceIoError("snapshot write failed")
	StringTooLong            = LengthError("string too long")
	TrailingData             = DecodeError("trailing data after record")
	UnexpectedEof            = DecodeError("unexpected end of data")
	UnknownAction            = ProtocolViolationError("unknown action")
	UnknownCacheKind         = ProtocolViolationError("unknown cache kind")
	UnknownFetchMode         = ProtocolViolationError("unknown fetch mode")
	UnknownStatus            = DecodeError("unknown response status")
	UnsupportedOperation     = ProtocolViolationError("unsupported action for cache kind")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConnectionIoError) Error() string      { return string(e) }
func (e DecodeError) Error() string            { return string(e) }
func (e ExistsError) Error() string            { return string(e) }
func (e InvalidError) Error() string           { return string(e) }
func (e LengthError) Error() string            { return string(e) }
func (e NotFoundError) Error() string          { return string(e) }
func (e PersistenceIoError) Error() string     { return string(e) }
func (e ProcessError) Error() string           { return string(e) }
func (e ProtocolViolationError) Error() string { return string(e) }
func (e RecordError) Error() string            { return string(e) }

// determine the class of an error, wrapped errors are unwrapped
func IsErrConnectionIo(e error) bool      { var x ConnectionIoError; return errors.As(e, &x) }
func IsErrDecode(e error) bool            { var x DecodeError; return errors.As(e, &x) }
func IsErrExists(e error) bool            { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool           { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool            { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool          { var x NotFoundError; return errors.As(e, &x) }
func IsErrPersistenceIo(e error) bool     { var x PersistenceIoError; return errors.As(e, &x) }
func IsErrProcess(e error) bool           { var x ProcessError; return errors.As(e, &x) }
func IsErrProtocolViolation(e error) bool { var x ProtocolViolationError; return errors.As(e, &x) }
func IsErrRecord(e error) bool            { var x RecordError; return errors.As(e, &x) }
