// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/lholznagel/caph-sub001/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidId    = fault.InvalidError("invalid id")
	ErrInvalidTime  = fault.InvalidError("invalid time")
	ErrMissingFile  = fault.NotFoundError("file is required")
	ErrMissingId    = fault.NotFoundError("at least one id is required")
	ErrMissingStart = fault.NotFoundError("start time is required")
	ErrNotFound     = fault.NotFoundError("not found")
	ErrUnknownKind  = fault.InvalidError("unknown record kind")
	ErrUnsupported  = fault.InvalidError("operation not supported for this kind")
)
