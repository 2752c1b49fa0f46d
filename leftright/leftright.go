// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leftright - two copies of a value so that readers never wait
// for the single writer
//
// Readers always see the active copy. The writer mutates the inactive
// copy and Commit publishes it by flipping the active flag, waiting
// for readers still on the old copy to leave, then bringing the old
// copy up to date so both sides are equal again.
package leftright

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// T - the double buffered value
type T[V any] struct {
	slots   [2]V
	clone   func(V) V
	active  atomic.Uint32
	busy    atomic.Bool
	pending atomic.Bool

	readers  [2]atomic.Int64
	draining [2]atomic.Bool

	mutex   sync.Mutex
	drained *sync.Cond
}

// New - both sides start as copies of initial
//
// clone must produce a deep enough copy that mutating the result
// never affects the argument
func New[V any](initial V, clone func(V) V) *T[V] {
	t := &T[V]{
		clone: clone,
	}
	t.slots[0] = initial
	t.slots[1] = clone(initial)
	t.drained = sync.NewCond(&t.mutex)
	return t
}

// Read - evaluate f against the active side
//
// f must not retain or modify its argument
func (t *T[V]) Read(f func(V)) {
	side := t.enter()
	defer t.leave(side)
	f(t.slots[side])
}

// ReadValue - evaluate f against the active side and return its result
func ReadValue[V any, R any](t *T[V], f func(V) R) R {
	side := t.enter()
	defer t.leave(side)
	return f(t.slots[side])
}

// Write - apply a mutation to the inactive side
//
// the value returned by f becomes the new inactive value, so f can
// either mutate in place and return its argument or build a new value;
// writes accumulate until the next Commit
func (t *T[V]) Write(f func(V) V) {
	t.acquire()
	defer t.release()

	side := 1 - t.active.Load()
	t.slots[side] = f(t.slots[side])
	t.pending.Store(true)
}

// Commit - publish everything written since the last commit
//
// returns only when no reader can still observe the previous value
func (t *T[V]) Commit() {
	t.acquire()
	defer t.release()

	previous := t.active.Load()
	current := 1 - previous
	t.active.Store(current)

	t.drain(previous)

	t.slots[previous] = t.clone(t.slots[current])
	t.pending.Store(false)
}

// Pending - true if Write was called since the last Commit
func (t *T[V]) Pending() bool {
	return t.pending.Load()
}

// register a reader on the active side
//
// the active side is checked again after registering, if a commit
// flipped in between then the registration is withdrawn and retried
// so a reader never touches a side the writer may be overwriting
func (t *T[V]) enter() uint32 {
	for {
		side := t.active.Load()
		t.readers[side].Add(1)
		if side == t.active.Load() {
			return side
		}
		t.leave(side)
	}
}

func (t *T[V]) leave(side uint32) {
	if 0 == t.readers[side].Add(-1) && t.draining[side].Load() {
		t.mutex.Lock()
		t.drained.Broadcast()
		t.mutex.Unlock()
	}
}

// park until every reader of side has left
func (t *T[V]) drain(side uint32) {
	t.mutex.Lock()
	t.draining[side].Store(true)
	for 0 != t.readers[side].Load() {
		t.drained.Wait()
	}
	t.draining[side].Store(false)
	t.mutex.Unlock()
}

// single writer permit
func (t *T[V]) acquire() {
	for !t.busy.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (t *T[V]) release() {
	t.busy.Store(false)
}
