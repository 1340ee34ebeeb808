// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package atomicupdate applies pure functions to a value held behind
// an atomic.Pointer using compare-and-swap retry, so that lock-free
// readers and writers of a shared reference to any of this module's
// immutable snapshots never need a mutex: a writer that loses the race
// simply re-applies its transformer to whatever the winner left
// behind.
package atomicupdate

import (
	"sync/atomic"

	"github.com/aristanetworks/goimmutable/monitor"
)

// Ref is a compare-and-swap cell holding a pointer to an immutable
// value of type T. The zero Ref holds nil; callers typically seed it
// with Store before the first Update.
type Ref[T any] struct {
	p       atomic.Pointer[T]
	retries *monitor.RetryCounter
}

// NewRef returns a Ref initialized to v.
func NewRef[T any](v T) *Ref[T] {
	r := &Ref[T]{}
	r.p.Store(&v)
	return r
}

// WithRetryCounter attaches c to r; every CAS retry Update performs
// against r afterward increments c. Passing nil (the default) disables
// retry counting. Returns r for chaining at construction time.
func (r *Ref[T]) WithRetryCounter(c *monitor.RetryCounter) *Ref[T] {
	r.retries = c
	return r
}

// Load returns the current value.
func (r *Ref[T]) Load() T {
	return *r.p.Load()
}

// Store unconditionally replaces the current value. Not part of the
// lock-free update protocol; intended for initialization only.
func (r *Ref[T]) Store(v T) {
	r.p.Store(&v)
}

// Update applies transformer to the value behind r, retrying under
// contention until its compare-and-swap succeeds. transformer is
// called at least once and may be called repeatedly; it must not
// assume idempotence or cache state across calls. If transformer
// panics, the panic propagates to the caller of Update and r is left
// unchanged. Update returns true if it stored a new value, false if
// transformer's output compared reference-equal (via the identical
// function, typically a pointer or interface identity check appropriate
// to T) to its input, meaning no change was needed.
func Update[T any](r *Ref[T], identical func(a, b T) bool, transformer func(old T) T) bool {
	for {
		oldPtr := r.p.Load()
		old := *oldPtr
		next := transformer(old)
		if identical(old, next) {
			return false
		}
		newPtr := &next
		if r.p.CompareAndSwap(oldPtr, newPtr) {
			return true
		}
		if r.retries != nil {
			r.retries.Inc()
		}
	}
}
