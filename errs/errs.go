// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package errs defines the error kinds surfaced by the persistent
// collection packages. Every public operation that can fail reports
// one of these kinds rather than an ad-hoc error string, so callers
// can switch on Kind instead of matching message text.
package errs

import "fmt"

// Kind identifies the category of failure reported by a collection
// operation.
type Kind string

const (
	// OutOfBounds is returned by an indexed accessor or bounded
	// operation given an index outside the valid range.
	OutOfBounds Kind = "out-of-bounds"
	// KeyConflict is returned by a map Add of a key already present
	// with an unequal value, or by a comparator change that would
	// merge two keys whose values are unequal.
	KeyConflict Kind = "key-conflict"
	// NotFound is returned by Replace when the old value is absent.
	NotFound Kind = "not-found"
	// Empty is returned by Peek/Pop/Poll on an empty stack or queue.
	Empty Kind = "empty"
	// NullArgument is returned when a required reference argument is
	// nil.
	NullArgument Kind = "null-argument"
	// InvalidState is returned by Builder.MoveToImmutable when length
	// does not equal capacity.
	InvalidState Kind = "invalid-state"
	// ConcurrentModification is returned by iterator operations on a
	// Builder that was mutated after the iterator was obtained.
	ConcurrentModification Kind = "concurrent-modification"
)

// Error is the concrete error type returned by every package in this
// module. Op names the operation that failed (e.g. "TreeList.Get");
// Kind is one of the constants above.
type Error struct {
	Op      string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Is reports whether target is the same Kind, so that
// errors.Is(err, errs.OutOfBounds) works without exposing *Error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Error makes Kind itself satisfy the error interface, so that
// errors.Is(err, errs.OutOfBounds) can compare against the bare
// constant.
func (k Kind) Error() string { return string(k) }

// New constructs an *Error for op and kind with a formatted message.
func New(op string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// OutOfBoundsf builds an OutOfBounds error, e.g.
// errs.OutOfBoundsf("TreeList.Get", "index %d, size %d", i, size).
func OutOfBoundsf(op, format string, args ...interface{}) *Error {
	return New(op, OutOfBounds, format, args...)
}

// KeyConflictf builds a KeyConflict error.
func KeyConflictf(op, format string, args ...interface{}) *Error {
	return New(op, KeyConflict, format, args...)
}

// NotFoundf builds a NotFound error.
func NotFoundf(op, format string, args ...interface{}) *Error {
	return New(op, NotFound, format, args...)
}

// Emptyf builds an Empty error.
func Emptyf(op, format string, args ...interface{}) *Error {
	return New(op, Empty, format, args...)
}

// NullArgumentf builds a NullArgument error, naming the argument.
func NullArgumentf(op, arg string) *Error {
	return New(op, NullArgument, "%s must not be nil", arg)
}

// InvalidStatef builds an InvalidState error.
func InvalidStatef(op, format string, args ...interface{}) *Error {
	return New(op, InvalidState, format, args...)
}

// ConcurrentModificationf builds a ConcurrentModification error.
func ConcurrentModificationf(op, format string, args ...interface{}) *Error {
	return New(op, ConcurrentModification, format, args...)
}
