// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package arraylist

import "github.com/aristanetworks/goimmutable/errs"

// Builder is a mutable overlay over a dense buffer, with a capacity
// that may exceed its current length so that repeated Add calls don't
// reallocate on every single append. gen counts every mutation, so
// ForEach can detect a structural change made from inside its own
// callback and fail fast instead of iterating over a buffer that moved
// out from under it.
type Builder[T any] struct {
	buf []T
	gen uint64
}

// NewBuilder returns an empty Builder with the given initial capacity.
func NewBuilder[T any](capacity int) *Builder[T] {
	return &Builder[T]{buf: make([]T, 0, capacity)}
}

// Len returns the number of elements currently in the builder.
func (b *Builder[T]) Len() int { return len(b.buf) }

// Capacity returns the builder's current buffer capacity.
func (b *Builder[T]) Capacity() int { return cap(b.buf) }

// Add appends x, growing the buffer if necessary.
func (b *Builder[T]) Add(x T) { b.buf = append(b.buf, x); b.gen++ }

// AddAll appends every element of values.
func (b *Builder[T]) AddAll(values []T) { b.buf = append(b.buf, values...); b.gen++ }

// Insert inserts x at position i.
func (b *Builder[T]) Insert(i int, x T) error {
	if i < 0 || i > len(b.buf) {
		return errs.OutOfBoundsf("Builder.Insert", "index %d, size %d", i, len(b.buf))
	}
	var zero T
	b.buf = append(b.buf, zero)
	copy(b.buf[i+1:], b.buf[i:])
	b.buf[i] = x
	b.gen++
	return nil
}

// Set replaces the element at position i.
func (b *Builder[T]) Set(i int, x T) error {
	if i < 0 || i >= len(b.buf) {
		return errs.OutOfBoundsf("Builder.Set", "index %d, size %d", i, len(b.buf))
	}
	b.buf[i] = x
	b.gen++
	return nil
}

// Get returns the element at position i.
func (b *Builder[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(b.buf) {
		var zero T
		return zero, errs.OutOfBoundsf("Builder.Get", "index %d, size %d", i, len(b.buf))
	}
	return b.buf[i], nil
}

// Remove removes the element at position i.
func (b *Builder[T]) Remove(i int) error {
	if i < 0 || i >= len(b.buf) {
		return errs.OutOfBoundsf("Builder.Remove", "index %d, size %d", i, len(b.buf))
	}
	copy(b.buf[i:], b.buf[i+1:])
	var zero T
	b.buf[len(b.buf)-1] = zero
	b.buf = b.buf[:len(b.buf)-1]
	b.gen++
	return nil
}

// Resize sets the builder's length to n, truncating or zero-extending
// as needed. Extending beyond the current capacity reallocates.
func (b *Builder[T]) Resize(n int) error {
	if n < 0 {
		return errs.OutOfBoundsf("Builder.Resize", "negative length %d", n)
	}
	switch {
	case n <= len(b.buf):
		var zero T
		for i := n; i < len(b.buf); i++ {
			b.buf[i] = zero
		}
		b.buf = b.buf[:n]
	case n <= cap(b.buf):
		b.buf = b.buf[:n]
	default:
		grown := make([]T, n)
		copy(grown, b.buf)
		b.buf = grown
	}
	b.gen++
	return nil
}

// SetCapacity reallocates the buffer to exactly c, copying existing
// entries. c must be at least the builder's current length.
func (b *Builder[T]) SetCapacity(c int) error {
	if c < len(b.buf) {
		return errs.InvalidStatef("Builder.SetCapacity", "capacity %d smaller than length %d", c, len(b.buf))
	}
	grown := make([]T, len(b.buf), c)
	copy(grown, b.buf)
	b.buf = grown
	b.gen++
	return nil
}

// Sort sorts the builder's contents in place, stably, by cmp.
func (b *Builder[T]) Sort(cmp func(a, b T) int) { stableSort(b.buf, cmp); b.gen++ }

// Reverse reverses the builder's contents in place.
func (b *Builder[T]) Reverse() {
	for i, j := 0, len(b.buf)-1; i < j; i, j = i+1, j-1 {
		b.buf[i], b.buf[j] = b.buf[j], b.buf[i]
	}
	b.gen++
}

// Clear empties the builder, dropping its buffer entirely.
func (b *Builder[T]) Clear() { b.buf = nil; b.gen++ }

// ForEach visits every element currently in the builder, in order,
// stopping early if f returns false. If f mutates the builder, ForEach
// notices on the next iteration and fails with a ConcurrentModification
// error rather than continuing over a buffer that moved out from under
// it.
func (b *Builder[T]) ForEach(f func(T) bool) error {
	gen := b.gen
	for i := 0; i < len(b.buf); i++ {
		if b.gen != gen {
			return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
		}
		if !f(b.buf[i]) {
			return nil
		}
	}
	if b.gen != gen {
		return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
	}
	return nil
}

// ToImmutable returns an ArrayList view of the builder's current
// contents. If length equals capacity, ownership of the buffer
// transfers to the new ArrayList and the builder is reset to empty; a
// later write to the builder always reallocates, so the returned
// ArrayList is never mutated out from under its caller. Otherwise the
// first length elements are copied into an exactly-sized buffer and
// the builder's buffer is left as-is.
func (b *Builder[T]) ToImmutable() ArrayList[T] {
	if len(b.buf) == cap(b.buf) {
		buf := b.buf
		b.buf = nil
		return ArrayList[T]{buf: buf}
	}
	buf := make([]T, len(b.buf))
	copy(buf, b.buf)
	return ArrayList[T]{buf: buf}
}

// MoveToImmutable transfers the buffer to a new ArrayList without
// copying, succeeding only when length equals capacity. On success the
// builder is reset to empty. On failure the builder is unchanged and
// an InvalidState error is returned.
func (b *Builder[T]) MoveToImmutable() (ArrayList[T], error) {
	if len(b.buf) != cap(b.buf) {
		return ArrayList[T]{}, errs.InvalidStatef("Builder.MoveToImmutable", "length %d does not equal capacity %d", len(b.buf), cap(b.buf))
	}
	buf := b.buf
	b.buf = nil
	return ArrayList[T]{buf: buf}, nil
}
