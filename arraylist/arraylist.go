// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package arraylist implements ArrayList, a persistent sequence backed
// by a dense buffer rather than a tree: every mutation allocates a
// fresh, exactly-sized buffer and copies into it, the same way the
// path package's Append/Join/Clone build a new Path by copying into a
// precisely-sized slice rather than growing one incrementally.
package arraylist

import "github.com/aristanetworks/goimmutable/errs"

// ArrayList is a persistent, indexable sequence of T backed by a dense
// buffer.
type ArrayList[T any] struct {
	buf []T
}

// Empty is the empty ArrayList.
func Empty[T any]() ArrayList[T] { return ArrayList[T]{} }

// Of builds an ArrayList containing values, copied into a
// freshly-allocated, exactly-sized buffer.
func Of[T any](values ...T) ArrayList[T] {
	buf := make([]T, len(values))
	copy(buf, values)
	return ArrayList[T]{buf: buf}
}

// CreateAll builds an ArrayList containing every element of values, in
// order. values is itself already an ArrayList, so this is the
// identity: the receiver is returned reference-equal.
func CreateAll[T any](values ArrayList[T]) ArrayList[T] {
	return values
}

// CreateAllSlice is CreateAll for a plain slice, for callers that don't
// already hold an ArrayList. An empty values returns Empty[T](), the
// same zero-length representation every other empty ArrayList shares
// under Identical.
func CreateAllSlice[T any](values []T) ArrayList[T] {
	if len(values) == 0 {
		return Empty[T]()
	}
	return Of(values...)
}

// CastUp widens an ArrayList[T] to ArrayList[U] given widen, which
// should be a genuine widening (every T convertible to U without loss,
// e.g. a concrete type to an interface it implements). Go has no
// variance between instantiations of a generic type, so this always
// builds a new buffer; the one case it can make free is an empty
// source, which returns Empty[U]() without calling widen at all.
func CastUp[T, U any](a ArrayList[T], widen func(T) U) ArrayList[U] {
	if len(a.buf) == 0 {
		return Empty[U]()
	}
	buf := make([]U, len(a.buf))
	for i, v := range a.buf {
		buf[i] = widen(v)
	}
	return ArrayList[U]{buf: buf}
}

// Len returns the number of elements.
func (a ArrayList[T]) Len() int { return len(a.buf) }

// Get returns the element at index i.
func (a ArrayList[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(a.buf) {
		var zero T
		return zero, errs.OutOfBoundsf("ArrayList.Get", "index %d, size %d", i, len(a.buf))
	}
	return a.buf[i], nil
}

// Contains reports whether any element equals x under eq.
func (a ArrayList[T]) Contains(x T, eq func(a, b T) bool) bool {
	for _, v := range a.buf {
		if eq(v, x) {
			return true
		}
	}
	return false
}

// Add returns a new ArrayList with x appended.
func (a ArrayList[T]) Add(x T) ArrayList[T] {
	buf := make([]T, len(a.buf)+1)
	copy(buf, a.buf)
	buf[len(a.buf)] = x
	return ArrayList[T]{buf: buf}
}

// AddAll returns a new ArrayList with every element of values
// appended. An empty values returns the receiver reference-equal.
func (a ArrayList[T]) AddAll(values []T) ArrayList[T] {
	if len(values) == 0 {
		return a
	}
	buf := make([]T, len(a.buf)+len(values))
	copy(buf, a.buf)
	copy(buf[len(a.buf):], values)
	return ArrayList[T]{buf: buf}
}

// Insert returns a new ArrayList with x inserted at position i.
func (a ArrayList[T]) Insert(i int, x T) (ArrayList[T], error) {
	if i < 0 || i > len(a.buf) {
		return a, errs.OutOfBoundsf("ArrayList.Insert", "index %d, size %d", i, len(a.buf))
	}
	buf := make([]T, len(a.buf)+1)
	copy(buf, a.buf[:i])
	buf[i] = x
	copy(buf[i+1:], a.buf[i:])
	return ArrayList[T]{buf: buf}, nil
}

// InsertAll returns a new ArrayList with every element of values
// inserted starting at position i. An empty values returns the
// receiver reference-equal.
func (a ArrayList[T]) InsertAll(i int, values []T) (ArrayList[T], error) {
	if i < 0 || i > len(a.buf) {
		return a, errs.OutOfBoundsf("ArrayList.InsertAll", "index %d, size %d", i, len(a.buf))
	}
	if len(values) == 0 {
		return a, nil
	}
	buf := make([]T, len(a.buf)+len(values))
	copy(buf, a.buf[:i])
	copy(buf[i:], values)
	copy(buf[i+len(values):], a.buf[i:])
	return ArrayList[T]{buf: buf}, nil
}

// Set returns a new ArrayList with the element at index i replaced.
func (a ArrayList[T]) Set(i int, x T) (ArrayList[T], error) {
	if i < 0 || i >= len(a.buf) {
		return a, errs.OutOfBoundsf("ArrayList.Set", "index %d, size %d", i, len(a.buf))
	}
	buf := make([]T, len(a.buf))
	copy(buf, a.buf)
	buf[i] = x
	return ArrayList[T]{buf: buf}, nil
}

// Remove returns a new ArrayList with the element at index i removed.
func (a ArrayList[T]) Remove(i int) (ArrayList[T], error) {
	if i < 0 || i >= len(a.buf) {
		return a, errs.OutOfBoundsf("ArrayList.Remove", "index %d, size %d", i, len(a.buf))
	}
	buf := make([]T, len(a.buf)-1)
	copy(buf, a.buf[:i])
	copy(buf[i:], a.buf[i+1:])
	return ArrayList[T]{buf: buf}, nil
}

// RemoveAll returns a new ArrayList with the half-open range [from,to)
// removed. from == to returns the receiver reference-equal.
func (a ArrayList[T]) RemoveAll(from, to int) (ArrayList[T], error) {
	if from < 0 || to < from || to > len(a.buf) {
		return a, errs.OutOfBoundsf("ArrayList.RemoveAll", "range [%d,%d), size %d", from, to, len(a.buf))
	}
	if from == to {
		return a, nil
	}
	buf := make([]T, len(a.buf)-(to-from))
	copy(buf, a.buf[:from])
	copy(buf[from:], a.buf[to:])
	return ArrayList[T]{buf: buf}, nil
}

// RemoveIf returns a new ArrayList with every element matching pred
// removed. If none match, the receiver is returned reference-equal.
func (a ArrayList[T]) RemoveIf(pred func(T) bool) ArrayList[T] {
	kept := make([]T, 0, len(a.buf))
	removedAny := false
	for _, v := range a.buf {
		if pred(v) {
			removedAny = true
		} else {
			kept = append(kept, v)
		}
	}
	if !removedAny {
		return a
	}
	return ArrayList[T]{buf: kept}
}

// Replace returns a new ArrayList with every element equal to old
// under eq replaced by replacement. If old is absent, Replace fails
// with a NotFound error and the receiver is returned unchanged.
func (a ArrayList[T]) Replace(old, replacement T, eq func(a, b T) bool) (ArrayList[T], error) {
	idx := -1
	for i, v := range a.buf {
		if eq(v, old) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return a, errs.NotFoundf("ArrayList.Replace", "no element equal to the given value")
	}
	buf := make([]T, len(a.buf))
	copy(buf, a.buf)
	buf[idx] = replacement
	return ArrayList[T]{buf: buf}, nil
}

// Reverse returns a new ArrayList with elements in reverse order. A
// 0- or 1-element ArrayList is returned reference-equal.
func (a ArrayList[T]) Reverse() ArrayList[T] {
	if len(a.buf) <= 1 {
		return a
	}
	buf := make([]T, len(a.buf))
	for i, v := range a.buf {
		buf[len(a.buf)-1-i] = v
	}
	return ArrayList[T]{buf: buf}
}

// Sort returns a new ArrayList sorted stably by cmp. If already
// sorted, the receiver is returned reference-equal.
func (a ArrayList[T]) Sort(cmp func(a, b T) int) ArrayList[T] {
	if len(a.buf) <= 1 {
		return a
	}
	sorted := make([]T, len(a.buf))
	copy(sorted, a.buf)
	stableSort(sorted, cmp)
	for i := range sorted {
		if cmp(sorted[i], a.buf[i]) != 0 {
			return ArrayList[T]{buf: sorted}
		}
	}
	return a
}

// stableSort is the same insertion/merge hybrid treelist.Sort uses,
// kept here rather than shared so each package's comparator stays a
// plain func(a,b T) int with no interface boxing.
func stableSort[T any](s []T, cmp func(a, b T) int) {
	if len(s) < 12 {
		insertionSort(s, cmp)
		return
	}
	mid := len(s) / 2
	stableSort(s[:mid], cmp)
	stableSort(s[mid:], cmp)
	merge(s, mid, cmp)
}

func insertionSort[T any](s []T, cmp func(a, b T) int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && cmp(s[j], s[j-1]) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func merge[T any](s []T, mid int, cmp func(a, b T) int) {
	left := append([]T(nil), s[:mid]...)
	right := append([]T(nil), s[mid:]...)
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp(left[i], right[j]) <= 0 {
			s[k] = left[i]
			i++
		} else {
			s[k] = right[j]
			j++
		}
		k++
	}
	for i < len(left) {
		s[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		s[k] = right[j]
		j++
		k++
	}
}

// BinarySearch locates x in a, which must already be sorted ascending
// by cmp. Returns the index and true if found; otherwise the index at
// which x would be inserted to keep a sorted, and false.
func (a ArrayList[T]) BinarySearch(x T, cmp func(a, b T) int) (int, bool) {
	lo, hi := 0, len(a.buf)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case cmp(a.buf[mid], x) < 0:
			lo = mid + 1
		case cmp(a.buf[mid], x) > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// IndexOf returns the index of the first element equal to x under eq,
// or -1.
func (a ArrayList[T]) IndexOf(x T, eq func(a, b T) bool) int {
	for i, v := range a.buf {
		if eq(v, x) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last element equal to x under
// eq, or -1.
func (a ArrayList[T]) LastIndexOf(x T, eq func(a, b T) bool) int {
	for i := len(a.buf) - 1; i >= 0; i-- {
		if eq(a.buf[i], x) {
			return i
		}
	}
	return -1
}

// ForEach visits every element in order, stopping early if f returns
// false. It snapshots the current buffer: later mutation of this
// ArrayList (impossible; ArrayList is immutable) or of a Builder this
// ArrayList was produced from is never visible mid-iteration.
func (a ArrayList[T]) ForEach(f func(T) bool) {
	for _, v := range a.buf {
		if !f(v) {
			return
		}
	}
}

// ToSlice returns a new, independent copy of a's contents.
func (a ArrayList[T]) ToSlice() []T {
	out := make([]T, len(a.buf))
	copy(out, a.buf)
	return out
}

// ToBuilder returns a mutable Builder over an independent copy of a's
// buffer.
func (a ArrayList[T]) ToBuilder() *Builder[T] {
	buf := make([]T, len(a.buf))
	copy(buf, a.buf)
	return &Builder[T]{buf: buf}
}

// Identical reports whether a and other share the same underlying
// buffer. Used by atomicupdate.Update to detect a no-op transform.
func (a ArrayList[T]) Identical(other ArrayList[T]) bool {
	if len(a.buf) != len(other.buf) {
		return false
	}
	if len(a.buf) == 0 {
		return true
	}
	return &a.buf[0] == &other.buf[0]
}
