// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package treeset implements TreeSet, a persistent sorted set over an
// AVL tree ordered by a caller-supplied comparator.
package treeset

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
)

// Compare orders a and b, returning <0, 0 or >0. Supplied by the
// caller; TreeSet defines no ordering of its own.
type Compare[T any] func(a, b T) int

// TreeSet is a persistent sorted set of T.
type TreeSet[T any] struct {
	root *avl.Node[T]
	cmp  Compare[T]
}

func empty[T any](cmp Compare[T]) TreeSet[T] { return TreeSet[T]{cmp: cmp} }

// Empty returns an empty TreeSet ordered by cmp. cmp must not be nil.
func Empty[T any](cmp Compare[T]) (TreeSet[T], error) {
	if cmp == nil {
		return TreeSet[T]{}, errs.NullArgumentf("TreeSet.Empty", "cmp")
	}
	return empty(cmp), nil
}

// Of builds a TreeSet containing the distinct elements of values,
// ordered by cmp. Later duplicates under cmp are discarded.
func Of[T any](cmp Compare[T], values ...T) TreeSet[T] {
	s := empty(cmp)
	for _, v := range values {
		s = s.Add(v)
	}
	return s
}

// Len returns the number of elements.
func (s TreeSet[T]) Len() int { return avl.Size(s.root) }

// Contains reports whether x is present.
func (s TreeSet[T]) Contains(x T) bool {
	_, ok := avl.Find(s.root, x, s.cmp)
	return ok
}

// Add returns a new TreeSet with x added. If x is already present, the
// receiver is returned reference-equal.
func (s TreeSet[T]) Add(x T) TreeSet[T] {
	root, changed := avl.Insert(s.root, x, s.cmp, false, 0)
	if !changed {
		return s
	}
	return TreeSet[T]{root: root, cmp: s.cmp}
}

// Remove returns a new TreeSet with x removed. If x is absent, the
// receiver is returned reference-equal.
func (s TreeSet[T]) Remove(x T) TreeSet[T] {
	root, found := avl.Remove(s.root, x, s.cmp, 0)
	if !found {
		return s
	}
	return TreeSet[T]{root: root, cmp: s.cmp}
}

// Get returns the element at rank i (0-indexed in ascending order).
func (s TreeSet[T]) Get(i int) (T, error) {
	if i < 0 || i >= s.Len() {
		var zero T
		return zero, errs.OutOfBoundsf("TreeSet.Get", "index %d, size %d", i, s.Len())
	}
	return avl.GetAt(s.root, i), nil
}

// IndexOf returns the rank of x, or -1 if absent.
func (s TreeSet[T]) IndexOf(x T) int {
	return avl.IndexOf(s.root, x, s.cmp)
}

// Min returns the smallest element. ok is false for an empty set.
func (s TreeSet[T]) Min() (v T, ok bool) {
	if s.root == nil {
		return v, false
	}
	return avl.Min(s.root), true
}

// Max returns the largest element. ok is false for an empty set.
func (s TreeSet[T]) Max() (v T, ok bool) {
	if s.root == nil {
		return v, false
	}
	return avl.Max(s.root), true
}

// ForEach visits every element in ascending order, stopping early if f
// returns false.
func (s TreeSet[T]) ForEach(f func(T) bool) { avl.InOrder(s.root, f) }

// ForEachReverse visits every element in descending order.
func (s TreeSet[T]) ForEachReverse(f func(T) bool) { avl.ReverseOrder(s.root, f) }

// ToSlice materializes s into a new, independent, ascending slice.
func (s TreeSet[T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	avl.InOrder(s.root, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Union returns a new TreeSet containing every element of s and other.
// When both operands share the same comparator, the smaller set is
// folded into the larger one for fewer rebalances.
func (s TreeSet[T]) Union(other TreeSet[T]) TreeSet[T] {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return TreeSet[T]{root: other.root, cmp: s.cmp}
	}
	into, from := s, other
	if from.Len() > into.Len() {
		into, from = from, into
		into.cmp = s.cmp
	}
	result := into
	avl.InOrder(from.root, func(v T) bool {
		result = result.Add(v)
		return true
	})
	return result
}

// Intersect returns the elements present in both s and other.
func (s TreeSet[T]) Intersect(other TreeSet[T]) TreeSet[T] {
	if s.Len() == 0 || other.Len() == 0 {
		return empty[T](s.cmp)
	}
	result := empty[T](s.cmp)
	s.ForEach(func(v T) bool {
		if other.Contains(v) {
			result = result.Add(v)
		}
		return true
	})
	return result
}

// Except returns the elements of s not present in other.
func (s TreeSet[T]) Except(other TreeSet[T]) TreeSet[T] {
	if other.Len() == 0 {
		return s
	}
	result := empty[T](s.cmp)
	s.ForEach(func(v T) bool {
		if !other.Contains(v) {
			result = result.Add(v)
		}
		return true
	})
	return result
}

// SymmetricExcept returns the elements present in exactly one of s and
// other.
func (s TreeSet[T]) SymmetricExcept(other TreeSet[T]) TreeSet[T] {
	return s.Except(other).Union(other.Except(s))
}

// IsSubsetOf reports whether every element of s is in other.
func (s TreeSet[T]) IsSubsetOf(other TreeSet[T]) bool {
	ok := true
	s.ForEach(func(v T) bool {
		if !other.Contains(v) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// IsSupersetOf reports whether every element of other is in s.
func (s TreeSet[T]) IsSupersetOf(other TreeSet[T]) bool {
	return other.IsSubsetOf(s)
}

// IsProperSubsetOf reports whether s is a subset of other and smaller.
func (s TreeSet[T]) IsProperSubsetOf(other TreeSet[T]) bool {
	return s.Len() < other.Len() && s.IsSubsetOf(other)
}

// IsProperSupersetOf reports whether s is a superset of other and
// larger.
func (s TreeSet[T]) IsProperSupersetOf(other TreeSet[T]) bool {
	return other.IsProperSubsetOf(s)
}

// Overlaps reports whether s and other share any element.
func (s TreeSet[T]) Overlaps(other TreeSet[T]) bool {
	found := false
	s.ForEach(func(v T) bool {
		if other.Contains(v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// SetEquals reports whether s and other contain the same distinct
// elements, collapsing duplicates on either side (spec.md §8 scenario
// 6: {5}.SetEquals([5,5]) is true).
func (s TreeSet[T]) SetEquals(other TreeSet[T]) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}

// WithComparator returns a set with the same elements ordered by cmp
// instead. Elements that collapse under the new comparator are kept
// once (the first one encountered in s's original ascending order).
func (s TreeSet[T]) WithComparator(cmp Compare[T]) TreeSet[T] {
	result := empty[T](cmp)
	s.ForEach(func(v T) bool {
		result = result.Add(v)
		return true
	})
	return result
}

// ToBuilder returns a mutable Builder sharing s's root.
func (s TreeSet[T]) ToBuilder() *Builder[T] {
	avl.Freeze(s.root)
	return &Builder[T]{root: s.root, cmp: s.cmp, owner: avl.NextOwner()}
}

// Identical reports whether s and other share the same underlying
// tree. Used by atomicupdate.Update to detect a no-op transform.
func (s TreeSet[T]) Identical(other TreeSet[T]) bool { return s.root == other.root }
