// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package treelist implements TreeList, a persistent sequence backed
// by an AVL tree indexed by subtree size rather than by key. Every
// mutating operation returns a new TreeList; the receiver and every
// TreeList derived from it along the way remain valid and safe for
// concurrent readers.
package treelist

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
)

// TreeList is a persistent, indexable sequence of T.
type TreeList[T any] struct {
	root *avl.Node[T]
}

// Empty is the empty TreeList. Because TreeList is a value type
// wrapping a nil root, the zero value of TreeList[T] is already empty;
// Empty exists for readability at call sites.
func Empty[T any]() TreeList[T] { return TreeList[T]{} }

// Of builds a TreeList containing values in order.
func Of[T any](values ...T) TreeList[T] {
	return TreeList[T]{root: avl.BuildSorted(values, 0)}
}

// Len returns the number of elements.
func (l TreeList[T]) Len() int { return avl.Size(l.root) }

// Get returns the element at index i.
func (l TreeList[T]) Get(i int) (T, error) {
	if i < 0 || i >= l.Len() {
		var zero T
		return zero, errs.OutOfBoundsf("TreeList.Get", "index %d, size %d", i, l.Len())
	}
	return avl.GetAt(l.root, i), nil
}

// Add returns a new TreeList with x appended.
func (l TreeList[T]) Add(x T) TreeList[T] {
	return TreeList[T]{root: avl.InsertAt(l.root, l.Len(), x, 0)}
}

// Insert returns a new TreeList with x inserted at position i.
func (l TreeList[T]) Insert(i int, x T) (TreeList[T], error) {
	if i < 0 || i > l.Len() {
		return l, errs.OutOfBoundsf("TreeList.Insert", "index %d, size %d", i, l.Len())
	}
	return TreeList[T]{root: avl.InsertAt(l.root, i, x, 0)}, nil
}

// AddAll returns a new TreeList with every element of values appended,
// in order. If values is itself a TreeList, the whole subtree is
// spliced in with the AVL join algorithm (O(log n + log m)) instead of
// one rotation per element.
func (l TreeList[T]) AddAll(values TreeList[T]) TreeList[T] {
	if values.root == nil {
		return l
	}
	return TreeList[T]{root: avl.Join(l.root, values.root, 0)}
}

// AddAllSlice is AddAll for a plain slice, for callers that don't
// already hold a TreeList.
func (l TreeList[T]) AddAllSlice(values []T) TreeList[T] {
	if len(values) == 0 {
		return l
	}
	return l.AddAll(Of(values...))
}

// InsertAll returns a new TreeList with every element of values
// spliced in starting at position i.
func (l TreeList[T]) InsertAll(i int, values TreeList[T]) (TreeList[T], error) {
	if i < 0 || i > l.Len() {
		return l, errs.OutOfBoundsf("TreeList.InsertAll", "index %d, size %d", i, l.Len())
	}
	if values.root == nil {
		return l, nil
	}
	return TreeList[T]{root: avl.SpliceAt(l.root, i, values.root, 0)}, nil
}

// Set returns a new TreeList with the element at index i replaced.
func (l TreeList[T]) Set(i int, x T) (TreeList[T], error) {
	if i < 0 || i >= l.Len() {
		return l, errs.OutOfBoundsf("TreeList.Set", "index %d, size %d", i, l.Len())
	}
	return TreeList[T]{root: avl.SetAt(l.root, i, x, 0)}, nil
}

// Remove returns a new TreeList with the element at index i removed.
func (l TreeList[T]) Remove(i int) (TreeList[T], error) {
	if i < 0 || i >= l.Len() {
		return l, errs.OutOfBoundsf("TreeList.Remove", "index %d, size %d", i, l.Len())
	}
	return TreeList[T]{root: avl.RemoveAt(l.root, i, 0)}, nil
}

// RemoveAll returns a new TreeList with the half-open range [from,to)
// removed.
func (l TreeList[T]) RemoveAll(from, to int) (TreeList[T], error) {
	if from < 0 || to < from || to > l.Len() {
		return l, errs.OutOfBoundsf("TreeList.RemoveAll", "range [%d,%d), size %d", from, to, l.Len())
	}
	if from == to {
		return l, nil
	}
	left, rest := avl.SplitAt(l.root, from, 0)
	_, right := avl.SplitAt(rest, to-from, 0)
	return TreeList[T]{root: avl.Join(left, right, 0)}, nil
}

// RemoveIf returns a new TreeList with every element matching pred
// removed. If none match, the receiver is returned reference-equal.
func (l TreeList[T]) RemoveIf(pred func(T) bool) TreeList[T] {
	if l.root == nil {
		return l
	}
	kept := make([]T, 0, l.Len())
	removedAny := false
	avl.InOrder(l.root, func(v T) bool {
		if pred(v) {
			removedAny = true
		} else {
			kept = append(kept, v)
		}
		return true
	})
	if !removedAny {
		return l
	}
	return TreeList[T]{root: avl.BuildSorted(kept, 0)}
}

// IndexOf returns the index of the first element in [from,to) equal to
// x under eq, or -1. It visits elements left to right and stops at the
// first match.
func (l TreeList[T]) IndexOf(x T, from, to int, eq func(a, b T) bool) (int, error) {
	if from < 0 || to < from || to > l.Len() {
		return -1, errs.OutOfBoundsf("TreeList.IndexOf", "range [%d,%d), size %d", from, to, l.Len())
	}
	found := -1
	i := from
	avl.InOrder(sliceRoot(l.root, from, to), func(v T) bool {
		if eq(v, x) {
			found = i
			return false
		}
		i++
		return true
	})
	return found, nil
}

// LastIndexOf is IndexOf scanning backward from fromIdx down to toIdx.
func (l TreeList[T]) LastIndexOf(x T, fromIdx, toIdx int, eq func(a, b T) bool) (int, error) {
	if toIdx < 0 || fromIdx < toIdx || fromIdx >= l.Len() {
		return -1, errs.OutOfBoundsf("TreeList.LastIndexOf", "range [%d,%d], size %d", toIdx, fromIdx, l.Len())
	}
	found := -1
	i := fromIdx
	avl.ReverseOrder(sliceRoot(l.root, toIdx, fromIdx+1), func(v T) bool {
		if eq(v, x) {
			found = i
			return false
		}
		i--
		return true
	})
	return found, nil
}

// sliceRoot returns the subtree covering [from,to) without mutating l;
// it borrows SplitAt purely for traversal and discards the outer
// pieces (cheap: only path nodes are allocated, and the original tree
// is untouched since SplitAt never mutates its input).
func sliceRoot[T any](root *avl.Node[T], from, to int) *avl.Node[T] {
	_, rest := avl.SplitAt(root, from, 0)
	mid, _ := avl.SplitAt(rest, to-from, 0)
	return mid
}

// Sort returns a new TreeList with the range [from,to) sorted
// stably by cmp. If the range is already sorted, the receiver is
// returned reference-equal.
func (l TreeList[T]) Sort(from, to int, cmp func(a, b T) int) (TreeList[T], error) {
	if from < 0 || to < from || to > l.Len() {
		return l, errs.OutOfBoundsf("TreeList.Sort", "range [%d,%d), size %d", from, to, l.Len())
	}
	if to-from <= 1 {
		return l, nil
	}
	scratch := make([]T, 0, to-from)
	avl.InOrder(sliceRoot(l.root, from, to), func(v T) bool {
		scratch = append(scratch, v)
		return true
	})
	stableSort(scratch, cmp)
	// Preserve identity when the range was already sorted: comparing
	// the freshly sorted scratch slice against the original range
	// catches it without a separate "is it sorted" pre-pass.
	if rangeEqualsOriginal(l.root, from, to, scratch, cmp) {
		return l, nil
	}
	sortedSub := avl.BuildSorted(scratch, 0)
	left, rest := avl.SplitAt(l.root, from, 0)
	_, right := avl.SplitAt(rest, to-from, 0)
	return TreeList[T]{root: avl.Join(avl.Join(left, sortedSub, 0), right, 0)}, nil
}

func rangeEqualsOriginal[T any](root *avl.Node[T], from, to int, sorted []T, cmp func(a, b T) int) bool {
	i := 0
	equal := true
	avl.InOrder(sliceRoot(root, from, to), func(v T) bool {
		if cmp(v, sorted[i]) != 0 {
			equal = false
			return false
		}
		i++
		return true
	})
	return equal
}

// stableSort is a small stable insertion/merge hybrid: insertion sort
// below a threshold, merge sort above. Avoids importing sort.Slice,
// which would require boxing via an interface closure per comparison
// anyway; this keeps the comparator a plain func(a,b T) int.
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

// Reverse returns a new TreeList with the range [from,to) reversed.
func (l TreeList[T]) Reverse(from, to int) (TreeList[T], error) {
	if from < 0 || to < from || to > l.Len() {
		return l, errs.OutOfBoundsf("TreeList.Reverse", "range [%d,%d), size %d", from, to, l.Len())
	}
	if to-from <= 1 {
		return l, nil
	}
	scratch := make([]T, 0, to-from)
	avl.InOrder(sliceRoot(l.root, from, to), func(v T) bool {
		scratch = append(scratch, v)
		return true
	})
	for i, j := 0, len(scratch)-1; i < j; i, j = i+1, j-1 {
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	reversedSub := avl.BuildSorted(scratch, 0)
	left, rest := avl.SplitAt(l.root, from, 0)
	_, right := avl.SplitAt(rest, to-from, 0)
	return TreeList[T]{root: avl.Join(avl.Join(left, reversedSub, 0), right, 0)}, nil
}

// ToSlice materializes l into a new, independent slice.
func (l TreeList[T]) ToSlice() []T {
	out := make([]T, 0, l.Len())
	avl.InOrder(l.root, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// ForEach visits every element in order, stopping early if f returns
// false.
func (l TreeList[T]) ForEach(f func(T) bool) {
	avl.InOrder(l.root, f)
}

// ToBuilder returns a mutable Builder sharing l's root. l is
// unaffected by later mutation of the builder: every reachable node is
// treated as frozen until the builder's first write along a path.
func (l TreeList[T]) ToBuilder() *Builder[T] {
	avl.Freeze(l.root)
	return &Builder[T]{root: l.root, owner: nextOwner()}
}

// Identical reports whether l and other share the same underlying
// tree, i.e. one was produced from the other (or both from a common
// ancestor) by an operation that made no change. Used by
// atomicupdate.Update to detect a no-op transform without requiring
// TreeList to be comparable with ==.
func (l TreeList[T]) Identical(other TreeList[T]) bool { return l.root == other.root }
