// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package avl

// Compare returns <0, 0, >0 to order a before, at, or after b. It is
// supplied by the caller (TreeSet, or hashtrie for its hash slots);
// this package never defines one of its own. Find, Insert, Remove and
// IndexOf take the plain func(a, b T) int form, so a caller's own named
// comparator type (such as treeset.Compare) is accepted as is.
type Compare[T any] func(a, b T) int

// Find returns the value in n that compares equal to key and true, or
// the zero value and false if there is none.
func Find[T any](n *Node[T], key T, cmp func(a, b T) int) (T, bool) {
	for n != nil {
		c := cmp(key, n.Value)
		switch {
		case c < 0:
			n = n.Left
		case c > 0:
			n = n.Right
		default:
			return n.Value, true
		}
	}
	var zero T
	return zero, false
}

// Insert returns a new tree with value inserted according to cmp. If
// an element comparing equal already exists, replace controls whether
// it is overwritten (true) or the original tree is returned unchanged,
// reference-identical (false). changed reports whether the tree
// actually differs from n.
func Insert[T any](n *Node[T], value T, cmp func(a, b T) int, replace bool, owner uint64) (result *Node[T], changed bool) {
	if n == nil {
		return Leaf(value, owner), true
	}
	c := cmp(value, n.Value)
	switch {
	case c < 0:
		newLeft, ch := Insert(n.Left, value, cmp, replace, owner)
		if !ch {
			return n, false
		}
		return rebalance(n, newLeft, n.Value, n.Right, owner), true
	case c > 0:
		newRight, ch := Insert(n.Right, value, cmp, replace, owner)
		if !ch {
			return n, false
		}
		return rebalance(n, n.Left, n.Value, newRight, owner), true
	default:
		if !replace {
			return n, false
		}
		return reuse(n, n.Left, value, n.Right, owner), true
	}
}

// Remove returns a new tree with the element comparing equal to key
// removed. If no such element exists, the original tree is returned
// reference-identical and found is false.
func Remove[T any](n *Node[T], key T, cmp func(a, b T) int, owner uint64) (result *Node[T], found bool) {
	if n == nil {
		return nil, false
	}
	c := cmp(key, n.Value)
	switch {
	case c < 0:
		newLeft, ok := Remove(n.Left, key, cmp, owner)
		if !ok {
			return n, false
		}
		return rebalance(n, newLeft, n.Value, n.Right, owner), true
	case c > 0:
		newRight, ok := Remove(n.Right, key, cmp, owner)
		if !ok {
			return n, false
		}
		return rebalance(n, n.Left, n.Value, newRight, owner), true
	default:
		if n.Right == nil {
			return n.Left, true
		}
		if n.Left == nil {
			return n.Right, true
		}
		v, newRight := removeMin(n.Right, owner)
		return rebalance(n, n.Left, v, newRight, owner), true
	}
}

// IndexOf returns the in-order rank of the element comparing equal to
// key, or -1 if absent. Uses the same size-driven descent as the
// indexed operations, so it is O(log n) rather than a scan.
func IndexOf[T any](n *Node[T], key T, cmp func(a, b T) int) int {
	rank := 0
	for n != nil {
		c := cmp(key, n.Value)
		switch {
		case c < 0:
			n = n.Left
		case c > 0:
			rank += Size(n.Left) + 1
			n = n.Right
		default:
			return rank + Size(n.Left)
		}
	}
	return -1
}

// BuildSorted constructs a perfectly balanced tree holding values in
// slice order, in O(n). It does not compare or sort anything: values
// given in ascending order make a valid search tree, and TreeList also
// uses it to build an index-ordered tree from any slice.
func BuildSorted[T any](values []T, owner uint64) *Node[T] {
	if len(values) == 0 {
		return nil
	}
	mid := len(values) / 2
	left := BuildSorted(values[:mid], owner)
	right := BuildSorted(values[mid+1:], owner)
	return New(left, values[mid], right, owner)
}
