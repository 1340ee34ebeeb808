// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package avl implements the height-balanced binary tree shared by
// every persistent container in this module: TreeList indexes it by
// subtree size, TreeSet and the hash containers index it by a
// caller-supplied comparator. The node type, rotations and the
// freeze/ownership discipline live here once so that every container
// built on top gets the same balance and persistence guarantees.
package avl

import "sync/atomic"

// ownerCounter hands out the ownership tokens builders stamp on the
// nodes they allocate. A fresh token per Builder is enough to tell
// "mine, still mutable" apart from "shared with some other snapshot or
// builder" without any other bookkeeping.
var ownerCounter uint64

// NextOwner returns a token not previously returned by NextOwner,
// safe to call concurrently.
func NextOwner() uint64 {
	return atomic.AddUint64(&ownerCounter, 1)
}

// Node is an immutable-by-default AVL node. Once Frozen is true no
// field may ever change and the node may be shared by any number of
// readers across goroutines. A node with Frozen false was allocated by
// a Builder and may be mutated in place only while that Builder holds
// exclusive access to it.
type Node[T any] struct {
	Value  T
	Left   *Node[T]
	Right  *Node[T]
	height uint8
	size   uint32
	Frozen bool
	// owner is the builder generation that created this node. An
	// immutable view never reads it; a Builder compares it against its
	// own token to decide whether a node can be mutated in place or
	// must be cloned first.
	owner uint64
}

// Height returns the height of n, treating nil as height 0.
func Height[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}
	return int(n.height)
}

// Size returns the number of nodes in the subtree rooted at n.
func Size[T any](n *Node[T]) int {
	if n == nil {
		return 0
	}
	return int(n.size)
}

// Leaf constructs a single unfrozen node owned by owner.
func Leaf[T any](value T, owner uint64) *Node[T] {
	return &Node[T]{Value: value, height: 1, size: 1, owner: owner}
}

// recompute fills in n's height and size from its children. n must not
// be nil.
func recompute[T any](n *Node[T]) {
	lh, rh := Height(n.Left), Height(n.Right)
	if lh > rh {
		n.height = uint8(lh + 1)
	} else {
		n.height = uint8(rh + 1)
	}
	n.size = uint32(Size(n.Left) + Size(n.Right) + 1)
}

// balanceFactor is Left height minus Right height.
func balanceFactor[T any](n *Node[T]) int {
	return Height(n.Left) - Height(n.Right)
}

// New allocates a fresh unfrozen node with the given children,
// value and owner, and fixes up height/size. It never rebalances; use
// MakeBalanced for that.
func New[T any](left *Node[T], value T, right *Node[T], owner uint64) *Node[T] {
	n := &Node[T]{Value: value, Left: left, Right: right, owner: owner}
	recompute(n)
	return n
}

// MakeBalanced constructs a brand new node from left, value, right,
// rotating if the result would violate the AVL balance invariant. It
// never reuses an existing node that owner does not own (a rotation may
// mutate a child that owner owns), so it is safe to call on a path
// shared with other snapshots; callers that already hold the node
// being replaced should call rebalance instead, so a node a Builder
// owns can be mutated in place rather than reallocated.
func MakeBalanced[T any](left *Node[T], value T, right *Node[T], owner uint64) *Node[T] {
	return rebalance(nil, left, value, right, owner)
}

// rebalance is MakeBalanced with one more piece of information: existing
// is the node this call is replacing, if any. It is threaded down to
// reuse, which decides per node whether that replacement can happen in
// place.
func rebalance[T any](existing *Node[T], left *Node[T], value T, right *Node[T], owner uint64) *Node[T] {
	bf := Height(left) - Height(right)
	switch {
	case bf == -2:
		if balanceFactor(right) > 0 {
			right = rotateRight(right, owner)
		}
		return rotateLeft(reuse(existing, left, value, right, owner), owner)
	case bf == 2:
		if balanceFactor(left) < 0 {
			left = rotateLeft(left, owner)
		}
		return rotateRight(reuse(existing, left, value, right, owner), owner)
	default:
		return reuse(existing, left, value, right, owner)
	}
}

// reuse returns existing with its fields set to left, value and right
// and its height/size recomputed. When existing is Owned by owner it is
// mutated directly; this is the "mutate in place" half of the Builder
// contract. Otherwise it is cloned (or, if there is no existing node to
// clone, freshly allocated via New) and stamped with owner before being
// mutated: the clone-on-first-write half. Every caller above this in
// the call graph passes the node it is logically replacing, so the
// decision of whether a write can be absorbed into an existing
// allocation or must start a new one is made in exactly one place.
func reuse[T any](existing *Node[T], left *Node[T], value T, right *Node[T], owner uint64) *Node[T] {
	if Owned(existing, owner) {
		existing.Left, existing.Value, existing.Right = left, value, right
		recompute(existing)
		return existing
	}
	if existing == nil {
		return New(left, value, right, owner)
	}
	cp := Clone(existing, owner)
	cp.Left, cp.Value, cp.Right = left, value, right
	recompute(cp)
	return cp
}

// rotateLeft rotates n's right child up. n.Right must be non-nil. n and
// r are reused in place when owner already owns them, so a rotation
// inside a Builder's own in-progress tree costs no allocation.
func rotateLeft[T any](n *Node[T], owner uint64) *Node[T] {
	r := n.Right
	newLeft := reuse(n, n.Left, n.Value, r.Left, owner)
	return reuse(r, newLeft, r.Value, r.Right, owner)
}

// rotateRight rotates n's left child up. n.Left must be non-nil.
func rotateRight[T any](n *Node[T], owner uint64) *Node[T] {
	l := n.Left
	newRight := reuse(n, l.Right, n.Value, n.Right, owner)
	return reuse(l, l.Left, l.Value, newRight, owner)
}

// Freeze walks the subtree rooted at n, setting Frozen on every
// reachable node that isn't already frozen, and stops descending into
// any subtree that is (it is shared with a prior snapshot and every
// node below it is already frozen, by the monotonicity invariant).
func Freeze[T any](n *Node[T]) {
	if n == nil || n.Frozen {
		return
	}
	n.Frozen = true
	Freeze(n.Left)
	Freeze(n.Right)
}

// Owned reports whether n is unfrozen and was allocated by owner,
// meaning a Builder holding that token may mutate it in place. owner 0
// never owns anything: it is the token every immutable (non-Builder)
// operation passes, so that two unrelated snapshots derived from the
// same unfrozen node can never be mistaken for the same Builder's own
// write. NextOwner starts counting at 1 for exactly this reason.
func Owned[T any](n *Node[T], owner uint64) bool {
	return owner != 0 && n != nil && !n.Frozen && n.owner == owner
}

// Clone returns a shallow copy of n stamped with owner, leaving the
// original (and its children) untouched. Used by builders to copy a
// frozen node on the first write along a path.
func Clone[T any](n *Node[T], owner uint64) *Node[T] {
	cp := *n
	cp.Frozen = false
	cp.owner = owner
	return &cp
}

// MaxStackDepth bounds the explicit parent-pointer stack used by
// iterators: the AVL height formula guarantees height < 1.4405*log2(n+2),
// so 64 frames comfortably covers every tree this module can build in
// memory (more than 2^44 elements).
const MaxStackDepth = 64
