// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package treelist

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
)

func nextOwner() uint64 { return avl.NextOwner() }

// Builder is a mutable overlay over a TreeList snapshot. Every write
// clones the frozen nodes on its path (stamping them with the
// Builder's ownership token) and leaves everything else shared with
// the originating snapshot; ToImmutable freezes exactly the nodes this
// Builder allocated. gen counts every mutation so ForEach can detect
// one happening from inside its own callback.
type Builder[T any] struct {
	root  *avl.Node[T]
	owner uint64
	gen   uint64
}

// NewBuilder returns an empty Builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{owner: nextOwner()}
}

// Len returns the number of elements currently in the builder.
func (b *Builder[T]) Len() int { return avl.Size(b.root) }

// Add appends x.
func (b *Builder[T]) Add(x T) {
	b.root = avl.InsertAt(b.root, b.Len(), x, b.owner)
	b.gen++
}

// Insert inserts x at position i.
func (b *Builder[T]) Insert(i int, x T) error {
	if i < 0 || i > b.Len() {
		return outOfBounds("Builder.Insert", i, b.Len())
	}
	b.root = avl.InsertAt(b.root, i, x, b.owner)
	b.gen++
	return nil
}

// Set replaces the element at position i.
func (b *Builder[T]) Set(i int, x T) error {
	if i < 0 || i >= b.Len() {
		return outOfBounds("Builder.Set", i, b.Len())
	}
	b.root = avl.SetAt(b.root, i, x, b.owner)
	b.gen++
	return nil
}

// Get returns the element at position i.
func (b *Builder[T]) Get(i int) (T, error) {
	if i < 0 || i >= b.Len() {
		var zero T
		return zero, outOfBounds("Builder.Get", i, b.Len())
	}
	return avl.GetAt(b.root, i), nil
}

// Remove removes the element at position i.
func (b *Builder[T]) Remove(i int) error {
	if i < 0 || i >= b.Len() {
		return outOfBounds("Builder.Remove", i, b.Len())
	}
	b.root = avl.RemoveAt(b.root, i, b.owner)
	b.gen++
	return nil
}

// ForEach visits every element currently in the builder, in ascending
// order, stopping early if f returns false. If f mutates the builder,
// ForEach notices on the next element and fails with a
// ConcurrentModification error instead of continuing over a tree that
// moved out from under it.
func (b *Builder[T]) ForEach(f func(T) bool) error {
	gen := b.gen
	n := b.Len()
	for i := 0; i < n; i++ {
		if b.gen != gen {
			return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
		}
		if !f(avl.GetAt(b.root, i)) {
			return nil
		}
	}
	if b.gen != gen {
		return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
	}
	return nil
}

// ToImmutable freezes the Builder's current root in a single pass
// that stops descent at any already-frozen subtree, and returns a new
// TreeList sharing it. The Builder remains usable: subsequent writes
// see every node as frozen and clone on first touch, the same as any
// other snapshot's root would.
func (b *Builder[T]) ToImmutable() TreeList[T] {
	avl.Freeze(b.root)
	return TreeList[T]{root: b.root}
}

func outOfBounds(op string, i, size int) error {
	return errs.OutOfBoundsf(op, "index %d, size %d", i, size)
}
