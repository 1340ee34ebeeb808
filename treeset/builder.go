// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package treeset

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
)

// Builder is a mutable overlay over a TreeSet snapshot, analogous to
// treelist.Builder. gen counts every mutation so ForEach can detect one
// happening from inside its own callback.
type Builder[T any] struct {
	root  *avl.Node[T]
	cmp   Compare[T]
	owner uint64
	gen   uint64
}

// NewBuilder returns an empty Builder ordered by cmp. cmp must not be
// nil.
func NewBuilder[T any](cmp Compare[T]) (*Builder[T], error) {
	if cmp == nil {
		return nil, errs.NullArgumentf("TreeSet.NewBuilder", "cmp")
	}
	return &Builder[T]{cmp: cmp, owner: avl.NextOwner()}, nil
}

// Len returns the number of elements currently in the builder.
func (b *Builder[T]) Len() int { return avl.Size(b.root) }

// Contains reports whether x is present.
func (b *Builder[T]) Contains(x T) bool {
	_, ok := avl.Find(b.root, x, b.cmp)
	return ok
}

// Add inserts x, doing nothing if it is already present.
func (b *Builder[T]) Add(x T) {
	root, changed := avl.Insert(b.root, x, b.cmp, false, b.owner)
	b.root = root
	if changed {
		b.gen++
	}
}

// Remove removes x, doing nothing if it is absent.
func (b *Builder[T]) Remove(x T) {
	root, found := avl.Remove(b.root, x, b.cmp, b.owner)
	b.root = root
	if found {
		b.gen++
	}
}

// ForEach visits every element currently in the builder in ascending
// order, stopping early if f returns false. If f mutates the builder,
// ForEach notices on the next element and fails with a
// ConcurrentModification error instead of continuing over a tree that
// moved out from under it.
func (b *Builder[T]) ForEach(f func(T) bool) error {
	gen := b.gen
	err := error(nil)
	avl.InOrder(b.root, func(v T) bool {
		if b.gen != gen {
			err = errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
			return false
		}
		return f(v)
	})
	if err != nil {
		return err
	}
	if b.gen != gen {
		return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
	}
	return nil
}

// ToImmutable freezes the Builder's current root and returns a new
// TreeSet sharing it. The Builder remains usable.
func (b *Builder[T]) ToImmutable() TreeSet[T] {
	avl.Freeze(b.root)
	return TreeSet[T]{root: b.root, cmp: b.cmp}
}
