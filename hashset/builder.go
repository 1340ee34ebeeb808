// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashset

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
	"github.com/aristanetworks/goimmutable/internal/hashtrie"
)

func nextOwner() uint64 { return avl.NextOwner() }

// Builder is a mutable overlay over a HashSet snapshot, the same
// clone-on-first-write discipline hashmap.Builder uses over its trie.
// gen counts every mutation so ForEach can detect one happening from
// inside its own callback.
type Builder[T any] struct {
	root  hashtrie.Root[T, unit]
	count int
	eq    Equal[T]
	hash  Hash[T]
	owner uint64
	gen   uint64
}

// NewBuilder returns an empty Builder keyed by eq/hash. eq and hash must
// not be nil.
func NewBuilder[T any](eq Equal[T], hash Hash[T]) (*Builder[T], error) {
	if eq == nil {
		return nil, errs.NullArgumentf("HashSet.NewBuilder", "eq")
	}
	if hash == nil {
		return nil, errs.NullArgumentf("HashSet.NewBuilder", "hash")
	}
	return &Builder[T]{eq: eq, hash: hash, owner: nextOwner()}, nil
}

// Len returns the number of elements currently in the builder.
func (b *Builder[T]) Len() int { return b.count }

// Add inserts x, doing nothing if it is already present.
func (b *Builder[T]) Add(x T) {
	root, changed, isNew, _ := hashtrie.Insert(b.root, x, unit{}, traits(b.eq, b.hash), sameUnit, hashtrie.Overwrite, b.owner)
	if !changed {
		return
	}
	b.root = root
	b.gen++
	if isNew {
		b.count++
	}
}

// Remove removes x, doing nothing if it is absent.
func (b *Builder[T]) Remove(x T) {
	root, found := hashtrie.Delete(b.root, x, traits(b.eq, b.hash), b.owner)
	if !found {
		return
	}
	b.root = root
	b.gen++
	b.count--
}

// Contains reports whether x is present.
func (b *Builder[T]) Contains(x T) bool {
	_, ok := hashtrie.Find(b.root, x, traits(b.eq, b.hash))
	return ok
}

// ForEach visits every element currently in the builder, in
// unspecified order, stopping early if f returns false. If f mutates
// the builder, ForEach notices on the next element and fails with a
// ConcurrentModification error instead of continuing over a trie that
// moved out from under it.
func (b *Builder[T]) ForEach(f func(T) bool) error {
	gen := b.gen
	err := error(nil)
	hashtrie.ForEach(b.root, func(e hashtrie.Entry[T, unit]) bool {
		if b.gen != gen {
			err = errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
			return false
		}
		return f(e.Key)
	})
	if err != nil {
		return err
	}
	if b.gen != gen {
		return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
	}
	return nil
}

// ToImmutable freezes the Builder's current trie, both the top level
// and every bucket nested inside it, and returns a new HashSet sharing
// it. The Builder remains usable.
func (b *Builder[T]) ToImmutable() HashSet[T] {
	hashtrie.Freeze(b.root)
	return HashSet[T]{root: b.root, count: b.count, eq: b.eq, hash: b.hash}
}
