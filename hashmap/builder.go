// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/avl"
	"github.com/aristanetworks/goimmutable/internal/hashtrie"
)

func nextOwner() uint64 { return avl.NextOwner() }

// Builder is a mutable overlay over a HashMap snapshot, the same
// clone-on-first-write discipline treelist.Builder uses over its AVL:
// every write touches at most the top-level slot and its bucket, and
// reuses both in place once this Builder owns them. gen counts every
// mutation so ForEach can detect one happening from inside its own
// callback.
type Builder[K, V any] struct {
	root    hashtrie.Root[K, V]
	count   int
	keyEq   Equal[K]
	keyHash Hash[K]
	valueEq Equal[V]
	owner   uint64
	gen     uint64
}

// NewBuilder returns an empty Builder keyed by keyEq/keyHash, whose
// values are compared with valueEq. keyEq, keyHash and valueEq must not
// be nil.
func NewBuilder[K, V any](keyEq Equal[K], keyHash Hash[K], valueEq Equal[V]) (*Builder[K, V], error) {
	if keyEq == nil {
		return nil, errs.NullArgumentf("HashMap.NewBuilder", "keyEq")
	}
	if keyHash == nil {
		return nil, errs.NullArgumentf("HashMap.NewBuilder", "keyHash")
	}
	if valueEq == nil {
		return nil, errs.NullArgumentf("HashMap.NewBuilder", "valueEq")
	}
	return &Builder[K, V]{keyEq: keyEq, keyHash: keyHash, valueEq: valueEq, owner: nextOwner()}, nil
}

// Len returns the number of entries currently in the builder.
func (b *Builder[K, V]) Len() int { return b.count }

// Put inserts or overwrites the value stored under k.
func (b *Builder[K, V]) Put(k K, v V) {
	root, changed, isNew, _ := hashtrie.Insert(b.root, k, v, traits(b.keyEq, b.keyHash), b.valueEq, hashtrie.Overwrite, b.owner)
	if !changed {
		return
	}
	b.root = root
	b.gen++
	if isNew {
		b.count++
	}
}

// Add inserts (k, v), failing with KeyConflict if k is present with a
// different value.
func (b *Builder[K, V]) Add(k K, v V) error {
	root, changed, isNew, conflict := hashtrie.Insert(b.root, k, v, traits(b.keyEq, b.keyHash), b.valueEq, hashtrie.FailOnConflict, b.owner)
	if conflict {
		return errs.KeyConflictf("Builder.Add", "key already present with a different value")
	}
	if !changed {
		return nil
	}
	b.root = root
	b.gen++
	if isNew {
		b.count++
	}
	return nil
}

// Remove removes k, if present.
func (b *Builder[K, V]) Remove(k K) {
	root, found := hashtrie.Delete(b.root, k, traits(b.keyEq, b.keyHash), b.owner)
	if !found {
		return
	}
	b.root = root
	b.gen++
	b.count--
}

// ForEach visits every entry currently in the builder, in unspecified
// order, stopping early if f returns false. If f mutates the builder,
// ForEach notices on the next entry and fails with a
// ConcurrentModification error instead of continuing over a trie that
// moved out from under it.
func (b *Builder[K, V]) ForEach(f func(k K, v V) bool) error {
	gen := b.gen
	err := error(nil)
	hashtrie.ForEach(b.root, func(e hashtrie.Entry[K, V]) bool {
		if b.gen != gen {
			err = errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
			return false
		}
		return f(e.Key, e.Value)
	})
	if err != nil {
		return err
	}
	if b.gen != gen {
		return errs.ConcurrentModificationf("Builder.ForEach", "builder mutated during iteration")
	}
	return nil
}

// Get returns the value stored under k.
func (b *Builder[K, V]) Get(k K) (V, bool) {
	e, ok := hashtrie.Find(b.root, k, traits(b.keyEq, b.keyHash))
	return e.Value, ok
}

// ToImmutable freezes the Builder's current trie, both the top level
// and every bucket nested inside it, and returns a new HashMap sharing
// it. The Builder remains usable: subsequent writes see every node as
// frozen and clone on first touch, the same as any other snapshot's
// trie would.
func (b *Builder[K, V]) ToImmutable() HashMap[K, V] {
	hashtrie.Freeze(b.root)
	return HashMap[K, V]{root: b.root, count: b.count, keyEq: b.keyEq, keyHash: b.keyHash, valueEq: b.valueEq}
}
