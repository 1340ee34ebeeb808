// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements HashMap, a persistent unordered map built
// on a degenerate hash-array-mapped trie: a single AVL level keyed by
// the 32-bit hash of the key, with a small per-hash AVL bucket holding
// the (rare) colliding entries.
package hashmap

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/hashtrie"
)

// Equal reports whether a and b should be treated as the same key (or
// value).
type Equal[T any] func(a, b T) bool

// Hash returns a's 32-bit hash. Keys equal under the map's Equal must
// hash equal.
type Hash[T any] func(a T) uint32

// HashMap is a persistent map from K to V.
type HashMap[K, V any] struct {
	root    hashtrie.Root[K, V]
	count   int
	keyEq   Equal[K]
	keyHash Hash[K]
	valueEq Equal[V]
}

func traits[K any](eq Equal[K], h Hash[K]) hashtrie.Traits[K] {
	return hashtrie.Traits[K]{Equal: hashtrie.Equal[K](eq), Hash: hashtrie.Hash[K](h)}
}

// Empty returns an empty HashMap keyed by keyEq/keyHash, whose values
// are compared for idempotence with valueEq. keyEq, keyHash and valueEq
// must not be nil.
func Empty[K, V any](keyEq Equal[K], keyHash Hash[K], valueEq Equal[V]) (HashMap[K, V], error) {
	if keyEq == nil {
		return HashMap[K, V]{}, errs.NullArgumentf("HashMap.Empty", "keyEq")
	}
	if keyHash == nil {
		return HashMap[K, V]{}, errs.NullArgumentf("HashMap.Empty", "keyHash")
	}
	if valueEq == nil {
		return HashMap[K, V]{}, errs.NullArgumentf("HashMap.Empty", "valueEq")
	}
	return HashMap[K, V]{keyEq: keyEq, keyHash: keyHash, valueEq: valueEq}, nil
}

// Len returns the number of entries.
func (m HashMap[K, V]) Len() int { return m.count }

// ContainsKey reports whether k is present.
func (m HashMap[K, V]) ContainsKey(k K) bool {
	_, ok := hashtrie.Find(m.root, k, traits(m.keyEq, m.keyHash))
	return ok
}

// Get returns the value stored under k.
func (m HashMap[K, V]) Get(k K) (V, bool) {
	e, ok := hashtrie.Find(m.root, k, traits(m.keyEq, m.keyHash))
	return e.Value, ok
}

// GetKey returns the canonical stored key equal to k, for equalities
// (such as case-insensitivity) where the stored key may differ from
// the lookup key.
func (m HashMap[K, V]) GetKey(k K) (K, bool) {
	e, ok := hashtrie.Find(m.root, k, traits(m.keyEq, m.keyHash))
	return e.Key, ok
}

// ContainsValue reports whether any entry's value is equal to v under
// the map's value comparator. O(n): there is no index on values.
func (m HashMap[K, V]) ContainsValue(v V) bool {
	return hashtrie.ContainsValue(m.root, v, m.valueEq)
}

// Add inserts (k, v). If k is already present with a value equal to v
// under the value comparator, the receiver is returned unchanged. If k
// is present with a different value, Add fails with a KeyConflict
// error and the receiver is returned unchanged: Add is not an
// overwrite.
func (m HashMap[K, V]) Add(k K, v V) (HashMap[K, V], error) {
	root, changed, isNew, conflict := hashtrie.Insert(m.root, k, v, traits(m.keyEq, m.keyHash), m.valueEq, hashtrie.FailOnConflict, 0)
	if conflict {
		return m, errs.KeyConflictf("HashMap.Add", "key already present with a different value")
	}
	if !changed {
		return m, nil
	}
	count := m.count
	if isNew {
		count++
	}
	return HashMap[K, V]{root: root, count: count, keyEq: m.keyEq, keyHash: m.keyHash, valueEq: m.valueEq}, nil
}

// Put inserts (k, v), overwriting any existing value for k. If the
// stored value is already equal to v under the value comparator, the
// receiver is returned unchanged.
func (m HashMap[K, V]) Put(k K, v V) HashMap[K, V] {
	root, changed, isNew, _ := hashtrie.Insert(m.root, k, v, traits(m.keyEq, m.keyHash), m.valueEq, hashtrie.Overwrite, 0)
	if !changed {
		return m
	}
	count := m.count
	if isNew {
		count++
	}
	return HashMap[K, V]{root: root, count: count, keyEq: m.keyEq, keyHash: m.keyHash, valueEq: m.valueEq}
}

// Remove returns a new HashMap with k removed. If k is absent, the
// receiver is returned reference-equal.
func (m HashMap[K, V]) Remove(k K) HashMap[K, V] {
	root, found := hashtrie.Delete(m.root, k, traits(m.keyEq, m.keyHash), 0)
	if !found {
		return m
	}
	return HashMap[K, V]{root: root, count: m.count - 1, keyEq: m.keyEq, keyHash: m.keyHash, valueEq: m.valueEq}
}

// ForEach visits every entry in unspecified order, stopping early if f
// returns false.
func (m HashMap[K, V]) ForEach(f func(k K, v V) bool) {
	hashtrie.ForEach(m.root, func(e hashtrie.Entry[K, V]) bool { return f(e.Key, e.Value) })
}

// WithComparators returns a HashMap with the same logical entries
// re-keyed by keyEq/keyHash and/or re-compared by valueEq. A nil
// keyEq/keyHash pair (both nil) leaves key equality unchanged and only
// swaps the value comparator in place without rebuilding the tree. A
// nil valueEq leaves the value comparator unchanged. If re-keying
// collapses two entries whose values differ under the effective value
// comparator, WithComparators fails with KeyConflict and returns the
// receiver unchanged.
func (m HashMap[K, V]) WithComparators(keyEq Equal[K], keyHash Hash[K], valueEq Equal[V]) (HashMap[K, V], error) {
	effectiveValueEq := m.valueEq
	if valueEq != nil {
		effectiveValueEq = valueEq
	}
	if keyEq == nil && keyHash == nil {
		return HashMap[K, V]{root: m.root, count: m.count, keyEq: m.keyEq, keyHash: m.keyHash, valueEq: effectiveValueEq}, nil
	}
	newTraits := traits(keyEq, keyHash)
	root, conflict := hashtrie.Rebuild(m.root, newTraits, effectiveValueEq, hashtrie.FailOnConflict, 0)
	if conflict {
		return m, errs.KeyConflictf("HashMap.WithComparators", "re-keying collapses entries with differing values")
	}
	return HashMap[K, V]{root: root, count: hashtrie.Count(root), keyEq: keyEq, keyHash: keyHash, valueEq: effectiveValueEq}, nil
}

// ToBuilder returns a mutable Builder sharing m's structure.
func (m HashMap[K, V]) ToBuilder() *Builder[K, V] {
	hashtrie.Freeze(m.root)
	return &Builder[K, V]{root: m.root, count: m.count, keyEq: m.keyEq, keyHash: m.keyHash, valueEq: m.valueEq, owner: nextOwner()}
}

// Identical reports whether m and other share the same underlying
// trie. Used by atomicupdate.Update to detect a no-op transform.
func (m HashMap[K, V]) Identical(other HashMap[K, V]) bool { return m.root == other.root }
