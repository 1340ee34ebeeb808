// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashtrie implements the shared top-level structure behind
// HashMap and HashSet: a degenerate hash-array-mapped-trie, a single
// AVL level keyed by a 32-bit hash, where each leaf is a HashBucket —
// itself a small AVL holding every entry sharing that hash. A
// well-behaved Hash spreads entries across the top level; a
// pathological one (every key hashing to the same value) collapses to
// one bucket and degrades to linear scan within it, but every
// operation here stays correct either way.
package hashtrie

import "github.com/aristanetworks/goimmutable/internal/avl"

// Entry is a single (key, value) pair. HashSet uses V = struct{}.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Equal reports whether a and b are the same key (or value).
type Equal[K any] func(a, b K) bool

// Hash returns a's 32-bit hash. Equal keys must hash equal.
type Hash[K any] func(a K) uint32

// Traits bundles the equality and hash function a Trie is keyed by.
type Traits[K any] struct {
	Equal Equal[K]
	Hash  Hash[K]
}

// slot is one top-level AVL node: every entry whose key hashes to
// hash, collected in bucket.
type slot[K, V any] struct {
	hash   uint32
	bucket *avl.Node[Entry[K, V]]
}

func slotCompare[K, V any](a, b slot[K, V]) int {
	switch {
	case a.hash < b.hash:
		return -1
	case a.hash > b.hash:
		return 1
	default:
		return 0
	}
}

// Root is the top-level AVL tree. A nil Root is the empty trie.
type Root[K, V any] *avl.Node[slot[K, V]]

// findInBucket scans bucket for key, which is only ever more than one
// entry long under a hash collision.
func findInBucket[K, V any](bucket *avl.Node[Entry[K, V]], key K, eq Equal[K]) (Entry[K, V], bool) {
	var found Entry[K, V]
	ok := false
	avl.InOrder(bucket, func(e Entry[K, V]) bool {
		if eq(e.Key, key) {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

func indexInBucket[K, V any](bucket *avl.Node[Entry[K, V]], key K, eq Equal[K]) int {
	idx, i := -1, 0
	avl.InOrder(bucket, func(e Entry[K, V]) bool {
		if eq(e.Key, key) {
			idx = i
			return false
		}
		i++
		return true
	})
	return idx
}

// Find returns the entry stored under key, if any.
func Find[K, V any](root Root[K, V], key K, t Traits[K]) (Entry[K, V], bool) {
	s, ok := avl.Find(root, slot[K, V]{hash: t.Hash(key)}, slotCompare[K, V])
	if !ok {
		return Entry[K, V]{}, false
	}
	return findInBucket(s.bucket, key, t.Equal)
}

// ContainsValue scans every entry in root looking for a value equal to
// v under valueEq. O(n): there is no index on values.
func ContainsValue[K, V any](root Root[K, V], v V, valueEq func(a, b V) bool) bool {
	found := false
	ForEach(root, func(e Entry[K, V]) bool {
		if valueEq(e.Value, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ForEach visits every entry across every bucket, stopping early if f
// returns false.
func ForEach[K, V any](root Root[K, V], f func(Entry[K, V]) bool) {
	stop := false
	avl.InOrder(root, func(s slot[K, V]) bool {
		avl.InOrder(s.bucket, func(e Entry[K, V]) bool {
			if !f(e) {
				stop = true
				return false
			}
			return true
		})
		return !stop
	})
}

// Count returns the total number of entries across every bucket.
func Count[K, V any](root Root[K, V]) int {
	n := 0
	avl.InOrder(root, func(s slot[K, V]) bool {
		n += avl.Size(s.bucket)
		return true
	})
	return n
}

// Freeze marks every reachable node as frozen, both the top-level trie
// and every per-hash bucket nested inside it. avl.Freeze alone only
// walks Left/Right, so it never reaches a bucket embedded in a slot's
// Value; a Builder that didn't also freeze buckets here could still
// mutate one in place after handing its trie off as a snapshot.
func Freeze[K, V any](root Root[K, V]) {
	avl.Freeze(root)
	avl.InOrder(root, func(s slot[K, V]) bool {
		avl.Freeze(s.bucket)
		return true
	})
}

// Upsert describes how Add/Put should treat an existing key.
type Upsert int

const (
	// FailOnConflict leaves a differing existing value untouched and
	// reports a conflict (HashMap.Add semantics).
	FailOnConflict Upsert = iota
	// Overwrite replaces a differing existing value (HashMap.Put /
	// HashSet.Add-as-put semantics).
	Overwrite
)

// Insert adds or updates (key, value) in root. changed reports whether
// the trie actually differs from root (a no-op update to an
// already-equal value reports changed=false so callers can preserve
// reference identity). isNew reports whether key was absent before
// this call, so callers can maintain an entry count without a second
// lookup. conflict is true only when mode is FailOnConflict and key is
// already present with a different value; on conflict root is returned
// unchanged.
func Insert[K, V any](root Root[K, V], key K, value V, t Traits[K], valueEq func(a, b V) bool, mode Upsert, owner uint64) (result Root[K, V], changed bool, isNew bool, conflict bool) {
	h := t.Hash(key)
	s, found := avl.Find(root, slot[K, V]{hash: h}, slotCompare[K, V])
	if !found {
		bucket := avl.InsertAt[Entry[K, V]](nil, 0, Entry[K, V]{Key: key, Value: value}, owner)
		newRoot, _ := avl.Insert(root, slot[K, V]{hash: h, bucket: bucket}, slotCompare[K, V], true, owner)
		return newRoot, true, true, false
	}
	idx := indexInBucket(s.bucket, key, t.Equal)
	if idx < 0 {
		newBucket := avl.InsertAt(s.bucket, avl.Size(s.bucket), Entry[K, V]{Key: key, Value: value}, owner)
		newRoot, _ := avl.Insert(root, slot[K, V]{hash: h, bucket: newBucket}, slotCompare[K, V], true, owner)
		return newRoot, true, true, false
	}
	existing := avl.GetAt(s.bucket, idx)
	if valueEq(existing.Value, value) {
		return root, false, false, false
	}
	if mode == FailOnConflict {
		return root, false, false, true
	}
	newBucket := avl.SetAt(s.bucket, idx, Entry[K, V]{Key: key, Value: value}, owner)
	newRoot, _ := avl.Insert(root, slot[K, V]{hash: h, bucket: newBucket}, slotCompare[K, V], true, owner)
	return newRoot, true, false, false
}

// Delete removes key from root, if present. found reports whether a
// removal actually happened.
func Delete[K, V any](root Root[K, V], key K, t Traits[K], owner uint64) (result Root[K, V], found bool) {
	h := t.Hash(key)
	s, ok := avl.Find(root, slot[K, V]{hash: h}, slotCompare[K, V])
	if !ok {
		return root, false
	}
	idx := indexInBucket(s.bucket, key, t.Equal)
	if idx < 0 {
		return root, false
	}
	newBucket := avl.RemoveAt(s.bucket, idx, owner)
	if newBucket == nil {
		newRoot, _ := avl.Remove(root, slot[K, V]{hash: h}, slotCompare[K, V], owner)
		return newRoot, true
	}
	newRoot, _ := avl.Insert(root, slot[K, V]{hash: h, bucket: newBucket}, slotCompare[K, V], true, owner)
	return newRoot, true
}

// Rebuild re-inserts every entry of root under newTraits, using mode to
// decide how same-hash, same-key collisions with a differing value are
// resolved. Used when a caller swaps the key comparator/hash function
// out from under an existing trie.
func Rebuild[K, V any](root Root[K, V], newTraits Traits[K], valueEq func(a, b V) bool, mode Upsert, owner uint64) (result Root[K, V], conflict bool) {
	var out Root[K, V]
	conflicted := false
	ForEach(root, func(e Entry[K, V]) bool {
		var c bool
		out, _, _, c = Insert(out, e.Key, e.Value, newTraits, valueEq, mode, owner)
		if c {
			conflicted = true
			return false
		}
		return true
	})
	if conflicted {
		return root, true
	}
	return out, false
}
