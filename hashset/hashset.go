// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashset implements HashSet, a persistent unordered set with
// the same trie topology as hashmap: a single AVL level keyed by the
// 32-bit hash of the element, with a small per-hash AVL bucket for
// collisions.
package hashset

import (
	"github.com/aristanetworks/goimmutable/errs"
	"github.com/aristanetworks/goimmutable/internal/hashtrie"
)

// Equal reports whether a and b should be treated as the same element.
type Equal[T any] func(a, b T) bool

// Hash returns a's 32-bit hash. Elements equal under the set's Equal
// must hash equal.
type Hash[T any] func(a T) uint32

type unit = struct{}

func sameUnit(unit, unit) bool { return true }

func traits[T any](eq Equal[T], h Hash[T]) hashtrie.Traits[T] {
	return hashtrie.Traits[T]{Equal: hashtrie.Equal[T](eq), Hash: hashtrie.Hash[T](h)}
}

// HashSet is a persistent set of T.
type HashSet[T any] struct {
	root  hashtrie.Root[T, unit]
	count int
	eq    Equal[T]
	hash  Hash[T]
}

func empty[T any](eq Equal[T], hash Hash[T]) HashSet[T] { return HashSet[T]{eq: eq, hash: hash} }

// Empty returns an empty HashSet keyed by eq/hash. eq and hash must not
// be nil.
func Empty[T any](eq Equal[T], hash Hash[T]) (HashSet[T], error) {
	if eq == nil {
		return HashSet[T]{}, errs.NullArgumentf("HashSet.Empty", "eq")
	}
	if hash == nil {
		return HashSet[T]{}, errs.NullArgumentf("HashSet.Empty", "hash")
	}
	return empty(eq, hash), nil
}

// Of builds a HashSet containing the distinct elements of values under
// eq/hash.
func Of[T any](eq Equal[T], hash Hash[T], values ...T) HashSet[T] {
	s := empty(eq, hash)
	for _, v := range values {
		s = s.Add(v)
	}
	return s
}

// Len returns the number of elements.
func (s HashSet[T]) Len() int { return s.count }

// Contains reports whether x is present.
func (s HashSet[T]) Contains(x T) bool {
	_, ok := hashtrie.Find(s.root, x, traits(s.eq, s.hash))
	return ok
}

// Add returns a new HashSet with x added. If x is already present, the
// receiver is returned reference-equal.
func (s HashSet[T]) Add(x T) HashSet[T] {
	root, changed, isNew, _ := hashtrie.Insert(s.root, x, unit{}, traits(s.eq, s.hash), sameUnit, hashtrie.Overwrite, 0)
	if !changed {
		return s
	}
	count := s.count
	if isNew {
		count++
	}
	return HashSet[T]{root: root, count: count, eq: s.eq, hash: s.hash}
}

// Remove returns a new HashSet with x removed. If x is absent, the
// receiver is returned reference-equal.
func (s HashSet[T]) Remove(x T) HashSet[T] {
	root, found := hashtrie.Delete(s.root, x, traits(s.eq, s.hash), 0)
	if !found {
		return s
	}
	return HashSet[T]{root: root, count: s.count - 1, eq: s.eq, hash: s.hash}
}

// ForEach visits every element in unspecified order, stopping early if
// f returns false.
func (s HashSet[T]) ForEach(f func(T) bool) {
	hashtrie.ForEach(s.root, func(e hashtrie.Entry[T, unit]) bool { return f(e.Key) })
}

// ToSlice materializes s into a new, independent slice in unspecified
// order.
func (s HashSet[T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	s.ForEach(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Union returns a new HashSet containing every element of s and other.
func (s HashSet[T]) Union(other HashSet[T]) HashSet[T] {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return HashSet[T]{root: other.root, count: other.count, eq: s.eq, hash: s.hash}
	}
	into, from := s, other
	if from.Len() > into.Len() {
		into, from = from, into
		into.eq, into.hash = s.eq, s.hash
	}
	result := into
	from.ForEach(func(v T) bool {
		result = result.Add(v)
		return true
	})
	return result
}

// Intersect returns the elements present in both s and other.
func (s HashSet[T]) Intersect(other HashSet[T]) HashSet[T] {
	result := empty(s.eq, s.hash)
	if s.Len() == 0 || other.Len() == 0 {
		return result
	}
	s.ForEach(func(v T) bool {
		if other.Contains(v) {
			result = result.Add(v)
		}
		return true
	})
	return result
}

// Except returns the elements of s not present in other.
func (s HashSet[T]) Except(other HashSet[T]) HashSet[T] {
	if other.Len() == 0 {
		return s
	}
	result := empty(s.eq, s.hash)
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
func (s HashSet[T]) SymmetricExcept(other HashSet[T]) HashSet[T] {
	return s.Except(other).Union(other.Except(s))
}

// IsSubsetOf reports whether every element of s is in other.
func (s HashSet[T]) IsSubsetOf(other HashSet[T]) bool {
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
func (s HashSet[T]) IsSupersetOf(other HashSet[T]) bool { return other.IsSubsetOf(s) }

// IsProperSubsetOf reports whether s is a subset of other and smaller.
func (s HashSet[T]) IsProperSubsetOf(other HashSet[T]) bool {
	return s.Len() < other.Len() && s.IsSubsetOf(other)
}

// IsProperSupersetOf reports whether s is a superset of other and
// larger.
func (s HashSet[T]) IsProperSupersetOf(other HashSet[T]) bool { return other.IsProperSubsetOf(s) }

// Overlaps reports whether s and other share any element.
func (s HashSet[T]) Overlaps(other HashSet[T]) bool {
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
// elements.
func (s HashSet[T]) SetEquals(other HashSet[T]) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}

// WithComparators returns a HashSet with the same logical elements
// re-keyed by eq/hash. Elements that collapse under the new equality
// collapse silently (there is no value to conflict over).
func (s HashSet[T]) WithComparators(eq Equal[T], hash Hash[T]) HashSet[T] {
	result := empty(eq, hash)
	s.ForEach(func(v T) bool {
		result = result.Add(v)
		return true
	})
	return result
}

// ToBuilder returns a mutable Builder sharing s's structure.
func (s HashSet[T]) ToBuilder() *Builder[T] {
	hashtrie.Freeze(s.root)
	return &Builder[T]{root: s.root, count: s.count, eq: s.eq, hash: s.hash, owner: nextOwner()}
}

// Identical reports whether s and other share the same underlying
// trie. Used by atomicupdate.Update to detect a no-op transform.
func (s HashSet[T]) Identical(other HashSet[T]) bool { return s.root == other.root }
