// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package atomicupdate

import (
	"github.com/aristanetworks/goimmutable/hashmap"
	"github.com/aristanetworks/goimmutable/linkedqueue"
	"github.com/aristanetworks/goimmutable/linkedstack"
)

// GetOrAdd returns the value stored under key in the map behind ref,
// inserting factory()'s result under key first if it was absent.
// factory is checked against the map's current membership inside the
// retry loop before being called, so it runs at most once per attempt
// that actually finds the key missing — never once "for free" just
// because a concurrent attempt is in flight.
func GetOrAdd[K, V any](ref *Ref[hashmap.HashMap[K, V]], key K, factory func() V) V {
	var result V
	Update(ref, hashmap.HashMap[K, V].Identical, func(old hashmap.HashMap[K, V]) hashmap.HashMap[K, V] {
		if v, ok := old.Get(key); ok {
			result = v
			return old
		}
		v := factory()
		result = v
		return old.Put(key, v)
	})
	return result
}

// AddOrUpdate applies addFactory if key is absent from the map behind
// ref, or updateFactory(existing) if present, and returns the value
// that ends up stored.
func AddOrUpdate[K, V any](ref *Ref[hashmap.HashMap[K, V]], key K, addFactory func() V, updateFactory func(existing V) V) V {
	var result V
	Update(ref, hashmap.HashMap[K, V].Identical, func(old hashmap.HashMap[K, V]) hashmap.HashMap[K, V] {
		if existing, ok := old.Get(key); ok {
			result = updateFactory(existing)
		} else {
			result = addFactory()
		}
		return old.Put(key, result)
	})
	return result
}

// TryAdd inserts (key, value) into the map behind ref if key is
// absent. Returns false without modifying ref if key is already
// present with a different value under the map's value comparator, or
// true if it inserted or the stored value was already value-equal.
func TryAdd[K, V any](ref *Ref[hashmap.HashMap[K, V]], key K, value V) bool {
	ok := true
	Update(ref, hashmap.HashMap[K, V].Identical, func(old hashmap.HashMap[K, V]) hashmap.HashMap[K, V] {
		next, err := old.Add(key, value)
		if err != nil {
			ok = false
			return old
		}
		return next
	})
	return ok
}

// TryUpdate replaces the value stored under key with newValue only if
// it is currently expectedOldValue under valueEq. Returns false
// without modifying ref if key is absent or its current value doesn't
// match expectedOldValue.
func TryUpdate[K, V any](ref *Ref[hashmap.HashMap[K, V]], key K, expectedOldValue, newValue V, valueEq func(a, b V) bool) bool {
	ok := true
	Update(ref, hashmap.HashMap[K, V].Identical, func(old hashmap.HashMap[K, V]) hashmap.HashMap[K, V] {
		existing, found := old.Get(key)
		if !found || !valueEq(existing, expectedOldValue) {
			ok = false
			return old
		}
		return old.Put(key, newValue)
	})
	return ok
}

// TryRemove removes key from the map behind ref if present. Returns
// whether a removal occurred.
func TryRemove[K, V any](ref *Ref[hashmap.HashMap[K, V]], key K) bool {
	removed := false
	Update(ref, hashmap.HashMap[K, V].Identical, func(old hashmap.HashMap[K, V]) hashmap.HashMap[K, V] {
		if !old.ContainsKey(key) {
			removed = false
			return old
		}
		removed = true
		return old.Remove(key)
	})
	return removed
}

// Push pushes x onto the stack behind ref.
func Push[T any](ref *Ref[linkedstack.LinkedStack[T]], x T) {
	Update(ref, linkedstack.LinkedStack[T].Identical, func(old linkedstack.LinkedStack[T]) linkedstack.LinkedStack[T] {
		return old.Push(x)
	})
}

// TryPop pops the top element off the stack behind ref. ok is false,
// and ref is unchanged, if the stack was empty.
func TryPop[T any](ref *Ref[linkedstack.LinkedStack[T]]) (value T, ok bool) {
	Update(ref, linkedstack.LinkedStack[T].Identical, func(old linkedstack.LinkedStack[T]) linkedstack.LinkedStack[T] {
		v, err := old.Peek()
		if err != nil {
			ok = false
			return old
		}
		next, err := old.Pop()
		if err != nil {
			ok = false
			return old
		}
		value, ok = v, true
		return next
	})
	return value, ok
}

// AddToQueue enqueues x onto the queue behind ref.
func AddToQueue[T any](ref *Ref[linkedqueue.LinkedQueue[T]], x T) {
	Update(ref, linkedqueue.LinkedQueue[T].Identical, func(old linkedqueue.LinkedQueue[T]) linkedqueue.LinkedQueue[T] {
		return old.Add(x)
	})
}

// TryPoll dequeues the front element off the queue behind ref. ok is
// false, and ref is unchanged, if the queue was empty.
func TryPoll[T any](ref *Ref[linkedqueue.LinkedQueue[T]]) (value T, ok bool) {
	Update(ref, linkedqueue.LinkedQueue[T].Identical, func(old linkedqueue.LinkedQueue[T]) linkedqueue.LinkedQueue[T] {
		next, v, err := old.Poll()
		if err != nil {
			ok = false
			return old
		}
		value, ok = v, true
		return next
	})
	return value, ok
}
