// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package linkedqueue implements LinkedQueue, a persistent FIFO queue
// built from two linkedstack-shaped cons lists: forwards holds the
// elements due to come out next, in order; backwards holds everything
// enqueued since forwards was last reversed, in reverse order.
package linkedqueue

import "github.com/aristanetworks/goimmutable/errs"

type node[T any] struct {
	value T
	tail  *node[T]
}

// LinkedQueue is a persistent FIFO queue of T.
//
// Equality is structural on the (forwards, backwards) split, not just
// on logical content: two queues holding the same sequence of elements
// but arrived at via a different history of adds and polls can compare
// unequal. Add(1).Add(2).Add(3), then a Poll, then Add(4).Add(5) holds
// 2, 3, 4, 5, as does Add(2).Add(3).Add(4).Add(5) on an empty queue,
// but the two split those elements differently and Equal reports
// false. This is intentional, not an oversight — see Equal's doc
// comment.
type LinkedQueue[T any] struct {
	forwards  *node[T]
	backwards *node[T]
	len       int
}

// Empty is the empty LinkedQueue. The zero value of LinkedQueue[T] is
// already empty.
func Empty[T any]() LinkedQueue[T] { return LinkedQueue[T]{} }

// Len returns the number of elements.
func (q LinkedQueue[T]) Len() int { return q.len }

// IsEmpty reports whether q has no elements.
func (q LinkedQueue[T]) IsEmpty() bool { return q.len == 0 }

// Add enqueues x at the back of q.
func (q LinkedQueue[T]) Add(x T) LinkedQueue[T] {
	forwards := q.forwards
	if forwards == nil {
		// Maintains the invariant that forwards is empty only when the
		// queue itself is: a single-element queue keeps peek/poll O(1)
		// without needing a reversal on the very next operation.
		forwards = &node[T]{value: x}
		return LinkedQueue[T]{forwards: forwards, backwards: q.backwards, len: q.len + 1}
	}
	return LinkedQueue[T]{forwards: forwards, backwards: &node[T]{value: x, tail: q.backwards}, len: q.len + 1}
}

// Poll dequeues and returns the element at the front of q.
func (q LinkedQueue[T]) Poll() (LinkedQueue[T], T, error) {
	if q.forwards == nil {
		var zero T
		return q, zero, errs.Emptyf("LinkedQueue.Poll", "queue is empty")
	}
	value := q.forwards.value
	rest := q.forwards.tail
	if rest != nil {
		return LinkedQueue[T]{forwards: rest, backwards: q.backwards, len: q.len - 1}, value, nil
	}
	// forwards just ran out; eagerly reverse backwards so forwards is
	// non-empty again whenever the queue is non-empty.
	reversed := reverse(q.backwards)
	return LinkedQueue[T]{forwards: reversed, backwards: nil, len: q.len - 1}, value, nil
}

// Peek returns the element at the front of q without removing it.
func (q LinkedQueue[T]) Peek() (T, error) {
	if q.forwards != nil {
		return q.forwards.value, nil
	}
	if q.backwards == nil {
		var zero T
		return zero, errs.Emptyf("LinkedQueue.Peek", "queue is empty")
	}
	// Canonical form keeps forwards non-empty whenever the queue is
	// non-empty, so this path is unreachable in practice; kept for
	// defense against a queue value built outside Add/Poll.
	n := q.backwards
	for n.tail != nil {
		n = n.tail
	}
	return n.value, nil
}

// Clear returns the empty queue.
func (q LinkedQueue[T]) Clear() LinkedQueue[T] { return Empty[T]() }

// ForEach visits every element in FIFO order, stopping early if f
// returns false.
func (q LinkedQueue[T]) ForEach(f func(T) bool) {
	for n := q.forwards; n != nil; n = n.tail {
		if !f(n.value) {
			return
		}
	}
	for n := reverse(q.backwards); n != nil; n = n.tail {
		if !f(n.value) {
			return
		}
	}
}

// ToSlice returns a new slice in FIFO order.
func (q LinkedQueue[T]) ToSlice() []T {
	out := make([]T, 0, q.len)
	q.ForEach(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Equal reports whether q and other share the same (forwards,
// backwards) split node-for-node, not merely the same logical
// sequence. Two queues containing the same elements in the same order
// can still compare unequal here if they were built by a different
// sequence of Add/Poll calls, because the split itself is part of a
// LinkedQueue's identity. Use SequenceEqual to compare logical content
// instead.
func (q LinkedQueue[T]) Equal(other LinkedQueue[T], eq func(a, b T) bool) bool {
	return nodesEqual(q.forwards, other.forwards, eq) && nodesEqual(q.backwards, other.backwards, eq)
}

// SequenceEqual reports whether q and other yield the same elements in
// the same FIFO order, regardless of their internal split.
func (q LinkedQueue[T]) SequenceEqual(other LinkedQueue[T], eq func(a, b T) bool) bool {
	if q.len != other.len {
		return false
	}
	equal := true
	a, b := q.ToSlice(), other.ToSlice()
	for i := range a {
		if !eq(a[i], b[i]) {
			equal = false
			break
		}
	}
	return equal
}

// Identical reports whether q and other share the same forwards and
// backwards nodes. Used by atomicupdate.Update to detect a no-op
// transform; stronger than Equal's value comparison since it checks
// node pointers rather than element values.
func (q LinkedQueue[T]) Identical(other LinkedQueue[T]) bool {
	return q.forwards == other.forwards && q.backwards == other.backwards
}

func nodesEqual[T any](a, b *node[T], eq func(x, y T) bool) bool {
	for a != nil && b != nil {
		if !eq(a.value, b.value) {
			return false
		}
		a, b = a.tail, b.tail
	}
	return a == nil && b == nil
}

func reverse[T any](n *node[T]) *node[T] {
	var out *node[T]
	for n != nil {
		out = &node[T]{value: n.value, tail: out}
		n = n.tail
	}
	return out
}
