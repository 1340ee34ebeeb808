// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package linkedstack implements LinkedStack, a persistent LIFO stack
// as a cons list: every push allocates one new node whose tail is
// shared, unmodified, with every stack it was pushed from.
package linkedstack

import "github.com/aristanetworks/goimmutable/errs"

type node[T any] struct {
	value T
	tail  *node[T]
}

// LinkedStack is a persistent stack of T.
type LinkedStack[T any] struct {
	top *node[T]
	len int
}

// Empty is the empty LinkedStack. The zero value of LinkedStack[T] is
// already empty.
func Empty[T any]() LinkedStack[T] { return LinkedStack[T]{} }

// Len returns the number of elements.
func (s LinkedStack[T]) Len() int { return s.len }

// IsEmpty reports whether s has no elements.
func (s LinkedStack[T]) IsEmpty() bool { return s.top == nil }

// Push returns a new LinkedStack with x on top. s itself, and every
// stack derived from it, is untouched: the new node's tail is s.top.
func (s LinkedStack[T]) Push(x T) LinkedStack[T] {
	return LinkedStack[T]{top: &node[T]{value: x, tail: s.top}, len: s.len + 1}
}

// Pop returns a new LinkedStack with the top element removed.
func (s LinkedStack[T]) Pop() (LinkedStack[T], error) {
	if s.top == nil {
		return s, errs.Emptyf("LinkedStack.Pop", "stack is empty")
	}
	return LinkedStack[T]{top: s.top.tail, len: s.len - 1}, nil
}

// Peek returns the top element without removing it.
func (s LinkedStack[T]) Peek() (T, error) {
	if s.top == nil {
		var zero T
		return zero, errs.Emptyf("LinkedStack.Peek", "stack is empty")
	}
	return s.top.value, nil
}

// Clear returns the empty stack.
func (s LinkedStack[T]) Clear() LinkedStack[T] { return Empty[T]() }

// ForEach visits every element from top to bottom, stopping early if f
// returns false.
func (s LinkedStack[T]) ForEach(f func(T) bool) {
	for n := s.top; n != nil; n = n.tail {
		if !f(n.value) {
			return
		}
	}
}

// ToSlice returns a new slice with elements ordered top to bottom.
func (s LinkedStack[T]) ToSlice() []T {
	out := make([]T, 0, s.len)
	s.ForEach(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Identical reports whether s and other share the same top node. Used
// by atomicupdate.Update to detect a no-op transform.
func (s LinkedStack[T]) Identical(other LinkedStack[T]) bool { return s.top == other.top }
