// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package avl

import (
	"math"
	"testing"
)

// VerifyBalanced walks n and fails t if any node violates the AVL
// balance invariant |height(left) - height(right)| <= 1, or if any
// node's recorded size disagrees with 1 + size(left) + size(right).
// This is spec.md §8's "Balance" and "Size consistency" properties,
// meant to be called from white-box tests in the packages built on
// top of this one.
func VerifyBalanced[T any](t *testing.T, n *Node[T]) {
	t.Helper()
	verifyBalanced(t, n)
}

func verifyBalanced[T any](t *testing.T, n *Node[T]) (height, size int) {
	t.Helper()
	if n == nil {
		return 0, 0
	}
	lh, ls := verifyBalanced(t, n.Left)
	rh, rs := verifyBalanced(t, n.Right)
	if d := lh - rh; d > 1 || d < -1 {
		t.Errorf("node unbalanced: left height %d, right height %d", lh, rh)
	}
	if wantSize := ls + rs + 1; Size(n) != wantSize {
		t.Errorf("node size %d, want %d", Size(n), wantSize)
	}
	wantHeight := lh
	if rh > wantHeight {
		wantHeight = rh
	}
	wantHeight++
	if Height(n) != wantHeight {
		t.Errorf("node height %d, want %d", Height(n), wantHeight)
	}
	return Height(n), Size(n)
}

// VerifyHeightIsWithinTolerance checks spec.md §4.1's AVL height
// bound: for size n > 0, height < log_phi(sqrt(5)*(n+2)) - 2.
func VerifyHeightIsWithinTolerance(t *testing.T, height, size int) {
	t.Helper()
	if size == 0 {
		return
	}
	const phi = 1.6180339887498949
	bound := math.Log(math.Sqrt(5)*float64(size+2))/math.Log(phi) - 2
	if float64(height) >= bound {
		t.Errorf("height %d exceeds AVL bound %f for size %d", height, bound, size)
	}
}
