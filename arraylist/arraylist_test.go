// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package arraylist_test

import (
	"errors"
	"testing"

	"github.com/aristanetworks/goimmutable/arraylist"
	"github.com/aristanetworks/goimmutable/errs"
)

func intEq(a, b int) bool { return a == b }
func intCmp(a, b int) int { return a - b }

func TestAddAndGet(t *testing.T) {
	a := arraylist.Empty[int]()
	for i := 0; i < 10; i++ {
		a = a.Add(i)
	}
	if a.Len() != 10 {
		t.Fatalf("Len = %d, want 10", a.Len())
	}
	for i := 0; i < 10; i++ {
		got, err := a.Get(i)
		if err != nil || got != i {
			t.Fatalf("Get(%d) = %d, %v", i, got, err)
		}
	}
}

func TestGetOutOfBounds(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	if _, err := a.Get(3); !errors.Is(err, errs.OutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
}

func TestAddAllEmptyIsIdentity(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	same := a.AddAll(nil)
	if same.Len() != 3 {
		t.Fatal("unexpected mutation")
	}
	if !same.Identical(a) {
		t.Fatal("AddAll(empty) should return the receiver")
	}
}

func TestInsertAndRemove(t *testing.T) {
	a := arraylist.Of(1, 2, 4)
	a, err := a.Insert(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.ToSlice(); !equalInts(got, []int{1, 2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
	a, err = a.Remove(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.ToSlice(); !equalInts(got, []int{2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
}

func TestRemoveAllEmptyIsIdentity(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	same, err := a.RemoveAll(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if same.Len() != 3 {
		t.Fatal("unexpected mutation")
	}
	if !same.Identical(a) {
		t.Fatal("RemoveAll of an empty range should return the receiver")
	}
}

func TestReplace(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	a, err := a.Replace(2, 20, intEq)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.ToSlice(); !equalInts(got, []int{1, 20, 3}) {
		t.Fatalf("got %v", got)
	}
	if _, err := a.Replace(99, 0, intEq); !errors.Is(err, errs.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestReverseIdentityOnShort(t *testing.T) {
	a := arraylist.Of(1)
	if rev := a.Reverse(); rev.Len() != 1 || !rev.Identical(a) {
		t.Fatal("Reverse of a 1-element list should return the receiver")
	}
	b := arraylist.Of(1, 2, 3)
	if got := b.Reverse().ToSlice(); !equalInts(got, []int{3, 2, 1}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortStableAndIdentityOnSorted(t *testing.T) {
	a := arraylist.Of(3, 1, 2)
	sorted := a.Sort(intCmp)
	if got := sorted.ToSlice(); !equalInts(got, []int{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
	again := sorted.Sort(intCmp)
	if again.ToSlice()[0] != sorted.ToSlice()[0] {
		t.Fatal("unexpected diff")
	}
	if !again.Identical(sorted) {
		t.Fatal("Sort of a sorted list should return the receiver")
	}
}

func TestBinarySearch(t *testing.T) {
	a := arraylist.Of(1, 3, 5, 7, 9)
	idx, ok := a.BinarySearch(5, intCmp)
	if !ok || idx != 2 {
		t.Fatalf("BinarySearch(5) = %d, %v, want 2, true", idx, ok)
	}
	idx, ok = a.BinarySearch(4, intCmp)
	if ok || idx != 2 {
		t.Fatalf("BinarySearch(4) = %d, %v, want 2, false", idx, ok)
	}
}

func TestIndexOfAndLastIndexOf(t *testing.T) {
	a := arraylist.Of(5, 3, 5, 7, 5)
	if idx := a.IndexOf(5, intEq); idx != 0 {
		t.Fatalf("IndexOf = %d, want 0", idx)
	}
	if idx := a.LastIndexOf(5, intEq); idx != 4 {
		t.Fatalf("LastIndexOf = %d, want 4", idx)
	}
}

func TestBuilderMoveToImmutableRequiresExactCapacity(t *testing.T) {
	b := arraylist.NewBuilder[int](5)
	b.Add(1)
	b.Add(2)
	if _, err := b.MoveToImmutable(); !errors.Is(err, errs.InvalidState) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
	if err := b.SetCapacity(2); err != nil {
		t.Fatal(err)
	}
	got, err := b.MoveToImmutable()
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if b.Len() != 0 {
		t.Fatal("builder should be empty after MoveToImmutable")
	}
}

func TestBuilderToImmutableCopiesWhenCapacityExceedsLength(t *testing.T) {
	b := arraylist.NewBuilder[int](5)
	b.Add(1)
	b.Add(2)
	snapshot := b.ToImmutable()
	b.Add(3)
	if snapshot.Len() != 2 {
		t.Fatalf("snapshot mutated: len = %d", snapshot.Len())
	}
	if b.Len() != 3 {
		t.Fatalf("builder Len = %d, want 3", b.Len())
	}
}

func TestCreateAllIsIdentityOnArrayList(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	same := arraylist.CreateAll(a)
	if same.Identical(a) != true {
		t.Fatal("CreateAll should return the same instance")
	}
}

func TestCreateAllSliceEmptyMatchesEmptySingleton(t *testing.T) {
	got := arraylist.CreateAllSlice[int](nil)
	if !got.Identical(arraylist.Empty[int]()) {
		t.Fatal("CreateAllSlice(empty) should be Identical to Empty[T]()")
	}
	got = arraylist.CreateAllSlice([]int{})
	if !got.Identical(arraylist.Empty[int]()) {
		t.Fatal("CreateAllSlice([]int{}) should be Identical to Empty[T]()")
	}
}

func TestCreateAllSliceBuildsFromValues(t *testing.T) {
	got := arraylist.CreateAllSlice([]int{1, 2, 3})
	if gotSlice := got.ToSlice(); !equalInts(gotSlice, []int{1, 2, 3}) {
		t.Fatalf("got %v", gotSlice)
	}
}

func TestCastUpWidensElements(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	widened := arraylist.CastUp[int, int64](a, func(v int) int64 { return int64(v) })
	if widened.Len() != 3 {
		t.Fatalf("Len = %d, want 3", widened.Len())
	}
	got, err := widened.Get(1)
	if err != nil || got != int64(2) {
		t.Fatalf("Get(1) = %d, %v, want 2, nil", got, err)
	}
}

func TestCastUpEmptyNeverCallsWiden(t *testing.T) {
	a := arraylist.Empty[int]()
	called := false
	widened := arraylist.CastUp[int, int64](a, func(v int) int64 {
		called = true
		return int64(v)
	})
	if called {
		t.Fatal("widen should not be called on an empty ArrayList")
	}
	if !widened.Identical(arraylist.Empty[int64]()) {
		t.Fatal("CastUp(empty) should be Identical to Empty[U]()")
	}
}

func TestBuilderForEachDetectsConcurrentModification(t *testing.T) {
	b := arraylist.NewBuilder[int](3)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	err := b.ForEach(func(v int) bool {
		b.Add(99)
		return true
	})
	if !errors.Is(err, errs.ConcurrentModification) {
		t.Fatalf("expected ConcurrentModification, got %v", err)
	}
}

func TestToBuilderRoundTrip(t *testing.T) {
	a := arraylist.Of(1, 2, 3)
	b := a.ToBuilder()
	b.Add(4)
	mutated := b.ToImmutable()
	if mutated.Len() != 4 {
		t.Fatalf("mutated Len = %d, want 4", mutated.Len())
	}
	if a.Len() != 3 {
		t.Fatalf("original list mutated: len = %d", a.Len())
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
