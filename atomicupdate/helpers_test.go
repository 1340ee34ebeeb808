// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package atomicupdate_test

import (
	"testing"

	"github.com/aristanetworks/goimmutable/atomicupdate"
	"github.com/aristanetworks/goimmutable/hashmap"
	"github.com/aristanetworks/goimmutable/linkedqueue"
	"github.com/aristanetworks/goimmutable/linkedstack"
)

func strEq(a, b string) bool { return a == b }

func fnvHash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func TestGetOrAddCallsFactoryOnlyWhenAbsent(t *testing.T) {
	m, err := hashmap.Empty[string, int](strEq, fnvHash, intEq)
	if err != nil {
		t.Fatal(err)
	}
	ref := atomicupdate.NewRef(m)
	calls := 0
	factory := func() int { calls++; return 42 }

	v := atomicupdate.GetOrAdd(ref, "a", factory)
	if v != 42 || calls != 1 {
		t.Fatalf("v=%d calls=%d, want 42, 1", v, calls)
	}

	v = atomicupdate.GetOrAdd(ref, "a", factory)
	if v != 42 || calls != 1 {
		t.Fatalf("second call: v=%d calls=%d, want 42, 1 (factory should not run again)", v, calls)
	}
}

func TestAddOrUpdate(t *testing.T) {
	m, err := hashmap.Empty[string, int](strEq, fnvHash, intEq)
	if err != nil {
		t.Fatal(err)
	}
	ref := atomicupdate.NewRef(m)
	v := atomicupdate.AddOrUpdate(ref, "count", func() int { return 1 }, func(old int) int { return old + 1 })
	if v != 1 {
		t.Fatalf("v = %d, want 1", v)
	}
	v = atomicupdate.AddOrUpdate(ref, "count", func() int { return 1 }, func(old int) int { return old + 1 })
	if v != 2 {
		t.Fatalf("v = %d, want 2", v)
	}
}

func TestTryAddTryUpdateTryRemove(t *testing.T) {
	m, err := hashmap.Empty[string, int](strEq, fnvHash, intEq)
	if err != nil {
		t.Fatal(err)
	}
	ref := atomicupdate.NewRef(m)
	if !atomicupdate.TryAdd(ref, "a", 1) {
		t.Fatal("expected TryAdd to succeed")
	}
	if atomicupdate.TryAdd(ref, "a", 2) {
		t.Fatal("expected TryAdd to fail on conflicting value")
	}
	if !atomicupdate.TryUpdate(ref, "a", 1, 2, intEq) {
		t.Fatal("expected TryUpdate to succeed")
	}
	v, _ := ref.Load().Get("a")
	if v != 2 {
		t.Fatalf("Get(a) = %d, want 2", v)
	}
	if atomicupdate.TryUpdate(ref, "a", 99, 3, intEq) {
		t.Fatal("expected TryUpdate to fail on mismatched expected value")
	}
	if !atomicupdate.TryRemove(ref, "a") {
		t.Fatal("expected TryRemove to succeed")
	}
	if atomicupdate.TryRemove(ref, "a") {
		t.Fatal("expected TryRemove to fail on already-removed key")
	}
}

func TestPushTryPop(t *testing.T) {
	ref := atomicupdate.NewRef(linkedstack.Empty[int]())
	atomicupdate.Push(ref, 1)
	atomicupdate.Push(ref, 2)
	v, ok := atomicupdate.TryPop(ref)
	if !ok || v != 2 {
		t.Fatalf("TryPop = %d, %v, want 2, true", v, ok)
	}
	atomicupdate.TryPop(ref)
	if _, ok := atomicupdate.TryPop(ref); ok {
		t.Fatal("expected TryPop to fail on empty stack")
	}
}

func TestAddToQueueTryPoll(t *testing.T) {
	ref := atomicupdate.NewRef(linkedqueue.Empty[int]())
	atomicupdate.AddToQueue(ref, 1)
	atomicupdate.AddToQueue(ref, 2)
	v, ok := atomicupdate.TryPoll(ref)
	if !ok || v != 1 {
		t.Fatalf("TryPoll = %d, %v, want 1, true", v, ok)
	}
	atomicupdate.TryPoll(ref)
	if _, ok := atomicupdate.TryPoll(ref); ok {
		t.Fatal("expected TryPoll to fail on empty queue")
	}
}
