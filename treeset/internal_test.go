// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package treeset

import (
	"math/rand"
	"testing"

	"github.com/aristanetworks/goimmutable/internal/avl"
)

func TestRandomOpsStayBalancedWhiteBox(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := Empty[int](intCmp)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3000; i++ {
		x := rng.Intn(500)
		switch rng.Intn(2) {
		case 0:
			s = s.Add(x)
		case 1:
			s = s.Remove(x)
		}
		avl.VerifyBalanced(t, s.root)
		avl.VerifyHeightIsWithinTolerance(t, avl.Height(s.root), avl.Size(s.root))
	}
}

func TestAddNoOpIdentityWhiteBox(t *testing.T) {
	s := Of(intCmp, 1, 2, 3)
	same := s.Add(2)
	if same.root != s.root {
		t.Fatal("Add of existing element should be identity")
	}
}

func intCmp(a, b int) int { return a - b }
