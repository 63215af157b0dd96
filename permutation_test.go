// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPermutationIdentity(t *testing.T) {
	p := UnitPermutationBuilder(3).Build()
	if got := p.SignOfDeterminant(); got != 1 {
		t.Errorf("SignOfDeterminant() = %d, want 1", got)
	}
	src := []float64{1, 2, 3}
	dst := make([]float64, 3)
	p.MulVec(dst, src)
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("identity MulVec()[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestPermutationSingleSwap(t *testing.T) {
	b := UnitPermutationBuilder(3)
	b.SwapColumns(0, 2)
	p := b.Build()
	if got := p.SignOfDeterminant(); got != -1 {
		t.Errorf("SignOfDeterminant() = %d, want -1 after one swap", got)
	}
	src := []float64{10, 20, 30}
	dst := make([]float64, 3)
	p.MulVec(dst, src)
	want := []float64{30, 20, 10}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("MulVec()[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestPermutationInverseIsTranspose(t *testing.T) {
	b := UnitPermutationBuilder(4)
	b.SwapColumns(0, 1)
	b.SwapColumns(1, 3)
	p := b.Build()

	src := []float64{1, 2, 3, 4}
	fwd := make([]float64, 4)
	p.MulVec(fwd, src)

	back := make([]float64, 4)
	p.Inverse().MulVec(back, fwd)
	for i := range src {
		if back[i] != src[i] {
			t.Errorf("P^-1(P(src))[%d] = %v, want %v", i, back[i], src[i])
		}
	}
}

func TestPermutationStructuralEquality(t *testing.T) {
	build := func() *Permutation {
		b := UnitPermutationBuilder(4)
		b.SwapColumns(0, 1)
		b.SwapColumns(1, 3)
		return b.Build()
	}
	pa, pb := build(), build()

	if diff := cmp.Diff(pa, pb, cmp.AllowUnexported(Permutation{})); diff != "" {
		t.Errorf("two permutations built from the same swap sequence differ (-a +b):\n%s", diff)
	}

	c := UnitPermutationBuilder(4)
	c.SwapColumns(0, 2)
	pc := c.Build()
	if diff := cmp.Diff(pa, pc, cmp.AllowUnexported(Permutation{})); diff == "" {
		t.Error("permutations built from different swap sequences compared equal")
	}
}

func TestPermutationDoubleSwapIsEven(t *testing.T) {
	b := UnitPermutationBuilder(4)
	b.SwapColumns(0, 1)
	b.SwapColumns(2, 3)
	p := b.Build()
	if got := p.SignOfDeterminant(); got != 1 {
		t.Errorf("SignOfDeterminant() = %d, want 1 after two disjoint swaps", got)
	}
}
