// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func buildLowerUnitriangular(n int, entries map[[2]int]float64) *LowerUnitriangular {
	b := UnitLowerBuilder(n)
	for rc, v := range entries {
		b.SetValue(rc[0], rc[1], v)
	}
	return b.Build()
}

func TestLowerUnitriangularMulVecAndInverseRoundTrip(t *testing.T) {
	l := buildLowerUnitriangular(3, map[[2]int]float64{
		{1, 0}: 2,
		{2, 0}: -1,
		{2, 1}: 3,
	})
	src := []float64{1, 2, 3}
	dst := make([]float64, 3)
	l.MulVec(dst, src)

	back := make([]float64, 3)
	l.Inverse().MulVec(back, dst)
	for i := range src {
		if !scalar.EqualWithinAbsOrRel(back[i], src[i], 1e-12, 1e-12) {
			t.Errorf("round trip[%d] = %v, want %v", i, back[i], src[i])
		}
	}
}

func TestLowerUnitriangularMulVecTransInverseRoundTrip(t *testing.T) {
	l := buildLowerUnitriangular(3, map[[2]int]float64{
		{1, 0}: 2,
		{2, 0}: -1,
		{2, 1}: 3,
	})
	src := []float64{1, 2, 3}
	dst := make([]float64, 3)
	l.MulVecTrans(dst, src)

	back := make([]float64, 3)
	l.Inverse().MulVecTrans(back, dst)
	for i := range src {
		if !scalar.EqualWithinAbsOrRel(back[i], src[i], 1e-12, 1e-12) {
			t.Errorf("round trip[%d] = %v, want %v", i, back[i], src[i])
		}
	}
}

func TestLowerUnitriangularSetValueRequiresStrictlyLower(t *testing.T) {
	b := UnitLowerBuilder(2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic setting an on-or-above diagonal entry")
		}
	}()
	b.SetValue(0, 0, 1)
}

func TestLowerUnitriangularBandRoundTrip(t *testing.T) {
	b := UnitLowerBandBuilder(4, 2)
	b.SetValue(1, 0, 2)
	b.SetValue(2, 0, -1)
	b.SetValue(2, 1, 3)
	b.SetValue(3, 1, 1)
	b.SetValue(3, 2, -2)
	l := b.Build()

	src := []float64{1, 2, 3, 4}
	dst := make([]float64, 4)
	l.MulVec(dst, src)

	back := make([]float64, 4)
	l.Inverse().MulVec(back, dst)
	for i := range src {
		if !scalar.EqualWithinAbsOrRel(back[i], src[i], 1e-12, 1e-12) {
			t.Errorf("round trip[%d] = %v, want %v", i, back[i], src[i])
		}
	}
}
