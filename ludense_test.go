// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// A 4x4 matrix with known determinant 26 and a precomputed inverse.
func TestLUDenseWorkedExample(t *testing.T) {
	a := NewDense(4, 4, []float64{
		1, 2, 3, 0,
		3, 2, 4, 5,
		0, 2, 3, 6,
		0, 0, 1, 4,
	})

	solver, err := LU.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	if solver == nil {
		t.Fatal("ApplyDefault returned a nil solver for a regular matrix")
	}

	const wantDet = 26.0
	if got := solver.Determinant().Value(); !scalar.EqualWithinAbsOrRel(got, wantDet, 1e-9, 1e-9) {
		t.Errorf("Determinant().Value() = %v, want %v", got, wantDet)
	}
	if got := solver.SignOfDeterminant(); got != 1 {
		t.Errorf("SignOfDeterminant() = %d, want 1", got)
	}
	if got, want := solver.LogAbsDeterminant(), math.Log(26); !scalar.EqualWithinAbsOrRel(got, want, 1e-9, 1e-9) {
		t.Errorf("LogAbsDeterminant() = %v, want %v", got, want)
	}

	inv, ok := solver.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular")
	}

	rhs := []float64{1, 2, 3, 4}
	got := make([]float64, 4)
	inv.MulVec(got, rhs)
	want := []float64{-1.53846153846154, -4.26923076923077, 3.69230769230769, 0.07692307692308}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(got[i], want[i], 1e-9, 1e-9) {
			t.Errorf("A^-1*rhs[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	gotT := make([]float64, 4)
	inv.MulVecTrans(gotT, rhs)
	wantT := []float64{0.07692307692308, 0.30769230769231, 0.61538461538462, -0.30769230769231}
	for i := range wantT {
		if !scalar.EqualWithinAbsOrRel(gotT[i], wantT[i], 1e-9, 1e-9) {
			t.Errorf("(A^-1)^T*rhs[%d] = %v, want %v", i, gotT[i], wantT[i])
		}
	}
}

// The 1x1 case.
func TestLUDenseSingleEntry(t *testing.T) {
	a := NewDense(1, 1, []float64{-2})
	solver, err := LU.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	if got := solver.Determinant().Value(); got != -2 {
		t.Errorf("Determinant().Value() = %v, want -2", got)
	}
	inv, ok := solver.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular")
	}
	got := make([]float64, 1)
	inv.MulVec(got, []float64{3})
	if !scalar.EqualWithinAbsOrRel(got[0], -1.5, 1e-12, 1e-12) {
		t.Errorf("A^-1*3 = %v, want -1.5", got[0])
	}
}

func TestLUDenseInverseIsCachedInstance(t *testing.T) {
	a := NewDense(2, 2, []float64{2, 0, 0, 3})
	solver, err := LU.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	inv1, _ := solver.Inverse()
	inv2, _ := solver.Inverse()
	if inv1 != inv2 {
		t.Error("Inverse() returned different instances on repeated calls")
	}
}

func TestLUDenseApplyDefaultIsApplyWithDefaultEpsilon(t *testing.T) {
	a := NewDense(2, 2, []float64{1, 0, 0, 1})
	s1, err1 := LU.ApplyDefault(a)
	s2, err2 := LU.Apply(a, DefaultEpsilon)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if s1.Determinant().Value() != s2.Determinant().Value() {
		t.Error("ApplyDefault and Apply(DefaultEpsilon) disagree")
	}
}
