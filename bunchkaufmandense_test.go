// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// Modified-Cholesky-pivoting on a near-singular symmetric
// indefinite 4x4 matrix. The Bunch-Kaufman pivoting sequence is expected
// to produce at least one 2x2 block in M.
func TestBunchKaufmanDenseNearSingularIndefinite(t *testing.T) {
	a := NewSymDense(4, nil)
	a.SetSym(0, 0, 1e-8)
	a.SetSym(0, 1, 1)
	a.SetSym(0, 2, 0)
	a.SetSym(0, 3, 0)
	a.SetSym(1, 1, 1e-8)
	a.SetSym(1, 2, 0)
	a.SetSym(1, 3, 0)
	a.SetSym(2, 2, 2)
	a.SetSym(2, 3, 1)
	a.SetSym(3, 3, -3)

	solver, err := ModifiedCholeskyPivoting.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	if solver == nil {
		t.Fatal("ModifiedCholeskyPivoting failed on a nonsingular indefinite matrix")
	}

	if got := solver.m.N(); got != 4 {
		t.Fatalf("M.N() = %d, want 4", got)
	}
	sawBlock := false
	for i := 0; i < solver.m.N()-1; i++ {
		if solver.m.SubAt(i) != 0 {
			sawBlock = true
			if i > 0 && solver.m.SubAt(i-1) != 0 {
				t.Errorf("adjacent 2x2 blocks at sub[%d] and sub[%d]", i-1, i)
			}
		}
	}
	if !sawBlock {
		t.Error("Bunch-Kaufman pivoting produced no 2x2 block for a matrix designed to require one")
	}

	inv, ok := solver.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular")
	}
	n := 4
	for i := 0; i < n; i++ {
		e := make([]float64, n)
		e[i] = 1
		x := make([]float64, n)
		inv.MulVec(x, e)
		back := make([]float64, n)
		for r := 0; r < n; r++ {
			var s float64
			for c := 0; c < n; c++ {
				s += a.At(r, c) * x[c]
			}
			back[r] = s
		}
		for r := 0; r < n; r++ {
			want := 0.0
			if r == i {
				want = 1
			}
			if !scalar.EqualWithinAbsOrRel(back[r], want, 1e-9, 1e-9) {
				t.Errorf("A*(A^-1*e_%d)[%d] = %v, want %v", i, r, back[r], want)
			}
		}
	}
}

func TestBunchKaufmanDenseRejectsNonSymmetric(t *testing.T) {
	a := NewDense(2, 2, []float64{1, 2, 3, 4})
	acc := ModifiedCholeskyPivoting.Accepts(asymmetricMarker{a})
	if !acc.Rejected() || acc.Reason() != NotSymmetric {
		t.Errorf("Accepts() = %+v, want Rejected with NotSymmetric", acc)
	}
}

// A 5x5 symmetric indefinite matrix constructed as G*D*G^T for a known
// unit lower-triangular G and D = diag(2,-3,1,-2,4), so det = 48. Large
// off-diagonal entries force pivot swaps partway through the sweep, after
// multipliers have already been recorded.
func TestBunchKaufmanDenseFidelityWithMidSweepSwaps(t *testing.T) {
	entries := [][]float64{
		{2, 2, 4, 0, -2},
		{2, -1, 7, -3, -2},
		{4, 7, 6, 5, -3},
		{0, -3, 5, -1, 6},
		{-2, -2, -3, 6, -1},
	}
	n := 5
	a := NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a.SetSym(i, j, entries[i][j])
		}
	}

	solver, err := ModifiedCholeskyPivoting.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	if solver == nil {
		t.Fatal("ModifiedCholeskyPivoting failed on a nonsingular matrix")
	}

	const wantDet = 48.0
	if got := solver.Determinant().Value(); !scalar.EqualWithinAbsOrRel(got, wantDet, 1e-8, 1e-8) {
		t.Errorf("Determinant().Value() = %v, want %v", got, wantDet)
	}

	inv, ok := solver.Inverse()
	if !ok {
		t.Fatal("Inverse() reported singular")
	}
	for i := 0; i < n; i++ {
		e := make([]float64, n)
		e[i] = 1
		x := make([]float64, n)
		inv.MulVec(x, e)
		for r := 0; r < n; r++ {
			var s float64
			for c := 0; c < n; c++ {
				s += a.At(r, c) * x[c]
			}
			want := 0.0
			if r == i {
				want = 1
			}
			if !scalar.EqualWithinAbsOrRel(s, want, 1e-8, 1e-8) {
				t.Errorf("A*(A^-1*e_%d)[%d] = %v, want %v", i, r, s, want)
			}
		}
	}
}
