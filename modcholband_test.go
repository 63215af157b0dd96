// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestModifiedCholeskyBandedOnIndefiniteTridiagonal(t *testing.T) {
	n := 4
	// A tridiagonal symmetric indefinite matrix (negative diagonal
	// entries preclude plain Cholesky but not LDL^T).
	a := NewSymBandDense(n, 1, nil)
	diag := []float64{2, -3, 4, -1}
	off := []float64{1, 1, 1}
	for i := 0; i < n; i++ {
		a.SetSym(i, i, diag[i])
		if i > 0 {
			a.SetSym(i-1, i, off[i-1])
		}
	}

	acc := CholeskyBanded.Accepts(a)
	if acc.Rejected() {
		t.Fatalf("unexpected structural rejection: %v", acc.Reason())
	}
	if _, err := CholeskyBanded.ApplyDefault(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	solver, err := ModifiedCholeskyBanded.ApplyDefault(a)
	if err != nil {
		t.Fatalf("ApplyDefault returned an error: %v", err)
	}
	if solver == nil {
		t.Fatal("ModifiedCholeskyBanded failed on a nonsingular indefinite matrix")
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
			if !scalar.EqualWithinAbsOrRel(back[r], want, 1e-8, 1e-8) {
				t.Errorf("A*(A^-1*e_%d)[%d] = %v, want %v", i, r, back[r], want)
			}
		}
	}
}
