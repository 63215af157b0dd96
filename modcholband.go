// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// ModifiedCholeskyBanded is the singleton Executor for the banded
// modified-Cholesky (LDLᵀ, no pivoting) factorization of a symmetric
// indefinite band matrix.
var ModifiedCholeskyBanded = NewExecutor[SymmetricBandMatrix, *ModifiedCholeskySolver](
	func(m SymmetricBandMatrix) MatrixDimension { return m.BandDims().Dimension() },
	func(m SymmetricBandMatrix) Acceptance {
		bd := m.BandDims()
		dims := bd.Dimension()
		if !m.Symmetric() {
			return rejected(NotSymmetric, dims)
		}
		if dims.Rows()*bd.Lower() > maxElementCount {
			return rejected(TooManyElements, dims)
		}
		return accepted
	},
	applyModifiedCholeskyBand,
)

func applyModifiedCholeskyBand(a SymmetricBandMatrix, epsilon float64) (*ModifiedCholeskySolver, bool) {
	d, l, ok := modCholBandFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newModifiedCholeskyBandSolver(a, d, l), true
}

// modCholBandFactorize is choleskyBandFactorize without the
// positive-definiteness requirement: the pivot test is
// |d| <= epsilon+pivotFloor (merely nonsingular, not positive), no square
// root is taken, and D stores the raw pivot.
func modCholBandFactorize(a SymmetricBandMatrix, epsilon float64) (d *Diagonal, l *LowerUnitriangularBand, ok bool) {
	bd := a.BandDims()
	n := bd.Dimension().Rows()
	b := bd.Lower()

	s := a.EntryNormMax()
	if s == 0 {
		return nil, nil, false
	}

	work := NewSymBandDense(n, b, nil)
	for i := 0; i < n; i++ {
		hi := min(n-1, i+b)
		for j := i; j <= hi; j++ {
			work.SetSym(i, j, a.At(i, j)/s)
		}
	}

	lBuilder := UnitLowerBandBuilder(n, b)
	dBuilder := ZeroDiagonalBuilder(n)
	thresh := epsilon + pivotFloor
	raw := make([]float64, n)

	for i := 0; i < n; i++ {
		pivot := work.At(i, i)
		if math.Abs(pivot) <= thresh {
			return nil, nil, false
		}

		kEnd := min(n-1, i+b)
		for k := i + 1; k <= kEnd; k++ {
			raw[k] = work.At(k, i)
			lBuilder.SetValue(k, i, raw[k]/pivot)
		}
		for k := i + 1; k <= kEnd; k++ {
			for j := i + 1; j <= k; j++ {
				work.SetSym(k, j, work.At(k, j)-raw[k]*raw[j]/pivot)
			}
		}
		dBuilder.SetValue(i, pivot*s)
	}

	D := dBuilder.Build()
	if D.SignOfDeterminant() == 0 {
		return nil, nil, false
	}
	return D, lBuilder.Build(), true
}
