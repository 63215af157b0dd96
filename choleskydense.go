// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// Cholesky is the singleton Executor for the dense Cholesky factorization
// of a symmetric positive-definite matrix, A = L·√D·√D·Lᵀ. Accepts
// rejects matrices that do not carry the SymmetricMatrix marker as well
// as non-square ones.
var Cholesky = NewExecutor[SymmetricMatrix, *CholeskySolver](
	func(m SymmetricMatrix) MatrixDimension { return m.Dims() },
	func(m SymmetricMatrix) Acceptance {
		dims := m.Dims()
		if !m.Symmetric() {
			return rejected(NotSymmetric, dims)
		}
		if packedLowerSize(dims.Rows()) > maxElementCount {
			return rejected(TooManyElements, dims)
		}
		return accepted
	},
	applyCholeskyDense,
)

// packedLowerSize is n*(n+1)/2, the element count of a packed lower
// triangle.
func packedLowerSize(n int) int { return n * (n + 1) / 2 }

func packedIndex(i, j int) int { return i*(i+1)/2 + j }

func applyCholeskyDense(a SymmetricMatrix, epsilon float64) (*CholeskySolver, bool) {
	sqrtD, l, ok := choleskyDenseFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newCholeskySolver(a, sqrtD, l), true
}

// choleskyDenseFactorize runs the in-place Cholesky sweep on a scaled
// packed-lower copy of a. Unlike the LU helpers, the pivot test is
// d >= epsilon+pivotFloor, a one-sided comparison (not |d|), written in
// the negated !(d >= thresh) form so that a NaN pivot is rejected too.
func choleskyDenseFactorize(a SymmetricMatrix, epsilon float64) (sqrtD *Diagonal, l *LowerUnitriangular, ok bool) {
	n := a.Dims().Rows()
	s := a.EntryNormMax()
	if s == 0 {
		return nil, nil, false
	}

	buf := make([]float64, packedLowerSize(n))
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			buf[packedIndex(i, j)] = a.At(i, j) / s
		}
	}

	lBuilder := UnitLowerBuilder(n)
	sqrtDBuilder := ZeroDiagonalBuilder(n)
	thresh := epsilon + pivotFloor
	sqrtScale := math.Sqrt(s)

	lcol := make([]float64, n)
	for i := 0; i < n; i++ {
		d := buf[packedIndex(i, i)]
		if !(d >= thresh) {
			return nil, nil, false
		}
		sd := math.Sqrt(d)

		// lcol holds the Cholesky-factor column buf[k,i]/√d for the
		// rank-1 update; the unit-lower L entry is buf[k,i]/d.
		for k := i + 1; k < n; k++ {
			lcol[k] = buf[packedIndex(k, i)] / sd
			lBuilder.SetValue(k, i, lcol[k]/sd)
		}
		for k := i + 1; k < n; k++ {
			for j := i + 1; j <= k; j++ {
				buf[packedIndex(k, j)] -= lcol[k] * lcol[j]
			}
		}
		sqrtDBuilder.SetValue(i, sd*sqrtScale)
	}

	D := sqrtDBuilder.Build()
	if D.SignOfDeterminant() == 0 {
		return nil, nil, false
	}
	return D, lBuilder.Build(), true
}
