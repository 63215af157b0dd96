// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// LU is the singleton Executor for the dense, non-pivoting LU
// factorization A = LDU. Accepts rejects only non-square matrices and
// matrices whose n*n element count would exceed maxElementCount; Apply
// returns no solver (not an error) when a pivot is too small relative to
// epsilon, since the caller may retry with LUPivoting.
var LU = NewExecutor[Matrix, *LUSolver](
	func(m Matrix) MatrixDimension { return m.Dims() },
	func(m Matrix) Acceptance {
		dims := m.Dims()
		if dims.Rows()*dims.Rows() > maxElementCount {
			return rejected(TooManyElements, dims)
		}
		return accepted
	},
	applyLUDense,
)

func applyLUDense(a Matrix, epsilon float64) (*LUSolver, bool) {
	d, l, ut, ok := luDenseFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newLUSolver(a, d, l, ut), true
}

// luDenseFactorize runs the in-place, left-looking Doolittle sweep on a
// scaled row-major copy of a, extracting D, L, and
// Uᵀ. It fails (ok == false) when the input matrix is the zero matrix, a
// pivot fails the |d| <= epsilon+pivotFloor test, or the rebuilt diagonal
// underflows/overflows to a zero sign after the scale factor is
// reintroduced.
func luDenseFactorize(a Matrix, epsilon float64) (d *Diagonal, l, ut *LowerUnitriangular, ok bool) {
	n := a.Dims().Rows()
	s := a.EntryNormMax()
	if s == 0 {
		return nil, nil, nil, false
	}

	buf := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			buf[i*n+j] = a.At(i, j) / s
		}
	}

	lBuilder := UnitLowerBuilder(n)
	utBuilder := UnitLowerBuilder(n)
	dBuilder := ZeroDiagonalBuilder(n)
	thresh := epsilon + pivotFloor

	for i := 0; i < n; i++ {
		pivot := buf[i*n+i]
		if math.Abs(pivot) <= thresh {
			return nil, nil, nil, false
		}
		invPivot := 1 / pivot

		for k := i + 1; k < n; k++ {
			lBuilder.SetValue(k, i, buf[k*n+i]*invPivot)
		}
		for j := i + 1; j < n; j++ {
			utBuilder.SetValue(j, i, buf[i*n+j]*invPivot)
		}
		for k := i + 1; k < n; k++ {
			aki := buf[k*n+i]
			if aki == 0 {
				continue
			}
			for j := i + 1; j < n; j++ {
				buf[k*n+j] -= aki * buf[i*n+j] * invPivot
			}
		}
		dBuilder.SetValue(i, pivot*s)
	}

	D := dBuilder.Build()
	if D.SignOfDeterminant() == 0 {
		return nil, nil, nil, false
	}
	return D, lBuilder.Build(), utBuilder.Build(), true
}
