// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// LUPivoting is the singleton Executor for the dense LU factorization
// with partial row pivoting, A = PLDU.
var LUPivoting = NewExecutor[Matrix, *LUPivotingSolver](
	func(m Matrix) MatrixDimension { return m.Dims() },
	func(m Matrix) Acceptance {
		dims := m.Dims()
		if dims.Rows()*dims.Rows() > maxElementCount {
			return rejected(TooManyElements, dims)
		}
		return accepted
	},
	applyLUPivotingDense,
)

func applyLUPivotingDense(a Matrix, epsilon float64) (*LUPivotingSolver, bool) {
	d, l, ut, p, ok := luPivotingDenseFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newLUPivotingSolver(a, d, l, ut, p), true
}

// luPivotingDenseFactorize is luDenseFactorize plus a partial-pivot
// search before each column is eliminated: the largest remaining entry in
// column i (at or below row i) is swapped onto the diagonal, and the swap
// is recorded as a column swap in a PermutationBuilder so that the final
// Permutation P satisfies A = PLDU. The L multipliers are kept in the
// eliminated part of the work buffer so that later row swaps carry them
// along; L is extracted only after the sweep completes.
func luPivotingDenseFactorize(a Matrix, epsilon float64) (d *Diagonal, l, ut *LowerUnitriangular, p *Permutation, ok bool) {
	n := a.Dims().Rows()
	s := a.EntryNormMax()
	if s == 0 {
		return nil, nil, nil, nil, false
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
	permBuilder := UnitPermutationBuilder(n)
	thresh := epsilon + pivotFloor

	for i := 0; i < n; i++ {
		maxRow, maxAbs := i, math.Abs(buf[i*n+i])
		for j := i + 1; j < n; j++ {
			if v := math.Abs(buf[j*n+i]); v > maxAbs {
				maxRow, maxAbs = j, v
			}
		}
		if maxRow != i {
			swapRows(buf, n, i, maxRow)
			permBuilder.SwapColumns(i, maxRow)
		}

		pivot := buf[i*n+i]
		if math.Abs(pivot) <= thresh {
			return nil, nil, nil, nil, false
		}
		invPivot := 1 / pivot

		for j := i + 1; j < n; j++ {
			utBuilder.SetValue(j, i, buf[i*n+j]*invPivot)
		}
		for k := i + 1; k < n; k++ {
			aki := buf[k*n+i]
			if aki != 0 {
				for j := i + 1; j < n; j++ {
					buf[k*n+j] -= aki * buf[i*n+j] * invPivot
				}
			}
			buf[k*n+i] = aki * invPivot
		}
		dBuilder.SetValue(i, pivot*s)
	}

	for k := 1; k < n; k++ {
		for c := 0; c < k; c++ {
			lBuilder.SetValue(k, c, buf[k*n+c])
		}
	}

	D := dBuilder.Build()
	if D.SignOfDeterminant() == 0 {
		return nil, nil, nil, nil, false
	}
	return D, lBuilder.Build(), utBuilder.Build(), permBuilder.Build(), true
}

func swapRows(buf []float64, n, i, j int) {
	for c := 0; c < n; c++ {
		buf[i*n+c], buf[j*n+c] = buf[j*n+c], buf[i*n+c]
	}
}
