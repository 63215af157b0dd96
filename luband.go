// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// LUBanded is the singleton Executor for the banded, non-pivoting LU
// factorization A = LDU.
var LUBanded = NewExecutor[BandMatrix, *LUBandSolver](
	func(m BandMatrix) MatrixDimension { return m.BandDims().Dimension() },
	func(m BandMatrix) Acceptance {
		bd := m.BandDims()
		dims := bd.Dimension()
		if dims.Rows()*max(bd.Lower(), bd.Upper()) > maxElementCount {
			return rejected(TooManyElements, dims)
		}
		return accepted
	},
	applyLUBand,
)

func applyLUBand(a BandMatrix, epsilon float64) (*LUBandSolver, bool) {
	d, l, ut, ok := luBandFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newLUBandSolver(a, d, l, ut), true
}

// luBandFactorize is the banded analogue of luDenseFactorize: the same
// left-looking Doolittle sweep, but every trailing rank-1 update and
// every L/Uᵀ column/row write is clipped to the stored band, so the work
// buffer never grows fill-in outside it.
func luBandFactorize(a BandMatrix, epsilon float64) (d *Diagonal, l, ut *LowerUnitriangularBand, ok bool) {
	bd := a.BandDims()
	n := bd.Dimension().Rows()
	kl, ku := bd.Lower(), bd.Upper()

	s := a.EntryNormMax()
	if s == 0 {
		return nil, nil, nil, false
	}

	work := NewBandDense(n, n, kl, ku, nil)
	for i := 0; i < n; i++ {
		lo, hi := max(0, i-kl), min(n-1, i+ku)
		for j := lo; j <= hi; j++ {
			work.Set(i, j, a.At(i, j)/s)
		}
	}

	lBuilder := UnitLowerBandBuilder(n, kl)
	utBuilder := UnitLowerBandBuilder(n, ku)
	dBuilder := ZeroDiagonalBuilder(n)
	thresh := epsilon + pivotFloor

	for i := 0; i < n; i++ {
		pivot := work.At(i, i)
		if math.Abs(pivot) <= thresh {
			return nil, nil, nil, false
		}
		invPivot := 1 / pivot

		kEnd := min(n-1, i+kl)
		jEnd := min(n-1, i+ku)

		for k := i + 1; k <= kEnd; k++ {
			lBuilder.SetValue(k, i, work.At(k, i)*invPivot)
		}
		for j := i + 1; j <= jEnd; j++ {
			utBuilder.SetValue(j, i, work.At(i, j)*invPivot)
		}
		for k := i + 1; k <= kEnd; k++ {
			aki := work.At(k, i)
			if aki == 0 {
				continue
			}
			for j := i + 1; j <= jEnd; j++ {
				work.Set(k, j, work.At(k, j)-aki*work.At(i, j)*invPivot)
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
