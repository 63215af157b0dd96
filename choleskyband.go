// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// SymmetricBandMatrix is a BandMatrix that additionally carries the
// Symmetric marker, required by the band Cholesky and band modified-
// Cholesky executors.
type SymmetricBandMatrix interface {
	BandMatrix
	Symmetric() bool
}

// CholeskyBanded is the singleton Executor for the banded Cholesky
// factorization of a symmetric positive-definite band matrix.
var CholeskyBanded = NewExecutor[SymmetricBandMatrix, *CholeskySolver](
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
	applyCholeskyBand,
)

func applyCholeskyBand(a SymmetricBandMatrix, epsilon float64) (*CholeskySolver, bool) {
	sqrtD, l, ok := choleskyBandFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newCholeskyBandSolver(a, sqrtD, l), true
}

// choleskyBandFactorize is choleskyDenseFactorize confined to a single
// lower-band buffer of width b: the sub-column scaled at each step has
// length min(b, n-i-1) and the symmetric update touches only the b×b
// trailing band.
func choleskyBandFactorize(a SymmetricBandMatrix, epsilon float64) (sqrtD *Diagonal, l *LowerUnitriangularBand, ok bool) {
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
	sqrtDBuilder := ZeroDiagonalBuilder(n)
	thresh := epsilon + pivotFloor
	sqrtScale := math.Sqrt(s)
	lcol := make([]float64, n)

	for i := 0; i < n; i++ {
		d := work.At(i, i)
		if !(d >= thresh) {
			return nil, nil, false
		}
		sd := math.Sqrt(d)

		// lcol holds the Cholesky-factor column work[k,i]/√d for the
		// band update; the unit-lower L entry is work[k,i]/d.
		kEnd := min(n-1, i+b)
		for k := i + 1; k <= kEnd; k++ {
			lcol[k] = work.At(k, i) / sd
			lBuilder.SetValue(k, i, lcol[k]/sd)
		}
		for k := i + 1; k <= kEnd; k++ {
			for j := i + 1; j <= k; j++ {
				work.SetSym(k, j, work.At(k, j)-lcol[k]*lcol[j])
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
