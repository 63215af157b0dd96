// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// bunchKaufmanAlpha is the Bunch–Kaufman pivoting threshold
// (1+√17)/8 ≈ 0.6403882032022076, which balances element growth between
// consecutive 1×1 and 2×2 pivots.
var bunchKaufmanAlpha = (1 + math.Sqrt(17)) / 8

// ModifiedCholeskyPivoting is the singleton Executor for the dense
// modified-Cholesky factorization of a symmetric indefinite matrix with
// Bunch–Kaufman pivoting, A = P·L·M·Lᵀ·Pᵀ.
var ModifiedCholeskyPivoting = NewExecutor[SymmetricMatrix, *ModifiedCholeskyPivotingSolver](
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
	applyBunchKaufmanDense,
)

func applyBunchKaufmanDense(a SymmetricMatrix, epsilon float64) (*ModifiedCholeskyPivotingSolver, bool) {
	l, m, p, ok := bunchKaufmanDenseFactorize(a, epsilon)
	if !ok {
		return nil, false
	}
	return newModifiedCholeskyPivotingSolver(a, l, m, p), true
}

// bunchKaufmanDenseFactorize runs the Bunch–Kaufman pivoted LMLᵀ sweep on
// a scaled, symmetric dense work buffer (kept fully mirrored rather than
// packed, which makes the row/column pivot swaps a direct operation at
// the cost of storing both triangles of an already-symmetric buffer). At
// each step the four-way Bunch–Kaufman test chooses between a 1×1 pivot
// on the current row and a 2×2 pivot spanning the current row and the
// next, then performs the corresponding rank-1 or rank-2 update on the
// trailing submatrix.
func bunchKaufmanDenseFactorize(a SymmetricMatrix, epsilon float64) (l *LowerUnitriangular, m *Block2, p *Permutation, ok bool) {
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

	// Multipliers accumulate in lbuf rather than going straight into a
	// builder: a pivot swap at a later step must exchange the already
	// computed L rows of the two pivot rows along with their remaining
	// entries, so L can only be extracted once the sweep is done.
	lbuf := make([]float64, n*n)
	mBuilder := ZeroBlock2Builder(n)
	permBuilder := UnitPermutationBuilder(n)
	thresh := epsilon + pivotFloor

	swapRowCol := func(x, y int) {
		if x == y {
			return
		}
		for c := 0; c < n; c++ {
			buf[x*n+c], buf[y*n+c] = buf[y*n+c], buf[x*n+c]
			lbuf[x*n+c], lbuf[y*n+c] = lbuf[y*n+c], lbuf[x*n+c]
		}
		for r := 0; r < n; r++ {
			buf[r*n+x], buf[r*n+y] = buf[r*n+y], buf[r*n+x]
		}
	}

	eliminate1x1 := func(i int) bool {
		d := buf[i*n+i]
		if math.Abs(d) <= thresh {
			return false
		}
		invD := 1 / d
		for k := i + 1; k < n; k++ {
			lbuf[k*n+i] = buf[k*n+i] * invD
		}
		for k := i + 1; k < n; k++ {
			aki := buf[k*n+i]
			if aki == 0 {
				continue
			}
			for j := i + 1; j <= k; j++ {
				v := buf[k*n+j] - aki*buf[i*n+j]*invD
				buf[k*n+j] = v
				buf[j*n+k] = v
			}
		}
		mBuilder.SetDiag(i, d*s)
		return true
	}

	eliminate2x2 := func(i int) bool {
		a00, a01, a11 := buf[i*n+i], buf[(i+1)*n+i], buf[(i+1)*n+(i+1)]
		det0 := a00*a11 - a01*a01
		if det0 == 0 || !isFiniteFloat(det0) {
			return false
		}
		inv00, inv11, inv01 := a11/det0, a00/det0, -a01/det0

		for k := i + 2; k < n; k++ {
			c0, c1 := buf[k*n+i], buf[k*n+(i+1)]
			lbuf[k*n+i] = c0*inv00 + c1*inv01
			lbuf[k*n+(i+1)] = c0*inv01 + c1*inv11
		}
		for k := i + 2; k < n; k++ {
			lk0, lk1 := lbuf[k*n+i], lbuf[k*n+(i+1)]
			for j := i + 2; j <= k; j++ {
				cj0, cj1 := buf[j*n+i], buf[j*n+(i+1)]
				v := buf[k*n+j] - (lk0*cj0 + lk1*cj1)
				buf[k*n+j] = v
				buf[j*n+k] = v
			}
		}
		mBuilder.SetDiag(i, a00*s)
		mBuilder.SetDiag(i+1, a11*s)
		mBuilder.SetSub(i, a01*s)
		return true
	}

	for i := 0; i < n; {
		if i == n-1 {
			if !eliminate1x1(i) {
				return nil, nil, nil, false
			}
			i++
			continue
		}

		a := math.Abs(buf[i*n+i])
		lambda1, r := 0.0, i+1
		for k := i + 1; k < n; k++ {
			if v := math.Abs(buf[k*n+i]); v > lambda1 {
				lambda1, r = v, k
			}
		}

		if lambda1 == 0 {
			if a <= thresh {
				return nil, nil, nil, false
			}
			if !eliminate1x1(i) {
				return nil, nil, nil, false
			}
			i++
			continue
		}
		if a <= thresh && lambda1 <= thresh {
			return nil, nil, nil, false
		}
		if a >= bunchKaufmanAlpha*lambda1 {
			if !eliminate1x1(i) {
				return nil, nil, nil, false
			}
			i++
			continue
		}

		lambdaR := 0.0
		for k := i; k < n; k++ {
			if k == r {
				continue
			}
			if v := math.Abs(buf[r*n+k]); v > lambdaR {
				lambdaR = v
			}
		}
		if a*lambdaR >= bunchKaufmanAlpha*lambda1*lambda1 {
			if !eliminate1x1(i) {
				return nil, nil, nil, false
			}
			i++
			continue
		}
		if math.Abs(buf[r*n+r]) > bunchKaufmanAlpha*lambdaR {
			swapRowCol(i, r)
			permBuilder.SwapColumns(i, r)
			if !eliminate1x1(i) {
				return nil, nil, nil, false
			}
			i++
			continue
		}

		if i+1 != r {
			swapRowCol(i+1, r)
			permBuilder.SwapColumns(i+1, r)
		}
		if !eliminate2x2(i) {
			return nil, nil, nil, false
		}
		i += 2
	}

	lBuilder := UnitLowerBuilder(n)
	for k := 1; k < n; k++ {
		for c := 0; c < k; c++ {
			if v := lbuf[k*n+c]; v != 0 {
				lBuilder.SetValue(k, c, v)
			}
		}
	}

	M := mBuilder.Build()
	if _, det, okM := M.InverseAndDeterminant(); !okM || det.Sign == 0 {
		return nil, nil, nil, false
	}
	return lBuilder.Build(), M, permBuilder.Build(), true
}
