// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

// Diagonal is an immutable n×n diagonal matrix backed by a blas64.Vector.
type Diagonal struct {
	mat blas64.Vector
	n   int
}

// DiagonalBuilder accumulates the entries of a Diagonal before it is
// finalized with Build.
type DiagonalBuilder struct {
	d    *Diagonal
	done bool
}

// ZeroDiagonalBuilder returns a builder for an n×n diagonal matrix
// initialized to all zeros.
func ZeroDiagonalBuilder(n int) *DiagonalBuilder {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	return &DiagonalBuilder{d: &Diagonal{mat: blas64.Vector{Data: make([]float64, n), Inc: 1}, n: n}}
}

// SetValue sets entry i of the diagonal.
func (b *DiagonalBuilder) SetValue(i int, v float64) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	if i < 0 || i >= b.d.n {
		panic(ErrIndexOutOfRange)
	}
	b.d.mat.Data[i] = v
}

// Build finalizes and returns the Diagonal. The builder must not be reused
// afterwards.
func (b *DiagonalBuilder) Build() *Diagonal {
	b.done = true
	return b.d
}

// Dims returns the matrix dimension.
func (d *Diagonal) Dims() MatrixDimension { return NewMatrixDimension(d.n, d.n) }

// At returns the (i,j) entry; zero off the diagonal.
func (d *Diagonal) At(i, j int) float64 {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		panic(ErrIndexOutOfRange)
	}
	if i != j {
		return 0
	}
	return d.mat.Data[i]
}

// Value returns the i-th diagonal entry directly.
func (d *Diagonal) Value(i int) float64 {
	if i < 0 || i >= d.n {
		panic(ErrIndexOutOfRange)
	}
	return d.mat.Data[i]
}

// N returns the dimension.
func (d *Diagonal) N() int { return d.n }

// SignOfDeterminant returns the sign of the product of the diagonal
// entries: -1, 0, or +1.
func (d *Diagonal) SignOfDeterminant() int {
	sign := 1
	for _, v := range d.mat.Data {
		if v == 0 {
			return 0
		}
		if v < 0 {
			sign = -sign
		}
	}
	return sign
}

// LogAbsDeterminant returns the log of the absolute value of the product
// of the diagonal entries, accumulated overflow-safely.
func (d *Diagonal) LogAbsDeterminant() float64 {
	acc := newLogMagnitudeAccumulator()
	for _, v := range d.mat.Data {
		if v == 0 {
			return math.Inf(-1)
		}
		acc.accumulate(math.Abs(v), 1)
	}
	return acc.logAbs()
}

// Inverse returns the diagonal matrix whose entries are the reciprocals of
// this one's. Panics if any entry is zero; callers must check
// SignOfDeterminant first.
func (d *Diagonal) Inverse() *Diagonal {
	b := ZeroDiagonalBuilder(d.n)
	for i, v := range d.mat.Data {
		if v == 0 {
			panic("decomp: inverse of singular diagonal")
		}
		b.SetValue(i, 1/v)
	}
	return b.Build()
}

// MulVec computes dst = D·src.
func (d *Diagonal) MulVec(dst, src []float64) {
	for i, v := range d.mat.Data {
		dst[i] = v * src[i]
	}
}

// MulVecTrans is identical to MulVec: a diagonal matrix is symmetric.
func (d *Diagonal) MulVecTrans(dst, src []float64) { d.MulVec(dst, src) }

// SqrtDiagonal is the √D factor produced by the Cholesky-family helpers.
// It is a Diagonal whose entries are guaranteed non-negative.
type SqrtDiagonal = Diagonal
