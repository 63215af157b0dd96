// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// LowerUnitriangular is an immutable n×n lower-triangular matrix with an
// implicit unit diagonal, backed by blas64.Triangular storage.
type LowerUnitriangular struct {
	mat blas64.Triangular
}

// LowerUnitriangularBuilder accumulates the strictly-lower entries of a
// LowerUnitriangular before Build finalizes it.
type LowerUnitriangularBuilder struct {
	l    *LowerUnitriangular
	done bool
}

// UnitLowerBuilder returns a builder for an n×n lower-unitriangular matrix,
// initialized with zeros below the diagonal.
func UnitLowerBuilder(n int) *LowerUnitriangularBuilder {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	return &LowerUnitriangularBuilder{
		l: &LowerUnitriangular{blas64.Triangular{
			N: n, Stride: n, Data: make([]float64, n*n),
			Uplo: blas.Lower, Diag: blas.Unit,
		}},
	}
}

// SetValue sets the (r,c) entry, which must satisfy r > c.
func (b *LowerUnitriangularBuilder) SetValue(r, c int, v float64) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	if r <= c {
		panic("decomp: SetValue on a lower-unitriangular requires r > c")
	}
	if r < 0 || r >= b.l.mat.N || c < 0 {
		panic(ErrIndexOutOfRange)
	}
	b.l.mat.Data[r*b.l.mat.Stride+c] = v
}

// Build finalizes and returns the LowerUnitriangular.
func (b *LowerUnitriangularBuilder) Build() *LowerUnitriangular {
	b.done = true
	return b.l
}

// Dims returns the matrix dimension.
func (l *LowerUnitriangular) Dims() MatrixDimension {
	return NewMatrixDimension(l.mat.N, l.mat.N)
}

// N returns the dimension.
func (l *LowerUnitriangular) N() int { return l.mat.N }

// At returns the (i,j) entry: 1 on the diagonal, 0 above it.
func (l *LowerUnitriangular) At(i, j int) float64 {
	if i < 0 || i >= l.mat.N || j < 0 || j >= l.mat.N {
		panic(ErrIndexOutOfRange)
	}
	if i == j {
		return 1
	}
	if i < j {
		return 0
	}
	return l.mat.Data[i*l.mat.Stride+j]
}

// MulVec computes dst = L·src.
func (l *LowerUnitriangular) MulVec(dst, src []float64) {
	n := l.mat.N
	for i := n - 1; i >= 0; i-- {
		s := src[i]
		for j := 0; j < i; j++ {
			s += l.mat.Data[i*l.mat.Stride+j] * src[j]
		}
		dst[i] = s
	}
}

// MulVecTrans computes dst = Lᵀ·src.
func (l *LowerUnitriangular) MulVecTrans(dst, src []float64) {
	n := l.mat.N
	for j := 0; j < n; j++ {
		s := src[j]
		for i := j + 1; i < n; i++ {
			s += l.mat.Data[i*l.mat.Stride+j] * src[i]
		}
		dst[j] = s
	}
}

// T returns the (implicit) transpose, an upper-unitriangular view.
func (l *LowerUnitriangular) T() Matrix { return transposeUnitriangular{l} }

type transposeUnitriangular struct{ l *LowerUnitriangular }

func (t transposeUnitriangular) Dims() MatrixDimension { return t.l.Dims() }
func (t transposeUnitriangular) At(i, j int) float64   { return t.l.At(j, i) }
func (t transposeUnitriangular) EntryNormMax() float64 { return 1 }

// Inverse returns L⁻¹ as an operator evaluated lazily via forward/back
// substitution on L's own stored entries rather than materializing an
// explicit dense inverse.
func (l *LowerUnitriangular) Inverse() InverseMatrix { return lowerUnitriangularInverse{l} }

type lowerUnitriangularInverse struct{ l *LowerUnitriangular }

func (inv lowerUnitriangularInverse) Dims() MatrixDimension { return inv.l.Dims() }

// MulVec solves L·dst = src by forward substitution (unit diagonal).
func (inv lowerUnitriangularInverse) MulVec(dst, src []float64) {
	l := inv.l
	n := l.mat.N
	for i := 0; i < n; i++ {
		s := src[i]
		for j := 0; j < i; j++ {
			s -= l.mat.Data[i*l.mat.Stride+j] * dst[j]
		}
		dst[i] = s
	}
}

// MulVecTrans solves Lᵀ·dst = src by back substitution (unit diagonal).
func (inv lowerUnitriangularInverse) MulVecTrans(dst, src []float64) {
	l := inv.l
	n := l.mat.N
	for i := n - 1; i >= 0; i-- {
		s := src[i]
		for j := i + 1; j < n; j++ {
			s -= l.mat.Data[j*l.mat.Stride+i] * dst[j]
		}
		dst[i] = s
	}
}

// LowerUnitriangularBand is the band-packed analogue of LowerUnitriangular,
// used by the band LU and band modified-Cholesky helpers. Only the kl
// sub-diagonals below the implicit unit diagonal are stored.
type LowerUnitriangularBand struct {
	n, kl int
	// data[i] holds row i's min(kl, i) stored sub-diagonal entries, the
	// last being the (i, i-1) entry and data[i][0] the (i, i-len(data[i]))
	// entry.
	data [][]float64
}

// LowerUnitriangularBandBuilder accumulates entries for a
// LowerUnitriangularBand.
type LowerUnitriangularBandBuilder struct {
	l    *LowerUnitriangularBand
	done bool
}

// UnitLowerBandBuilder returns a builder for an n×n lower-unitriangular
// band matrix with kl sub-diagonals.
func UnitLowerBandBuilder(n, kl int) *LowerUnitriangularBandBuilder {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	if kl < 0 {
		panic(ErrNegativeBandwidth)
	}
	data := make([][]float64, n)
	for i := range data {
		w := min(kl, i)
		data[i] = make([]float64, w)
	}
	return &LowerUnitriangularBandBuilder{l: &LowerUnitriangularBand{n: n, kl: kl, data: data}}
}

// SetValue sets the (r,c) entry, which must satisfy 0 < r-c <= kl.
func (b *LowerUnitriangularBandBuilder) SetValue(r, c int, v float64) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	d := r - c
	if d <= 0 || d > b.l.kl {
		panic("decomp: SetValue out of band on a lower-unitriangular band")
	}
	row := b.l.data[r]
	row[len(row)-d] = v
}

// Build finalizes and returns the LowerUnitriangularBand.
func (b *LowerUnitriangularBandBuilder) Build() *LowerUnitriangularBand {
	b.done = true
	return b.l
}

// Dims returns the matrix dimension.
func (l *LowerUnitriangularBand) Dims() MatrixDimension {
	return NewMatrixDimension(l.n, l.n)
}

// At returns the (i,j) entry.
func (l *LowerUnitriangularBand) At(i, j int) float64 {
	if i < 0 || i >= l.n || j < 0 || j >= l.n {
		panic(ErrIndexOutOfRange)
	}
	if i == j {
		return 1
	}
	d := i - j
	if d <= 0 || d > l.kl {
		return 0
	}
	row := l.data[i]
	return row[len(row)-d]
}

// MulVec computes dst = L·src.
func (l *LowerUnitriangularBand) MulVec(dst, src []float64) {
	for i := 0; i < l.n; i++ {
		s := src[i]
		row := l.data[i]
		lo := max(0, i-l.kl)
		for j := lo; j < i; j++ {
			s += row[len(row)-(i-j)] * src[j]
		}
		dst[i] = s
	}
}

// MulVecTrans computes dst = Lᵀ·src.
func (l *LowerUnitriangularBand) MulVecTrans(dst, src []float64) {
	for j := 0; j < l.n; j++ {
		s := src[j]
		hi := min(l.n, j+l.kl+1)
		for i := j + 1; i < hi; i++ {
			row := l.data[i]
			s += row[len(row)-(i-j)] * src[i]
		}
		dst[j] = s
	}
}

// Inverse returns L⁻¹ evaluated lazily via banded forward/back
// substitution.
func (l *LowerUnitriangularBand) Inverse() InverseMatrix { return lowerUnitriangularBandInverse{l} }

type lowerUnitriangularBandInverse struct{ l *LowerUnitriangularBand }

func (inv lowerUnitriangularBandInverse) Dims() MatrixDimension { return inv.l.Dims() }

func (inv lowerUnitriangularBandInverse) MulVec(dst, src []float64) {
	l := inv.l
	for i := 0; i < l.n; i++ {
		s := src[i]
		row := l.data[i]
		lo := max(0, i-l.kl)
		for j := lo; j < i; j++ {
			s -= row[len(row)-(i-j)] * dst[j]
		}
		dst[i] = s
	}
}

func (inv lowerUnitriangularBandInverse) MulVecTrans(dst, src []float64) {
	l := inv.l
	for i := l.n - 1; i >= 0; i-- {
		s := src[i]
		hi := min(l.n, i+l.kl+1)
		for j := i + 1; j < hi; j++ {
			row := l.data[j]
			s -= row[len(row)-(j-i)] * dst[j]
		}
		dst[i] = s
	}
}
