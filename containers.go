// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Matrix is the read-only contract the factorization core needs from a
// matrix container: entry access, shape, and the scaling norm used by the
// elimination pre-pass.
type Matrix interface {
	At(i, j int) float64
	Dims() MatrixDimension
	// EntryNormMax returns the maximum absolute value among the entries
	// of the matrix.
	EntryNormMax() float64
}

// SymmetricMatrix is implemented by matrices that carry the capability
// marker declaring A = Aᵀ.
type SymmetricMatrix interface {
	Matrix
	Symmetric() bool
}

// Dense is a general dense matrix stored in row-major order.
type Dense struct {
	mat blas64.General
}

// NewDense creates an r×c dense matrix. If data is nil, a new zeroed slice
// is allocated; otherwise len(data) must equal r*c.
func NewDense(r, c int, data []float64) *Dense {
	if r <= 0 || c <= 0 {
		panic(ErrNonPositiveDimension)
	}
	if data == nil {
		data = make([]float64, r*c)
	} else if len(data) != r*c {
		panic(ErrShape)
	}
	return &Dense{blas64.General{Rows: r, Cols: c, Stride: c, Data: data}}
}

// Dims returns the matrix dimension.
func (d *Dense) Dims() MatrixDimension { return NewMatrixDimension(d.mat.Rows, d.mat.Cols) }

// At returns the value at row i, column j.
func (d *Dense) At(i, j int) float64 {
	if i < 0 || i >= d.mat.Rows || j < 0 || j >= d.mat.Cols {
		panic(ErrIndexOutOfRange)
	}
	return d.mat.Data[i*d.mat.Stride+j]
}

// Set sets the value at row i, column j.
func (d *Dense) Set(i, j int, v float64) {
	if i < 0 || i >= d.mat.Rows || j < 0 || j >= d.mat.Cols {
		panic(ErrIndexOutOfRange)
	}
	d.mat.Data[i*d.mat.Stride+j] = v
}

// EntryNormMax returns the maximum absolute entry value.
func (d *Dense) EntryNormMax() float64 {
	var m float64
	for i := 0; i < d.mat.Rows; i++ {
		row := d.mat.Data[i*d.mat.Stride : i*d.mat.Stride+d.mat.Cols]
		for _, v := range row {
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
}

// RawGeneral returns the underlying blas64.General storage.
func (d *Dense) RawGeneral() blas64.General { return d.mat }

// SymDense is a symmetric dense matrix, stored as its upper triangle.
type SymDense struct {
	mat blas64.Symmetric
}

// NewSymDense creates an n×n symmetric matrix from the given upper-triangle
// row-major data (length n*n; only the upper triangle is read/written).
func NewSymDense(n int, data []float64) *SymDense {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	if data == nil {
		data = make([]float64, n*n)
	} else if len(data) != n*n {
		panic(ErrShape)
	}
	return &SymDense{blas64.Symmetric{N: n, Stride: n, Data: data, Uplo: blas.Upper}}
}

// Dims returns the matrix dimension.
func (s *SymDense) Dims() MatrixDimension { return NewMatrixDimension(s.mat.N, s.mat.N) }

// Symmetric reports that the matrix declares A = Aᵀ.
func (s *SymDense) Symmetric() bool { return true }

// At returns the value at row i, column j, reflecting across the diagonal
// as needed since only the upper triangle is stored.
func (s *SymDense) At(i, j int) float64 {
	if i < 0 || i >= s.mat.N || j < 0 || j >= s.mat.N {
		panic(ErrIndexOutOfRange)
	}
	if i > j {
		i, j = j, i
	}
	return s.mat.Data[i*s.mat.Stride+j]
}

// SetSym sets both (i,j) and (j,i) to v.
func (s *SymDense) SetSym(i, j int, v float64) {
	if i < 0 || i >= s.mat.N || j < 0 || j >= s.mat.N {
		panic(ErrIndexOutOfRange)
	}
	if i > j {
		i, j = j, i
	}
	s.mat.Data[i*s.mat.Stride+j] = v
}

// EntryNormMax returns the maximum absolute entry value over the full
// (implicitly mirrored) matrix.
func (s *SymDense) EntryNormMax() float64 {
	var m float64
	for i := 0; i < s.mat.N; i++ {
		for j := i; j < s.mat.N; j++ {
			if a := math.Abs(s.mat.Data[i*s.mat.Stride+j]); a > m {
				m = a
			}
		}
	}
	return m
}

// RawSymmetric returns the underlying blas64.Symmetric storage.
func (s *SymDense) RawSymmetric() blas64.Symmetric { return s.mat }
