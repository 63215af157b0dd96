// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// BandMatrix is the read-only contract the band helpers need from a
// banded matrix container, mirroring Matrix but keyed on a BandDimension.
type BandMatrix interface {
	At(i, j int) float64
	BandDims() BandDimension
	EntryNormMax() float64
}

// BandDense is a general banded matrix, packed in the row-major layout
// used by gonum's mat.BandDense: row i occupies KL+KU+1 cells, with entry
// (i,j) at offset KL+j-i within the row (so the diagonal at offset KL) and
// out-of-band cells never accessed.
type BandDense struct {
	mat blas64.Band
}

// NewBandDense creates an r×c band matrix with lower bandwidth kl and
// upper bandwidth ku. If data is nil a new zeroed slice is allocated;
// otherwise it must have length min(r, c+kl)*(kl+ku+1).
func NewBandDense(r, c, kl, ku int, data []float64) *BandDense {
	if r <= 0 || c <= 0 {
		panic(ErrNonPositiveDimension)
	}
	if kl < 0 || ku < 0 {
		panic(ErrNegativeBandwidth)
	}
	stride := kl + ku + 1
	n := min(r, c+kl)
	if data == nil {
		data = make([]float64, n*stride)
	} else if len(data) != n*stride {
		panic(ErrShape)
	}
	return &BandDense{blas64.Band{Rows: r, Cols: c, KL: kl, KU: ku, Stride: stride, Data: data}}
}

// BandDims returns the band dimension.
func (b *BandDense) BandDims() BandDimension {
	return NewBandDimension(NewMatrixDimension(b.mat.Rows, b.mat.Cols), b.mat.KL, b.mat.KU)
}

// At returns the value at row i, column j; zero if (i,j) is outside the
// stored band.
func (b *BandDense) At(i, j int) float64 {
	if i < 0 || i >= b.mat.Rows || j < 0 || j >= b.mat.Cols {
		panic(ErrIndexOutOfRange)
	}
	if j < i-b.mat.KL || j > i+b.mat.KU {
		return 0
	}
	return b.mat.Data[i*b.mat.Stride+(b.mat.KL+j-i)]
}

// Set sets the value at row i, column j, which must lie within the band.
func (b *BandDense) Set(i, j int, v float64) {
	if i < 0 || i >= b.mat.Rows || j < 0 || j >= b.mat.Cols {
		panic(ErrIndexOutOfRange)
	}
	if j < i-b.mat.KL || j > i+b.mat.KU {
		panic(ErrIndexOutOfRange)
	}
	b.mat.Data[i*b.mat.Stride+(b.mat.KL+j-i)] = v
}

// EntryNormMax returns the maximum absolute value among the stored band
// entries.
func (b *BandDense) EntryNormMax() float64 {
	n := min(b.mat.Rows, b.mat.Cols+b.mat.KL)
	var m float64
	for i := 0; i < n; i++ {
		lo := max(0, b.mat.KL-i)
		hi := min(b.mat.Stride, b.mat.KL+b.mat.Cols-i)
		for _, v := range b.mat.Data[i*b.mat.Stride+lo : i*b.mat.Stride+hi] {
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
}

// RawBand returns the underlying blas64.Band storage.
func (b *BandDense) RawBand() blas64.Band { return b.mat }

// SymBandDense is a symmetric banded matrix, storing only the diagonal
// and the upper bandwidth super-diagonals (mirroring gonum's
// blas64.SymmetricBand convention).
type SymBandDense struct {
	mat blas64.SymmetricBand
}

// NewSymBandDense creates an n×n symmetric band matrix with k super- (and,
// by symmetry, sub-) diagonals stored.
func NewSymBandDense(n, k int, data []float64) *SymBandDense {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	if k < 0 {
		panic(ErrNegativeBandwidth)
	}
	stride := k + 1
	if data == nil {
		data = make([]float64, n*stride)
	} else if len(data) != n*stride {
		panic(ErrShape)
	}
	return &SymBandDense{blas64.SymmetricBand{N: n, K: k, Stride: stride, Data: data, Uplo: blas.Upper}}
}

// BandDims returns the (symmetric) band dimension.
func (s *SymBandDense) BandDims() BandDimension {
	return NewBandDimension(NewMatrixDimension(s.mat.N, s.mat.N), s.mat.K, s.mat.K)
}

// Symmetric reports that the matrix declares A = Aᵀ.
func (s *SymBandDense) Symmetric() bool { return true }

// At returns the value at row i, column j; zero outside the band.
func (s *SymBandDense) At(i, j int) float64 {
	if i < 0 || i >= s.mat.N || j < 0 || j >= s.mat.N {
		panic(ErrIndexOutOfRange)
	}
	if i > j {
		i, j = j, i
	}
	if j-i > s.mat.K {
		return 0
	}
	return s.mat.Data[i*s.mat.Stride+(j-i)]
}

// SetSym sets the (i,j) and (j,i) entries, which must lie within the band.
func (s *SymBandDense) SetSym(i, j int, v float64) {
	if i < 0 || i >= s.mat.N || j < 0 || j >= s.mat.N {
		panic(ErrIndexOutOfRange)
	}
	if i > j {
		i, j = j, i
	}
	if j-i > s.mat.K {
		panic(ErrIndexOutOfRange)
	}
	s.mat.Data[i*s.mat.Stride+(j-i)] = v
}

// EntryNormMax returns the maximum absolute value among the stored band
// entries.
func (s *SymBandDense) EntryNormMax() float64 {
	var m float64
	for i := 0; i < s.mat.N; i++ {
		hi := min(s.mat.Stride, s.mat.N-i)
		for _, v := range s.mat.Data[i*s.mat.Stride : i*s.mat.Stride+hi] {
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
}

// RawSymBand returns the underlying blas64.SymmetricBand storage.
func (s *SymBandDense) RawSymBand() blas64.SymmetricBand { return s.mat }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
