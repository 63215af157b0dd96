// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// maxElementCount bounds the number of float64 entries any packed buffer
// in this package may require. Requests beyond it are rejected before any
// allocation rather than left to run out of memory partway through a
// factorization.
const maxElementCount = 1<<31 - 1

// MatrixDimension is an immutable, validated (rows, cols) pair.
type MatrixDimension struct {
	rows, cols int
}

// NewMatrixDimension validates and returns a MatrixDimension. It panics if
// either rows or cols is not positive.
func NewMatrixDimension(rows, cols int) MatrixDimension {
	if rows <= 0 || cols <= 0 {
		panic(ErrNonPositiveDimension)
	}
	return MatrixDimension{rows: rows, cols: cols}
}

// Rows returns the number of rows.
func (d MatrixDimension) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d MatrixDimension) Cols() int { return d.cols }

// IsSquare reports whether rows equals cols.
func (d MatrixDimension) IsSquare() bool { return d.rows == d.cols }

// BandDimension sizes a band-packed matrix: its overall shape plus the
// number of sub- and super-diagonals actually stored.
type BandDimension struct {
	dim          MatrixDimension
	lower, upper int
}

// NewBandDimension validates and returns a BandDimension. It panics if
// lower or upper is negative.
func NewBandDimension(dim MatrixDimension, lower, upper int) BandDimension {
	if lower < 0 || upper < 0 {
		panic(ErrNegativeBandwidth)
	}
	return BandDimension{dim: dim, lower: lower, upper: upper}
}

// Dimension returns the overall matrix shape.
func (b BandDimension) Dimension() MatrixDimension { return b.dim }

// Lower returns the number of sub-diagonals stored.
func (b BandDimension) Lower() int { return b.lower }

// Upper returns the number of super-diagonals stored.
func (b BandDimension) Upper() int { return b.upper }

// IsSymmetric reports whether the matrix is square and lower == upper.
func (b BandDimension) IsSymmetric() bool {
	return b.dim.IsSquare() && b.lower == b.upper
}
