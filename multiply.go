// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// InverseMatrix is a matrix known only through its action on a vector,
// not through an explicitly materialized dense inverse.
// Every InverseMatrix built by this package evaluates MulVec/MulVecTrans
// lazily as a chain of triangular solves and permutation applications,
// never allocating an n×n inverse buffer.
type InverseMatrix interface {
	Dims() MatrixDimension
	// MulVec computes dst = A·src for the (conceptual) matrix A this
	// operator represents.
	MulVec(dst, src []float64)
	// MulVecTrans computes dst = Aᵀ·src.
	MulVecTrans(dst, src []float64)
}

// composite chains several InverseMatrix factors so that
// composite.MulVec(dst, src) == factors[0].MulVec(factors[1].MulVec(...factors[k-1].MulVec(src))),
// i.e. the factor list reads left-to-right as the product F1·F2·...·Fk
// and factors are applied right-to-left, last factor first.
type composite struct {
	dim     MatrixDimension
	factors []InverseMatrix
}

// newComposite builds a composite operator equal to the product
// factors[0]·factors[1]·...·factors[k-1].
func newComposite(dim MatrixDimension, factors ...InverseMatrix) *composite {
	return &composite{dim: dim, factors: factors}
}

func (c *composite) Dims() MatrixDimension { return c.dim }

func (c *composite) MulVec(dst, src []float64) {
	n := c.dim.Rows()
	cur := make([]float64, n)
	copy(cur, src)
	next := make([]float64, n)
	for i := len(c.factors) - 1; i >= 0; i-- {
		c.factors[i].MulVec(next, cur)
		cur, next = next, cur
	}
	copy(dst, cur)
}

func (c *composite) MulVecTrans(dst, src []float64) {
	n := c.dim.Rows()
	cur := make([]float64, n)
	copy(cur, src)
	next := make([]float64, n)
	for i := 0; i < len(c.factors); i++ {
		c.factors[i].MulVecTrans(next, cur)
		cur, next = next, cur
	}
	copy(dst, cur)
}

// transposed wraps an InverseMatrix so that its MulVec/MulVecTrans are
// swapped, i.e. it represents the transpose of the wrapped operator.
type transposed struct{ inner InverseMatrix }

func (t transposed) Dims() MatrixDimension          { return t.inner.Dims() }
func (t transposed) MulVec(dst, src []float64)      { t.inner.MulVecTrans(dst, src) }
func (t transposed) MulVecTrans(dst, src []float64) { t.inner.MulVec(dst, src) }

// symmetricComposite is a composite whose factor chain is known to equal
// its own transpose (outer·inner·outerᵀ with symmetric inner). It carries
// the Symmetric marker so that inverses produced by the symmetric
// factorizations declare their symmetry the way their targets do.
type symmetricComposite struct{ *composite }

// Symmetric reports that the operator equals its own transpose.
func (symmetricComposite) Symmetric() bool { return true }

// symmetricSquare builds outer·inner·outerᵀ, with inner symmetric, as a
// single operator carrying the Symmetric marker. It is the combinator the
// Cholesky-family and modified-Cholesky-family solvers use to assemble
// their final inverse.
func symmetricSquare(dim MatrixDimension, outer, inner InverseMatrix) symmetricComposite {
	return symmetricComposite{newComposite(dim, outer, inner, transposed{outer})}
}

// symmetricPair builds outer·outerᵀ as a single operator carrying the
// Symmetric marker.
func symmetricPair(dim MatrixDimension, outer InverseMatrix) symmetricComposite {
	return symmetricComposite{newComposite(dim, outer, transposed{outer})}
}

// MulVec is a convenience for a single vector application of an
// InverseMatrix, allocating its own destination slice.
func MulVec(a InverseMatrix) func(src []float64) []float64 {
	return func(src []float64) []float64 {
		dst := make([]float64, a.Dims().Rows())
		a.MulVec(dst, src)
		return dst
	}
}
