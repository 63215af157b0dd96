// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// scaleOp is a trivial InverseMatrix that scales every component by a
// fixed factor, used to exercise composite/transposed without depending
// on the real triangular/diagonal/permutation types.
type scaleOp struct {
	dim   MatrixDimension
	scale float64
}

func (s scaleOp) Dims() MatrixDimension { return s.dim }
func (s scaleOp) MulVec(dst, src []float64) {
	for i, v := range src {
		dst[i] = v * s.scale
	}
}
func (s scaleOp) MulVecTrans(dst, src []float64) { s.MulVec(dst, src) }

func TestCompositeAppliesFactorsRightToLeft(t *testing.T) {
	dim := NewMatrixDimension(2, 2)
	outer := asymmetricOp{dim}
	c := newComposite(dim, outer, transposed{outer})
	dst := make([]float64, 2)
	c.MulVec(dst, []float64{1, 1})
	// factors[0]*(factors[1]*src): outer^T*(1,1) = (1,3), then
	// outer*(1,3) = (7,3). The opposite order would give (3,7).
	want := []float64{7, 3}
	for i, v := range dst {
		if !scalar.EqualWithinAbsOrRel(v, want[i], 1e-12, 1e-12) {
			t.Errorf("MulVec result[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestTransposedSwapsMulVecAndMulVecTrans(t *testing.T) {
	inner := asymmetricOp{NewMatrixDimension(2, 2)}
	tr := transposed{inner}

	src := []float64{1, 2}
	want := make([]float64, 2)
	got := make([]float64, 2)
	inner.MulVecTrans(want, src)
	tr.MulVec(got, src)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transposed.MulVec()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// asymmetricOp represents [[1,2],[0,1]] to make MulVec and MulVecTrans
// observably different.
type asymmetricOp struct{ dim MatrixDimension }

func (a asymmetricOp) Dims() MatrixDimension { return a.dim }
func (a asymmetricOp) MulVec(dst, src []float64) {
	dst[0] = src[0] + 2*src[1]
	dst[1] = src[1]
}
func (a asymmetricOp) MulVecTrans(dst, src []float64) {
	dst[0] = src[0]
	dst[1] = 2*src[0] + src[1]
}

func TestSymmetricSquare(t *testing.T) {
	dim := NewMatrixDimension(2, 2)
	outer := asymmetricOp{dim}
	inner := scaleOp{dim, 5}
	sq := symmetricSquare(dim, outer, inner)

	// sq = outer * inner * outer^T, applied to e0.
	dst := make([]float64, 2)
	sq.MulVec(dst, []float64{1, 0})

	// outer^T * e0 = (1,2); inner scales by 5 -> (5,10); outer*(5,10) = (5+20, 10) = (25,10)
	want := []float64{25, 10}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(dst[i], want[i], 1e-12, 1e-12) {
			t.Errorf("symmetricSquare result[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
