// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// Block2 is the block-diagonal container for the M factor produced by
// Bunch–Kaufman pivoting: a symmetric n×n matrix whose only nonzero
// off-diagonal entries are sub[i], the (i+1,i) entry of a 2×2 block.
// Blocks are disjoint: no two adjacent sub entries are both nonzero.
// That invariant is enforced by Block2Builder, never by Block2 itself.
type Block2 struct {
	n    int
	diag []float64
	sub  []float64 // sub[n-1] is always 0 (zero-padded, unused)

	// original is non-nil only on a Block2 produced by
	// InverseAndDeterminant, pointing back at the matrix it inverts so
	// that inverting twice returns the original instance.
	original *Block2
}

// Block2Builder accumulates a Block2's entries before Build finalizes it.
type Block2Builder struct {
	m    *Block2
	done bool
}

// ZeroBlock2Builder returns a builder for an n×n Block2 initialized to
// zero.
func ZeroBlock2Builder(n int) *Block2Builder {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	return &Block2Builder{m: &Block2{n: n, diag: make([]float64, n), sub: make([]float64, n)}}
}

// SetDiag sets diagonal entry i.
func (b *Block2Builder) SetDiag(i int, v float64) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	if i < 0 || i >= b.m.n {
		panic(ErrIndexOutOfRange)
	}
	b.m.diag[i] = v
}

// SetSub sets the (i+1,i) entry opening a 2×2 block at i. It panics if
// this would place two 2×2 blocks adjacent to one another.
func (b *Block2Builder) SetSub(i int, v float64) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	if i < 0 || i >= b.m.n-1 {
		panic(ErrIndexOutOfRange)
	}
	if v != 0 {
		if i > 0 && b.m.sub[i-1] != 0 {
			panic(ErrBlockNotDisjoint)
		}
		if i+1 < b.m.n-1 && b.m.sub[i+1] != 0 {
			panic(ErrBlockNotDisjoint)
		}
	}
	b.m.sub[i] = v
}

// Build finalizes and returns the Block2.
func (b *Block2Builder) Build() *Block2 {
	b.done = true
	return b.m
}

// N returns the dimension.
func (m *Block2) N() int { return m.n }

// DiagAt returns diagonal entry i.
func (m *Block2) DiagAt(i int) float64 { return m.diag[i] }

// SubAt returns the (i+1,i) entry.
func (m *Block2) SubAt(i int) float64 { return m.sub[i] }

// Dims returns the matrix dimension.
func (m *Block2) Dims() MatrixDimension { return NewMatrixDimension(m.n, m.n) }

// At returns the (i,j) entry.
func (m *Block2) At(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(ErrIndexOutOfRange)
	}
	if i == j {
		return m.diag[i]
	}
	if i == j+1 {
		return m.sub[j]
	}
	if j == i+1 {
		return m.sub[i]
	}
	return 0
}

// MulVec computes dst = M·src.
func (m *Block2) MulVec(dst, src []float64) {
	for i := 0; i < m.n; i++ {
		v := m.diag[i] * src[i]
		if i > 0 {
			v += m.sub[i-1] * src[i-1]
		}
		if i+1 < m.n {
			v += m.sub[i] * src[i+1]
		}
		dst[i] = v
	}
}

// MulVecTrans is identical to MulVec: Block2 is symmetric.
func (m *Block2) MulVecTrans(dst, src []float64) { m.MulVec(dst, src) }

const (
	block2OutsideState = iota
	block2InsideState
)

// InverseAndDeterminant computes M⁻¹ (itself a Block2, since the inverse
// of a block-diagonal matrix shares its block structure) and det(M) in a
// single sweep. ok is false iff M is singular (a 1×1 pivot with a
// non-finite reciprocal, or a 2×2 block whose scaled determinant
// underflows below 1e-305 or yields a non-finite inverse entry). Calling
// InverseAndDeterminant on a matrix it previously produced returns the
// original instance rather than rebuilding it.
func (m *Block2) InverseAndDeterminant() (inv *Block2, det DeterminantValues, ok bool) {
	n := m.n
	invDiag := make([]float64, n)
	invSub := make([]float64, n)
	acc := newLogMagnitudeAccumulator()
	sign := 1

	state := block2OutsideState
	for i := 0; i < n; i++ {
		switch state {
		case block2OutsideState:
			if i < n-1 && m.sub[i] != 0 {
				state = block2InsideState
				continue
			}
			d := m.diag[i]
			r := 1 / d
			if !isFiniteFloat(r) {
				return nil, DeterminantValues{}, false
			}
			invDiag[i] = r
			if d < 0 {
				sign = -sign
			}
			acc.accumulate(d, 1)

		case block2InsideState:
			a := m.diag[i-1]
			c := m.diag[i]
			bb := m.sub[i-1]
			scale := 1.0
			switch {
			case math.Abs(a*c) > 1e300 || math.Abs(bb*bb) > 1e300:
				scale = 1e-150
			case math.Abs(a*c) < 1e-300 && math.Abs(bb*bb) < 1e-300:
				scale = 1e150
			}
			ap, cp, bp := a*scale, c*scale, bb*scale
			scaledDet := ap*cp - bp*bp
			if math.Abs(scaledDet) < 1e-305 {
				return nil, DeterminantValues{}, false
			}
			f := scale / scaledDet
			invDiag[i-1] = cp * f
			invDiag[i] = ap * f
			invSub[i-1] = -bp * f
			if !isFiniteFloat(invDiag[i-1]) || !isFiniteFloat(invDiag[i]) || !isFiniteFloat(invSub[i-1]) {
				return nil, DeterminantValues{}, false
			}
			if scaledDet < 0 {
				sign = -sign
			}
			acc.accumulate(scaledDet, 1)
			acc.accumulate(1/scale, 2)
			state = block2OutsideState
		}
	}

	det = DeterminantValues{Sign: sign, LogAbs: acc.logAbs()}
	if m.original != nil {
		return m.original, det, true
	}

	invBuilder := ZeroBlock2Builder(n)
	for i := 0; i < n; i++ {
		invBuilder.SetDiag(i, invDiag[i])
	}
	for i := 0; i < n-1; i++ {
		if invSub[i] != 0 {
			invBuilder.SetSub(i, invSub[i])
		}
	}
	built := invBuilder.Build()
	built.original = m
	return built, det, true
}

func isFiniteFloat(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
