// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// baseSolver is the shared shape every factorization
// façade in this file embeds: a target matrix echoed back for reference,
// and a single lazyCache holding the (determinant, inverse) pair so that
// repeated calls to Determinant/Inverse never redo the elimination work,
// and so that two Inverse calls observably return the identical
// InverseMatrix instance.
type baseSolver struct {
	target any
	dims   MatrixDimension
	cache  *lazyCache[InverseAndDeterminant]
}

func newBaseSolver(target any, dims MatrixDimension, produce func() InverseAndDeterminant) baseSolver {
	return baseSolver{target: target, dims: dims, cache: newLazyCache(produce)}
}

// Target returns the original matrix this solver was built from.
func (s baseSolver) Target() any { return s.target }

// Dims returns the target's matrix dimension.
func (s baseSolver) Dims() MatrixDimension { return s.dims }

// Determinant returns the target's determinant as a (sign, log|det|) pair.
func (s baseSolver) Determinant() DeterminantValues { return s.cache.get().Determinant }

// SignOfDeterminant returns -1, 0, or +1.
func (s baseSolver) SignOfDeterminant() int { return s.cache.get().Determinant.Sign }

// LogAbsDeterminant returns log|det(target)|. It is -Inf when the target
// is singular.
func (s baseSolver) LogAbsDeterminant() float64 { return s.cache.get().Determinant.LogAbs }

// Inverse returns the target's inverse as a lazily-evaluated InverseMatrix.
// ok is false when the target is singular, in which case the returned
// InverseMatrix is nil.
func (s baseSolver) Inverse() (InverseMatrix, bool) {
	r := s.cache.get()
	return r.Inverse, r.Determinant.Sign != 0
}

// LUSolver is the façade returned by LU: A = L·D·U, where ut stores Uᵀ
// directly (a lower-unitriangular matrix, since U is upper
// unitriangular).
type LUSolver struct {
	baseSolver
	d     *Diagonal
	l, ut *LowerUnitriangular
}

func newLUSolver(a Matrix, d *Diagonal, l, ut *LowerUnitriangular) *LUSolver {
	s := &LUSolver{d: d, l: l, ut: ut}
	s.baseSolver = newBaseSolver(a, a.Dims(), s.computeInverseAndDeterminant)
	return s
}

func newLUBandSolver(a BandMatrix, d *Diagonal, l, ut *LowerUnitriangularBand) *LUBandSolver {
	s := &LUBandSolver{d: d, l: l, ut: ut}
	s.baseSolver = newBaseSolver(a, a.BandDims().Dimension(), s.computeInverseAndDeterminant)
	return s
}

func (s *LUSolver) computeInverseAndDeterminant() InverseAndDeterminant {
	det := DeterminantValues{Sign: s.d.SignOfDeterminant(), LogAbs: s.d.LogAbsDeterminant()}
	if det.Sign == 0 {
		return singularInverseAndDeterminant()
	}
	inv := newComposite(s.dims, transposed{s.ut.Inverse()}, s.d.Inverse(), s.l.Inverse())
	return InverseAndDeterminant{Determinant: det, Inverse: inv}
}

// LUBandSolver is the band-matrix analogue of LUSolver, returned by
// LUBanded: A = L·D·U with L and Uᵀ stored band-packed.
type LUBandSolver struct {
	baseSolver
	d     *Diagonal
	l, ut *LowerUnitriangularBand
}

func (s *LUBandSolver) computeInverseAndDeterminant() InverseAndDeterminant {
	det := DeterminantValues{Sign: s.d.SignOfDeterminant(), LogAbs: s.d.LogAbsDeterminant()}
	if det.Sign == 0 {
		return singularInverseAndDeterminant()
	}
	inv := newComposite(s.dims, transposed{s.ut.Inverse()}, s.d.Inverse(), s.l.Inverse())
	return InverseAndDeterminant{Determinant: det, Inverse: inv}
}

// LUPivotingSolver is the façade returned by LUPivoting: A = P·L·D·U, with
// ut storing Uᵀ.
type LUPivotingSolver struct {
	baseSolver
	d     *Diagonal
	l, ut *LowerUnitriangular
	p     *Permutation
}

func newLUPivotingSolver(a Matrix, d *Diagonal, l, ut *LowerUnitriangular, p *Permutation) *LUPivotingSolver {
	s := &LUPivotingSolver{d: d, l: l, ut: ut, p: p}
	s.baseSolver = newBaseSolver(a, a.Dims(), s.computeInverseAndDeterminant)
	return s
}

func (s *LUPivotingSolver) computeInverseAndDeterminant() InverseAndDeterminant {
	dSign := s.d.SignOfDeterminant()
	if dSign == 0 {
		return singularInverseAndDeterminant()
	}
	det := DeterminantValues{
		Sign:   s.p.SignOfDeterminant() * dSign,
		LogAbs: s.d.LogAbsDeterminant(),
	}
	inv := newComposite(s.dims, transposed{s.ut.Inverse()}, s.d.Inverse(), s.l.Inverse(), s.p.Inverse())
	return InverseAndDeterminant{Determinant: det, Inverse: inv}
}

// triangularFactor is the L (or Uᵀ) factor shape a CholeskySolver needs:
// a forward operator (InverseMatrix's MulVec/MulVecTrans, applying L
// itself) plus Inverse for the lazily-evaluated substitution solve. Both
// LowerUnitriangular and LowerUnitriangularBand satisfy it.
type triangularFactor interface {
	InverseMatrix
	Inverse() InverseMatrix
}

// CholeskySolver is the façade returned by Cholesky and CholeskyBanded:
// A = B·Bᵀ, where B = L·√D.
type CholeskySolver struct {
	baseSolver
	sqrtD  *Diagonal
	l      triangularFactor
	bCache *lazyCache[bFactorPair]
}

// bFactorPair caches B and B⁻¹ together so that AsymmSqrt and
// InverseAsymmSqrt each always return the same instance across repeated
// calls.
type bFactorPair struct {
	b, bInv InverseMatrix
}

func newCholeskySolver(a SymmetricMatrix, sqrtD *Diagonal, l *LowerUnitriangular) *CholeskySolver {
	s := &CholeskySolver{sqrtD: sqrtD, l: l}
	s.bCache = newLazyCache(s.computeBFactorPair)
	s.baseSolver = newBaseSolver(a, a.Dims(), s.computeInverseAndDeterminant)
	return s
}

func newCholeskyBandSolver(a SymmetricBandMatrix, sqrtD *Diagonal, l *LowerUnitriangularBand) *CholeskySolver {
	s := &CholeskySolver{sqrtD: sqrtD, l: l}
	s.bCache = newLazyCache(s.computeBFactorPair)
	s.baseSolver = newBaseSolver(a, a.BandDims().Dimension(), s.computeInverseAndDeterminant)
	return s
}

func (s *CholeskySolver) computeBFactorPair() bFactorPair {
	b := newComposite(s.dims, s.l, s.sqrtD)
	bInv := newComposite(s.dims, s.sqrtD.Inverse(), s.l.Inverse())
	return bFactorPair{b: b, bInv: bInv}
}

// computeInverseAndDeterminant builds A⁻¹ = B⁻ᵀ·B⁻¹, which carries the
// Symmetric marker. det(A) = det(B)² = det(√D)², always positive.
func (s *CholeskySolver) computeInverseAndDeterminant() InverseAndDeterminant {
	logAbs := s.sqrtD.LogAbsDeterminant()
	det := DeterminantValues{Sign: 1, LogAbs: 2 * logAbs}
	bInv := s.bCache.get().bInv
	inv := symmetricPair(s.dims, transposed{bInv})
	return InverseAndDeterminant{Determinant: det, Inverse: inv}
}

// ModifiedCholeskySolver is the façade returned by ModifiedCholeskyBanded:
// A = L·D·Lᵀ, D possibly carrying negative entries.
type ModifiedCholeskySolver struct {
	baseSolver
	d *Diagonal
	l *LowerUnitriangularBand
}

func newModifiedCholeskyBandSolver(a SymmetricBandMatrix, d *Diagonal, l *LowerUnitriangularBand) *ModifiedCholeskySolver {
	s := &ModifiedCholeskySolver{d: d, l: l}
	s.baseSolver = newBaseSolver(a, a.BandDims().Dimension(), s.computeInverseAndDeterminant)
	return s
}

// computeInverseAndDeterminant builds A⁻¹ = L⁻ᵀ·D⁻¹·L⁻¹, which carries
// the Symmetric marker.
func (s *ModifiedCholeskySolver) computeInverseAndDeterminant() InverseAndDeterminant {
	dSign := s.d.SignOfDeterminant()
	if dSign == 0 {
		return singularInverseAndDeterminant()
	}
	det := DeterminantValues{Sign: dSign, LogAbs: s.d.LogAbsDeterminant()}
	outer := transposed{s.l.Inverse()}
	inv := symmetricSquare(s.dims, outer, s.d.Inverse())
	return InverseAndDeterminant{Determinant: det, Inverse: inv}
}

// ModifiedCholeskyPivotingSolver is the façade returned by
// ModifiedCholeskyPivoting: A = P·L·M·Lᵀ·Pᵀ, M a Block2.
type ModifiedCholeskyPivotingSolver struct {
	baseSolver
	l *LowerUnitriangular
	m *Block2
	p *Permutation
}

func newModifiedCholeskyPivotingSolver(a SymmetricMatrix, l *LowerUnitriangular, m *Block2, p *Permutation) *ModifiedCholeskyPivotingSolver {
	s := &ModifiedCholeskyPivotingSolver{l: l, m: m, p: p}
	s.baseSolver = newBaseSolver(a, a.Dims(), s.computeInverseAndDeterminant)
	return s
}

// computeInverseAndDeterminant builds A⁻¹ = (P·L⁻ᵀ)·M⁻¹·(P·L⁻ᵀ)ᵀ. Since
// P⁻ᵀ = P and det(P)² = det(L)² = 1, det(A) = det(M).
func (s *ModifiedCholeskyPivotingSolver) computeInverseAndDeterminant() InverseAndDeterminant {
	mInv, mDet, ok := s.m.InverseAndDeterminant()
	if !ok || mDet.Sign == 0 {
		return singularInverseAndDeterminant()
	}
	outer := newComposite(s.dims, s.p, transposed{s.l.Inverse()})
	inv := symmetricSquare(s.dims, outer, mInv)
	return InverseAndDeterminant{Determinant: mDet, Inverse: inv}
}
