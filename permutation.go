// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// Permutation is an immutable n×n permutation matrix, recorded as a column
// swap list: perm[c] is the row holding the single 1 of column c, i.e.
// P·e_c = e_{perm[c]}.
type Permutation struct {
	perm []int
}

// PermutationBuilder accumulates column swaps before Build finalizes them
// into a Permutation.
type PermutationBuilder struct {
	perm []int
	done bool
}

// UnitPermutationBuilder returns a builder for the n×n identity
// permutation.
func UnitPermutationBuilder(n int) *PermutationBuilder {
	if n <= 0 {
		panic(ErrNonPositiveDimension)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &PermutationBuilder{perm: perm}
}

// SwapColumns records a swap of columns i and j.
func (b *PermutationBuilder) SwapColumns(i, j int) {
	if b.done {
		panic(ErrAlreadyBuilt)
	}
	if i < 0 || i >= len(b.perm) || j < 0 || j >= len(b.perm) {
		panic(ErrIndexOutOfRange)
	}
	b.perm[i], b.perm[j] = b.perm[j], b.perm[i]
}

// Build finalizes and returns the Permutation.
func (b *PermutationBuilder) Build() *Permutation {
	b.done = true
	return &Permutation{perm: b.perm}
}

// Dims returns the matrix dimension.
func (p *Permutation) Dims() MatrixDimension { return NewMatrixDimension(len(p.perm), len(p.perm)) }

// At returns the (i,j) entry: 1 if perm[j] == i, else 0.
func (p *Permutation) At(i, j int) float64 {
	if i < 0 || i >= len(p.perm) || j < 0 || j >= len(p.perm) {
		panic(ErrIndexOutOfRange)
	}
	if p.perm[j] == i {
		return 1
	}
	return 0
}

// SignOfDeterminant returns the sign of the permutation: +1 for an even
// number of transpositions, -1 for odd.
func (p *Permutation) SignOfDeterminant() int {
	n := len(p.perm)
	visited := make([]bool, n)
	transpositions := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		cycleLen := 0
		for j := i; !visited[j]; j = p.perm[j] {
			visited[j] = true
			cycleLen++
		}
		transpositions += cycleLen - 1
	}
	if transpositions%2 == 0 {
		return 1
	}
	return -1
}

// MulVec computes dst = P·src.
func (p *Permutation) MulVec(dst, src []float64) {
	for c, r := range p.perm {
		dst[r] = src[c]
	}
}

// MulVecTrans computes dst = Pᵀ·src.
func (p *Permutation) MulVecTrans(dst, src []float64) {
	for c, r := range p.perm {
		dst[c] = src[r]
	}
}

// Inverse returns P⁻¹ = Pᵀ as an operator that applies P's transpose.
func (p *Permutation) Inverse() InverseMatrix { return permutationInverse{p} }

type permutationInverse struct{ p *Permutation }

func (inv permutationInverse) Dims() MatrixDimension { return inv.p.Dims() }
func (inv permutationInverse) MulVec(dst, src []float64) {
	inv.p.MulVecTrans(dst, src)
}
func (inv permutationInverse) MulVecTrans(dst, src []float64) {
	inv.p.MulVec(dst, src)
}
