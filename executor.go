// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// DefaultEpsilon is the fixed positive regularity threshold used by
// Executor.ApplyDefault.
const DefaultEpsilon = 1e-12

// pivotFloor is added to the caller's epsilon in every pivot test so that
// an exact-zero pivot is always rejected even when the caller passes
// epsilon == 0.
const pivotFloor = 1e-100

// Executor is the shared shape of every factorization's public entry
// point: it validates squareness and the caller's epsilon itself, then
// delegates the factorization-specific structural check and the numerical
// elimination to the two hooks supplied at construction. One Executor
// value exists per factorization kind (see ludense.go, luband.go, ... for
// the package-level singletons) and, being stateless, every Executor is
// safe to share across goroutines without locking.
//
// M is the matrix-container type this factorization consumes (Matrix for
// dense general/symmetric inputs, BandMatrix for banded ones); S is the
// *Solver type Apply produces.
type Executor[M any, S any] struct {
	dims                func(M) MatrixDimension
	acceptsConcretely   func(M) Acceptance
	factorizeConcretely func(M, float64) (S, bool)
}

// NewExecutor constructs an Executor from its two subtype hooks. dims
// extracts the overall shape (for the squareness check common to every
// factorization kind); acceptsConcretely may add further structural
// rejections (NotSymmetric, TooManyElements); factorizeConcretely performs
// the actual elimination, returning (solver, true) on success or
// (zero-value, false) on numerical failure. factorizeConcretely must
// never be called on a structurally rejected matrix and must not panic on
// the expected numerical-failure path.
func NewExecutor[M any, S any](
	dims func(M) MatrixDimension,
	acceptsConcretely func(M) Acceptance,
	factorizeConcretely func(M, float64) (S, bool),
) *Executor[M, S] {
	return &Executor[M, S]{dims: dims, acceptsConcretely: acceptsConcretely, factorizeConcretely: factorizeConcretely}
}

// Accepts reports whether m is structurally eligible for this
// factorization. It never panics.
func (e *Executor[M, S]) Accepts(m M) Acceptance {
	dims := e.dims(m)
	if !dims.IsSquare() {
		return rejected(NotSquare, dims)
	}
	return e.acceptsConcretely(m)
}

// Apply validates epsilon and structural acceptance, then factorizes.
//
//   - If epsilon is not finite and non-negative, Apply returns a non-nil
//     *InvalidEpsilonError and the zero value of S.
//   - If m is structurally rejected, Apply returns a non-nil
//     *RejectionError (via Acceptance.Err) and the zero value of S.
//   - If m is accepted but the factorization is numerically impossible
//     under epsilon, Apply returns (zero value of S, nil) — S is expected
//     to be a pointer type, so this is observable as (nil, nil).
//   - Otherwise Apply returns the built solver and a nil error.
func (e *Executor[M, S]) Apply(m M, epsilon float64) (S, error) {
	var zero S
	if math.IsNaN(epsilon) || math.IsInf(epsilon, 0) || epsilon < 0 {
		return zero, &InvalidEpsilonError{Epsilon: epsilon}
	}
	acc := e.Accepts(m)
	if acc.Rejected() {
		return zero, acc.Err()
	}
	solver, ok := e.factorizeConcretely(m, epsilon)
	if !ok {
		return zero, nil
	}
	return solver, nil
}

// ApplyDefault is equivalent to Apply(m, DefaultEpsilon).
func (e *Executor[M, S]) ApplyDefault(m M) (S, error) {
	return e.Apply(m, DefaultEpsilon)
}
