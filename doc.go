// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decomp provides direct linear-equation solvers for dense and
// banded real square matrices, built around four factorizations: LU
// (no pivot), LU with partial pivoting, Cholesky, and modified Cholesky
// with Bunch–Kaufman pivoting. Each factorization is exposed through a
// process-wide singleton Executor that validates a matrix, performs the
// in-place elimination, and returns a Solver exposing the determinant,
// inverse, and (for the Cholesky family) an asymmetric square root.
package decomp
