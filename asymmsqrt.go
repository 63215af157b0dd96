// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// AsymmSqrt returns B, the (non-symmetric, hence "asymmetric") square
// root of the Cholesky target such that A = B·Bᵀ. Every call returns the
// same InverseMatrix instance, since it is produced by a single
// lazyCache evaluated at most once.
func (s *CholeskySolver) AsymmSqrt() InverseMatrix { return s.bCache.get().b }

// InverseAsymmSqrt returns B⁻¹. Like AsymmSqrt, repeated calls return the
// same instance.
func (s *CholeskySolver) InverseAsymmSqrt() InverseMatrix { return s.bCache.get().bInv }
