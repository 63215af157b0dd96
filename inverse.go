// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// InverseAndDeterminant bundles a determinant with the inverse operator it
// belongs to. A nil Inverse means the target is singular, in which case
// Determinant.Sign is always 0.
type InverseAndDeterminant struct {
	Determinant DeterminantValues
	Inverse     InverseMatrix // nil iff Determinant.Sign == 0
}

// singular returns the canonical "target is singular" bundle.
func singularInverseAndDeterminant() InverseAndDeterminant {
	return InverseAndDeterminant{Determinant: singularDeterminant}
}
