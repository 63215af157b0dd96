// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// Acceptance is the outcome of Executor.Accepts: either the matrix is
// structurally eligible for this factorization kind, or it is rejected
// for a specific, recorded reason. Accepts never panics; it is a pure
// predicate over the matrix's shape.
type Acceptance struct {
	rejected bool
	reason   RejectionReason
	dims     MatrixDimension
}

// accepted is the zero-value Acceptance: Rejected() reports false.
var accepted = Acceptance{}

func rejected(reason RejectionReason, dims MatrixDimension) Acceptance {
	return Acceptance{rejected: true, reason: reason, dims: dims}
}

// Rejected reports whether the matrix was structurally rejected.
func (a Acceptance) Rejected() bool { return a.rejected }

// Reason returns the rejection reason. It is only meaningful when
// Rejected() is true.
func (a Acceptance) Reason() RejectionReason { return a.reason }

// Err returns the user-visible error for a rejected Acceptance, or nil if
// the matrix was accepted.
func (a Acceptance) Err() error {
	if !a.rejected {
		return nil
	}
	return &RejectionError{Reason: a.reason, Dims: a.dims}
}
