// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "fmt"

// Error represents a decomp package panic value. It can be recovered and
// type-asserted by callers that want to distinguish package panics from
// other run-time panics.
type Error string

func (e Error) Error() string { return string(e) }

// Sentinel panics raised by the container and builder types.
const (
	ErrNonPositiveDimension = Error("decomp: matrix dimension must be positive")
	ErrNegativeBandwidth    = Error("decomp: bandwidth must be non-negative")
	ErrShape                = Error("decomp: dimension mismatch")
	ErrIndexOutOfRange      = Error("decomp: index out of range")
	ErrBlockNotDisjoint     = Error("decomp: adjacent 2x2 blocks in block-2 diagonal")
	ErrNotBuilt             = Error("decomp: builder has not been finalized")
	ErrAlreadyBuilt         = Error("decomp: builder already finalized")
)

// RejectionReason enumerates the structural reasons an Executor can refuse
// to attempt a factorization at all, before any buffer is allocated.
type RejectionReason int

const (
	// NotSquare means the matrix dimension is not square.
	NotSquare RejectionReason = iota
	// NotSymmetric means a Cholesky-family executor was given a matrix
	// that does not carry the Symmetric marker.
	NotSymmetric
	// TooManyElements means the packed representation this helper needs
	// would exceed the implementation's maximum addressable element count.
	TooManyElements
)

func (r RejectionReason) String() string {
	switch r {
	case NotSquare:
		return "not square"
	case NotSymmetric:
		return "not symmetric"
	case TooManyElements:
		return "too many elements"
	default:
		return "unknown rejection reason"
	}
}

// RejectionError is the user-visible error produced for a structurally
// rejected matrix. It is produced by Acceptance.Err, one per (reason,
// matrix) pair.
type RejectionError struct {
	Reason RejectionReason
	Dims   MatrixDimension
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case NotSquare:
		return fmt.Sprintf("decomp: matrix is not square (%d x %d)", e.Dims.Rows(), e.Dims.Cols())
	case NotSymmetric:
		return "decomp: matrix is not symmetric"
	case TooManyElements:
		return fmt.Sprintf("decomp: effective element count for a %d x %d matrix exceeds index range", e.Dims.Rows(), e.Dims.Cols())
	default:
		return "decomp: matrix rejected"
	}
}

// InvalidEpsilonError is returned from Executor.Apply when the caller's
// epsilon is not finite and non-negative.
type InvalidEpsilonError struct {
	Epsilon float64
}

func (e *InvalidEpsilonError) Error() string {
	return fmt.Sprintf("decomp: epsilon %v is not finite and non-negative", e.Epsilon)
}
