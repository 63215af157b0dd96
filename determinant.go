// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import "math"

// logShiftBase keeps the accumulator's running residual within
// [1e-150, 1e150] so that neither the running product nor its eventual
// log ever under/overflows, regardless of the input's dynamic range.
const logShiftBase = 1e150

var logLogShiftBase = math.Log(logShiftBase)

// DeterminantValues is a determinant represented as (sign, log|det|) so
// that very small or very large magnitudes never underflow or overflow a
// plain float64 determinant the way sign*exp(logAbs) eventually would.
// Invariant: Sign == 0 iff LogAbs == -Inf.
type DeterminantValues struct {
	Sign   int
	LogAbs float64
}

// singularDeterminant is the canonical (sign=0, logAbs=-Inf) value.
var singularDeterminant = DeterminantValues{Sign: 0, LogAbs: math.Inf(-1)}

// Value reconstructs the ordinary float64 determinant sign*exp(logAbs).
// Very small or very large |det| may underflow to 0 or overflow to ±Inf;
// callers that need to avoid that should use Sign/LogAbs directly.
func (d DeterminantValues) Value() float64 {
	if d.Sign == 0 {
		return 0
	}
	return float64(d.Sign) * math.Exp(d.LogAbs)
}

// Inverse returns the determinant of the inverse matrix: (sign, -logAbs).
// It is only meaningful when d.Sign != 0; callers must check Sign first.
func (d DeterminantValues) Inverse() DeterminantValues {
	if d.Sign == 0 {
		panic("decomp: determinant of a singular matrix has no inverse")
	}
	return DeterminantValues{Sign: d.Sign, LogAbs: -d.LogAbs}
}

// logMagnitudeAccumulator computes log|product of inputs| without ever
// letting the running product under/overflow a float64: it tracks
// (shift, residual) with residual ≈ exp(logAbsSoFar - shift*ln(1e150));
// every input is first normalized into [1e-150, 1e150] (adjusting shift),
// then folded into residual, which is re-normalized after each
// multiplication.
type logMagnitudeAccumulator struct {
	shift    int
	residual float64
}

func newLogMagnitudeAccumulator() *logMagnitudeAccumulator {
	return &logMagnitudeAccumulator{residual: 1}
}

// accumulate folds in |v|^multiplicity (multiplicity is 1 or 2 in this
// package: single diagonal pivots accumulate with multiplicity 1, a 2x2
// Bunch-Kaufman block's scale factor accumulates as scale^2 with
// multiplicity... see block2.go for the exact call sites).
func (a *logMagnitudeAccumulator) accumulate(v float64, multiplicity int) {
	if v == 0 {
		panic("decomp: cannot accumulate a zero magnitude")
	}
	v = math.Abs(v)
	for i := 0; i < multiplicity; i++ {
		a.foldOne(v)
	}
}

func (a *logMagnitudeAccumulator) foldOne(v float64) {
	for v > logShiftBase {
		v /= logShiftBase
		a.shift++
	}
	for v < 1/logShiftBase {
		v *= logShiftBase
		a.shift--
	}
	a.residual *= v
	a.renormalize()
}

func (a *logMagnitudeAccumulator) renormalize() {
	for a.residual > logShiftBase {
		a.residual /= logShiftBase
		a.shift++
	}
	for a.residual != 0 && a.residual < 1/logShiftBase {
		a.residual *= logShiftBase
		a.shift--
	}
}

// logAbs returns the accumulated log|product|.
func (a *logMagnitudeAccumulator) logAbs() float64 {
	return math.Log(a.residual) + float64(a.shift)*logLogShiftBase
}
