// This file is part of x87fpu.
//
// x87fpu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// x87fpu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with x87fpu.  If not, see <https://www.gnu.org/licenses/>.

// Package trans implements the x87 transcendental and argument-manipulation
// kernels (fxtract, fscale, fprem/fprem1, f2xm1, fyl2x/fyl2xp1, fsin/fcos/
// fsincos/fptan, fpatan) over the fp64.F64/fpext scratch types. Every kernel
// takes its operands and returns (fp64.F64, sw.Word) or (fp64.F64, fp64.F64,
// sw.Word) for the two-result operations - a flags delta the caller ORs into
// the live status word, never an absolute value.
package trans

import (
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

// isMaxExp reports the "all exponent bits set" class shared by infinities
// and NaNs, the gate every kernel below checks first.
func isMaxExp(v fp64.F64) bool { return v.IsInf() || v.IsNaN() }

// indef sets dst to the indefinite QNaN and raises INVALID.
func indef(flags sw.Word) (fp64.F64, sw.Word) {
	flags.Invalid = true
	return fp64.Indefinite, flags
}

// indef2 is indef for the two-result kernels (fptan, fsincos).
func indef2(flags sw.Word) (fp64.F64, fp64.F64, sw.Word) {
	flags.Invalid = true
	return fp64.Indefinite, fp64.Indefinite, flags
}

// qnan quiets src into dst, raising INVALID if src was signaling.
func qnan(flags sw.Word, src fp64.F64) (fp64.F64, sw.Word) {
	if src.IsSNaN() {
		flags.Invalid = true
	}
	return fp64.MakeQNaN(src), flags
}

// qnan2 is qnan for the two-result kernels.
func qnan2(flags sw.Word, src fp64.F64) (fp64.F64, fp64.F64, sw.Word) {
	dst, flags := qnan(flags, src)
	return dst, dst, flags
}

// qnanPair resolves the NaN result of a two-operand kernel: INVALID is
// raised if either source was signaling, and when both are NaNs the one
// with the larger mantissa wins (ties broken by src1's sign), matching the
// "propagate the more significant NaN" rule used throughout the ISA.
func qnanPair(flags sw.Word, src1, src2 fp64.F64) (fp64.F64, sw.Word) {
	if src1.IsSNaN() || src2.IsSNaN() {
		flags.Invalid = true
	}
	dst := fp64.MakeQNaN(src1)
	if src2.IsNaN() {
		man1 := src1.Bits() & (uint64(1)<<52 - 1)
		man2 := src2.Bits() & (uint64(1)<<52 - 1)
		if man2 > man1 || (man2 == man1 && src1.Sign()) {
			dst = fp64.MakeQNaN(src2)
		}
	}
	return dst, flags
}

// infinity returns signed infinity, no flags raised.
func infinity(flags sw.Word, sign bool) (fp64.F64, sw.Word) { return fp64.Inf(sign), flags }

// zero returns signed zero, no flags raised.
func zero(flags sw.Word, sign bool) (fp64.F64, sw.Word) { return fp64.Zero(sign), flags }

// polyEval evaluates sum(coeffs[i] * x^(n-1-i)) via Horner's method, the n
// coeffs given highest-degree first - the shape every Cephes-derived rational
// approximation in this package is built from.
func polyEval(x fp64.F64, coeffs []fp64.F64) fp64.F64 {
	r := coeffs[0]
	for _, c := range coeffs[1:] {
		r = r*x + c
	}
	return r
}

// poly1Eval is polyEval for a monic polynomial whose leading (degree-N)
// coefficient is implicitly 1 and so is omitted from coeffs.
func poly1Eval(x fp64.F64, coeffs []fp64.F64) fp64.F64 {
	r := x + coeffs[0]
	for _, c := range coeffs[1:] {
		r = r*x + c
	}
	return r
}
