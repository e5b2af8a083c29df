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

package trans

import (
	"math/bits"

	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/fpext"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

const (
	fp64ExponentBias = 1023
	fp64MantissaBits = 52
	fp64MaxBiasedExp = 2047
	maxFinitePosBits = 0x7fefffffffffffff
	maxFiniteNegBits = 0xffefffffffffffff
)

// FScale computes src1 * 2^trunc(src2), where the truncation direction
// follows src2's own sign (floor for positive, ceil for negative - the
// "round toward the exponent's magnitude" rule the hardware documents).
func FScale(src1, src2 fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word
	if src1.IsDenormal() || src2.IsDenormal() {
		flags.Denormal = true
	}

	if isMaxExp(src1) {
		if src1.IsNaN() {
			return qnanPair(flags, src1, src2)
		}
		if src2.IsNaN() {
			return qnan(flags, src2)
		}
		return infinity(flags, src1.Sign())
	}
	if isMaxExp(src2) {
		if src2.IsNaN() {
			return qnan(flags, src2)
		}
		if src1.IsZero() {
			return indef(flags)
		}
		return infinity(flags, src1.Sign())
	}

	if src1.IsZero() {
		return src1, flags
	}

	esrc1 := fpext.FromF64(src1)

	var exp fp64.F64
	if !src2.Sign() {
		exp = fp64.Floor(src2)
	} else {
		exp = fp64.Ceil(src2)
	}

	if float64(exp) >= 32768.0 {
		flags.Overflow = true
		flags.Precision = true
		return overflowResult(src1.Sign()), flags
	}
	if float64(exp) <= -32768.0 {
		flags.Underflow = true
		flags.Precision = true
		return fp64.Zero(src1.Sign()), flags
	}

	iexp := int32(exp)
	if iexp == 0 {
		return src1, flags
	}

	newexp := esrc1.Exponent + iexp
	if newexp <= -16394 {
		mantissa := src1.Bits() & (uint64(1)<<fp64MantissaBits - 1)
		thresh := int32(-16394 - fp64MantissaBits)
		if mantissa != 0 {
			thresh = -16394 - int32(bits.TrailingZeros64(mantissa))
		}
		if newexp <= thresh {
			flags.Underflow = true
			flags.Precision = true
			return fp64.Zero(src1.Sign()), flags
		}
	}
	if newexp <= -fp64ExponentBias-fp64MantissaBits {
		flags.Underflow = true
		flags.Precision = true
		return fp64.Zero(src1.Sign()), flags
	}

	if newexp >= 16384 {
		flags.Overflow = true
		flags.Precision = true
		return overflowResult(src1.Sign()), flags
	}
	if newexp >= fp64MaxBiasedExp-fp64ExponentBias {
		flags.Overflow = true
		flags.Precision = true
		return overflowResult(src1.Sign()), flags
	}

	dst := fpext.LdexpExt64(esrc1, iexp).ToF64()
	return dst, flags
}

func overflowResult(sign bool) fp64.F64 {
	if sign {
		return fp64.FromBits(maxFiniteNegBits)
	}
	return fp64.FromBits(maxFinitePosBits)
}
