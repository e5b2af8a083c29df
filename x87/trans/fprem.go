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
	"github.com/jetsetilly/x87fpu/x87/bits"
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/fpext"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

// FPrem computes the partial remainder of src1/src2, with src1's sign and a
// magnitude below |src2|. When the exponents of src1 and src2 differ by more than 63,
// only part of the reduction can be done in one call: C2 is set and the
// caller is expected to call again with the (still too large) partial
// result in src1's place, per the documented fprem/fprem1 looping
// contract.
func FPrem(src1, src2 fp64.F64) (fp64.F64, sw.Word) { return fpremCore(src1, src2, false) }

// FPrem1 is FPrem with the result range shifted to [-src2/2, src2/2],
// rounding the quotient to nearest-even at the boundary.
func FPrem1(src1, src2 fp64.F64) (fp64.F64, sw.Word) { return fpremCore(src1, src2, true) }

// fpremCore is the shared reduction, a direct port of the softfloat-derived
// 64 bit remainder algorithm: a 32 bit reciprocal estimate drives a
// 29-bit-per-iteration long division that leaves an exact integer quotient
// and remainder, from which the final low 3 quotient bits and the fprem1
// tie-break correction are recovered.
func fpremCore(src1, src2 fp64.F64, rem1 bool) (fp64.F64, sw.Word) {
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
		return indef(flags)
	}
	if isMaxExp(src2) {
		if src2.IsNaN() {
			return qnan(flags, src2)
		}
		return src1, flags
	}
	if src2.IsZero() {
		return indef(flags)
	}

	esrc1 := fpext.FromF64(src1)
	esrc2 := fpext.FromF64(src2)
	dexp := esrc1.Exponent - esrc2.Exponent
	rem := esrc1.Mantissa >> 2
	sigb := esrc2.Mantissa >> 2

	var factor int32
	if dexp > 63 {
		factor = ((dexp - 32) / 32) * 32
	}
	dexp -= factor

	var altrem, q uint64
	skipCorrection := false

	if dexp < 1 {
		if dexp < -1 {
			return src1, flags
		}
		q = 0
		if dexp != 0 {
			rem >>= 1
		} else if sigb <= rem {
			rem -= sigb
			q = 1
		}
	} else {
		divisor := uint64(uint32(sigb >> 30))
		recip32 := uint32(uint64(0x7FFFFFFFFFFFFFFF) / divisor)
		dexp -= 30

		var q64, qt uint64
		for {
			q64 = uint64(uint32(rem>>32)) * uint64(recip32)
			if dexp < 0 {
				break
			}
			q = (q64 + 0x80000000) >> 32
			rem <<= 29
			rem -= q * sigb
			if int64(rem) < 0 {
				rem += sigb
				q--
			}
			qt = (qt << 29) + q
			dexp -= 29
		}

		shiftAmt := uint((^dexp) & 31)
		q = uint64(uint32(q64>>32)) >> shiftAmt
		finalShift := uint(dexp + 30)
		rem = (rem << finalShift) - q*sigb
		q = (qt << finalShift) + q
		if int64(rem) < 0 {
			altrem = rem + sigb
			skipCorrection = true
		}
	}

	if !skipCorrection {
		for {
			altrem = rem
			q++
			rem -= sigb
			if int64(rem) < 0 {
				break
			}
		}
	}

	rem = altrem << 2
	shift := int32(bits.CountLeadingZeros64(rem))
	rem <<= uint(shift)

	resExp := int32(fpext.ExponentMin)
	if rem != 0 {
		resExp = esrc2.Exponent - shift + factor
	}
	res := fpext.Ext64{Mantissa: rem, Exponent: resExp, Sign: src1.Sign()}

	// fprem1 returns results from -src2/2..src2/2 instead of 0..src2: if the
	// result is more than half of src2 in magnitude (or exactly half with an
	// odd quotient), take back one more src2 to land on the nearer multiple.
	if rem1 && factor == 0 {
		if res.Exponent == esrc2.Exponent ||
			(res.Exponent == esrc2.Exponent-1 && (rem > esrc2.Mantissa || (rem == esrc2.Mantissa && q&1 == 0))) {
			abs2 := esrc2.Abs()
			if !res.Sign {
				res = fpext.SubExt64(res, abs2)
			} else {
				res = fpext.AddExt64(res, abs2)
			}
			q++
		}
	}

	dst := res.ToF64()
	if factor != 0 {
		flags.C2 = true
		return dst, flags
	}

	q--
	flags.C1 = q&1 != 0
	flags.C3 = q&2 != 0
	flags.C0 = q&4 != 0
	return dst, flags
}
