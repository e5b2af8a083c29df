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
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/fpext"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

const fp64MantissaMask64 = uint64(1)<<52 - 1

var (
	fyl2xTwo54 = fp64.FromBits(0x4350000000000000)
	fyl2xLg1   = fp64.FromBits(0x3FE5555555555593)
	fyl2xLg2   = fp64.FromBits(0x3FD999999997FA04)
	fyl2xLg3   = fp64.FromBits(0x3FD2492494229359)
	fyl2xLg4   = fp64.FromBits(0x3FCC71C51D8E78AF)
	fyl2xLg5   = fp64.FromBits(0x3FC7466496CB03DE)
	fyl2xLg6   = fp64.FromBits(0x3FC39A09D078C69F)
	fyl2xLg7   = fp64.FromBits(0x3FC2F112DF3E5244)
)

// FYl2x computes src2 * log2(src1), ported from the __ieee754_log2 libm
// kernel with the multiply-by-src2/ln2 folded in at extended precision so
// the two roundings (log, multiply) collapse into one.
func FYl2x(src1, src2 fp64.F64) (fp64.F64, sw.Word) {
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
		if src1.Sign() || src2.IsZero() {
			return indef(flags)
		}
		return infinity(flags, src2.Sign())
	}
	if isMaxExp(src2) {
		if src2.IsNaN() {
			return qnan(flags, src2)
		}
		if src1.Sign() || src1 == 1 {
			return indef(flags)
		}
		return infinity(flags, (src1.Exp() < 0) != src2.Sign())
	}
	if src1.Sign() {
		return indef(flags)
	}
	if src1.IsZero() {
		if src2.IsZero() {
			return indef(flags)
		}
		flags.DivByZero = true
		return infinity(flags, !src2.Sign())
	}
	if src2.IsZero() {
		return zero(flags, src2.Sign() != (src1.Exp() < 0))
	}

	invln2 := fpext.Ext64L2E
	src280 := fpext.FromF64(src2)
	src2invln2 := fpext.MulExt64(src280, invln2)

	if src1 != 1 {
		flags.Precision = true
	}

	rawsrc := src1.Bits()
	hx := int32(rawsrc >> 32)

	k := int32(0)
	x := src1
	if x.IsDenormal() {
		k -= 54
		x *= fyl2xTwo54
		rawsrc = x.Bits()
		hx = int32(rawsrc >> 32)
	}
	k += x.Exp()

	hx &= 0x000fffff
	i := (hx + 0x95f64) & 0x100000
	x = fp64.FromBits((rawsrc & fp64MantissaMask64) | uint64(uint32(i^0x3ff00000))<<32)
	k += i >> 20

	dk80 := fpext.MulExt64(fpext.FromF64(fp64.F64(k)), src280)
	f := x - 1.0

	if (0x000fffff & (2 + hx)) < 3 { // |f| < 2**-20
		if f == 0 {
			return dk80.ToF64(), flags
		}
		r := f * f * (0.5 - 0.33333333333333333*f)
		dst := fpext.SubExt64(dk80, fpext.MulExt64(fpext.FromF64(r-f), src2invln2)).ToF64()
		return dst, flags
	}

	s := f / (2.0 + f)
	z := s * s
	i = hx - 0x6147a
	w := z * z
	j := 0x6b851 - hx
	t1 := w * (fyl2xLg2 + w*(fyl2xLg4+w*fyl2xLg6))
	t2 := z * (fyl2xLg1 + w*(fyl2xLg3+w*(fyl2xLg5+w*fyl2xLg7)))
	i |= j
	r := t2 + t1

	var dst fp64.F64
	if i > 0 {
		hfsq := 0.5 * f * f
		dst = fpext.SubExt64(dk80, fpext.MulExt64(fpext.FromF64((hfsq-(s*(hfsq+r)))-f), src2invln2)).ToF64()
	} else {
		dst = fpext.SubExt64(dk80, fpext.MulExt64(fpext.FromF64((s*(f-r))-f), src2invln2)).ToF64()
	}
	return dst, flags
}

var (
	fyl2xp1Ln2Hi = fp64.FromBits(0x3fe62e42fee00000)
	fyl2xp1Ln2Lo = fp64.FromBits(0x3dea39ef35793c76)
	fyl2xp1Lp    = [8]fp64.F64{
		fp64.FromBits(0x0000000000000000),
		fp64.FromBits(0x3FE5555555555593),
		fp64.FromBits(0x3FD999999997FA04),
		fp64.FromBits(0x3FD2492494229359),
		fp64.FromBits(0x3FCC71C51D8E78AF),
		fp64.FromBits(0x3FC7466496CB03DE),
		fp64.FromBits(0x3FC39A09D078C69F),
		fp64.FromBits(0x3FC2F112DF3E5244),
	}
)

// FYl2xp1 computes src2 * log2(src1+1), ported from the __ieee754_log1p
// libm kernel, valid for src1 in roughly [-1+2^-64, 2-sqrt(2)].
func FYl2xp1(src1, src2 fp64.F64) (fp64.F64, sw.Word) {
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
		if (src1.Sign() && src1.Exp() >= 0) || src2.IsZero() {
			return indef(flags)
		}
		return infinity(flags, src2.Sign())
	}
	if isMaxExp(src2) {
		if src2.IsNaN() {
			return qnan(flags, src2)
		}
		if src1.IsZero() || src1 == -1 {
			return indef(flags)
		}
		return infinity(flags, src1.Sign() != src2.Sign())
	}
	if src1 == -1 {
		if src2.IsZero() {
			return indef(flags)
		}
		return infinity(flags, !src2.Sign())
	}
	if src1 < -1 {
		if src2.IsZero() {
			return zero(flags, !src2.Sign())
		}
		flags.Precision = true
		return src1, flags
	}
	if src2.IsZero() {
		return zero(flags, src2.Sign() != src1.Sign())
	}

	invln2 := fpext.Ext64L2E
	src2invln2 := fpext.MulExt64(fpext.FromF64(src2), invln2)

	if !src1.IsZero() {
		flags.Precision = true
	}

	hx := int32(src1.Bits() >> 32)
	ax := hx & 0x7fffffff

	k := int32(1)
	var f, c fp64.F64
	var hu int32

	if hx < 0x3FDA827A { // x < 0.41422
		if ax < 0x3e200000 { // |x| < 2**-29
			if ax < 0x3c900000 { // |x| < 2**-54
				return fpext.MulExt64(fpext.FromF64(src1), src2invln2).ToF64(), flags
			}
			dst := fpext.MulExt64(fpext.FromF64(src1-src1*src1*0.5), src2invln2).ToF64()
			return dst, flags
		}
		if hx > 0 || hx <= IC(0xbfd2bec3) { // -0.2929<x<0.41422
			k = 0
			f = src1
			hu = 1
			c = 0
		}
	}
	if k != 0 {
		var u fp64.F64
		if hx < IC(0x43400000) {
			u = 1.0 + src1
			hu = int32(u.Bits() >> 32)
			k = u.Exp()
			if k > 0 {
				c = 1.0 - (u - src1)
			} else {
				c = src1 - (u - 1.0)
			}
			c /= u
		} else {
			u = src1
			hu = int32(u.Bits() >> 32)
			k = u.Exp()
			c = 0
		}
		hu &= 0x000fffff
		if hu < 0x6a09e {
			u = fp64.FromBits((u.Bits() & fp64MantissaMask64) | 0x3ff0000000000000) // normalize u
		} else {
			k++
			u = fp64.FromBits((u.Bits() & fp64MantissaMask64) | 0x3fe0000000000000) // normalize u/2
			hu = (0x00100000 - hu) >> 2
		}
		f = u - 1.0
	}

	hfsq := 0.5 * f * f
	if hu == 0 { // |f| < 2**-20
		if f == 0 {
			if k == 0 {
				return fp64.Zero(false), flags
			}
			c += fp64.F64(k) * fyl2xp1Ln2Lo
			dst := fpext.MulExt64(fpext.FromF64(fp64.F64(k)*fyl2xp1Ln2Hi+c), src2invln2).ToF64()
			return dst, flags
		}
		r := hfsq * (1.0 - 0.66666666666666666*f)
		var dst fp64.F64
		if k == 0 {
			dst = fpext.MulExt64(fpext.FromF64(f-r), src2invln2).ToF64()
		} else {
			dst = fpext.MulExt64(fpext.FromF64(fp64.F64(k)*fyl2xp1Ln2Hi-((r-(fp64.F64(k)*fyl2xp1Ln2Lo+c))-f)), src2invln2).ToF64()
		}
		return dst, flags
	}

	s := f / (2.0 + f)
	z := s * s
	r1 := z * fyl2xp1Lp[1]
	z2 := z * z
	r2 := fyl2xp1Lp[2] + z*fyl2xp1Lp[3]
	z4 := z2 * z2
	r3 := fyl2xp1Lp[4] + z*fyl2xp1Lp[5]
	z6 := z4 * z2
	r4 := fyl2xp1Lp[6] + z*fyl2xp1Lp[7]
	r := r1 + z2*r2 + z4*r3 + z6*r4

	var dst fp64.F64
	if k == 0 {
		dst = fpext.MulExt64(fpext.FromF64(f-(hfsq-s*(hfsq+r))), src2invln2).ToF64()
	} else {
		dst = fpext.MulExt64(fpext.FromF64(fp64.F64(k)*fyl2xp1Ln2Hi-((hfsq-(s*(hfsq+r)+(fp64.F64(k)*fyl2xp1Ln2Lo+c)))-f)), src2invln2).ToF64()
	}
	return dst, flags
}

// IC narrows a 32 bit bit pattern to its signed interpretation, matching the
// source's own IC() macro at call sites that compare against negative
// literals.
func IC(x uint32) int32 { return int32(x) }
