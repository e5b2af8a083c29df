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

const (
	f2xm1LogR = 4
	f2xm1R    = 1 << f2xm1LogR
	f2xm1Size = 2*f2xm1R + 1
)

// ext64HighLow builds an Ext64 from the source's own (high, low) hex pairs,
// applying the same "fold the dropped 32 bits' top bit into the kept
// mantissa" rounding the scalar constants in x87/fpext apply - every entry
// in the table below is transcribed straight from the wider 96 bit literal,
// not hand-rounded.
func ext64HighLow(high uint64, low uint32, exp int32, sign bool) fpext.Ext64 {
	if low&0x80000000 != 0 {
		high++
	}
	return fpext.Ext64{Mantissa: high, Exponent: exp, Sign: sign}
}

// f2xm1TableG holds 2^(k/16)-centered constants for k in [-16,16], used as
// the additive correction term once the argument has been rounded to the
// nearest sixteenth.
var f2xm1TableG = [f2xm1Size]fpext.Ext64{
	ext64HighLow(0x8000000000000000, 0x00000000, -1, true),
	ext64HighLow(0xf4aa7930676f09d6, 0x746d48e8, -2, true),
	ext64HighLow(0xe8d47c382ae85232, 0x08373af1, -2, true),
	ext64HighLow(0xdc785918a9dc7993, 0xe0524e3f, -2, true),
	ext64HighLow(0xcf901f5ce48ead21, 0x72a5b9d0, -2, true),
	ext64HighLow(0xc2159b3edcbddca4, 0xbeddc1ec, -2, true),
	ext64HighLow(0xb40252ac9d5d8e2b, 0xc685013c, -2, true),
	ext64HighLow(0xa54f822b7abd6a73, 0x6cfeae6e, -2, true),
	ext64HighLow(0x95f619980c4336f7, 0x4d04ec99, -2, true),
	ext64HighLow(0x85eeb8c14fe79282, 0xaefdc093, -2, true),
	ext64HighLow(0xea6357baabe4948b, 0x0754bcda, -3, true),
	ext64HighLow(0xc76dcfab81edfc70, 0x7729f1c2, -3, true),
	ext64HighLow(0xa2ec0cd4a58a542f, 0x1965d11a, -3, true),
	ext64HighLow(0xf999089eab58f777, 0xcd3b57dc, -4, true),
	ext64HighLow(0xa9f9c8c116de3689, 0x7e945264, -4, true),
	ext64HighLow(0xada82eadb7933d38, 0x462f3851, -5, true),
	{Mantissa: 0, Exponent: fpext.ExponentMin, Sign: false},
	ext64HighLow(0xb5586cf9890f6298, 0xb92b7184, -5, false),
	ext64HighLow(0xb95c1e3ea8bd6e6f, 0xbe462876, -4, false),
	ext64HighLow(0x8e1e9b9d588e19b0, 0x7eb6c705, -3, false),
	ext64HighLow(0xc1bf828c6dc54b7a, 0x356918c1, -3, false),
	ext64HighLow(0xf7a993048d088d6d, 0x0488f84f, -3, false),
	ext64HighLow(0x97fb5aa6c544e3a8, 0x72f5fd88, -2, false),
	ext64HighLow(0xb560fba90a852b19, 0x2602a324, -2, false),
	ext64HighLow(0xd413cccfe7799211, 0x65f626ce, -2, false),
	ext64HighLow(0xf4228e7d6030dafa, 0xa2047eda, -2, false),
	ext64HighLow(0x8ace5422aa0db5ba, 0x7c55a193, -1, false),
	ext64HighLow(0x9c49182a3f0901c7, 0xc46b071f, -1, false),
	ext64HighLow(0xae89f995ad3ad5e8, 0x734d1773, -1, false),
	ext64HighLow(0xc199bdd85529c222, 0x0cb12a09, -1, false),
	ext64HighLow(0xd5818dcfba48725d, 0xa05aeb67, -1, false),
	ext64HighLow(0xea4afa2a490d9858, 0xf73a18f6, -1, false),
	ext64HighLow(0x8000000000000000, 0x00000000, 0, false),
}

// f2xm1TableU holds the corresponding table of sixteenths themselves, as
// plain doubles, for computing the delta from the nearest one.
var f2xm1TableU = [f2xm1Size]fp64.F64{
	-16.0 / 16.0, -15.0 / 16.0, -14.0 / 16.0, -13.0 / 16.0,
	-12.0 / 16.0, -11.0 / 16.0, -10.0 / 16.0, -9.0 / 16.0,
	-8.0 / 16.0, -7.0 / 16.0, -6.0 / 16.0, -5.0 / 16.0,
	-4.0 / 16.0, -3.0 / 16.0, -2.0 / 16.0, -1.0 / 16.0,
	0.0 / 16.0,
	1.0 / 16.0, 2.0 / 16.0, 3.0 / 16.0, 4.0 / 16.0,
	5.0 / 16.0, 6.0 / 16.0, 7.0 / 16.0, 8.0 / 16.0,
	9.0 / 16.0, 10.0 / 16.0, 11.0 / 16.0, 12.0 / 16.0,
	13.0 / 16.0, 14.0 / 16.0, 15.0 / 16.0, 16.0 / 16.0,
}

var f2xm1TaylorCoeff = [7]fp64.F64{8.0, 8.0 * 7, 8.0 * 7 * 6, 8.0 * 7 * 6 * 5, 8.0 * 7 * 6 * 5 * 4, 8.0 * 7 * 6 * 5 * 4 * 3, 8.0 * 7 * 6 * 5 * 4 * 3 * 2}

var f2xm1TaylorFactorialInv = fp64.F64(1.0 / (8 * 7 * 6 * 5 * 4 * 3 * 2))

// F2xm1 computes 2^src - 1 for src in [-1,1), via a 33-entry table lookup
// to the nearest sixteenth plus an eighth-order Taylor expansion of the
// remaining e^w-1 term, carried in extended precision.
func F2xm1(src fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word

	exponent := src.Exp()
	if exponent >= 0 {
		return f2xm1Special(src)
	}
	if exponent <= -1000 {
		return f2xm1Tiny(src)
	}

	gIndex := int32(0)
	if exponent >= -f2xm1LogR-1 {
		mantissa := src.Bits()&(uint64(1)<<52-1) | uint64(1)<<52
		shift := uint(52 - f2xm1LogR - exponent - 1)
		gIndex = int32(mantissa >> shift)
		gIndex = (gIndex >> 1) + (gIndex & 1)
		if src.Sign() {
			gIndex = -gIndex
		}
	}

	v := src - f2xm1TableU[gIndex+f2xm1R]
	w := fpext.MulExt64(fpext.FromF64(v), fpext.Ext64Ln2)

	w64 := w.ToF64()
	h64 := w64 + f2xm1TaylorCoeff[0]
	for term := 1; term < len(f2xm1TaylorCoeff)-1; term++ {
		h64 = h64*w64 + f2xm1TaylorCoeff[term]
	}
	h64 *= w64 * w64
	h64 *= f2xm1TaylorFactorialInv

	h := fpext.AddExt64(fpext.FromF64(h64), w)
	g := f2xm1TableG[gIndex+f2xm1R]

	dst := fpext.AddExt64(fpext.AddExt64(fpext.MulExt64(g, h), g), h).ToF64()
	flags.Precision = true
	return dst, flags
}

func f2xm1Special(src fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word
	if src.Bits() == 0xbff0000000000000 {
		flags.Precision = true
		return fp64.FromBits(0xbfe0000000000000), flags
	}
	if isMaxExp(src) {
		if src.IsNaN() {
			return qnan(flags, src)
		}
		if src.Sign() {
			return fp64.FromBits(0xbff0000000000000), flags
		}
		return infinity(flags, false)
	}
	if src.IsZero() {
		return src, flags
	}
	flags.Precision = true
	return src, flags
}

func f2xm1Tiny(src fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word
	if src.IsZero() {
		return src, flags
	}
	dst := fpext.MulExt64(fpext.FromF64(src), fpext.Ext64Ln2).ToF64()
	flags.Precision = true
	if src.IsDenormal() {
		flags.Denormal = true
	}
	return dst, flags
}
