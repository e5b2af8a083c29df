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
	fpatanT3P8 = 2.41421356237309504880169
	fpatanTP8  = 4.1421356237309504880169e-1

	fpatanPi     = 3.1415926535897932384626433832795
	fpatanNPi    = -3.1415926535897932384626433832795
	fpatanPiO2   = 1.5707963267948966192313216916398
	fpatanNPiO2  = -1.5707963267948966192313216916398
	fpatanPiO4   = 0.78539816339744830961566084581988
	fpatanNPiO4  = -0.78539816339744830961566084581988
	fpatanPi3O4  = 2.3561944901923449288469825374596
	fpatanNPi3O4 = -2.3561944901923449288469825374596
)

var fpatanP = [5]fpext.Ext64{
	ext64HighLow(0xde5f1266ce538ece, 0x45933bae, -1, true),
	ext64HighLow(0xeaefa6bfa06107e6, 0x6f351563, 3, true),
	ext64HighLow(0xffe8557ff29153ee, 0x47487583, 5, true),
	ext64HighLow(0xc7fa3f3eeda6f9d5, 0xa7a03a0c, 6, true),
	ext64HighLow(0xcb9393616abcb6c3, 0x53e3ffa9, 5, true),
}

var fpatanQ = [5]fpext.Ext64{
	ext64HighLow(0xb7dae76e894e54d3, 0xee74072e, 4, false),
	ext64HighLow(0x8ffdafa27a4676b8, 0xd644a00e, 7, false),
	ext64HighLow(0xb4b86beee9c0e3a9, 0x5df2ff95, 8, false),
	ext64HighLow(0xc3c9b09850a7abc0, 0xb934a367, 8, false),
	ext64HighLow(0x98aeae89100d891b, 0xd3dd1204, 7, false),
}

var (
	fpatanConstPiO2 = ext64HighLow(0xc90fdaa22168c234, 0xc0000000, 0, false)
	fpatanConstPiO4 = ext64HighLow(0xc90fdaa22168c234, 0xc0000000, -1, false)
)

func polyEvalExt64(x fpext.Ext64, coeffs []fpext.Ext64) fpext.Ext64 {
	r := coeffs[0]
	for _, c := range coeffs[1:] {
		r = fpext.AddExt64(fpext.MulExt64(r, x), c)
	}
	return r
}

func poly1EvalExt64(x fpext.Ext64, coeffs []fpext.Ext64) fpext.Ext64 {
	r := fpext.AddExt64(x, coeffs[0])
	for _, c := range coeffs[1:] {
		r = fpext.AddExt64(fpext.MulExt64(r, x), c)
	}
	return r
}

// FPatan computes atan2(src2, src1), ported from the atanl/atan2l
// implementation in the 80 bit Cephes library, at fpext64_t precision - the
// source's own accuracy/speed table shows fpext52_t "fails all over the
// place" for this kernel, unlike fsin/fcos/fsincos/fptan.
func FPatan(src1, src2 fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word
	if src1.IsDenormal() || src2.IsDenormal() {
		flags.Denormal = true
	}

	if isMaxExp(src1) {
		return fpatanSpecialX(src1, src2, flags)
	}
	if isMaxExp(src2) {
		return fpatanSpecialY(src1, src2, flags)
	}
	if src1.IsZero() {
		return fpatanZeroX(src1, src2, flags)
	}
	if src2.IsZero() {
		return fpatanZeroY(src1, src2, flags)
	}

	x := src2 / src1

	sign := false
	if x < 0 {
		sign = true
		x = -x
	}

	var yext, xext fpext.Ext64
	switch {
	case x > fpatanT3P8:
		yext = fpatanConstPiO2
		xext = fpext.FromF64(-1.0 / x)
	case x > fpatanTP8:
		yext = fpatanConstPiO4
		xext = fpext.FromF64((x - 1.0) / (x + 1.0))
	default:
		yext = fpext.Ext64Zero
		xext = fpext.FromF64(x)
	}

	z := fpext.MulExt64(xext, xext)
	div := fpext.FromF64(polyEvalExt64(z, fpatanP[:]).ToF64() / poly1EvalExt64(z, fpatanQ[:]).ToF64())
	yext = fpext.AddExt64(fpext.AddExt64(yext, fpext.MulExt64(fpext.MulExt64(div, z), xext)), xext)

	if sign {
		yext = yext.Neg()
	}

	code := 0
	if src1.Sign() {
		code |= 2
	}
	if src2.Sign() {
		code |= 1
	}

	dst := yext.ToF64()
	offsets := [4]fp64.F64{0.0, 0.0, fpatanPi, fpatanNPi}
	dst += offsets[code]

	if dst == 0 && src2.Sign() {
		dst = -dst
	}

	flags.Precision = true
	return dst, flags
}

func fpatanSpecialX(src1, src2 fp64.F64, flags sw.Word) (fp64.F64, sw.Word) {
	if src1.IsNaN() {
		return qnanPair(flags, src1, src2)
	}
	if src2.IsNaN() {
		return qnan(flags, src2)
	}

	var dst fp64.F64
	if src2.IsInf() {
		if !src1.Sign() {
			if !src2.Sign() {
				dst = fpatanPiO4
			} else {
				dst = fpatanNPiO4
			}
		} else {
			if !src2.Sign() {
				dst = fpatanPi3O4
			} else {
				dst = fpatanNPi3O4
			}
		}
	} else {
		if !src1.Sign() {
			return zero(flags, src2.Sign())
		}
		if !src2.Sign() {
			dst = fpatanPi
		} else {
			dst = fpatanNPi
		}
	}

	flags.Precision = true
	return dst, flags
}

func fpatanSpecialY(src1, src2 fp64.F64, flags sw.Word) (fp64.F64, sw.Word) {
	if src2.IsNaN() {
		return qnan(flags, src2)
	}
	var dst fp64.F64
	if !src2.Sign() {
		dst = fpatanPiO2
	} else {
		dst = fpatanNPiO2
	}
	flags.Precision = true
	return dst, flags
}

func fpatanZeroX(src1, src2 fp64.F64, flags sw.Word) (fp64.F64, sw.Word) {
	if src2.IsZero() {
		if !src1.Sign() {
			return zero(flags, src2.Sign())
		}
		if !src2.Sign() {
			return fpatanPi, flags
		}
		return fpatanNPi, flags
	}

	var dst fp64.F64
	if !src2.Sign() {
		dst = fpatanPiO2
	} else {
		dst = fpatanNPiO2
	}
	flags.Precision = true
	return dst, flags
}

func fpatanZeroY(src1, src2 fp64.F64, flags sw.Word) (fp64.F64, sw.Word) {
	if src1.Sign() {
		flags.Precision = true
	}
	if !src1.Sign() {
		return zero(flags, src2.Sign())
	}
	if !src2.Sign() {
		return fpatanPi, flags
	}
	return fpatanNPi, flags
}
