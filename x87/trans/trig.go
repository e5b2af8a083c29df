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

const (
	trigInvPio4Hi = 0xa2f9836e4e44152a
	trigInvPio4Lo = 0x00062bc40da28000
	trigPio4Hi    = 0xc90fdaa22168c234
	trigPio4Lo    = 0xc000000000000000
)

// reduceTrig reduces |src| to a signed delta in [-pi/4,pi/4] plus a quadrant index,
// using the 66 bit approximation of pi the x87 hardware itself is built
// from - see Intel's own "x87 trigonometric instructions vs math functions"
// note - so results track real silicon rather than drifting off to
// whichever pi a general-purpose bignum library would pick.
func reduceTrig(src fp64.F64) (quadrant uint32, delta fpext.Ext52) {
	src = fp64.Abs(src)
	delta = fpext.Ext52FromF64(src)

	if src < 0.7853981633974483096 {
		return 0, delta
	}

	srcman := delta.Mantissa()
	srcexp := delta.Exponent()

	divProd := bits.Multiply64x64(srcman, trigInvPio4Hi)
	loProd := bits.Multiply64x64(srcman, trigInvPio4Lo)
	divmid, divhi := divProd.Lo, divProd.Hi
	divmid += loProd.Hi
	if divmid < loProd.Hi {
		divhi++
	}

	result := divhi >> uint(62-srcexp)

	evenodd := result & 1
	result += evenodd

	mulProd := bits.Multiply64x64(result, trigPio4Hi)
	loProd2 := bits.Multiply64x64(result, trigPio4Lo)
	mulmid, mulhi := mulProd.Lo, mulProd.Hi
	mullo := loProd2.Lo
	mulmid += loProd2.Hi
	if mulmid < loProd2.Hi {
		mulhi++
	}

	shift := 1 + int(srcexp)
	if shift != 0 {
		mullo = (mullo >> uint(shift)) | (mulmid << uint(64-shift))
		mulmid = (mulmid >> uint(shift)) | (mulhi << uint(64-shift))
	}

	var sign bool
	if evenodd == 0 {
		srcman = srcman - mulmid - 1
		mullo = uint64(-int64(mullo))
		sign = false
	} else {
		srcman = mulmid - srcman
		sign = true
	}

	if srcman == 0 {
		srcman = mullo
		mullo = 0
		srcexp -= 64
	}
	if lz := bits.CountLeadingZeros64(srcman); lz != 0 {
		srcman = (srcman << uint(lz)) | (mullo >> uint(64-lz))
		srcexp -= int32(lz)
	}

	delta = fpext.NewExt52(srcman, 0, srcexp, sign)
	return uint32(result), delta
}

func polyEvalExt52(x fpext.Ext52, coeffs []fpext.Ext52) fpext.Ext52 {
	r := coeffs[0]
	for _, c := range coeffs[1:] {
		r = fpext.AddExt52(fpext.MulExt52(r, x), c)
	}
	return r
}

func poly1EvalExt52(x fpext.Ext52, coeffs []fpext.Ext52) fpext.Ext52 {
	r := fpext.AddExt52(x, coeffs[0])
	for _, c := range coeffs[1:] {
		r = fpext.AddExt52(fpext.MulExt52(r, x), c)
	}
	return r
}

// trigFlags computes the PRECISION/DENORM pair every sin/cos/sincos/tan
// kernel raises for a non-zero argument, shared because all four compute it
// identically.
func trigFlags(src fp64.F64) sw.Word {
	var flags sw.Word
	switch {
	case src.IsZero():
	case src.IsDenormal():
		flags.Precision = true
		flags.Denormal = true
	default:
		flags.Precision = true
	}
	return flags
}

func trigOOB1(src fp64.F64) (fp64.F64, sw.Word) {
	var flags sw.Word
	if src.IsNaN() {
		return qnan(flags, src)
	}
	if src.IsInf() {
		return indef(flags)
	}
	flags.C2 = true
	return src, flags
}

func trigOOB2(src fp64.F64) (fp64.F64, fp64.F64, sw.Word) {
	var flags sw.Word
	if src.IsNaN() {
		return qnan2(flags, src)
	}
	if src.IsInf() {
		return indef2(flags)
	}
	flags.C2 = true
	return src, fp64.Zero(false), flags
}

var sinCoeffs = [7]fpext.Ext52{
	fpext.NewExt52(0xd5512389e1d64e26, 0x9f89cf50, -41, true),
	fpext.NewExt52(0xb0904623e70664d7, 0x67a8f274, -33, false),
	fpext.NewExt52(0xd7322946bf3401b0, 0xbe53b744, -26, true),
	fpext.NewExt52(0xb8ef1d299845c8f6, 0xd25b9a66, -19, false),
	fpext.NewExt52(0xd00d00d00c536514, 0x3dde3d85, -13, true),
	fpext.NewExt52(0x8888888888885699, 0xb8fd9374, -7, false),
	fpext.NewExt52(0xaaaaaaaaaaaaaa97, 0x2da4d5f5, -3, true),
}

var cosCoeffs = [7]fpext.Ext52{
	fpext.NewExt52(0xd55e8c3a6f997436, 0x5436d2ee, -45, false),
	fpext.NewExt52(0xc9c9920f58f42f36, 0xfafa14fe, -37, true),
	fpext.NewExt52(0x8f76c648659e534f, 0xab5f5d64, -29, false),
	fpext.NewExt52(0x93f27dbaf5c64d2b, 0x0e941cac, -22, true),
	fpext.NewExt52(0xd00d00d00c6653ed, 0x149dcc8a, -16, false),
	fpext.NewExt52(0xb60b60b60b607b66, 0xd4ce5b04, -10, true),
	fpext.NewExt52(0xaaaaaaaaaaaaaa99, 0xa9939f52, -5, false),
}

func sincosSin(z, zz fpext.Ext52) fpext.Ext52 {
	return fpext.AddExt52(z, fpext.MulExt52(fpext.MulExt52(z, zz), polyEvalExt52(zz, sinCoeffs[:])))
}

func sincosCos(zz fpext.Ext52) fpext.Ext52 {
	return fpext.AddExt52(fpext.SubExt52(fpext.Ext52One, fpext.LdexpExt52(zz, -1)), fpext.MulExt52(fpext.MulExt52(zz, zz), polyEvalExt52(zz, cosCoeffs[:])))
}

// FSin computes sin(src), ported from the sinl implementation in the 80 bit
// Cephes library, worked here at the fpext52_t precision the source found
// gave the best accuracy/speed tradeoff for this kernel.
func FSin(src fp64.F64) (fp64.F64, sw.Word) {
	if src.Exp() >= 63 {
		return trigOOB1(src)
	}

	sign := uint32(0)
	if src.Sign() {
		sign = 1
	}
	flags := trigFlags(src)

	j, z := reduceTrig(src)
	zz := fpext.MulExt52(z, z)

	var dst fp64.F64
	if (j+1)&2 != 0 {
		dst = sincosCos(zz).ToF64()
	} else {
		dst = sincosSin(z, zz).ToF64()
	}
	if (sign^(j>>2))&1 != 0 {
		dst = -dst
	}
	return dst, flags
}

// FCos computes cos(src), the same Cephes kernel as FSin with the quadrant
// table swapped.
func FCos(src fp64.F64) (fp64.F64, sw.Word) {
	if src.Exp() >= 63 {
		return trigOOB1(src)
	}

	j, z := reduceTrig(src)
	zz := fpext.MulExt52(z, z)
	flags := trigFlags(src)

	var dst fp64.F64
	if (j+1)&2 != 0 {
		dst = sincosSin(z, zz).ToF64()
	} else {
		dst = sincosCos(zz).ToF64()
	}
	if ((j>>1)^j)&2 != 0 {
		dst = -dst
	}
	return dst, flags
}

// FSinCos computes sin(src) and cos(src) in one argument reduction,
// matching the FSINCOS opcode's (dst1=sin, dst2=cos) stack order.
func FSinCos(src fp64.F64) (dst1, dst2 fp64.F64, flags sw.Word) {
	if src.Exp() >= 63 {
		return trigOOB2(src)
	}

	j, z := reduceTrig(src)
	zz := fpext.MulExt52(z, z)
	flags = trigFlags(src)

	sign := uint32(0)
	if src.Sign() {
		sign = 1
	}

	res1 := sincosSin(z, zz).ToF64()
	res2 := sincosCos(zz).ToF64()
	if (j+1)&2 != 0 {
		dst1, dst2 = res2, res1
	} else {
		dst1, dst2 = res1, res2
	}
	if (sign^(j>>2))&1 != 0 {
		dst1 = -dst1
	}
	if ((j>>1)^j)&2 != 0 {
		dst2 = -dst2
	}
	return dst1, dst2, flags
}

var fptanP = [3]fpext.Ext52{
	fpext.NewExt52(0xcc96c69279f9bc1c, 0x3df84886, 13, true),
	fpext.NewExt52(0x8ccf652fe4eee5b1, 0x4f58e5c3, 20, false),
	fpext.NewExt52(0x88ff56994c8baf99, 0x8b70bfaf, 24, true),
}

var fptanQ = [4]fpext.Ext52{
	fpext.NewExt52(0xd5c52f759b2b8ed3, 0xe2c5b9a6, 13, false),
	fpext.NewExt52(0xa13de2c155e4adcd, 0x58dfd25f, 20, true),
	fpext.NewExt52(0xbecc7e1756c77adf, 0x21bc5195, 24, false),
	fpext.NewExt52(0xcd7f01e5f2d186f6, 0x1dc3e1c7, 25, true),
}

// FPtan computes tan(src) into dst2 and pushes the constant 1.0 as dst1, so
// the stack ends up holding tan then 1 as the FPTAN opcode requires.
// Ported from the tanl implementation in the 80 bit Cephes library.
func FPtan(src fp64.F64) (dst1, dst2 fp64.F64, flags sw.Word) {
	if src.Exp() >= 63 {
		return trigOOB2(src)
	}

	j, z := reduceTrig(src)
	sign := src.Sign()
	flags = trigFlags(src)

	zz := fpext.MulExt52(z, z)
	var res fp64.F64
	if zz.Exponent() > -67 {
		num := fpext.MulExt52(fpext.MulExt52(z, zz), polyEvalExt52(zz, fptanP[:]))
		den := poly1EvalExt52(zz, fptanQ[:])
		res = z.ToF64() + num.ToF64()/den.ToF64()
	} else {
		res = z.ToF64()
	}

	if j&2 != 0 {
		res = -1.0 / res
	}
	if sign {
		res = -res
	}
	return 1.0, res, flags
}
