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

// FXtract splits src into its significand (dstSig, in [1,2) with src's
// sign) and its unbiased exponent (dstExp, as an integral double). A zero
// source reports significand ±0, exponent -infinity and DIVZERO; an
// infinite source reports significand ±infinity unchanged and exponent
// +infinity.
func FXtract(src fp64.F64) (dstSig, dstExp fp64.F64, flags sw.Word) {
	if src.IsDenormal() {
		flags.Denormal = true
	}

	if isMaxExp(src) {
		if src.IsNaN() {
			return qnan2(flags, src)
		}
		dstSig, flags = infinity(flags, src.Sign())
		dstExp, _ = infinity(flags, false)
		return dstSig, dstExp, flags
	}

	if src.IsZero() {
		dstSig, flags = zero(flags, src.Sign())
		dstExp = fp64.Inf(true)
		flags.DivByZero = true
		return dstSig, dstExp, flags
	}

	e := fpext.FromF64(src)
	sig := fpext.Ext64{Mantissa: e.Mantissa, Exponent: 0, Sign: e.Sign}
	dstSig = sig.ToF64()
	dstExp = fp64.F64(e.Exponent)
	return dstSig, dstExp, flags
}
