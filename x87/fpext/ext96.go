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

package fpext

import (
	"github.com/jetsetilly/x87fpu/x87/bits"
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/fp80"
)

// Ext96 is the guard-precision exploded value: a 64 bit mantissa plus a 32
// bit extension, giving 96 bits of working precision. Used by the
// reduction steps that would otherwise lose the bits Ext64 rounds away.
type Ext96 struct {
	Mantissa uint64
	Extend   uint32
	Exponent int32
	Sign     bool
}

const ext96ExtendBits = 32
const ext96MantissaBits = 96

var (
	Ext96Zero  = Ext96{Mantissa: 0, Extend: 0, Exponent: ExponentMin, Sign: false}
	Ext96NZero = Ext96{Mantissa: 0, Extend: 0, Exponent: ExponentMin, Sign: true}
	Ext96One   = Ext96{Mantissa: ExplicitOne, Extend: 0, Exponent: 0, Sign: false}
	Ext96NOne  = Ext96{Mantissa: ExplicitOne, Extend: 0, Exponent: 0, Sign: true}
	Ext96L2T   = Ext96{Mantissa: 0xd49a784bcd1b8afe, Extend: 0x492bf6ff, Exponent: 1, Sign: false}
	Ext96L2E   = Ext96{Mantissa: 0xb8aa3b295c17f0bb, Extend: 0xbe87fed0, Exponent: 0, Sign: false}
	Ext96Pi    = Ext96{Mantissa: 0xc90fdaa22168c234, Extend: 0xc4c6628c, Exponent: 1, Sign: false}
	Ext96PiO2  = Ext96{Mantissa: 0xc90fdaa22168c234, Extend: 0xc4c6628c, Exponent: 0, Sign: false}
	Ext96PiO4  = Ext96{Mantissa: 0xc90fdaa22168c234, Extend: 0xc4c6628c, Exponent: -1, Sign: false}
	Ext96Lg2   = Ext96{Mantissa: 0x9a209a84fbcff798, Extend: 0x8f8959ac, Exponent: -2, Sign: false}
	Ext96Ln2   = Ext96{Mantissa: 0xb17217f7d1cf79ab, Extend: 0xc9e3b398, Exponent: -1, Sign: false}
)

// IsZero reports mantissa and extend both clear.
func (e Ext96) IsZero() bool { return e.Mantissa == 0 && e.Extend == 0 }

// Abs clears the sign.
func (e Ext96) Abs() Ext96 { e.Sign = false; return e }

// Neg flips the sign.
func (e Ext96) Neg() Ext96 { e.Sign = !e.Sign; return e }

func (e Ext96) normalize() Ext96 {
	if e.IsZero() {
		e.Exponent = ExponentMin
		return e
	}
	if e.Mantissa != 0 {
		shift := bits.CountLeadingZeros64(e.Mantissa)
		if shift == 0 {
			return e
		}
		e.Mantissa <<= uint(shift)
		e.Exponent -= int32(shift)
		if shift < ext96ExtendBits {
			e.Mantissa |= uint64(e.Extend) >> uint(ext96ExtendBits-shift)
			e.Extend <<= uint(shift)
		} else {
			e.Mantissa |= uint64(e.Extend) << uint(shift-ext96ExtendBits)
			e.Extend = 0
		}
		return e
	}
	shift := bits.CountLeadingZeros64(uint64(e.Extend))
	e.Mantissa = uint64(e.Extend) << uint(shift)
	e.Extend = 0
	e.Exponent -= ext96ExtendBits + int32(shift)
	return e
}

func (e Ext96) mantissaLt(o Ext96) bool {
	if e.Mantissa != o.Mantissa {
		return e.Mantissa < o.Mantissa
	}
	return e.Extend < o.Extend
}

func (e Ext96) shiftRight(count int) Ext96 {
	if count < ext96ExtendBits {
		e.Extend = uint32(uint64(e.Extend)>>uint(count) | e.Mantissa<<uint(ext96ExtendBits-count))
		e.Mantissa >>= uint(count)
	} else {
		e.Extend = uint32(e.Mantissa >> uint(count-ext96ExtendBits))
		if count < 64 {
			e.Mantissa >>= uint(count)
		} else {
			e.Mantissa = ExplicitOne
		}
	}
	return e
}

func roundMantissaUp96(e Ext96) Ext96 {
	e.Mantissa++
	if e.Mantissa == 0 {
		e.Mantissa = ExplicitOne
		e.Exponent++
	}
	return e
}

func roundExtendUp96(e Ext96) Ext96 {
	e.Extend++
	if e.Extend == 0 {
		return roundMantissaUp96(e)
	}
	return e
}

func shiftedMagnitude96(src2 Ext96, src2shift int32) (src2e uint32, src2m uint64) {
	switch {
	case src2shift == 0:
		return src2.Extend, src2.Mantissa
	case src2shift < ext96ExtendBits:
		src2e = uint32(uint64(src2.Extend)>>uint(src2shift) | src2.Mantissa<<uint(ext96ExtendBits-src2shift))
		src2m = src2.Mantissa >> uint(src2shift)
		if src2.Extend&(uint32(1)<<uint(src2shift-1)) != 0 {
			src2e++
			if src2e == 0 {
				src2m++
			}
		}
	default:
		src2e = uint32(src2.Mantissa >> uint(src2shift-ext96ExtendBits))
		if src2shift < 64 {
			src2m = src2.Mantissa >> uint(src2shift)
		}
		if src2shift != ext96ExtendBits && src2.Mantissa&(uint64(1)<<uint(src2shift-ext96ExtendBits-1)) != 0 {
			src2e++
			if src2e == 0 {
				src2m++
			}
		}
	}
	return src2e, src2m
}

func addMagnitudes96(src1, src2 Ext96, src2shift int32) Ext96 {
	if src2shift >= ext96MantissaBits {
		return Ext96{Mantissa: src1.Mantissa, Extend: src1.Extend, Exponent: src1.Exponent}
	}
	src2e, src2m := shiftedMagnitude96(src2, src2shift)

	mantissa := src1.Mantissa + src2m
	carry := mantissa < src2m
	extend := src1.Extend + src2e

	r := Ext96{Mantissa: mantissa, Extend: extend, Exponent: src1.Exponent}
	if extend < src2e {
		r = roundMantissaUp96(r)
	}
	if carry {
		r = r.shiftRight(1)
		r.Mantissa |= ExplicitOne
		r.Exponent++
	}
	return r
}

func subMagnitudes96(src1, src2 Ext96, src2shift int32) Ext96 {
	if src2shift >= ext96MantissaBits {
		return Ext96{Mantissa: src1.Mantissa, Extend: src1.Extend, Exponent: src1.Exponent}
	}
	src2e, src2m := shiftedMagnitude96(src2, src2shift)

	orig := src1.Extend
	extend := orig - src2e
	mantissa := src1.Mantissa - src2m
	if extend > orig {
		mantissa--
	}
	r := Ext96{Mantissa: mantissa, Extend: extend, Exponent: src1.Exponent}
	return r.normalize()
}

// AddExt96 computes a+b at 96 bit working precision.
func AddExt96(a, b Ext96) Ext96 {
	signdiff := a.Sign != b.Sign
	dexp := a.Exponent - b.Exponent

	var r Ext96
	if !signdiff {
		if dexp >= 0 {
			r = addMagnitudes96(a, b, dexp)
		} else {
			r = addMagnitudes96(b, a, -dexp)
		}
		r.Sign = a.Sign
		return r
	}

	if dexp > 0 || (dexp == 0 && !a.mantissaLt(b)) {
		r = subMagnitudes96(a, b, dexp)
		r.Sign = a.Sign
	} else {
		r = subMagnitudes96(b, a, -dexp)
		r.Sign = b.Sign
	}
	return r
}

// SubExt96 computes a-b at 96 bit working precision.
func SubExt96(a, b Ext96) Ext96 {
	signdiff := a.Sign != b.Sign
	dexp := a.Exponent - b.Exponent

	var r Ext96
	if signdiff {
		if dexp >= 0 {
			r = addMagnitudes96(a, b, dexp)
		} else {
			r = addMagnitudes96(b, a, -dexp)
		}
		r.Sign = a.Sign
		return r
	}

	if dexp > 0 || (dexp == 0 && !a.mantissaLt(b)) {
		r = subMagnitudes96(a, b, dexp)
		r.Sign = a.Sign
	} else {
		r = subMagnitudes96(b, a, -dexp)
		r.Sign = !a.Sign
	}
	return r
}

// MulExt96 computes a*b including the cross terms between each operand's
// mantissa and the other's 32 bit extension, then normalizes the 96+ bit
// product back down to 96 bits with round-to-nearest.
func MulExt96(a, b Ext96) Ext96 {
	sign := a.Sign != b.Sign
	if a.IsZero() || b.IsZero() {
		return Ext96{Mantissa: 0, Extend: 0, Exponent: ExponentMin, Sign: sign}
	}

	p := bits.Multiply64x64(a.Mantissa, b.Mantissa)
	lo, hi := p.Lo, p.Hi

	p1 := bits.Multiply64x64(a.Mantissa, uint64(b.Extend))
	p2 := bits.Multiply64x64(b.Mantissa, uint64(a.Extend))

	hiadd := p1.Hi + p2.Hi
	loadd := p1.Lo + p2.Lo
	if loadd < p2.Lo {
		hiadd++
	}

	lo3 := (uint64(a.Extend) * uint64(b.Extend)) >> (2*ext96ExtendBits - 32)
	loadd += lo3
	if loadd < lo3 {
		hiadd++
	}

	loadd = loadd>>32 | hiadd<<32
	hiadd >>= 32

	lo += loadd
	if lo < loadd {
		hi++
	}
	hi += hiadd

	exponent := a.Exponent + b.Exponent

	var r Ext96
	if hi&ExplicitOne == 0 {
		mantissa := hi<<1 | lo>>63
		extend := uint32(lo >> (63 - ext96ExtendBits))
		r = Ext96{Mantissa: mantissa, Extend: extend, Exponent: exponent, Sign: sign}
		if lo&(uint64(1)<<(63-ext96ExtendBits-1)) != 0 {
			r = roundExtendUp96(r)
		}
	} else {
		extend := uint32(lo >> (64 - ext96ExtendBits))
		r = Ext96{Mantissa: hi, Extend: extend, Exponent: exponent + 1, Sign: sign}
		if lo&(uint64(1)<<(64-ext96ExtendBits-1)) != 0 {
			r = roundExtendUp96(r)
		}
	}
	return r
}

// FloorExt96 rounds a toward negative infinity to the nearest integer.
func FloorExt96(a Ext96) Ext96 {
	mantissa, extend, exp := a.Mantissa, a.Extend, a.Exponent

	if !a.Sign {
		if exp < 0 {
			return Ext96Zero
		}
		if exp <= ext96MantissaBits-1 {
			shift := ext96MantissaBits - 1 - exp
			extendMask, mantissaMask := floorMasks96(shift)
			return Ext96{Mantissa: mantissa & mantissaMask, Extend: extend & extendMask, Exponent: exp}
		}
		return a
	}

	if exp < 0 {
		return Ext96NOne
	}
	if exp <= ext96MantissaBits-1 {
		shift := ext96MantissaBits - 1 - exp
		extendMask, mantissaMask := floorMasks96(shift)
		extendSum := extend + ^extendMask
		carry := extendSum < extend
		mantissaSum := mantissa + ^mantissaMask
		if carry {
			mantissaSum++
		}
		if mantissaSum < mantissa {
			newMantissa := (mantissaSum&mantissaMask)>>1 | ExplicitOne
			newExtend := uint32(uint64(extendSum)>>1 | mantissaSum<<uint(ext96ExtendBits-1))
			return Ext96{Mantissa: newMantissa, Extend: newExtend, Exponent: exp + 1, Sign: true}
		}
		return Ext96{Mantissa: mantissaSum & mantissaMask, Extend: extendSum & extendMask, Exponent: exp, Sign: true}
	}
	return a
}

func floorMasks96(shift int32) (extendMask uint32, mantissaMask uint64) {
	if shift < ext96ExtendBits {
		extendMask = ^(uint32(1)<<uint(shift) - 1)
	}
	if shift > ext96ExtendBits {
		mantissaMask = ^(uint64(1)<<uint(shift-ext96ExtendBits) - 1)
	} else {
		mantissaMask = ^uint64(0)
	}
	return extendMask, mantissaMask
}

// FloorAbsLoIntExt96 floors |a| and also returns the integer bits masked
// off below the floor boundary.
func FloorAbsLoIntExt96(a Ext96) (Ext96, uint64) {
	mantissa, extend, exp := a.Mantissa, a.Extend, a.Exponent
	if exp < 0 {
		return Ext96Zero, 0
	}
	shift := ext96MantissaBits - 1 - exp
	if shift >= ext96ExtendBits {
		s := shift - ext96ExtendBits
		mantissaMask := ^(uint64(1)<<uint(s) - 1)
		intbits := mantissa >> uint(s)
		return Ext96{Mantissa: mantissa & mantissaMask, Exponent: exp}, intbits
	}
	extendMask := ^(uint32(1)<<uint(shift) - 1)
	intbits := uint64(extend>>uint(shift)) | mantissa<<uint(ext96ExtendBits-shift)
	return Ext96{Mantissa: mantissa, Extend: extend & extendMask, Exponent: exp}, intbits
}

// LdexpExt96 scales a by 2^dexp.
func LdexpExt96(a Ext96, dexp int32) Ext96 {
	a.Exponent += dexp
	return a
}

// FromF64Ext96 explodes a double into the 96 bit working format (the
// extension is always zero on the way in - there is nothing beyond a
// double's 52 bits to fill it with).
func FromF64Ext96(v fp64.F64) Ext96 {
	e := FromF64(v)
	return Ext96{Mantissa: e.Mantissa, Extend: 0, Exponent: e.Exponent, Sign: e.Sign}
}

// ToF64 collapses an Ext96 back to a double, dropping the extension.
func (e Ext96) ToF64() fp64.F64 {
	return Ext64{Mantissa: e.Mantissa, Exponent: e.Exponent, Sign: e.Sign}.ToF64()
}

// FromF80Ext96 explodes an 80 bit register value into the 96 bit working
// format.
func FromF80Ext96(f fp80.F80) Ext96 {
	e := FromF80(f)
	return Ext96{Mantissa: e.Mantissa, Extend: 0, Exponent: e.Exponent, Sign: e.Sign}
}

// ToF80 collapses an Ext96 back to the canonical 80 bit register format,
// dropping the extension.
func (e Ext96) ToF80() fp80.F80 {
	return Ext64{Mantissa: e.Mantissa, Exponent: e.Exponent, Sign: e.Sign}.ToF80()
}
