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

package fp80

import (
	"math"

	"github.com/jetsetilly/x87fpu/x87/bits"
	"github.com/jetsetilly/x87fpu/x87/cw"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

// layout describes the bit geometry of a narrower IEEE format (F64 or F32)
// so that the load/store bodies below can be written once and instantiated
// per width, per the "one body, layout constants selected by width" design
// note - a tagged-dispatch stand-in for the source's template
// specialization over integer width.
type layout struct {
	mantissaBits int
	expBits      int
	bias         int
}

var (
	layout64 = layout{mantissaBits: 52, expBits: 11, bias: 1023}
	layout32 = layout{mantissaBits: 23, expBits: 8, bias: 127}
)

func (l layout) maxExp() uint64 { return uint64(1)<<l.expBits - 1 }

// Fld80 is a pure copy: the x87 never needs to round or reclassify an
// 80 bit load.
func Fld80(src F80) F80 { return src }

// Fst80 is a pure copy.
func Fst80(src F80) F80 { return src }

// Fld64 loads an IEEE double into F80.
func Fld64(src float64, _ cw.Word) (F80, sw.Word) {
	return fldCommon(math.Float64bits(src), layout64)
}

// Fld32 loads an IEEE single into F80.
func Fld32(src float32, _ cw.Word) (F80, sw.Word) {
	return fldCommon(uint64(math.Float32bits(src)), layout32)
}

func fldCommon(raw uint64, l layout) (F80, sw.Word) {
	sign := raw>>(l.mantissaBits+l.expBits) != 0
	rawExp := raw >> l.mantissaBits & (uint64(1)<<l.expBits - 1)
	rawMant := raw & (uint64(1)<<l.mantissaBits - 1)

	shiftUp := uint(63 - l.mantissaBits)

	if rawExp == 0 && rawMant == 0 {
		return Zero(sign), sw.Word{}
	}

	if rawExp == 0 {
		// denormal: align into the 63 bit field, then renormalize.
		m := rawMant << shiftUp
		shift := bits.CountLeadingZeros64(m)
		m <<= uint(shift)
		exp := Bias - l.bias + 1 - shift
		return F80{Mantissa: m, SignExp: signExp(sign, uint16(exp))}, sw.Word{Denormal: true}
	}

	if rawExp == l.maxExp() {
		m := uint64(1)<<63 | rawMant<<shiftUp
		f := F80{Mantissa: m, SignExp: signExp(sign, MaxBiasedExp)}
		var w sw.Word
		if rawMant != 0 && f.IsSNaN() {
			w.Invalid = true
		}
		return f, w
	}

	exp := int(rawExp) - l.bias + Bias
	m := uint64(1)<<63 | rawMant<<shiftUp
	return F80{Mantissa: m, SignExp: signExp(sign, uint16(exp))}, sw.Word{}
}

func signExp(sign bool, biasedExp uint16) uint16 {
	se := biasedExp & 0x7FFF
	if sign {
		se |= 0x8000
	}
	return se
}

// Fild16/32/64 load a two's complement integer into F80. These never raise
// exceptions: every integer of these widths is exactly representable in an
// 80 bit mantissa.
func Fild16(src int16) F80 { return fildCommon(int64(src)) }
func Fild32(src int32) F80 { return fildCommon(int64(src)) }
func Fild64(src int64) F80 { return fildCommon(src) }

func fildCommon(src int64) F80 {
	if src == 0 {
		return Zero(false)
	}
	sign := src < 0
	var mag uint64
	if sign {
		mag = uint64(-src)
	} else {
		mag = uint64(src)
	}
	clz := bits.CountLeadingZeros64(mag)
	m := mag << uint(clz)
	exp := Bias + 63 - clz
	return F80{Mantissa: m, SignExp: signExp(sign, uint16(exp))}
}

// Fst64 stores F80 to an IEEE double, rounding per c's rounding-control
// field.
func Fst64(src F80, c cw.Word) (float64, sw.Word) {
	raw, w := fstCommon(src, layout64, c)
	return math.Float64frombits(raw), w
}

// Fst32 stores F80 to an IEEE single.
func Fst32(src F80, c cw.Word) (float32, sw.Word) {
	raw, w := fstCommon(src, layout32, c)
	return math.Float32frombits(uint32(raw)), w
}

func fstCommon(src F80, l layout, c cw.Word) (uint64, sw.Word) {
	sign := src.Sign()
	shiftUp := uint(63 - l.mantissaBits)

	if src.IsZero() {
		return boolToSignBit(sign, l), sw.Word{}
	}

	if src.IsMaxExp() {
		var w sw.Word
		if src.IsSNaN() {
			w.Invalid = true
		}
		frac := src.Mantissa &^ (1 << 63) >> shiftUp
		raw := rawPack(sign, l.maxExp(), frac, l)
		return raw, w
	}

	// renormalize denormals and pseudo-denormals (both have bit 63 clear).
	mant := src.Mantissa
	clz := 0
	biasedExp := int(src.BiasedExp())
	if mant&(1<<63) == 0 {
		clz = bits.CountLeadingZeros64(mant)
		mant <<= uint(clz)
	}
	var unbiasedExp int
	if biasedExp == 0 {
		unbiasedExp = 1 - Bias - clz
	} else {
		unbiasedExp = biasedExp - Bias - clz
	}
	targetExp := unbiasedExp + l.bias

	rc := uint8(c.Rounding)
	var w sw.Word

	if targetExp >= int(l.maxExp()) {
		// overflow
		w.Overflow = true
		w.Precision = true
		w.C1 = true
		if rc == 3 || (rc == 1 && !sign) || (rc == 2 && sign) {
			// round toward zero (or away from the infinity we'd produce):
			// emit the largest finite magnitude instead of infinity.
			maxFrac := uint64(1)<<l.mantissaBits - 1
			return rawPack(sign, l.maxExp()-1, maxFrac, l), w
		}
		return rawPack(sign, l.maxExp(), 0, l), w
	}

	if targetExp <= 0 {
		// denormal or zero result: shift right by the extra amount needed
		// to represent the value at the smallest normal exponent (1), then
		// round with the wider discarded-bit count.
		rshift := 1 - targetExp
		lost := shiftUp + uint(rshift)
		if lost >= 64 {
			// everything is discarded: emit signed zero unless the
			// rounding mode points toward the infinity of this sign, in
			// which case the smallest denormal survives.
			w.Underflow = true
			w.Precision = true
			if (rc == 1 && sign) || (rc == 2 && !sign) {
				return rawPack(sign, 0, 1, l), w
			}
			return boolToSignBit(sign, l), w
		}
		rounded, carried, _ := bits.RoundInPlace(mant, sign, rc, lost)
		w.Precision = mant&(uint64(1)<<lost-1) != 0
		if carried {
			// rounded up into the smallest normal.
			return rawPack(sign, 1, 0, l), w
		}
		frac := rounded >> lost
		if frac == 0 {
			w.Underflow = true
			return boolToSignBit(sign, l), w
		}
		w.Underflow = true
		return rawPack(sign, 0, frac, l), w
	}

	lost := shiftUp
	rounded, carried, applied := bits.RoundInPlace(mant, sign, rc, lost)
	if applied != bits.RoundNear || mant&(uint64(1)<<lost-1) != 0 {
		w.Precision = mant&(uint64(1)<<lost-1) != 0
	}
	if carried {
		targetExp++
		if targetExp >= int(l.maxExp()) {
			w.Overflow = true
			w.C1 = true
			return rawPack(sign, l.maxExp(), 0, l), w
		}
	}
	frac := rounded &^ (1 << 63) >> lost
	if w.Precision {
		w.C1 = applied == bits.RoundTowardInfHard
	}
	return rawPack(sign, uint64(targetExp), frac, l), w
}

func rawPack(sign bool, biasedExp uint64, frac uint64, l layout) uint64 {
	var raw uint64
	if sign {
		raw |= 1 << (l.mantissaBits + l.expBits)
	}
	raw |= biasedExp << l.mantissaBits
	raw |= frac
	return raw
}

func boolToSignBit(sign bool, l layout) uint64 {
	if sign {
		return 1 << (l.mantissaBits + l.expBits)
	}
	return 0
}

// Fist16/32/64 store F80 to a two's complement integer, rounding per c's
// rounding-control field.
func Fist16(src F80, c cw.Word) (int16, sw.Word) {
	v, w := fistCommon(src, c, 16)
	return int16(v), w
}

func Fist32(src F80, c cw.Word) (int32, sw.Word) {
	v, w := fistCommon(src, c, 32)
	return int32(v), w
}

func Fist64(src F80, c cw.Word) (int64, sw.Word) {
	v, w := fistCommon(src, c, 64)
	return v, w
}

func fistCommon(src F80, c cw.Word, width int) (int64, sw.Word) {
	indefinite := int64(-1) << (width - 1) // 0x8000... in the target width

	if src.IsMaxExp() {
		return indefinite, sw.Word{Invalid: true}
	}
	if src.IsZero() {
		return 0, sw.Word{}
	}

	sign := src.Sign()
	s := Bias + 63 - int(src.BiasedExp())

	// magnitude >= 2^width cannot possibly be represented, regardless
	// of rounding; catch it before the shift-based path below.
	if int(src.BiasedExp()) >= Bias+width {
		return indefinite, sw.Word{Invalid: true}
	}

	rc := uint8(c.Rounding)
	var w sw.Word

	if s >= 64 {
		// |value| < 1.
		var v int64
		switch rc {
		case 3: // toward zero
			v = 0
		case 1: // down
			if sign {
				v = -1
			}
		case 2: // up
			if !sign {
				v = 1
			}
		default: // nearest-even
			if s == 64 && src.Mantissa != 0 {
				v = 1
			}
		}
		if v != 0 {
			w.Precision = true
			w.C1 = true
			if sign {
				v = -v
			}
			return v, w
		}
		if src.Mantissa != 0 {
			w.Precision = true
		}
		return 0, w
	}

	rounded, carried, applied := bits.RoundInPlace(src.Mantissa, sign, rc, uint(s))
	if applied != bits.RoundNear || src.Mantissa&(uint64(1)<<uint(s)-1) != 0 {
		w.Precision = src.Mantissa&(uint64(1)<<uint(s)-1) != 0
		w.C1 = applied == bits.RoundTowardInfHard
	}
	var mag uint64
	if carried {
		mag = uint64(1) << uint(64-s)
	} else {
		mag = rounded >> uint(s)
	}

	maxMag := uint64(1) << uint(width-1)
	if mag > maxMag || (mag == maxMag && !sign) {
		return indefinite, sw.Word{Invalid: true}
	}

	v := int64(mag)
	if sign {
		v = -v
	}
	return v, w
}
