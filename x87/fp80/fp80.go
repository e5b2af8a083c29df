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

// Package fp80 implements the 80 bit extended-precision format and the
// bit-exact conversion matrix to and from the 64/32 bit floating-point
// formats and the 16/32/64 bit two's-complement integer formats.
package fp80

// F80 is the x87 80 bit extended-precision value: a 64 bit explicit
// mantissa (the leading one is stored, not implicit, unlike IEEE formats)
// and a 16 bit sign+biased-exponent field.
type F80 struct {
	Mantissa uint64
	SignExp  uint16
}

const (
	// Bias is the exponent bias for the 15 bit biased exponent field.
	Bias = 0x3FFF

	// MaxBiasedExp is the biased exponent reserved for infinities and NaNs.
	MaxBiasedExp = 0x7FFF

	mantissaBits = 64
)

// Sign reports the sign bit.
func (f F80) Sign() bool { return f.SignExp&0x8000 != 0 }

// BiasedExp returns the 15 bit biased exponent field.
func (f F80) BiasedExp() uint16 { return f.SignExp & 0x7FFF }

// Exp returns the unbiased exponent. Only meaningful for normal values.
func (f F80) Exp() int32 { return int32(f.BiasedExp()) - Bias }

// IsZero reports whether f is positive or negative zero.
func (f F80) IsZero() bool { return f.BiasedExp() == 0 && f.Mantissa == 0 }

// IsDenormal reports whether f is a denormal (biased exponent 0, nonzero
// mantissa with its top bit clear).
func (f F80) IsDenormal() bool {
	return f.BiasedExp() == 0 && f.Mantissa != 0 && f.Mantissa&(1<<63) == 0
}

// IsPseudoDenormal reports a legal-but-non-IEEE 80 bit bit pattern: a
// nonzero biased exponent with the explicit leading bit clear. Real x87
// hardware accepts these as input (treating them as normal after implicit
// renormalization) but never produces them as output.
func (f F80) IsPseudoDenormal() bool {
	return f.BiasedExp() != 0 && f.BiasedExp() != MaxBiasedExp && f.Mantissa&(1<<63) == 0
}

// IsNormal reports a normal value: biased exponent strictly between the two
// reserved values, with the explicit leading bit set. Pseudo-denormals are
// deliberately excluded; callers that want to treat them as normal should
// check IsPseudoDenormal too, as the stack's tag-word classifier does.
func (f F80) IsNormal() bool {
	return f.BiasedExp() != 0 && f.BiasedExp() != MaxBiasedExp && f.Mantissa&(1<<63) != 0
}

// IsMaxExp reports whether the biased exponent is the reserved
// infinity/NaN value.
func (f F80) IsMaxExp() bool { return f.BiasedExp() == MaxBiasedExp }

// IsInf reports ±infinity: max exponent, mantissa bits below the explicit
// leading one all clear.
func (f F80) IsInf() bool {
	return f.IsMaxExp() && f.Mantissa == 1<<63
}

func (f F80) IsPosInf() bool { return f.IsInf() && !f.Sign() }
func (f F80) IsNegInf() bool { return f.IsInf() && f.Sign() }

// IsNaN reports any NaN: max exponent with at least one mantissa bit below
// the explicit leading one set.
func (f F80) IsNaN() bool {
	return f.IsMaxExp() && f.Mantissa != 1<<63 && f.Mantissa != 0
}

// IsQNaN reports a quiet NaN (mantissa bit 62 set).
func (f F80) IsQNaN() bool {
	return f.IsNaN() && f.Mantissa&(1<<62) != 0
}

// IsSNaN reports a signaling NaN (mantissa bit 62 clear, some lower bit
// set).
func (f F80) IsSNaN() bool {
	return f.IsNaN() && f.Mantissa&(1<<62) == 0
}

// CopySign returns f with its sign bit replaced by the sign of other. No
// other bits are touched.
func CopySign(f, other F80) F80 {
	f.SignExp = f.SignExp&0x7FFF | other.SignExp&0x8000
	return f
}

// Abs clears the sign bit.
func Abs(f F80) F80 {
	f.SignExp &^= 0x8000
	return f
}

// Negate flips the sign bit.
func Negate(f F80) F80 {
	f.SignExp ^= 0x8000
	return f
}

// MakeQNaN quiets a NaN by setting mantissa bit 62, preserving sign and all
// other mantissa bits.
func MakeQNaN(f F80) F80 {
	f.Mantissa |= 1 << 62
	return f
}

// Zero returns signed zero.
func Zero(sign bool) F80 {
	var se uint16
	if sign {
		se = 0x8000
	}
	return F80{Mantissa: 0, SignExp: se}
}

// Inf returns signed infinity.
func Inf(sign bool) F80 {
	se := uint16(MaxBiasedExp)
	if sign {
		se |= 0x8000
	}
	return F80{Mantissa: 1 << 63, SignExp: se}
}

// Indefinite is the canonical QNaN returned for invalid operations: negative
// sign, mantissa 0xC000000000000000.
var Indefinite = F80{Mantissa: 0xC000000000000000, SignExp: 0x8000 | MaxBiasedExp}

// Bytes returns the little-endian 10 byte wire representation.
func (f F80) Bytes() [10]byte {
	var b [10]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(f.Mantissa >> (8 * i))
	}
	b[8] = byte(f.SignExp)
	b[9] = byte(f.SignExp >> 8)
	return b
}

// FromBytes decodes the little-endian 10 byte wire representation.
func FromBytes(b [10]byte) F80 {
	var m uint64
	for i := 0; i < 8; i++ {
		m |= uint64(b[i]) << (8 * i)
	}
	se := uint16(b[8]) | uint16(b[9])<<8
	return F80{Mantissa: m, SignExp: se}
}
