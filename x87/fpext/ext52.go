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
	"math"

	"github.com/jetsetilly/x87fpu/x87/fp64"
)

// Ext52 is the un-exploded scratch value: a plain double wearing the same
// constant and helper names as Ext64/Ext96, for the handful of steps (the
// trig argument reduction and the sin/cos/tan polynomials) that run at
// ordinary double precision rather than the wider working formats.
type Ext52 fp64.F64

var (
	Ext52Zero  = Ext52(fp64.Zero(false))
	Ext52NZero = Ext52(fp64.Zero(true))
	Ext52One   = Ext52(1)
	Ext52NOne  = Ext52(-1)
	Ext52L2T   = Ext52(math.Log2(10))
	Ext52L2E   = Ext52(math.Log2(math.E))
	Ext52Pi    = Ext52(math.Pi)
	Ext52PiO2  = Ext52(math.Pi / 2)
	Ext52PiO4  = Ext52(math.Pi / 4)
	Ext52Lg2   = Ext52(math.Log10(2))
	Ext52Ln2   = Ext52(math.Ln2)
)

func (e Ext52) IsZero() bool  { return fp64.F64(e).IsZero() }
func (e Ext52) Abs() Ext52    { return Ext52(fp64.Abs(fp64.F64(e))) }
func (e Ext52) Neg() Ext52    { return Ext52(-fp64.F64(e)) }
func (e Ext52) ToF64() fp64.F64 { return fp64.F64(e) }
func (e Ext52) Sign() bool    { return fp64.F64(e).Sign() }

// Ext52FromF64 widens a double into the scratch type with no precision change,
// the same "cast in" step the source's FpType(src) conversion constructor
// performs for every scratch format.
func Ext52FromF64(v fp64.F64) Ext52 { return Ext52(v) }

// Mantissa returns the value's 52 explicit bits shifted up to a 64 bit
// mantissa with the implicit leading one set at bit 63 - the same 1.63
// layout Ext64/Ext96 expose - so trig argument reduction can walk Ext52
// through the same code path as the wider scratch formats.
func (e Ext52) Mantissa() uint64 {
	frac := fp64.F64(e).Bits() & (uint64(1)<<52 - 1)
	return (uint64(1) << 63) | (frac << 11)
}

// Exponent returns the unbiased power of two.
func (e Ext52) Exponent() int32 { return int32(fp64.F64(e).Exp()) }

// Extended reports whether the value keeps mantissa bits below bit 0 of
// Mantissa. Ext52 never does - it is a plain double wearing the wider
// formats' interface - so this is always false.
func (e Ext52) Extended() bool { return false }

// NewExt52 builds a value from a 1.63 format mantissa (explicit leading one
// at bit 63), an unbiased exponent and a sign, rounding the bottom 11 bits
// away to fit the host double's 52 explicit bits. low is accepted only for
// symmetry with Ext64/Ext96's four argument constructors: the source's own
// fpext52_t constructor never consults it either, since a 64 bit mantissa
// already has more bits than a double can keep.
func NewExt52(high uint64, low uint32, exponent int32, sign bool) Ext52 {
	_ = low
	const (
		bias       = 1023
		maxBiased  = 2047
		mantBits   = 52
		mantMask52 = uint64(1)<<52 - 1
	)
	exp := exponent + bias
	var out uint64
	if sign {
		out = uint64(1) << 63
	}
	switch {
	case exp >= maxBiased:
		out |= uint64(maxBiased) << mantBits
	case exp > 0:
		out |= uint64(exp)<<mantBits | (high>>11)&mantMask52
		out += (high >> 10) & 1
	case exp > -mantBits:
		out |= high >> uint(64-mantBits-exp)
		out += (high >> uint(63-mantBits-exp)) & 1
	}
	return Ext52(fp64.FromBits(out))
}

// AddExt52, SubExt52 and MulExt52 lower straight onto the host float64
// operators: Ext52 carries no extra precision over fp64.F64 to preserve.
func AddExt52(a, b Ext52) Ext52 { return Ext52(fp64.F64(a) + fp64.F64(b)) }
func SubExt52(a, b Ext52) Ext52 { return Ext52(fp64.F64(a) - fp64.F64(b)) }
func MulExt52(a, b Ext52) Ext52 { return Ext52(fp64.F64(a) * fp64.F64(b)) }

// FloorExt52 rounds toward negative infinity.
func FloorExt52(a Ext52) Ext52 { return Ext52(fp64.Floor(fp64.F64(a))) }

// LdexpExt52 scales a by 2^dexp.
func LdexpExt52(a Ext52, dexp int) Ext52 { return Ext52(fp64.Ldexp(fp64.F64(a), dexp)) }
