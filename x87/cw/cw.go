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

// Package cw models the x87 control word: the 16 bit register that selects
// exception masking, precision control, and rounding control for every
// kernel in the fp80, fp64 and trans packages.
package cw

// Precision is the x87 precision-control field (bits 8-9).
type Precision uint8

const (
	PrecisionSingle   Precision = 0
	PrecisionReserved Precision = 1
	PrecisionDouble   Precision = 2
	PrecisionExtended Precision = 3
)

// Rounding is the x87 rounding-control field (bits 10-11). The numeric
// values match the hardware encoding exactly so a CW round-tripped through
// Value/FromValue preserves the field untouched.
type Rounding uint8

const (
	RoundNearest Rounding = 0
	RoundDown    Rounding = 1
	RoundUp      Rounding = 2
	RoundZero    Rounding = 3
)

// Word is the decoded control word. The zero value has every exception
// unmasked, single precision and round to nearest; use Default for the
// x87 reset state.
type Word struct {
	MaskInvalid   bool
	MaskDenormal  bool
	MaskDivZero   bool
	MaskOverflow  bool
	MaskUnderflow bool
	MaskPrecision bool

	Precision Precision
	Rounding  Rounding
}

// Default returns the CW the real FPU resets to: all exceptions masked,
// extended precision, round to nearest.
func Default() Word {
	return Word{
		MaskInvalid:   true,
		MaskDenormal:  true,
		MaskDivZero:   true,
		MaskOverflow:  true,
		MaskUnderflow: true,
		MaskPrecision: true,
		Precision:     PrecisionExtended,
		Rounding:      RoundNearest,
	}
}

// FromValue decodes a raw 16 bit control word. Bits outside the ranges
// documented in the external interface (reserved bits, bit 12 infinity
// control on 287-era parts) are ignored, matching the "all others ignored"
// rule for CW input bits.
func FromValue(v uint16) Word {
	return Word{
		MaskInvalid:   v&0x0001 != 0,
		MaskDenormal:  v&0x0002 != 0,
		MaskDivZero:   v&0x0004 != 0,
		MaskOverflow:  v&0x0008 != 0,
		MaskUnderflow: v&0x0010 != 0,
		MaskPrecision: v&0x0020 != 0,
		Precision:     Precision(v >> 8 & 0x3),
		Rounding:      Rounding(v >> 10 & 0x3),
	}
}

// Value packs the control word back into its 16 bit hardware encoding.
func (w Word) Value() uint16 {
	var v uint16
	if w.MaskInvalid {
		v |= 0x0001
	}
	if w.MaskDenormal {
		v |= 0x0002
	}
	if w.MaskDivZero {
		v |= 0x0004
	}
	if w.MaskOverflow {
		v |= 0x0008
	}
	if w.MaskUnderflow {
		v |= 0x0010
	}
	if w.MaskPrecision {
		v |= 0x0020
	}
	v |= uint16(w.Precision) << 8
	v |= uint16(w.Rounding) << 10
	return v
}

func (w Word) String() string {
	letters := [...]struct {
		set  bool
		name string
	}{
		{w.MaskInvalid, "IM"},
		{w.MaskDenormal, "DM"},
		{w.MaskDivZero, "ZM"},
		{w.MaskOverflow, "OM"},
		{w.MaskUnderflow, "UM"},
		{w.MaskPrecision, "PM"},
	}
	s := make([]byte, 0, 32)
	for _, l := range letters {
		if l.set {
			s = append(s, l.name...)
			s = append(s, ' ')
		}
	}
	return string(s)
}
