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

package bits_test

import (
	"testing"

	"github.com/jetsetilly/x87fpu/x87/bits"
)

func TestMultiply64x64(t *testing.T) {
	p := bits.Multiply64x64(0xFFFFFFFFFFFFFFFF, 2)
	if p.Hi != 1 || p.Lo != 0xFFFFFFFFFFFFFFFE {
		t.Errorf("unexpected product: hi=%#x lo=%#x", p.Hi, p.Lo)
	}

	p = bits.Multiply64x64(0, 0x123456789ABCDEF0)
	if p.Hi != 0 || p.Lo != 0 {
		t.Errorf("unexpected product for zero operand: hi=%#x lo=%#x", p.Hi, p.Lo)
	}
}

func TestCountLeadingZeros64(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 64},
		{1, 63},
		{1 << 63, 0},
		{0x00000000FFFFFFFF, 32},
	}
	for _, c := range cases {
		if got := bits.CountLeadingZeros64(c.v); got != c.want {
			t.Errorf("CountLeadingZeros64(%#x) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestCountTrailingZeros64(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 64},
		{1, 0},
		{1 << 63, 63},
		{0xFF00, 8},
	}
	for _, c := range cases {
		if got := bits.CountTrailingZeros64(c.v); got != c.want {
			t.Errorf("CountTrailingZeros64(%#x) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestRoundInPlaceNearestEven(t *testing.T) {
	// exact tie, kept LSB already even -> round down (stay even)
	mantissa := uint64(0x8000000000000008) // ...0 at bit lostBits, even; lost bits exactly half
	rounded, carried, applied := bits.RoundInPlace(mantissa, false, 0, 4)
	if carried {
		t.Fatalf("unexpected carry")
	}
	if rounded != 0x8000000000000000 {
		t.Errorf("got %#x, want %#x", rounded, uint64(0x8000000000000000))
	}
	if applied != bits.RoundTowardZero {
		t.Errorf("applied = %v, want RoundTowardZero", applied)
	}

	// all-ones mantissa, any positive correction overflows bit 63
	allOnes := uint64(0xFFFFFFFFFFFFFFFF)
	rounded, carried, _ = bits.RoundInPlace(allOnes, false, 0, 4)
	if !carried {
		t.Fatalf("expected carry out of the explicit leading bit")
	}
	if rounded != uint64(1)<<63 {
		t.Errorf("got %#x, want normalized leading bit only", rounded)
	}
}

func TestRoundInPlaceTowardZero(t *testing.T) {
	mantissa := uint64(0x800000000000000F)
	rounded, carried, applied := bits.RoundInPlace(mantissa, false, 3, 4)
	if carried {
		t.Fatalf("unexpected carry")
	}
	if rounded != 0x8000000000000000 {
		t.Errorf("got %#x, want bits truncated", rounded)
	}
	if applied != bits.RoundTowardZero {
		t.Errorf("applied = %v, want RoundTowardZero", applied)
	}
}

func TestRoundInPlaceDirectional(t *testing.T) {
	mantissa := uint64(0x8000000000000001)

	// down mode only adds for negative sign
	rounded, _, _ := bits.RoundInPlace(mantissa, true, 1, 4)
	if rounded <= mantissa&^0xF {
		t.Errorf("expected down-rounding to push away from zero for negative sign")
	}
	rounded, _, _ = bits.RoundInPlace(mantissa, false, 1, 4)
	if rounded != mantissa&^0xF {
		t.Errorf("expected down-rounding to truncate for positive sign, got %#x", rounded)
	}

	// up mode mirrors down
	rounded, _, _ = bits.RoundInPlace(mantissa, false, 2, 4)
	if rounded <= mantissa&^0xF {
		t.Errorf("expected up-rounding to push away from zero for positive sign")
	}
}
