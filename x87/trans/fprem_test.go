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

package trans_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/trans"
)

func TestFPremRangeAndCongruence(t *testing.T) {
	got, flags := trans.FPrem(5, 3)
	if flags.C2 {
		t.Fatal("unexpected C2 on a small exponent difference")
	}
	if got < 0 || got >= 3 {
		t.Errorf("fprem(5,3) = %v, want value in [0,3)", got)
	}
	n := (float64(5) - float64(got)) / 3
	if math.Abs(n-math.Round(n)) > 1e-9 {
		t.Errorf("fprem(5,3) = %v is not congruent to 5 mod 3", got)
	}
}

func TestFPrem1RangeAndCongruence(t *testing.T) {
	got, flags := trans.FPrem1(5, 3)
	if flags.C2 {
		t.Fatal("unexpected C2 on a small exponent difference")
	}
	if got < -1.5 || got > 1.5 {
		t.Errorf("fprem1(5,3) = %v, want value in [-1.5,1.5]", got)
	}
	n := (float64(5) - float64(got)) / 3
	if math.Abs(n-math.Round(n)) > 1e-9 {
		t.Errorf("fprem1(5,3) = %v is not congruent to 5 mod 3", got)
	}
}

func TestFPremExactMultiple(t *testing.T) {
	got, flags := trans.FPrem(9, 3)
	if got != 0 {
		t.Errorf("fprem(9,3) = %v, want 0", got)
	}
	if flags.C2 {
		t.Error("unexpected C2")
	}
}

func TestFPremDivByZero(t *testing.T) {
	got, flags := trans.FPrem(5, fp64.Zero(false))
	if !flags.Invalid {
		t.Error("expected INVALID for fprem by zero")
	}
	if !got.IsQNaN() {
		t.Errorf("got %v, want indefinite", got)
	}
}

func TestFPremInfiniteSrc2ReturnsSrc1(t *testing.T) {
	got, flags := trans.FPrem(5, fp64.Inf(false))
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
	if flags.Invalid {
		t.Error("unexpected INVALID")
	}
}

func TestFPremInfiniteSrc1IsInvalid(t *testing.T) {
	got, flags := trans.FPrem(fp64.Inf(false), 3)
	if !flags.Invalid {
		t.Error("expected INVALID for infinite src1")
	}
	if !got.IsQNaN() {
		t.Errorf("got %v, want indefinite", got)
	}
}

func TestFPremLargeExponentDifferenceSetsC2(t *testing.T) {
	huge := fp64.F64(math.Ldexp(1, 100))
	got, flags := trans.FPrem(huge, 3)
	if !flags.C2 {
		t.Error("expected C2 for an exponent difference over 63")
	}
	if got == huge {
		t.Error("expected partial reduction to change the value")
	}
}

func TestFPremNaNPropagation(t *testing.T) {
	nan := fp64.FromBits(0x7FF0000000000001)
	got, flags := trans.FPrem(nan, 3)
	if !got.IsQNaN() {
		t.Error("expected quieted NaN")
	}
	if !flags.Invalid {
		t.Error("expected INVALID for signaling NaN input")
	}
}
