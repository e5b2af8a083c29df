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

func TestFYl2xBasic(t *testing.T) {
	got, _ := trans.FYl2x(8, 1)
	if math.Abs(float64(got)-3) > 1e-9 {
		t.Errorf("log2(8) = %v, want 3", got)
	}
}

func TestFYl2xScaled(t *testing.T) {
	got, _ := trans.FYl2x(16, 2)
	if math.Abs(float64(got)-8) > 1e-9 {
		t.Errorf("2*log2(16) = %v, want 8", got)
	}
}

func TestFYl2xNegativeIsInvalid(t *testing.T) {
	got, flags := trans.FYl2x(-2, 1)
	if !flags.Invalid {
		t.Error("expected INVALID for log of a negative value")
	}
	if !got.IsQNaN() {
		t.Errorf("got %v, want indefinite", got)
	}
}

func TestFYl2xZeroSrc1(t *testing.T) {
	got, flags := trans.FYl2x(fp64.Zero(false), 1)
	if !flags.DivByZero {
		t.Error("expected DIVZERO for log(0)")
	}
	if !got.IsInf() || !got.Sign() {
		t.Errorf("got %v, want -inf", got)
	}
}

func TestFYl2xp1Basic(t *testing.T) {
	got, _ := trans.FYl2xp1(1, 1) // log2(2) = 1
	if math.Abs(float64(got)-1) > 1e-9 {
		t.Errorf("log2(1+1) = %v, want 1", got)
	}
}

func TestFYl2xp1SmallArgument(t *testing.T) {
	got, _ := trans.FYl2xp1(0.01, 1)
	want := math.Log2(1.01)
	if math.Abs(float64(got)-want) > 1e-7 {
		t.Errorf("log2(1.01) = %v, want %v", got, want)
	}
}

func TestFYl2xp1MinusOne(t *testing.T) {
	got, flags := trans.FYl2xp1(-1, 1)
	if !got.IsInf() || !got.Sign() {
		t.Errorf("got %v, want -inf", got)
	}
	if flags.Invalid {
		t.Error("unexpected INVALID")
	}
}

func TestFYl2xp1OutOfBounds(t *testing.T) {
	got, flags := trans.FYl2xp1(-2, 1)
	if got != -2 {
		t.Errorf("got %v, want src1 unchanged", got)
	}
	if !flags.Precision {
		t.Error("expected PRECISION for an out-of-domain argument")
	}
}
