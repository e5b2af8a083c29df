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

func TestFSinZero(t *testing.T) {
	got, flags := trans.FSin(fp64.Zero(false))
	if got != 0 {
		t.Errorf("sin(0) = %v, want 0", got)
	}
	if flags.Precision {
		t.Error("unexpected PRECISION for exact zero")
	}
}

func TestFSinPiOver2(t *testing.T) {
	got, _ := trans.FSin(fp64.F64(math.Pi / 2))
	if math.Abs(float64(got)-1) > 1e-9 {
		t.Errorf("sin(pi/2) = %v, want 1", got)
	}
}

func TestFCosZero(t *testing.T) {
	got, _ := trans.FCos(fp64.Zero(false))
	if math.Abs(float64(got)-1) > 1e-12 {
		t.Errorf("cos(0) = %v, want 1", got)
	}
}

func TestFCosPi(t *testing.T) {
	got, _ := trans.FCos(fp64.F64(math.Pi))
	if math.Abs(float64(got)-(-1)) > 1e-9 {
		t.Errorf("cos(pi) = %v, want -1", got)
	}
}

func TestFSinCosPythagorean(t *testing.T) {
	for _, x := range []float64{0.1, 1.0, 2.5, 10.0, -4.3} {
		sin, cos, _ := trans.FSinCos(fp64.F64(x))
		sum := float64(sin)*float64(sin) + float64(cos)*float64(cos)
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sin(%v)^2+cos(%v)^2 = %v, want 1", x, x, sum)
		}
		wantSin, wantCos := math.Sin(x), math.Cos(x)
		if math.Abs(float64(sin)-wantSin) > 1e-9 {
			t.Errorf("sin(%v) = %v, want %v", x, sin, wantSin)
		}
		if math.Abs(float64(cos)-wantCos) > 1e-9 {
			t.Errorf("cos(%v) = %v, want %v", x, cos, wantCos)
		}
	}
}

func TestFPtanPiOver4(t *testing.T) {
	_, got, _ := trans.FPtan(fp64.F64(math.Pi / 4))
	if math.Abs(float64(got)-1) > 1e-9 {
		t.Errorf("tan(pi/4) = %v, want 1", got)
	}
}

func TestFPtanPushesOne(t *testing.T) {
	one, _, _ := trans.FPtan(fp64.F64(0.3))
	if one != 1 {
		t.Errorf("FPtan dst1 = %v, want 1", one)
	}
}

func TestFSinOutOfRange(t *testing.T) {
	huge := fp64.F64(math.Ldexp(1, 100))
	got, flags := trans.FSin(huge)
	if !flags.C2 {
		t.Error("expected C2 for an argument with exponent >= 63")
	}
	if got != huge {
		t.Errorf("got %v, want src unchanged", got)
	}
}

func TestFSinInfinityIsInvalid(t *testing.T) {
	got, flags := trans.FSin(fp64.Inf(false))
	if !flags.Invalid {
		t.Error("expected INVALID for an infinite argument")
	}
	if !got.IsQNaN() {
		t.Errorf("got %v, want indefinite", got)
	}
}

func TestFSinNaN(t *testing.T) {
	nan := fp64.FromBits(0x7FF0000000000001)
	got, flags := trans.FSin(nan)
	if !got.IsQNaN() {
		t.Error("expected quieted NaN")
	}
	if !flags.Invalid {
		t.Error("expected INVALID for signaling NaN")
	}
}
