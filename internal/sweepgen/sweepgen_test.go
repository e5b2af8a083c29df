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

package sweepgen_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/x87fpu/internal/sweepgen"
)

func TestUnary64IncludesZerosInfinitiesAndNaNs(t *testing.T) {
	vals := sweepgen.Unary(sweepgen.Width64)

	var sawPosZero, sawNegZero, sawPosInf, sawNegInf, sawNaN bool
	for _, v := range vals {
		switch {
		case v == 0 && !math.Signbit(v):
			sawPosZero = true
		case v == 0 && math.Signbit(v):
			sawNegZero = true
		case math.IsInf(v, 1):
			sawPosInf = true
		case math.IsInf(v, -1):
			sawNegInf = true
		case math.IsNaN(v):
			sawNaN = true
		}
	}
	if !sawPosZero || !sawNegZero || !sawPosInf || !sawNegInf || !sawNaN {
		t.Errorf("missing a boundary category: +0=%v -0=%v +inf=%v -inf=%v nan=%v",
			sawPosZero, sawNegZero, sawPosInf, sawNegInf, sawNaN)
	}
}

func TestUnary64IncludesDenormals(t *testing.T) {
	vals := sweepgen.Unary(sweepgen.Width64)
	found := false
	for _, v := range vals {
		if v != 0 && math.Abs(v) < 2.2250738585072014e-308 {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected at least one denormal in the sweep")
	}
}

func TestBinaryGridIsNonEmptyAndBounded(t *testing.T) {
	pairs := sweepgen.Binary(sweepgen.Width64)
	if len(pairs) == 0 {
		t.Fatal("expected a non-empty product grid")
	}
	full := len(sweepgen.Unary(sweepgen.Width64))
	if len(pairs) > full*full {
		t.Errorf("grid larger than the unstrided product: %d > %d", len(pairs), full*full)
	}
}

func TestSampleRespectsRequestedSize(t *testing.T) {
	s := sweepgen.Sample(sweepgen.Width64, 20)
	if len(s) == 0 || len(s) > 20 {
		t.Errorf("got %d samples, want (0,20]", len(s))
	}
}

func TestWidth32Bounds(t *testing.T) {
	vals := sweepgen.Unary(sweepgen.Width32)
	for _, v := range vals {
		f32 := float32(v)
		if float64(f32) != v && !math.IsNaN(v) {
			t.Errorf("value %v not exactly representable as float32", v)
		}
	}
}
