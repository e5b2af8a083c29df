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

package fp64_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/x87fpu/x87/fp64"
)

func TestClassification(t *testing.T) {
	if !fp64.F64(0).IsZero() {
		t.Errorf("0 should be zero")
	}
	if !fp64.F64(math.Inf(1)).IsInf() {
		t.Errorf("+Inf should be infinite")
	}
	if !fp64.F64(math.NaN()).IsNaN() {
		t.Errorf("NaN should be NaN")
	}
	if !fp64.F64(math.Float64frombits(1)).IsDenormal() {
		t.Errorf("smallest subnormal should be denormal")
	}
}

func TestBitsRoundTrip(t *testing.T) {
	v := fp64.F64(3.14159)
	if got := fp64.FromBits(v.Bits()); got != v {
		t.Errorf("got %v, want %v", got, v)
	}
}

func TestMakeQNaN(t *testing.T) {
	snan := fp64.FromBits(0x7FF0000000000001)
	if !snan.IsSNaN() {
		t.Fatalf("fixture is not an SNaN")
	}
	q := fp64.MakeQNaN(snan)
	if !q.IsQNaN() {
		t.Errorf("MakeQNaN did not quiet the NaN")
	}
}
