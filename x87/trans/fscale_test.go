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
	"testing"

	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/trans"
)

func TestFScaleBasic(t *testing.T) {
	got, flags := trans.FScale(1.5, 3)
	if got != 12 {
		t.Errorf("got %v, want 12", got)
	}
	if flags.Invalid || flags.Overflow || flags.Underflow {
		t.Errorf("unexpected flags: %+v", flags)
	}
}

func TestFScaleTruncatesTowardExponentSign(t *testing.T) {
	got, _ := trans.FScale(1, 2.9)
	if got != 4 {
		t.Errorf("floor(2.9)=2 expected: got %v, want 4", got)
	}

	got, _ = trans.FScale(1, -2.9)
	if got != 0.25 {
		t.Errorf("ceil(-2.9)=-2 expected: got %v, want 0.25", got)
	}
}

func TestFScaleZeroExponent(t *testing.T) {
	got, _ := trans.FScale(3.5, 0)
	if got != 3.5 {
		t.Errorf("got %v, want 3.5 unchanged", got)
	}
}

func TestFScaleOverflow(t *testing.T) {
	got, flags := trans.FScale(1, 2000)
	if !flags.Overflow || !flags.Precision {
		t.Errorf("expected overflow+precision, got %+v", flags)
	}
	if got.IsInf() {
		t.Error("fscale overflow saturates to max finite, not infinity")
	}
}

func TestFScaleUnderflow(t *testing.T) {
	got, flags := trans.FScale(1, -2000)
	if !flags.Underflow {
		t.Errorf("expected underflow, got %+v", flags)
	}
	if got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestFScaleInfiniteSrc2(t *testing.T) {
	got, flags := trans.FScale(fp64.Zero(false), fp64.Inf(false))
	if !flags.Invalid {
		t.Error("expected INVALID for 0 scaled by infinity")
	}
	if !got.IsQNaN() {
		t.Errorf("got %v, want indefinite", got)
	}
}

func TestFScaleSrc1ZeroReturnsSrc1(t *testing.T) {
	got, flags := trans.FScale(fp64.Zero(true), 5)
	if got != fp64.Zero(true) {
		t.Errorf("got %v, want -0", got)
	}
	if flags.Invalid {
		t.Error("unexpected INVALID")
	}
}
