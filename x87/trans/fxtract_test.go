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

func TestFXtractNormal(t *testing.T) {
	sig, exp, flags := trans.FXtract(8.0)
	if sig != 1.0 {
		t.Errorf("significand = %v, want 1.0", sig)
	}
	if exp != 3.0 {
		t.Errorf("exponent = %v, want 3.0", exp)
	}
	if flags.Invalid || flags.DivByZero {
		t.Errorf("unexpected flags: %+v", flags)
	}
}

func TestFXtractNegative(t *testing.T) {
	sig, exp, _ := trans.FXtract(-6.0)
	if sig != -1.5 {
		t.Errorf("significand = %v, want -1.5", sig)
	}
	if exp != 2.0 {
		t.Errorf("exponent = %v, want 2.0", exp)
	}
}

func TestFXtractZero(t *testing.T) {
	sig, exp, flags := trans.FXtract(fp64.Zero(false))
	if sig != 0 {
		t.Errorf("significand = %v, want 0", sig)
	}
	if !exp.IsInf() || !exp.Sign() {
		t.Errorf("exponent = %v, want -inf", exp)
	}
	if !flags.DivByZero {
		t.Error("expected DIVZERO flag")
	}
}

func TestFXtractInf(t *testing.T) {
	sig, exp, _ := trans.FXtract(fp64.Inf(true))
	if !sig.IsInf() || !sig.Sign() {
		t.Errorf("significand = %v, want -inf", sig)
	}
	if !exp.IsInf() || exp.Sign() {
		t.Errorf("exponent = %v, want +inf", exp)
	}
}

func TestFXtractNaN(t *testing.T) {
	nan := fp64.FromBits(0x7FF0000000000001)
	sig, exp, flags := trans.FXtract(nan)
	if !sig.IsQNaN() || !exp.IsQNaN() {
		t.Error("expected quieted NaN in both outputs")
	}
	if !flags.Invalid {
		t.Error("expected INVALID flag for signaling NaN input")
	}
}
