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
//
// *** NOTE: all historical versions of this file, as found in any
// git repository, are also covered by the licence, even when this
// notice is not present ***

package fpuerr_test

import (
	"testing"

	"github.com/jetsetilly/x87fpu/fpuerr"
)

func TestStackUnderflowMessage(t *testing.T) {
	e := fpuerr.New(fpuerr.StackUnderflow, 0)
	if e.Error() != "stack underflow: ST(0) is empty" {
		t.Errorf("unexpected error message: %s", e.Error())
	}
}

func TestInvalidByteSliceLengthMessage(t *testing.T) {
	e := fpuerr.New(fpuerr.InvalidByteSliceLength, 10, 4)
	if e.Error() != "expected a 10 byte slice, got 4" {
		t.Errorf("unexpected error message: %s", e.Error())
	}
}

func TestErrnoIsComparable(t *testing.T) {
	e := fpuerr.New(fpuerr.StackOverflow, 3)
	if e.Errno != fpuerr.StackOverflow {
		t.Error("Errno round-trip failed")
	}
}
