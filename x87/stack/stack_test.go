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

package stack_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/x87fpu/x87/cw"
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/stack"
)

// st64 narrows ST(i) to a float64 for assertions, the same boundary
// conversion the wrapper methods use internally.
func st64(t *testing.T, s *stack.Stack, i int) float64 {
	t.Helper()
	v, err := s.ST(i)
	if err != nil {
		t.Fatalf("ST(%d): unexpected error: %v", i, err)
	}
	f, _ := fp64.FromF80(v, cw.Default())
	return float64(f)
}

func TestPushPopRoundTrip(t *testing.T) {
	s := stack.New()
	s.FLD64(3.5)
	got, err := s.FST64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3.5 {
		t.Errorf("got %v, want 3.5", got)
	}
}

func TestPopUnderflowReturnsIndefinite(t *testing.T) {
	s := stack.New()
	v, err := s.Pop()
	if err == nil {
		t.Fatal("expected underflow error")
	}
	if !v.IsNaN() {
		t.Errorf("expected indefinite NaN, got %+v", v)
	}
	if !s.SW.Invalid || !s.SW.StackFault || s.SW.C1 {
		t.Errorf("unexpected status word after underflow: %+v", s.SW)
	}
}

func TestPushOverflowLeavesTopUnmoved(t *testing.T) {
	s := stack.New()
	for i := 0; i < 8; i++ {
		s.FLD64(float64(i))
	}
	top := s.Top()
	s.FLD64(99)
	if s.Top() != top {
		t.Errorf("TOP moved on overflowing push: got %d, want %d", s.Top(), top)
	}
	if !s.SW.Invalid || !s.SW.StackFault || !s.SW.C1 {
		t.Errorf("unexpected status word after overflow: %+v", s.SW)
	}
}

func TestFXCHSwapsValuesAndTags(t *testing.T) {
	s := stack.New()
	s.FLD64(2)
	s.FLD64(1)
	if err := s.FXCH(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st64(t, s, 0); got != 2 {
		t.Errorf("ST(0) after FXCH: got %v, want 2", got)
	}
	if got := st64(t, s, 1); got != 1 {
		t.Errorf("ST(1) after FXCH: got %v, want 1", got)
	}
}

func TestFXTRACTStackOrder(t *testing.T) {
	s := stack.New()
	s.FLD64(8.0)
	if err := s.FXTRACT(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st64(t, s, 0); got != 3 {
		t.Errorf("ST(0) exponent: got %v, want 3", got)
	}
	if got := st64(t, s, 1); got != 1.0 {
		t.Errorf("ST(1) significand: got %v, want 1.0", got)
	}
}

func TestFSINCOSStackOrder(t *testing.T) {
	s := stack.New()
	s.FLD64(0)
	if err := s.FSINCOS(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st64(t, s, 0); got != 1 {
		t.Errorf("ST(0) cosine of 0: got %v, want 1", got)
	}
	if got := st64(t, s, 1); got != 0 {
		t.Errorf("ST(1) sine of 0: got %v, want 0", got)
	}
}

func TestFPTANPushesOne(t *testing.T) {
	s := stack.New()
	s.FLD64(math.Pi / 4)
	if err := s.FPTAN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st64(t, s, 0); got != 1 {
		t.Errorf("ST(0) after FPTAN: got %v, want 1", got)
	}
	if got := st64(t, s, 1); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("ST(1) tan(pi/4): got %v, want ~1", got)
	}
}

func TestFYL2XPopsStack(t *testing.T) {
	s := stack.New()
	s.FLD64(2) // ST(1): y
	s.FLD64(8) // ST(0): x
	top := s.Top()
	if err := s.FYL2X(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Top() == top {
		t.Error("FYL2X should have popped the stack")
	}
	got, err := s.FST64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-6.0) > 1e-9 {
		t.Errorf("y*log2(x): got %v, want 6", got)
	}
}

func TestFPATANPopsStack(t *testing.T) {
	s := stack.New()
	s.FLD64(1) // ST(1): y
	s.FLD64(1) // ST(0): x
	if err := s.FPATAN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.FST64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-math.Pi/4) > 1e-9 {
		t.Errorf("atan2(1,1): got %v, want pi/4", got)
	}
}

func TestInvalidRegisterIndex(t *testing.T) {
	s := stack.New()
	if _, err := s.ST(8); err == nil {
		t.Error("expected an error for ST(8)")
	}
	if err := s.FXCH(-1); err == nil {
		t.Error("expected an error for FXCH(-1)")
	}
}
