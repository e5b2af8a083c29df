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

// Package stack wraps the stateless x87/fp80, x87/fp64 and x87/trans
// kernels in the register stack the real hardware exposes: eight physical
// registers, a rotating TOP pointer, a tag word, and the control/status
// word pair every FPU instruction reads and updates. The kernels
// underneath never fail; this package is where ST(i) addressing, stack
// faults and flag accumulation actually live.
package stack

import (
	"github.com/jetsetilly/x87fpu/fpuerr"
	"github.com/jetsetilly/x87fpu/x87/cw"
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/fp80"
	"github.com/jetsetilly/x87fpu/x87/sw"
	"github.com/jetsetilly/x87fpu/x87/trans"
)

// Stack is the eight register x87 stack: physical storage plus the TOP
// pointer that makes ST(0) a moving target, the tag word that tracks which
// physical registers are live, and the control/status word pair every
// wrapper method below reads and updates.
type Stack struct {
	regs [8]fp80.F80
	tag  TagWord
	top  uint8

	CW cw.Word
	SW sw.Word
}

// New returns a stack in the hardware reset state: every register empty,
// TOP at 0, CW at its default and SW clear.
func New() *Stack {
	s := &Stack{CW: cw.Default()}
	for i := range s.regs {
		s.tag = s.tag.Set(i, TagEmpty)
	}
	return s
}

// phys maps a relative ST(i) index to its physical register, mod 8.
func (s *Stack) phys(i int) int {
	return int(s.top+uint8(i)) & 7
}

// ST reads ST(i) without altering the stack. It reports InvalidRegisterIndex
// for i outside [0,7] and StackUnderflow if the addressed register is
// tagged empty.
func (s *Stack) ST(i int) (fp80.F80, error) {
	if i < 0 || i > 7 {
		return fp80.F80{}, fpuerr.New(fpuerr.InvalidRegisterIndex, i)
	}
	p := s.phys(i)
	if s.tag.Get(p) == TagEmpty {
		return fp80.F80{}, fpuerr.New(fpuerr.StackUnderflow, i)
	}
	return s.regs[p], nil
}

// Tag reports the tag of ST(i), including TagEmpty, without the
// StackUnderflow error ST returns for an empty register.
func (s *Stack) Tag(i int) Tag { return s.tag.Get(s.phys(i)) }

// Top returns the physical index currently addressed as ST(0).
func (s *Stack) Top() uint8 { return s.top }

// Push writes v into the register below the current TOP and makes it the
// new ST(0). If that register is already occupied, the push faults: C1 is
// set to flag overflow, StackFault and Invalid are raised, and TOP is left
// unmoved so the caller's ST(0) is unchanged.
func (s *Stack) Push(v fp80.F80) {
	p := int(s.top-1) & 7
	if s.tag.Get(p) != TagEmpty {
		s.SW.Or(sw.Word{Invalid: true, StackFault: true, C1: true})
		return
	}
	s.regs[p] = v
	s.tag = s.tag.Set(p, classify(v))
	s.top = uint8(p)
	s.SW.Top = s.top
}

// Pop reads and retires ST(0). If ST(0) is tagged empty, the pop faults:
// C1 is cleared to flag underflow, StackFault and Invalid are raised, and
// the canonical indefinite is returned without moving TOP.
func (s *Stack) Pop() (fp80.F80, error) {
	p := int(s.top)
	if s.tag.Get(p) == TagEmpty {
		s.SW.Invalid, s.SW.StackFault, s.SW.C1 = true, true, false
		return fp80.Indefinite, fpuerr.New(fpuerr.StackUnderflow, 0)
	}
	v := s.regs[p]
	s.tag = s.tag.Set(p, TagEmpty)
	s.top = uint8(p+1) & 7
	s.SW.Top = s.top
	return v, nil
}

// set overwrites ST(i) in place without moving TOP, retagging from the
// written value.
func (s *Stack) set(i int, v fp80.F80) {
	p := s.phys(i)
	s.regs[p] = v
	s.tag = s.tag.Set(p, classify(v))
}

// FXCH swaps ST(0) and ST(i). Tags move with the values they describe, so
// an FXCH against an empty register correctly leaves that register
// reporting empty afterwards.
func (s *Stack) FXCH(i int) error {
	if i < 0 || i > 7 {
		return fpuerr.New(fpuerr.InvalidRegisterIndex, i)
	}
	p0, pi := s.phys(0), s.phys(i)
	s.regs[p0], s.regs[pi] = s.regs[pi], s.regs[p0]
	t0, ti := s.tag.Get(p0), s.tag.Get(pi)
	s.tag = s.tag.Set(p0, ti).Set(pi, t0)
	return nil
}

// narrow reads ST(i) and converts it to F64 at the stack's current CW,
// folding any rounding flags the narrowing itself raises into SW.
func (s *Stack) narrow(i int) (fp64.F64, error) {
	v, err := s.ST(i)
	if err != nil {
		return 0, err
	}
	f, flags := fp64.FromF80(v, s.CW)
	s.SW.Or(flags)
	return f, nil
}

// FLD64 loads a 64 bit source onto the stack.
func (s *Stack) FLD64(src float64) {
	v, flags := fp80.Fld64(src, s.CW)
	s.SW.Or(flags)
	s.Push(v)
}

// FLD32 loads a 32 bit source onto the stack.
func (s *Stack) FLD32(src float32) {
	v, flags := fp80.Fld32(src, s.CW)
	s.SW.Or(flags)
	s.Push(v)
}

// FILD16 loads a 16 bit integer source onto the stack. Integer loads are
// always exact, so there are no flags to fold in.
func (s *Stack) FILD16(src int16) { s.Push(fp80.Fild16(src)) }

// FILD32 loads a 32 bit integer source onto the stack.
func (s *Stack) FILD32(src int32) { s.Push(fp80.Fild32(src)) }

// FILD64 loads a 64 bit integer source onto the stack.
func (s *Stack) FILD64(src int64) { s.Push(fp80.Fild64(src)) }

// FST64 stores ST(0) as a 64 bit value, per FST (not FSTP): ST(0) is left
// on the stack.
func (s *Stack) FST64() (float64, error) {
	v, err := s.ST(0)
	if err != nil {
		return 0, err
	}
	r, flags := fp80.Fst64(v, s.CW)
	s.SW.Or(flags)
	return r, nil
}

// FST32 stores ST(0) as a 32 bit value, leaving ST(0) in place.
func (s *Stack) FST32() (float32, error) {
	v, err := s.ST(0)
	if err != nil {
		return 0, err
	}
	r, flags := fp80.Fst32(v, s.CW)
	s.SW.Or(flags)
	return r, nil
}

// FIST16 stores ST(0) as a 16 bit integer, per FIST (not FISTP): ST(0) is
// left on the stack.
func (s *Stack) FIST16() (int16, error) {
	v, err := s.ST(0)
	if err != nil {
		return 0, err
	}
	r, flags := fp80.Fist16(v, s.CW)
	s.SW.Or(flags)
	return r, nil
}

// FIST32 stores ST(0) as a 32 bit integer, leaving ST(0) in place.
func (s *Stack) FIST32() (int32, error) {
	v, err := s.ST(0)
	if err != nil {
		return 0, err
	}
	r, flags := fp80.Fist32(v, s.CW)
	s.SW.Or(flags)
	return r, nil
}

// FIST64 stores ST(0) as a 64 bit integer, leaving ST(0) in place.
func (s *Stack) FIST64() (int64, error) {
	v, err := s.ST(0)
	if err != nil {
		return 0, err
	}
	r, flags := fp80.Fist64(v, s.CW)
	s.SW.Or(flags)
	return r, nil
}

// FXTRACT splits ST(0) into significand and exponent: ST(0) is replaced
// with the significand and the exponent is pushed on top of it, so the
// stack ends up holding significand then exponent, per the opcode's own
// "ST(1) gets the old ST(0)'s significand" stack effect.
func (s *Stack) FXTRACT() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	sig, exp, flags := trans.FXtract(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(sig))
	s.Push(fp64.ToF80(exp))
	return nil
}

// FSCALE computes ST(0) * 2^trunc(ST(1)) in place; ST(1) is unaffected and
// TOP does not move.
func (s *Stack) FSCALE() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	y, err := s.narrow(1)
	if err != nil {
		return err
	}
	r, flags := trans.FScale(x, y)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(r))
	return nil
}

// FPREM computes the IEEE-754-incompatible (truncating) partial remainder
// of ST(0) by ST(1) in place.
func (s *Stack) FPREM() error { return s.fprem(trans.FPrem) }

// FPREM1 computes the IEEE-754-compatible (round-to-nearest) partial
// remainder of ST(0) by ST(1) in place.
func (s *Stack) FPREM1() error { return s.fprem(trans.FPrem1) }

func (s *Stack) fprem(op func(fp64.F64, fp64.F64) (fp64.F64, sw.Word)) error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	y, err := s.narrow(1)
	if err != nil {
		return err
	}
	r, flags := op(x, y)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(r))
	return nil
}

// F2XM1 computes 2^ST(0) - 1 in place.
func (s *Stack) F2XM1() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	r, flags := trans.F2xm1(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(r))
	return nil
}

// FYL2X computes ST(1) * log2(ST(0)), pops the stack and leaves the result
// in the new ST(0).
func (s *Stack) FYL2X() error { return s.fyl2x(trans.FYl2x) }

// FYL2XP1 computes ST(1) * log2(ST(0)+1), pops the stack and leaves the
// result in the new ST(0).
func (s *Stack) FYL2XP1() error { return s.fyl2x(trans.FYl2xp1) }

func (s *Stack) fyl2x(op func(fp64.F64, fp64.F64) (fp64.F64, sw.Word)) error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	y, err := s.narrow(1)
	if err != nil {
		return err
	}
	r, flags := op(x, y)
	s.SW.Or(flags)
	if _, err := s.Pop(); err != nil {
		return err
	}
	s.set(0, fp64.ToF80(r))
	return nil
}

// FSIN computes sin(ST(0)) in place.
func (s *Stack) FSIN() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	r, flags := trans.FSin(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(r))
	return nil
}

// FCOS computes cos(ST(0)) in place.
func (s *Stack) FCOS() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	r, flags := trans.FCos(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(r))
	return nil
}

// FSINCOS replaces ST(0) with sin(ST(0)) and pushes cos(ST(0)) on top, so
// the stack ends up holding sine then cosine.
func (s *Stack) FSINCOS() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	sinv, cosv, flags := trans.FSinCos(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(sinv))
	s.Push(fp64.ToF80(cosv))
	return nil
}

// FPTAN replaces ST(0) with tan(ST(0)) and pushes the constant 1.0 on top,
// so the stack ends up holding tangent then 1, per the opcode's historical
// "always push the constant" stack effect.
func (s *Stack) FPTAN() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	one, tanv, flags := trans.FPtan(x)
	s.SW.Or(flags)
	s.set(0, fp64.ToF80(tanv))
	s.Push(fp64.ToF80(one))
	return nil
}

// FPATAN computes atan(ST(1)/ST(0)), pops the stack and leaves the result
// in the new ST(0).
func (s *Stack) FPATAN() error {
	x, err := s.narrow(0)
	if err != nil {
		return err
	}
	y, err := s.narrow(1)
	if err != nil {
		return err
	}
	r, flags := trans.FPatan(x, y)
	s.SW.Or(flags)
	if _, err := s.Pop(); err != nil {
		return err
	}
	s.set(0, fp64.ToF80(r))
	return nil
}
