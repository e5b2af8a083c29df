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

// Package roundmode provides the scoped acquire/release shape the source
// uses to borrow the host CPU's rounding-mode register across a native
// float op and restore it on every exit path. Go has no portable way to
// touch that register (no fenv.h, no _MM_SET_ROUNDING_MODE), and the
// kernels never need one - every rounding decision in this tree goes
// through an explicit rounding-control parameter instead. What is left
// genuinely shared, mutable, cross-call state is the stack shell's CW
// register, and that benefits from the same acquire/release discipline, so
// this package keeps the shape alive with a package-level value behind a
// mutex rather than deleting it outright.
package roundmode

import (
	"sync"

	"github.com/jetsetilly/x87fpu/x87/cw"
)

var (
	mu      sync.Mutex
	current = cw.RoundNearest
)

// Acquire records rc as the active rounding control and returns a release
// function that restores whatever was active before. Callers pair this
// with defer:
//
//	release := roundmode.Acquire(c.Rounding)
//	defer release()
func Acquire(rc cw.Rounding) func() {
	mu.Lock()
	prev := current
	current = rc
	mu.Unlock()

	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}

// Current reports the rounding control most recently acquired, defaulting
// to round-to-nearest-even before any Acquire call.
func Current() cw.Rounding {
	mu.Lock()
	defer mu.Unlock()
	return current
}
