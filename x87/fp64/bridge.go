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

package fp64

import (
	"github.com/jetsetilly/x87fpu/x87/cw"
	"github.com/jetsetilly/x87fpu/x87/fp80"
	"github.com/jetsetilly/x87fpu/x87/sw"
)

// FromF80 narrows an 80 bit register value to F64, per the x87's own
// fst64 rounding rules. This is the boundary the stack shell crosses before
// handing a value to a transcendental kernel, since only the 64 bit kernels
// are implemented.
func FromF80(f fp80.F80, c cw.Word) (F64, sw.Word) {
	raw, w := fp80.Fst64(f, c)
	return F64(raw), w
}

// ToF80 widens an F64 back to the canonical 80 bit register format, per
// fld64 (always exact: every double is exactly representable in 80 bit
// extended precision).
func ToF80(v F64) fp80.F80 {
	f, _ := fp80.Fld64(float64(v), cw.Default())
	return f
}
