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

// Package fpext holds the "exploded" scratch formats used internally by the
// transcendental kernels: a 64 bit mantissa (optionally extended by another
// 32 bits), a wide int32 exponent, and a separate sign. Go 1.17 has no
// generics, so rather than one parameterised type this package follows the
// source's own preference for concrete specialisations and gives each
// precision its own named type:
//
//   - Ext64 is the fast path: 64 bit mantissa, no extension.
//   - Ext96 adds a 32 bit extension for extra guard precision. None of the
//     x87/trans kernels use it: fprem works in Ext64, the trig reducers in
//     Ext52.
//   - Ext52 is not exploded at all - it is a thin relabelling of fp64.F64,
//     kept here only so code that is generic over "an extended scratch
//     value" can use a single family of constants and helpers.
//
// None of the three support NaN, infinity or denormals; denormals are
// expanded into the wide exponent range on the way in and collapsed back
// out on the way to fp64/fp80, and NaN/infinity are expected to have been
// filtered out by the caller before reaching here.
package fpext

// ExponentMin is the sentinel exponent used for exploded zero, chosen far
// below any value a real calculation could produce.
const ExponentMin = -10000000

// ExplicitOne is the mantissa bit marking a normalized value (bit 63 of the
// 64 bit mantissa word).
const ExplicitOne = uint64(1) << 63
