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

// Package oracle is an arbitrary-precision reference implementation of the
// x87 transcendental and algebraic kernels, built on math/big, for the
// conformance sweep in cmd/x87sweep to compare against. The real hardware
// cannot be assumed present on the build host, so this stands in for it:
// every kernel is re-derived here from first principles at a working
// precision far beyond a float64's 53 bits, then rounded down to compare.
package oracle

import (
	"math"
	"math/big"

	"github.com/jetsetilly/x87fpu/fpuerr"
)

// workingPrec is the big.Float mantissa precision the oracle computes at.
// 200 bits gives roughly 44 extra decimal digits of headroom over a
// float64's 53 bits, enough that the final round-to-float64 step is itself
// correctly rounded for every case this package is exercised against.
const workingPrec = 200

func newFloat(x float64) *big.Float {
	return new(big.Float).SetPrec(workingPrec).SetFloat64(x)
}

func toFloat64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// bigLn2 is ln(2) at working precision, computed once via the atanh series
// used by bigLn below (ln2 = 2*atanh(1/3)).
var bigLn2 = func() *big.Float {
	a := bigAtanh(ratio(1, 3))
	return new(big.Float).SetPrec(workingPrec).Mul(a, big.NewFloat(2))
}()

// bigPi is pi at working precision, computed once via Machin's formula
// (pi/4 = 4*atan(1/5) - atan(1/239)), the same low-term-count approach a
// hand-rolled arbitrary-precision library reaches for when no transcendental
// primitive is available.
var bigPi = func() *big.Float {
	a := bigAtanSeries(ratio(1, 5))
	b := bigAtanSeries(ratio(1, 239))
	p := new(big.Float).SetPrec(workingPrec)
	p.Sub(a.Mul(a, big.NewFloat(4)), b)
	return p.Mul(p, big.NewFloat(4))
}()

func ratio(n, d int64) *big.Float {
	return new(big.Float).SetPrec(workingPrec).Quo(
		new(big.Float).SetPrec(workingPrec).SetInt64(n),
		new(big.Float).SetPrec(workingPrec).SetInt64(d))
}

// bigAtanh computes atanh(z) = z + z^3/3 + z^5/5 + ... for |z| < 1, used
// only to seed ln2 above from a well-converging rational argument.
func bigAtanh(z *big.Float) *big.Float {
	sum := new(big.Float).SetPrec(workingPrec).Set(z)
	term := new(big.Float).SetPrec(workingPrec).Set(z)
	zz := new(big.Float).SetPrec(workingPrec).Mul(z, z)
	for n := int64(3); n < 400; n += 2 {
		term.Mul(term, zz)
		t := new(big.Float).SetPrec(workingPrec).Quo(term, big.NewFloat(float64(n)))
		sum.Add(sum, t)
		if t.MantExp(nil) < -int(workingPrec)-20 {
			break
		}
	}
	return sum
}

// bigAtanSeries computes atan(z) = z - z^3/3 + z^5/5 - ... for |z| <= 1,
// used directly only for the small, rapidly convergent Machin arguments.
func bigAtanSeries(z *big.Float) *big.Float {
	sum := new(big.Float).SetPrec(workingPrec).Set(z)
	term := new(big.Float).SetPrec(workingPrec).Set(z)
	zz := new(big.Float).SetPrec(workingPrec).Mul(z, z)
	neg := true
	for n := int64(3); n < 400; n += 2 {
		term.Mul(term, zz)
		t := new(big.Float).SetPrec(workingPrec).Quo(term, big.NewFloat(float64(n)))
		if neg {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		neg = !neg
		if t.MantExp(nil) < -int(workingPrec)-20 {
			break
		}
	}
	return sum
}

// bigLn computes ln(x) for x > 0 by pulling out x's binary exponent
// (x = m * 2^e, m in [1,2)) and evaluating ln(m) via the atanh series
// above, the standard range-reduce-then-series approach.
func bigLn(x *big.Float) *big.Float {
	m := new(big.Float).SetPrec(workingPrec)
	e := x.MantExp(m) // x = m * 2^e, m in [0.5, 1)
	m.Mul(m, big.NewFloat(2))
	e--
	z := new(big.Float).SetPrec(workingPrec).Quo(
		new(big.Float).SetPrec(workingPrec).Sub(m, big.NewFloat(1)),
		new(big.Float).SetPrec(workingPrec).Add(m, big.NewFloat(1)))
	lnm := new(big.Float).SetPrec(workingPrec).Mul(bigAtanh(z), big.NewFloat(2))
	return lnm.Add(lnm, new(big.Float).SetPrec(workingPrec).Mul(big.NewFloat(float64(e)), bigLn2))
}

// bigLog2 computes log2(x) for x > 0 as ln(x)/ln(2).
func bigLog2(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(workingPrec).Quo(bigLn(x), bigLn2)
}

// bigExp2 computes 2^x for finite x by splitting x into an integer part n
// and a fractional remainder f in [0,1), then evaluating 2^f = e^(f*ln2)
// via its Taylor series (which converges quickly since f*ln2 is small)
// and scaling the result by 2^n with MantExp/SetMantExp.
func bigExp2(x *big.Float) *big.Float {
	xf, _ := x.Float64()
	n := int64(math.Floor(xf))
	f := new(big.Float).SetPrec(workingPrec).Sub(x, new(big.Float).SetPrec(workingPrec).SetInt64(n))

	t := new(big.Float).SetPrec(workingPrec).Mul(f, bigLn2)
	sum := new(big.Float).SetPrec(workingPrec).SetInt64(1)
	term := new(big.Float).SetPrec(workingPrec).SetInt64(1)
	for k := int64(1); k < 400; k++ {
		term.Mul(term, t)
		term.Quo(term, big.NewFloat(float64(k)))
		sum.Add(sum, term)
		if term.MantExp(nil) < -int(workingPrec)-20 {
			break
		}
	}
	return new(big.Float).SetPrec(workingPrec).SetMantExp(sum, int(n))
}

// bigAtan computes atan(x) for any finite x, reducing |x| toward 0 with
// the half-angle identity atan(x) = 2*atan(x/(1+sqrt(1+x^2))) until the
// series below converges in a handful of terms, then undoing the
// reduction and the |x|>1 reflection atan(x) = pi/2 - atan(1/x).
func bigAtan(x *big.Float) *big.Float {
	neg := x.Sign() < 0
	ax := new(big.Float).SetPrec(workingPrec).Abs(x)

	reflected := false
	if ax.Cmp(big.NewFloat(1)) > 0 {
		ax = new(big.Float).SetPrec(workingPrec).Quo(big.NewFloat(1), ax)
		reflected = true
	}

	halvings := 0
	for ax.Cmp(ratio(1, 8)) > 0 {
		one := new(big.Float).SetPrec(workingPrec).SetInt64(1)
		axax := new(big.Float).SetPrec(workingPrec).Mul(ax, ax)
		root := new(big.Float).SetPrec(workingPrec).Sqrt(axax.Add(axax, one))
		denom := new(big.Float).SetPrec(workingPrec).Add(root, big.NewFloat(1))
		ax = new(big.Float).SetPrec(workingPrec).Quo(ax, denom)
		halvings++
	}

	r := bigAtanSeries(ax)
	for i := 0; i < halvings; i++ {
		r.Mul(r, big.NewFloat(2))
	}

	if reflected {
		halfPi := new(big.Float).SetPrec(workingPrec).Quo(bigPi, big.NewFloat(2))
		r = new(big.Float).SetPrec(workingPrec).Sub(halfPi, r)
	}
	if neg {
		r.Neg(r)
	}
	return r
}

// bigSin and bigCos reduce x modulo 2*pi into (-pi,pi] and evaluate the
// Taylor series directly; at that range the series converges well within
// the term cap below.
func reduceMod2Pi(x *big.Float) *big.Float {
	twoPi := new(big.Float).SetPrec(workingPrec).Mul(bigPi, big.NewFloat(2))
	q := new(big.Float).SetPrec(workingPrec).Quo(x, twoPi)
	qf, _ := q.Float64()
	n := math.Round(qf)
	r := new(big.Float).SetPrec(workingPrec).Sub(x, new(big.Float).SetPrec(workingPrec).Mul(twoPi, big.NewFloat(n)))
	return r
}

func bigSin(x *big.Float) *big.Float {
	r := reduceMod2Pi(x)
	sum := new(big.Float).SetPrec(workingPrec).Set(r)
	term := new(big.Float).SetPrec(workingPrec).Set(r)
	rr := new(big.Float).SetPrec(workingPrec).Mul(r, r)
	neg := true
	for n := int64(3); n < 400; n += 2 {
		term.Mul(term, rr)
		t := new(big.Float).SetPrec(workingPrec).Quo(term, factorial(n))
		if neg {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		neg = !neg
		if t.MantExp(nil) < -int(workingPrec)-20 {
			break
		}
	}
	return sum
}

func bigCos(x *big.Float) *big.Float {
	r := reduceMod2Pi(x)
	sum := new(big.Float).SetPrec(workingPrec).SetInt64(1)
	term := new(big.Float).SetPrec(workingPrec).SetInt64(1)
	rr := new(big.Float).SetPrec(workingPrec).Mul(r, r)
	neg := true
	for n := int64(2); n < 400; n += 2 {
		term.Mul(term, rr)
		t := new(big.Float).SetPrec(workingPrec).Quo(term, factorial(n))
		if neg {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		neg = !neg
		if t.MantExp(nil) < -int(workingPrec)-20 {
			break
		}
	}
	return sum
}

func factorial(n int64) *big.Float {
	f := new(big.Float).SetPrec(workingPrec).SetInt64(1)
	for i := int64(2); i <= n; i++ {
		f.Mul(f, big.NewFloat(float64(i)))
	}
	return f
}

// F2xm1 returns the correctly rounded value of 2^x - 1.
func F2xm1(x float64) float64 {
	if math.IsInf(x, 1) {
		return math.Inf(1)
	}
	if math.IsInf(x, -1) {
		return -1
	}
	bx := newFloat(x)
	r := new(big.Float).SetPrec(workingPrec).Sub(bigExp2(bx), big.NewFloat(1))
	return toFloat64(r)
}

// Fyl2x returns the correctly rounded value of y*log2(x).
func Fyl2x(x, y float64) float64 {
	if x == 0 {
		if y == 0 {
			return math.NaN()
		}
		return math.Copysign(math.Inf(1), -y)
	}
	bx, by := newFloat(x), newFloat(y)
	r := new(big.Float).SetPrec(workingPrec).Mul(by, bigLog2(bx))
	return toFloat64(r)
}

// Fyl2xp1 returns the correctly rounded value of y*log2(x+1).
func Fyl2xp1(x, y float64) float64 {
	bx, by := newFloat(x), newFloat(y)
	x1 := new(big.Float).SetPrec(workingPrec).Add(bx, big.NewFloat(1))
	r := new(big.Float).SetPrec(workingPrec).Mul(by, bigLog2(x1))
	return toFloat64(r)
}

// Fscale returns x * 2^trunc(k) exactly (a pure exponent shift, already
// exact in float64 arithmetic for in-range k, so no big.Float is needed).
func Fscale(x, k float64) float64 {
	return x * math.Pow(2, math.Trunc(k))
}

// Fsin, Fcos and Fsincos return the correctly rounded trigonometric
// values via the Taylor-series kernels above.
func Fsin(x float64) float64 { return toFloat64(bigSin(newFloat(x))) }
func Fcos(x float64) float64 { return toFloat64(bigCos(newFloat(x))) }

func Fsincos(x float64) (sin, cos float64) {
	bx := newFloat(x)
	return toFloat64(bigSin(bx)), toFloat64(bigCos(bx))
}

// Fptan returns the correctly rounded tangent of x.
func Fptan(x float64) float64 {
	bx := newFloat(x)
	s, c := bigSin(bx), bigCos(bx)
	return toFloat64(new(big.Float).SetPrec(workingPrec).Quo(s, c))
}

// Fpatan returns the correctly rounded atan2(y, x).
func Fpatan(x, y float64) float64 {
	switch {
	case x == 0 && y == 0:
		if math.Signbit(x) {
			return math.Copysign(math.Pi, y)
		}
		return math.Copysign(0, y)
	case math.IsInf(x, 0) && math.IsInf(y, 0):
		if x > 0 {
			return math.Copysign(math.Pi/4, y)
		}
		return math.Copysign(3*math.Pi/4, y)
	}
	bx, by := newFloat(x), newFloat(y)
	if x > 0 {
		return toFloat64(bigAtan(new(big.Float).SetPrec(workingPrec).Quo(by, bx)))
	}
	r := bigAtan(new(big.Float).SetPrec(workingPrec).Quo(by, bx))
	if y < 0 || math.Signbit(y) {
		return toFloat64(new(big.Float).SetPrec(workingPrec).Sub(r, bigPi))
	}
	return toFloat64(new(big.Float).SetPrec(workingPrec).Add(r, bigPi))
}

// Verdict classifies a kernel's result against the oracle's reference.
type Verdict int

const (
	BitExact Verdict = iota
	OneULP
	TwoULP
	Miss
)

func (v Verdict) String() string {
	switch v {
	case BitExact:
		return "bit-exact"
	case OneULP:
		return "1-ULP"
	case TwoULP:
		return "2-ULP"
	default:
		return "miss"
	}
}

// Classify compares a kernel's float64 result against the reference value
// this package computed, in ULPs of the reference.
func Classify(got, want float64) Verdict {
	if got == want || (math.IsNaN(got) && math.IsNaN(want)) {
		return BitExact
	}
	if math.IsNaN(got) != math.IsNaN(want) || math.IsInf(got, 0) != math.IsInf(want, 0) {
		return Miss
	}
	gb := int64(math.Float64bits(got))
	wb := int64(math.Float64bits(want))
	diff := gb - wb
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return BitExact
	case diff == 1:
		return OneULP
	case diff == 2:
		return TwoULP
	default:
		return Miss
	}
}

// ErrUnavailable reports that the oracle could not produce a reference
// value for a given operation (reserved for callers that wrap this
// package behind a fallible interface, e.g. a future native-FPU backend).
var ErrUnavailable = fpuerr.New(fpuerr.OracleUnavailable, "big.Float reference")
