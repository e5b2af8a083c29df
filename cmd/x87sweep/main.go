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

// Command x87sweep runs the boundary-value conformance sweep described in
// the package documentation of internal/sweepgen and internal/oracle: for
// each selected opcode it enumerates boundary scenarios, runs the kernel,
// classifies the result against the arbitrary-precision oracle, and exits
// non-zero if any opcode misses its documented error-rate threshold.
package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/x87fpu/fpuerr"
	"github.com/jetsetilly/x87fpu/internal/oracle"
	"github.com/jetsetilly/x87fpu/internal/sweepflags"
	"github.com/jetsetilly/x87fpu/internal/sweepgen"
	"github.com/jetsetilly/x87fpu/logger"
	"github.com/jetsetilly/x87fpu/version"
	"github.com/jetsetilly/x87fpu/x87/fp64"
	"github.com/jetsetilly/x87fpu/x87/stack"
	"github.com/jetsetilly/x87fpu/x87/trans"
)

// threshold is the minimum fraction of results (cumulative through a given
// bucket) an operation must reach, per the §8 quantitative thresholds.
type threshold struct {
	bitExact, throughOneULP, throughTwoULP float64
}

var thresholds = map[string]threshold{
	"f2xm1":   {0.9997, 1.0, 1.0},
	"fyl2x":   {0.98, 1.0, 1.0},
	"fyl2xp1": {0.86, 0.99, 0.99999},
	"fsin":    {0.60, 0.997, 1.0},
	"fcos":    {0.60, 0.997, 1.0},
	"fsincos": {0.60, 0.997, 1.0},
	"fptan":   {0.60, 0.997, 1.0},
	"fpatan":  {0.85, 0.9999, 1.0},
}

// result tallies one operation's sweep outcome.
type result struct {
	op                       string
	total                    int
	bitExact, oneULP, twoULP int
	miss                     int
}

func (r *result) record(v oracle.Verdict) {
	r.total++
	switch v {
	case oracle.BitExact:
		r.bitExact++
	case oracle.OneULP:
		r.oneULP++
	case oracle.TwoULP:
		r.twoULP++
	default:
		r.miss++
	}
}

func (r *result) passes() bool {
	th, ok := thresholds[r.op]
	if !ok {
		return r.miss == 0
	}
	n := float64(r.total)
	if float64(r.bitExact)/n < th.bitExact {
		return false
	}
	if float64(r.bitExact+r.oneULP)/n < th.throughOneULP {
		return false
	}
	if float64(r.bitExact+r.oneULP+r.twoULP)/n < th.throughTwoULP {
		return false
	}
	return true
}

func unarySweep(op string, n int, kernel func(fp64.F64) fp64.F64, ref func(float64) float64) *result {
	vals := sweepgen.Unary(sweepgen.Width64)
	if n > 0 && n < len(vals) {
		vals = sweepgen.Sample(sweepgen.Width64, n)
	}
	r := &result{op: op}
	for _, v := range vals {
		got := float64(kernel(fp64.F64(v)))
		want := ref(v)
		r.record(oracle.Classify(got, want))
	}
	return r
}

func binarySweep(op string, n int, kernel func(fp64.F64, fp64.F64) fp64.F64, ref func(float64, float64) float64) *result {
	pairs := sweepgen.Binary(sweepgen.Width64)
	r := &result{op: op}
	for i, p := range pairs {
		if n > 0 && i >= n {
			break
		}
		got := float64(kernel(fp64.F64(p[0]), fp64.F64(p[1])))
		want := ref(p[0], p[1])
		r.record(oracle.Classify(got, want))
	}
	return r
}

func run(opName string, scenarios int) []*result {
	var out []*result

	unary := map[string]struct {
		kernel func(fp64.F64) fp64.F64
		ref    func(float64) float64
	}{
		"f2xm1": {func(x fp64.F64) fp64.F64 { r, _ := trans.F2xm1(x); return r }, oracle.F2xm1},
		"fsin":  {func(x fp64.F64) fp64.F64 { r, _ := trans.FSin(x); return r }, oracle.Fsin},
		"fcos":  {func(x fp64.F64) fp64.F64 { r, _ := trans.FCos(x); return r }, oracle.Fcos},
		"fptan": {func(x fp64.F64) fp64.F64 { _, r, _ := trans.FPtan(x); return r }, oracle.Fptan},
	}
	binary := map[string]struct {
		kernel func(fp64.F64, fp64.F64) fp64.F64
		ref    func(float64, float64) float64
	}{
		"fyl2x":   {func(x, y fp64.F64) fp64.F64 { r, _ := trans.FYl2x(x, y); return r }, oracle.Fyl2x},
		"fyl2xp1": {func(x, y fp64.F64) fp64.F64 { r, _ := trans.FYl2xp1(x, y); return r }, oracle.Fyl2xp1},
		"fpatan":  {func(x, y fp64.F64) fp64.F64 { r, _ := trans.FPatan(x, y); return r }, oracle.Fpatan},
	}

	for _, name := range []string{"f2xm1", "fsin", "fcos", "fptan"} {
		if o, ok := unary[name]; ok && (opName == "all" || opName == name) {
			out = append(out, unarySweep(name, scenarios, o.kernel, o.ref))
		}
	}
	for _, name := range []string{"fyl2x", "fyl2xp1", "fpatan"} {
		if o, ok := binary[name]; ok && (opName == "all" || opName == name) {
			out = append(out, binarySweep(name, scenarios, o.kernel, o.ref))
		}
	}
	if opName == "all" || opName == "fsincos" {
		out = append(out, fsincosSweep(scenarios))
	}
	return out
}

func fsincosSweep(n int) *result {
	vals := sweepgen.Unary(sweepgen.Width64)
	if n > 0 && n < len(vals) {
		vals = sweepgen.Sample(sweepgen.Width64, n)
	}
	r := &result{op: "fsincos"}
	for _, v := range vals {
		sin, cos, _ := trans.FSinCos(fp64.F64(v))
		wantSin, wantCos := oracle.Fsincos(v)
		r.record(oracle.Classify(float64(sin), wantSin))
		r.record(oracle.Classify(float64(cos), wantCos))
	}
	return r
}

// dumpGraph renders a memviz graph of a sample stack holding 1.0 and 2.0,
// for visually inspecting the register-bank layout.
func dumpGraph(path string) error {
	s := stack.New()
	s.FLD64(1.0)
	s.FLD64(2.0)

	f, err := os.Create(path)
	if err != nil {
		return fpuerr.New(fpuerr.ScenarioFileCannotOpen, path)
	}
	defer f.Close()

	memvizDump(f, s)
	return nil
}

func main() {
	flags := sweepflags.New(os.Stdout)
	switch r, err := flags.Parse(os.Args[1:]); r {
	case sweepflags.ParseHelp:
		return
	case sweepflags.ParseError:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *flags.Version {
		v, rev, release := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, rev)
		if !release {
			fmt.Println("this is not a numbered release build")
		}
		return
	}

	logger.SetEcho(os.Stdout, false)
	maybeLaunchStats(os.Stdout)

	if *flags.DumpGraph != "" {
		if err := dumpGraph(*flags.DumpGraph); err != nil {
			logger.Logf(logger.Allow, "x87sweep", "could not write graph: %v", err)
		}
	}

	results := run(*flags.Op, *flags.Scenarios)

	failed := false
	fmt.Printf("%-10s %8s %10s %10s %10s %10s %6s\n", "op", "total", "bit-exact", "1-ulp", "2-ulp", "miss", "pass")
	for _, r := range results {
		ok := r.passes()
		if !ok {
			failed = true
		}
		fmt.Printf("%-10s %8d %10d %10d %10d %10d %6v\n",
			r.op, r.total, r.bitExact, r.oneULP, r.twoULP, r.miss, ok)
	}

	if failed {
		os.Exit(1)
	}
}
