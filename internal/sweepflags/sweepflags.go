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

// Package sweepflags is a small command-line flag wrapper for cmd/x87sweep,
// modeled on the register-stack CLI conventions of the teacher's own
// modalflag package: a single Flags struct owns a *flag.FlagSet, prints
// help to a configurable io.Writer, and distinguishes "help was printed"
// from "a real parse error" so the caller can exit cleanly either way.
// Unlike modalflag, the sweep CLI is a flat set of flags with no
// sub-modes, so the sub-mode machinery modalflag needs is left out.
package sweepflags

import (
	"flag"
	"io"
)

// ParseResult mirrors modalflag's three-way outcome.
type ParseResult int

const (
	ParseContinue ParseResult = iota
	ParseHelp
	ParseError
)

// Flags holds the sweep CLI's command line options.
type Flags struct {
	Output io.Writer

	set *flag.FlagSet

	Op         *string
	Width      *int
	Scenarios  *int
	DumpGraph  *string
	GraphFirst *bool
	Version    *bool
}

// New constructs the flag set with the sweep CLI's defaults.
func New(output io.Writer) *Flags {
	f := &Flags{Output: output, set: flag.NewFlagSet("x87sweep", flag.ContinueOnError)}
	f.Op = f.set.String("op", "all", "instruction to sweep (or \"all\")")
	f.Width = f.set.Int("width", 64, "operand width in bits (parsed but not used: the sweep always runs the 64 bit kernels)")
	f.Scenarios = f.set.Int("scenarios", 0, "override generator density (0 = full sweep)")
	f.DumpGraph = f.set.String("dump-graph", "", "write a memviz graph of a sample two-value stack to this path before the sweep")
	f.GraphFirst = f.set.Bool("stop-on-mismatch", false, "parsed but not used: the sweep always runs every scenario")
	f.Version = f.set.Bool("version", false, "print version information and exit")
	f.set.SetOutput(output)
	return f
}

// Parse parses args (typically os.Args[1:]).
func (f *Flags) Parse(args []string) (ParseResult, error) {
	if err := f.set.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ParseHelp, nil
		}
		return ParseError, err
	}
	return ParseContinue, nil
}
