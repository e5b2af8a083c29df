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

package main

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/x87fpu/x87/stack"
)

// memvizDump renders a Graphviz .dot of the stack's live state (register
// values, tags, TOP) to w, for visual inspection of a failing scenario.
func memvizDump(w io.Writer, s *stack.Stack) {
	memviz.Map(w, s)
}
