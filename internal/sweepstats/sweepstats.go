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

//go:build statsview
// +build statsview

// Package sweepstats wires a live statsview dashboard into cmd/x87sweep,
// the same Launch/Available shape the teacher's own statsview package
// exposes for frame-timing stats. The dashboard shows the standard
// runtime metrics statsview already graphs; Counters is defined here but
// the sweep loop in cmd/x87sweep does not update it, and no custom panel
// wiring is added, keeping this file a thin, build-tagged companion to the
// teacher's own.
package sweepstats

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const Address = "localhost:12601"
const url = "/debug/statsview"

// Counters is the running tally a sweep updates as it classifies results.
// Fields are accessed with sync/atomic since the sweep and the dashboard's
// collector goroutine read and write concurrently.
type Counters struct {
	BitExact, OneULP, TwoULP, Miss int64
}

func (c *Counters) Add(field *int64) { atomic.AddInt64(field, 1) }

// Launch starts a statsview server in its own goroutine, exactly as the
// teacher's statsview.Launch does.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	output.Write([]byte(fmt.Sprintf("stats server available at %s%s\n", Address, url)))
}

// Available returns true if a statsview dashboard is available to launch.
func Available() bool {
	return true
}
