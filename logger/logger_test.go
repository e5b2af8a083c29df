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

package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/x87fpu/logger"
)

func TestCentralLoggerWriteAndClear(t *testing.T) {
	logger.Clear()
	var buf bytes.Buffer

	logger.Write(&buf)
	if buf.Len() != 0 {
		t.Fatalf("expected no output before any log entry, got %q", buf.String())
	}

	logger.Log(logger.Allow, "test", "this is a test")
	buf.Reset()
	logger.Write(&buf)
	if !strings.Contains(buf.String(), "test: this is a test") {
		t.Errorf("got %q, want it to contain the logged entry", buf.String())
	}

	logger.Clear()
	buf.Reset()
	logger.Write(&buf)
	if buf.Len() != 0 {
		t.Errorf("expected no output after Clear, got %q", buf.String())
	}
}

func TestRepeatedEntryIsCollapsed(t *testing.T) {
	logger.Clear()
	logger.Log(logger.Allow, "tag", "same detail")
	logger.Log(logger.Allow, "tag", "same detail")

	var buf bytes.Buffer
	logger.Write(&buf)
	if !strings.Contains(buf.String(), "repeat x2") {
		t.Errorf("expected a repeat marker, got %q", buf.String())
	}
}

func TestLogfFormats(t *testing.T) {
	logger.Clear()
	logger.Logf(logger.Allow, "tag", "value is %d", 42)

	var buf bytes.Buffer
	logger.Write(&buf)
	if !strings.Contains(buf.String(), "value is 42") {
		t.Errorf("got %q, want formatted detail", buf.String())
	}
}

func TestPermissionDenied(t *testing.T) {
	logger.Clear()

	deny := denyPermission{}
	logger.Log(deny, "tag", "should not appear")

	var buf bytes.Buffer
	logger.Write(&buf)
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged under a denying permission, got %q", buf.String())
	}
}

type denyPermission struct{}

func (denyPermission) AllowLogging() bool { return false }

func TestTailReturnsOnlyRequestedCount(t *testing.T) {
	logger.Clear()
	for i := 0; i < 5; i++ {
		logger.Logf(logger.Allow, "tag", "entry %d", i)
	}

	var buf bytes.Buffer
	logger.Tail(&buf, 2)
	if !strings.Contains(buf.String(), "entry 3") || !strings.Contains(buf.String(), "entry 4") {
		t.Errorf("got %q, want the last two entries", buf.String())
	}
	if strings.Contains(buf.String(), "entry 0") {
		t.Errorf("got %q, did not want the earliest entry", buf.String())
	}
}

func TestSetEchoMirrorsFutureEntries(t *testing.T) {
	logger.Clear()
	var buf bytes.Buffer
	logger.SetEcho(&buf, false)

	logger.Log(logger.Allow, "tag", "echoed")
	if !strings.Contains(buf.String(), "echoed") {
		t.Errorf("got %q, want the entry echoed live", buf.String())
	}

	logger.SetEcho(nil, false)
}

func TestBorrowLogSeesCurrentEntries(t *testing.T) {
	logger.Clear()
	logger.Log(logger.Allow, "tag", "borrowed")

	var tags []string
	logger.BorrowLog(func(entries []logger.Entry) {
		for range entries {
			tags = append(tags, "tag")
		}
	})
	if len(tags) != 1 {
		t.Errorf("got %d entries, want 1", len(tags))
	}
}
