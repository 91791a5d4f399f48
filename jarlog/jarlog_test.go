package jarlog

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// ------------------------------------------------------------------------

type recordingLogger struct {
	events []*Event
	levels []Level
}

func (r *recordingLogger) Log(level Level, e *Event) {
	r.levels = append(r.levels, level)
	r.events = append(r.events, e)
}

// ------------------------------------------------------------------------

func TestNewEvent(t *testing.T) {
	e := NewEvent("insert", "example.com", map[string]string{"name": "a"})

	if e.Type != "insert" || e.Domain != "example.com" || e.Values["name"] != "a" {
		t.Errorf("NewEvent() = %+v, unexpected fields", e)
	}
}

// ------------------------------------------------------------------------

func TestRecordingLogger_capturesEvents(t *testing.T) {
	l := &recordingLogger{}

	e := NewEvent("matches", "example.com", map[string]string{"count": "1"})
	l.Log(DebugLevel, e)

	if len(l.events) != 1 || l.events[0] != e {
		t.Fatalf("recordingLogger captured %v, want [%v]", l.events, e)
	}

	if l.levels[0] != DebugLevel {
		t.Errorf("recorded level = %v, want %v", l.levels[0], DebugLevel)
	}
}

// ------------------------------------------------------------------------

func TestStdLogger_Log(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger(buf, "", 0)

	l.Log(WarnLevel, NewEvent("sweep", "example.com", map[string]string{"removed": "2"}))

	out := buf.String()

	if !strings.Contains(out, "WARN") {
		t.Errorf("Log() output = %q, want it to contain level name WARN", out)
	}

	if !strings.Contains(out, "example.com") {
		t.Errorf("Log() output = %q, want it to contain the domain", out)
	}

	if !strings.Contains(out, "sweep") {
		t.Errorf("Log() output = %q, want it to contain the event type", out)
	}
}

// ------------------------------------------------------------------------

func TestNewStdLogger_nilDestWritesToStderr(t *testing.T) {
	l := NewStdLogger(nil, "", 0)
	if l.l == nil {
		t.Fatal("NewStdLogger(nil, ...) produced a logger with no underlying log.Logger")
	}

	if l.l.Writer() != os.Stderr {
		t.Errorf("NewStdLogger(nil, ...) writer = %v, want os.Stderr", l.l.Writer())
	}
}
