package jarlog

import (
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"
)

// ------------------------------------------------------------------------

// stdLogger is a Logger backed by the standard library's log.Logger.
type stdLogger struct {
	l       *log.Logger
	counter int32
	start   time.Time
}

// ------------------------------------------------------------------------

// NewStdLogger returns a pointer to a newly created standard logger. A nil
// dest writes to os.Stderr.
func NewStdLogger(dest io.Writer, prefix string, flag int) *stdLogger {
	if dest == nil {
		dest = os.Stderr
	}

	return &stdLogger{
		l:     log.New(dest, prefix, flag),
		start: time.Now(),
	}
}

// ------------------------------------------------------------------------

// Log logs an event.
func (l *stdLogger) Log(level Level, e *Event) {
	i := atomic.AddInt32(&l.counter, 1)
	l.l.Printf("%s: [%06d] %s %q %v (%s)\n", levelNames[level], i, e.Domain, e.Type, e.Values, time.Since(l.start))
}
