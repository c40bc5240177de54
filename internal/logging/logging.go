// Package logging builds the process logger.  Echo's own logger (gommon)
// is used everywhere so HTTP access logs, booking decisions and the queue
// consumer share one output and one JSON header format.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339_nano}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// New returns a logger writing JSON lines to stdout at the given level.
func New(prefix, level string) *log.Logger {
	return NewWithOutput(prefix, level, os.Stdout)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(prefix, level string, w io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetHeader(header)
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))
	return l
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return NewWithOutput("test", "OFF", io.Discard)
}

// ParseLevel maps a level name to a gommon level.  Unknown names mean INFO.
func ParseLevel(s string) log.Lvl {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return log.DEBUG
	case "WARN", "WARNING":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
