// Package nsslog is a thin wrapper over the standard logger, matching the
// teacher's habit of terse operator-facing progress lines (main.go's
// log.Fatal/fmt.Printf calls) rather than pulling in a structured logging
// library the example corpus never reaches for.
package nsslog

import (
	"io"
	"log"
	"os"
)

// Logger prints one line per notable event. Build one with New; the zero
// value has no underlying writer, and logging through it panics.
type Logger struct {
	out *log.Logger
}

// New builds a Logger writing to w with no timestamp prefix, matching the
// CLI's plain confirmation-line style.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", 0)}
}

// Default is the package-level logger used by cmd/nss.
var Default = New(os.Stderr)

// Infof logs a progress line.
func (l *Logger) Infof(format string, args ...any) {
	l.out.Printf(format, args...)
}

// Fatalf logs and exits the process with status 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.out.Printf(format, args...)
	os.Exit(1)
}
