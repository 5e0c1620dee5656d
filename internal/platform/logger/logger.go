// Package logger provides leveled logging for the simulation server.
// Every tick, travel toggle and party interaction is traceable through it.
package logger

import (
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Logger provides leveled logging with context.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a logger writing info/warn to stdout and errors to
// stderr. Prefixes are colorized when stdout is a terminal.
func NewLogger() *Logger {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return newLogger(os.Stdout, os.Stderr, color)
}

// NewWriterLogger sends every level to w without colors.
func NewWriterLogger(w io.Writer) *Logger {
	return newLogger(w, w, false)
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *Logger {
	return NewWriterLogger(io.Discard)
}

func newLogger(out, errOut io.Writer, color bool) *Logger {
	prefix := func(level, c string) string {
		if !color {
			return "[DRIFT-" + level + "] "
		}
		return c + "[DRIFT-" + level + "]" + colorReset + " "
	}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		infoLogger:  log.New(out, prefix("INFO", colorCyan), flags),
		warnLogger:  log.New(out, prefix("WARN", colorYellow), flags),
		errorLogger: log.New(errOut, prefix("ERROR", colorRed), flags),
	}
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.infoLogger.Output(2, msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.warnLogger.Output(2, msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.errorLogger.Output(2, msg)
}

// Event logs a game event with its actor.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.infoLogger.Printf("[EVENT:%s] Actor:%s | %s", eventType, actorID, details)
}
