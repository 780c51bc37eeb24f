// Package logger implements ports.Logger on log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/srcset/internal/core/ports"
)

// messager is implemented by zerr errors, which report their own message
// without the wrapped chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger. Output is pretty-printed for terminals or
// JSON for CI.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	json   bool
	out    io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing pretty records to stderr.
func New() *Logger {
	l := &Logger{out: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput redirects the logger. A nil writer means os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.out = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty records, keeping the output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.json = enable
	l.rebuild()
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	var h slog.Handler
	if l.json {
		h = slog.NewJSONHandler(l.out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = NewPrettyHandler(l.out, slog.LevelInfo)
	}
	l.logger = slog.New(h)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. In pretty mode each wrapped zerr layer is listed under
// "Caused by:".
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.json {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}
	l.logger.Error(FormatError(err))
}

// FormatError renders the error chain as an indented block.
func FormatError(err error) string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}

	var out []string
	for i, msg := range messages {
		lines := strings.Split(msg, "\n")
		switch i {
		case 0:
			out = append(out, "Error: "+lines[0])
			for _, line := range lines[1:] {
				out = append(out, "       "+line)
			}
			continue
		case 1:
			out = append(out, "", "  Caused by:")
		}
		out = append(out, "    → "+lines[0])
		for _, line := range lines[1:] {
			out = append(out, "      "+line)
		}
	}
	return strings.Join(out, "\n")
}
