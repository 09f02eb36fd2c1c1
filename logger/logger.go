package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Logger defines a minimal logging contract compatible with go-logger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger allows attaching structured fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// BasicLogger writes level-prefixed lines with sorted key=value fields.
type BasicLogger struct {
	Writer io.Writer
	fields map[string]any
	mu     sync.Mutex
}

var defaultLogger Logger = NewBasicLogger()

// Default returns a usable logger when none is provided.
func Default() Logger {
	return defaultLogger
}

// NewBasicLogger constructs a BasicLogger that logs to stderr by default.
func NewBasicLogger() *BasicLogger {
	return &BasicLogger{Writer: os.Stderr}
}

// WithFields implements FieldsLogger.
func (l *BasicLogger) WithFields(fields map[string]any) Logger {
	if l == nil {
		return &BasicLogger{Writer: os.Stderr, fields: fields}
	}
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &BasicLogger{Writer: l.Writer, fields: merged}
}

// WithContext implements Logger.
func (l *BasicLogger) WithContext(ctx context.Context) Logger {
	return l
}

// Trace implements Logger.
func (l *BasicLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }

// Debug implements Logger.
func (l *BasicLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }

// Info implements Logger.
func (l *BasicLogger) Info(msg string, args ...any) { l.log("INFO", msg, args...) }

// Warn implements Logger.
func (l *BasicLogger) Warn(msg string, args ...any) { l.log("WARN", msg, args...) }

// Error implements Logger.
func (l *BasicLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }

// Fatal implements Logger.
func (l *BasicLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *BasicLogger) log(level, msg string, args ...any) {
	if l == nil {
		return
	}
	out := l.Writer
	if out == nil {
		out = os.Stderr
	}
	line := strings.Builder{}
	fmt.Fprintf(&line, "[%s] %s", level, msg)
	for _, pair := range sortedFields(l.fields) {
		fmt.Fprintf(&line, " %s", pair)
	}
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&line, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&line, " %v", args[len(args)-1])
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(out, line.String())
}

func sortedFields(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for key, value := range fields {
		out = append(out, fmt.Sprintf("%s=%v", key, value))
	}
	sort.Strings(out)
	return out
}

var _ Logger = (*BasicLogger)(nil)
var _ FieldsLogger = (*BasicLogger)(nil)
