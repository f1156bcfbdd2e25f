package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level controls which lines are written.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps LOG_LEVEL values to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

type requestIDKey struct{}

// WithRequestID stores a request id on ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	component string
	requestID string
	level     Level
	out       *log.Logger
}

// New creates a logger for a component writing to stderr.
func New(component string, level Level) *Logger {
	return &Logger{
		component: component,
		level:     level,
		out:       log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return &Logger{level: LevelError, out: log.New(io.Discard, "", 0)}
}

// FromContext returns a copy of l carrying the request id from ctx.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if rid := RequestID(ctx); rid != "" {
		return l.WithRequestID(rid)
	}
	return l
}

// WithRequestID returns a copy of l tagged with rid.
func (l *Logger) WithRequestID(rid string) *Logger {
	if l == nil {
		return nil
	}
	cp := *l
	cp.requestID = rid
	return &cp
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.logf(LevelError, "error", operation, "error=%v", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.logf(LevelError, "error", operation, format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.logf(LevelWarn, "warn", operation, format, args...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.logf(LevelInfo, "info", operation, format, args...)
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	l.logf(LevelDebug, "debug", operation, format, args...)
}

func (l *Logger) logf(level Level, tag, operation, format string, args ...interface{}) {
	if l == nil || level > l.level {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", tag)
	if l.requestID != "" {
		fmt.Fprintf(&b, " request_id=%s", l.requestID)
	}
	if l.component != "" {
		fmt.Fprintf(&b, " component=%s", l.component)
	}
	fmt.Fprintf(&b, " operation=%s ", operation)
	fmt.Fprintf(&b, format, args...)
	l.out.Print(b.String())
}
