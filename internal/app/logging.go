// Package app wires the vimview bridge together: settings, transport,
// engine, query facade and the bridge loop.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for remote command traces.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "info", "INFO":
		return LogLevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger is a small leveled logger. Bridge diagnostics go to stderr so
// they never mix with the protocol stream on stdout.
//
// Component loggers share the root's level and output, so raising the
// level at runtime (the debug setting) reaches every component.
type Logger struct {
	state     *loggerState
	prefix    string
	component string
}

// loggerState is the mutable core shared by a logger and its components.
type loggerState struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
}

// NewLogger creates a logger writing to output (stderr when nil).
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		state:  &loggerState{level: level, output: output},
		prefix: "vimview",
	}
}

// WithComponent returns a logger tagging messages with a component name.
// The returned logger shares this logger's level and output.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		state:     l.state,
		prefix:    l.prefix,
		component: component,
	}
}

// SetLevel sets the minimum level to output, for this logger and every
// logger sharing its state.
func (l *Logger) SetLevel(level LogLevel) {
	l.state.mu.Lock()
	l.state.level = level
	l.state.mu.Unlock()
}

// Level returns the current minimum level.
func (l *Logger) Level() LogLevel {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.level
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if level < l.state.level || l.state.output == nil {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05.000")
	name := l.prefix
	if l.component != "" {
		name += "/" + l.component
	}
	fmt.Fprintf(l.state.output, "%s [%s] %s: %s\n", timestamp, level, name, msg)
}
