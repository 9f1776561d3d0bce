// Package logger is the leveled logging seam shared by the collector, the
// sampler, the dashboard and the CLI. Lines go through the standard log
// package, so the CLI decides where they land: a debug file while the
// dashboard owns the terminal, or nowhere at all.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "SYSDASH_DEBUG"

// Level names a log severity. BufferLogger records it verbatim.
type Level = string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger is what sysdash components log through.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnabled reports whether SYSDASH_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

type componentLogger struct {
	tag string
}

// New returns a logger whose lines read "[component] LEVEL message".
// Debug lines are dropped unless SYSDASH_DEBUG is set.
func New(component string) Logger {
	return &componentLogger{tag: "[" + component + "]"}
}

func (l *componentLogger) write(level Level, format string, args ...interface{}) {
	log.Printf("%s %s %s", l.tag, strings.ToUpper(level), fmt.Sprintf(format, args...))
}

func (l *componentLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		l.write(LevelDebug, format, args...)
	}
}

func (l *componentLogger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, format, args...)
}

func (l *componentLogger) Warn(format string, args ...interface{}) {
	l.write(LevelWarn, format, args...)
}

func (l *componentLogger) Error(format string, args ...interface{}) {
	l.write(LevelError, format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage is one captured line.
type LogMessage struct {
	Level   Level
	Message string
}

// BufferLogger captures messages so tests can count them. Safe for use from
// the sampler goroutine while a test inspects it.
type BufferLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

// NewBufferLogger creates an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) record(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.record(LevelDebug, format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.record(LevelInfo, format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.record(LevelWarn, format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.record(LevelError, format, args...) }

// Messages returns a copy of everything captured so far.
func (l *BufferLogger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogMessage(nil), l.messages...)
}

// Count returns how many messages were logged at level.
func (l *BufferLogger) Count(level Level) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.messages {
		if m.Level == level {
			n++
		}
	}
	return n
}

var defaultLogger = New("sysdash")

// Default returns the logger used by one-shot commands.
func Default() Logger {
	return defaultLogger
}
