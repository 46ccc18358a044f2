// Package logger adapts zerolog to a trace/info/warn/error + getLevel() /
// onDidChangeLogLevel sink contract, following the Level-enum shape of
// dittofs's original internal/logger and the zerolog wiring of
// arthur-debert-go-synthfs's pkg/synthfs/log.go and logger_adapter.go.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the four-plus-trace levels the watch multiplexer toggles
// between "verbose" and normal logging.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelTrace:
		return zerolog.TraceLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Logger is a zerolog-backed sink with a subscribable level, used by the
// provider's watch multiplexer to propagate verbose-logging toggles to
// whichever backend is currently active.
type Logger struct {
	mu       sync.Mutex
	level    Level
	base     zerolog.Logger
	watchers []func(Level)
}

// New creates a Logger writing to w at the given starting level.
func New(w io.Writer, level Level) *Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	base := zerolog.New(console).Level(level.zerolog()).With().Timestamp().Str("component", "diskprovider").Logger()
	return &Logger{level: level, base: base}
}

// Default returns a Logger at info level writing to stderr.
func Default() *Logger { return New(os.Stderr, LevelInfo) }

// ParseLevel maps a case-insensitive level name to a Level, defaulting to
// LevelInfo for anything unrecognized.
func ParseLevel(name string) Level {
	parsed, err := zerolog.ParseLevel(name)
	if err != nil {
		return LevelInfo
	}
	switch parsed {
	case zerolog.TraceLevel:
		return LevelTrace
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel updates the active level and notifies subscribers registered via
// OnDidChangeLogLevel.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.base = l.base.Level(level.zerolog())
	watchers := append([]func(Level){}, l.watchers...)
	l.mu.Unlock()

	for _, w := range watchers {
		w(level)
	}
}

// GetLevel returns the currently active level.
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// OnDidChangeLogLevel subscribes to level changes, returning an unsubscribe func.
func (l *Logger) OnDidChangeLogLevel(fn func(Level)) (unsubscribe func()) {
	l.mu.Lock()
	idx := len(l.watchers)
	l.watchers = append(l.watchers, fn)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if idx < len(l.watchers) {
			l.watchers[idx] = func(Level) {}
		}
	}
}

func (l *Logger) Trace(format string, args ...any) { l.event(zerolog.TraceLevel, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.event(zerolog.DebugLevel, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.event(zerolog.InfoLevel, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.event(zerolog.WarnLevel, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.event(zerolog.ErrorLevel, format, args...) }

func (l *Logger) event(level zerolog.Level, format string, args ...any) {
	l.mu.Lock()
	base := l.base
	l.mu.Unlock()
	base.WithLevel(level).Msgf(format, args...)
}
