// Package logging wraps charmbracelet/log with a process-wide default
// logger and context propagation.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default logger
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

// New creates a logger writing to stderr at level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w at level.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	lvl, _ := ParseLevel(level)
	logger.SetLevel(lvl)
	return logger
}

// NewInteractive creates a stderr logger for commands run from a terminal.
// Debug loggers also report timestamps and call sites.
func NewInteractive(level string) *log.Logger {
	lvl, _ := ParseLevel(level)
	debug := lvl == log.DebugLevel

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: debug,
		ReportCaller:    debug,
		TimeFormat:      time.TimeOnly,
	})
	logger.SetLevel(lvl)
	return logger
}

// ParseLevel maps a level name to a log.Level. Unknown names give
// InfoLevel and false.
func ParseLevel(level string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, true
	case "info":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	default:
		return log.InfoLevel, false
	}
}

// Default returns the process-wide logger, creating it at info level on
// first use.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerMu.Lock()
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
		defaultLoggerMu.Unlock()
	})

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	Default()
	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// SetLevel updates the level of the process-wide logger.
func SetLevel(level string) {
	lvl, _ := ParseLevel(level)
	Default().SetLevel(lvl)
}
