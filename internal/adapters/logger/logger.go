// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/ngbuild/internal/core/ports"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Debug log rotation limits.
const (
	debugLogMaxSizeMB  = 10
	debugLogMaxBackups = 3
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
// Records are written to the console and, once EnableDebugLog was called, to
// a rotated debug log file at debug level.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	debug    *slog.Logger
	closer   io.Closer
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to os.Stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.logger = slog.New(l.consoleHandler())
	return l
}

// SetOutput updates the logger's console destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.consoleHandler())
}

// SetJSON switches the console between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.consoleHandler())
}

// EnableDebugLog additionally writes every record, including debug records,
// to path. The file is rotated by size.
func (l *Logger) EnableDebugLog(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		_ = l.closer.Close()
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    debugLogMaxSizeMB,
		MaxBackups: debugLogMaxBackups,
	}
	l.closer = w
	l.debug = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close closes the debug log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer, l.debug = nil, nil
	return err
}

func (l *Logger) consoleHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// Debug logs a message that only reaches the debug log.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.debug != nil {
		l.debug.Debug(msg)
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
	if l.debug != nil {
		l.debug.Info(msg)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
	if l.debug != nil {
		l.debug.Warn(msg)
	}
}

// Error logs an error together with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.debug != nil {
		l.debug.Error("operation failed", "error", err)
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
