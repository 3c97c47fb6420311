// Package logger provides the process-wide structured logger. Records go to
// foldergen.log in the config directory, rotated by lumberjack, so that
// command output on stdout and stderr stays clean.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/foldergen-labs/foldergen/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file name inside the config directory.
const FileName = "foldergen.log"

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	once          sync.Once
)

// Get returns the global logger instance, initializing it once.
func Get() *slog.Logger {
	once.Do(func() {
		defaultLogger = initLogger()
	})
	return defaultLogger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLevel changes the level of the global logger. Unknown names fall back
// to info.
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initLogger creates the global logger. If the config directory cannot be
// created it returns a no-op logger.
func initLogger() *slog.Logger {
	if err := config.EnsureDir(); err != nil {
		return Discard()
	}
	return New(&lumberjack.Logger{
		Filename:   filepath.Join(config.Dir(), FileName),
		MaxSize:    1, // megabytes
		MaxBackups: 1,
		MaxAge:     0,
		Compress:   false,
	})
}

// New builds a text logger on w that follows the global level.
func New(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With("pid", os.Getpid())
}
