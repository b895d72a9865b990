// Package logging provides structured logging utilities.
//
// Console logs are formatted as:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
//
// When a log file is configured, a JSON copy of every record is mirrored
// to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gostorefront/cart-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(consoleSink(cfg), opts)
	} else {
		handler = NewConsoleHandler(os.Stdout, opts)
		if file := fileSink(cfg); file != nil {
			handler = NewTeeHandler(handler, slog.NewJSONHandler(file, opts))
		}
	}

	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system prefix (e.g., "api",
// "cart", "catalog"). Useful for scoped loggers injected into subsystems.
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	logger := NewLogger(cfg)
	return logger.With("system", system)
}

func consoleSink(cfg config.LoggingConfig) io.Writer {
	if file := fileSink(cfg); file != nil {
		return io.MultiWriter(os.Stdout, file)
	}
	return os.Stdout
}

// fileSink returns the rotating file writer, or nil when file logging is
// not configured.
func fileSink(cfg config.LoggingConfig) io.Writer {
	if cfg.File == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}
