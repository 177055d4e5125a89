package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a logger writing to stderr, so that documents the CLI prints on
// stdout stay machine-readable. format is "console" (colored, for terminals)
// or "json" (for the service behind a log collector); empty means console.
func New(levelStr, format string) (*zap.Logger, error) {
	// Parse log level
	level := ParseLevel(levelStr)

	// Pick the encoder for the requested format
	var enc zapcore.EncoderConfig
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		format = FormatConsole
		enc = NewConsoleEncoderConfig()
	case FormatJSON:
		format = FormatJSON
		enc = NewJSONEncoderConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         format,
		EncoderConfig:    enc,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// ParseLevel converts a config string to a level, defaulting to info.
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

// NewConsoleEncoderConfig returns a human-friendly encoder config with colors
// and the caller of each decode log line.
func NewConsoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 - 15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewJSONEncoderConfig returns the machine-readable config. Durations are
// milliseconds so decode timings aggregate without parsing.
func NewJSONEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Document returns the fields every caller attaches when it logs a decoded
// or rejected document.
func Document(kind string, size int, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("kind", kind),
		zap.Int("bytes", size),
		zap.Duration("elapsed", elapsed),
	}
}
