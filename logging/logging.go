// Package logging controls the logger of the redis-stack client.
package logging

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis-stack/internal"
)

type LogLevelT = internal.LogLevelT

const (
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// VoidLogger is a logger that does nothing.
type VoidLogger struct{}

func (v *VoidLogger) Printf(_ context.Context, _ string, _ ...interface{}) {}

// Disable replaces the current logger with a VoidLogger.
func Disable() {
	internal.Logger = &VoidLogger{}
}

// Enable restores the default stderr logger.
//
// NOTE: This function is not thread-safe.
func Enable() {
	internal.Logger = internal.NewDefaultLogger()
}

// SetLogLevel sets the most verbose level that is written.
func SetLogLevel(logLevel LogLevelT) {
	internal.LogLevel = logLevel
}

// SlogLogger forwards Printf-style messages to a slog.Logger at the given
// level.
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

func NewSlogLogger(logger *slog.Logger, level slog.Level) *SlogLogger {
	return &SlogLogger{logger: logger, level: level}
}

func (l *SlogLogger) Printf(ctx context.Context, format string, v ...interface{}) {
	if !l.logger.Enabled(ctx, l.level) {
		return
	}
	l.logger.Log(ctx, l.level, sprintf(format, v...))
}
