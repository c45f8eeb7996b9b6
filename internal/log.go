package internal

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Logging is the logger used by the client. Printf receives the context of
// the command being processed.
type Logging interface {
	Printf(ctx context.Context, format string, v ...interface{})
}

type LogLevelT int

const (
	LogLevelError LogLevelT = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevelT) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevelT) IsValid() bool {
	return l >= LogLevelError && l <= LogLevelDebug
}

// LogLevel is the most verbose level that is written. Debug output is off by
// default.
var LogLevel = LogLevelInfo

type logger struct {
	log *log.Logger
}

func (l *logger) Printf(_ context.Context, format string, v ...interface{}) {
	_ = l.log.Output(2, fmt.Sprintf(format, v...))
}

func NewDefaultLogger() Logging {
	return &logger{
		log: log.New(os.Stderr, "redis-stack: ", log.LstdFlags|log.Lshortfile),
	}
}

var Logger Logging = NewDefaultLogger()

func Infof(ctx context.Context, format string, v ...interface{}) {
	if LogLevel >= LogLevelInfo {
		Logger.Printf(ctx, format, v...)
	}
}

func Debugf(ctx context.Context, format string, v ...interface{}) {
	if LogLevel >= LogLevelDebug {
		Logger.Printf(ctx, format, v...)
	}
}
