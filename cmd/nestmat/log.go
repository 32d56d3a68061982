package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger creates a timestamped CLI logger at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newLibLogger creates the development logger handed to the nest package.
func newLibLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	libLoggerKey
)

func withLoggers(ctx context.Context, l *log.Logger, lib *zap.Logger) context.Context {
	ctx = context.WithValue(ctx, loggerKey, l)
	return context.WithValue(ctx, libLoggerKey, lib)
}

// loggerFromContext returns the CLI logger, log.Default() when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// libLoggerFromContext returns the logger handed to the nest package.
func libLoggerFromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(libLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
