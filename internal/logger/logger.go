// Package logger wraps zap for the transports. The validation core never logs.
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment selects the zap preset.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Field names shared by every log line.
const (
	RequestID = "request_id"
	Outcome   = "outcome"
)

// ErrUnknownEnvironment is returned for modes other than development and
// production.
var ErrUnknownEnvironment = fmt.Errorf("unknown log environment")

type Logger struct {
	l *zap.Logger
}

// NewLogger builds a logger for env. An empty level keeps the preset's level.
func NewLogger(env Environment, level string) (*Logger, error) {
	var cfg zap.Config
	switch Environment(strings.ToLower(string(env))) {
	case Development:
		cfg = zap.NewDevelopmentConfig()
	case Production, "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{l: zl}, nil
}

// New wraps an existing zap logger.
func New(zl *zap.Logger) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{l: zl}
}

// Nop discards everything.
func Nop() *Logger { return New(nil) }

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
