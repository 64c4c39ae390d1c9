package logger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrLoggerNotFound = fmt.Errorf("logger not found in context")

type loggerKeyType struct{}

type requestIDKeyType struct{}

var (
	loggerKey    = loggerKeyType{}
	requestIDKey = requestIDKeyType{}
)

// NewContext stores logger in ctx.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context validation: %w", ErrLoggerNotFound)
	}
	logger, ok := ctx.Value(loggerKey).(*Logger)
	if !ok {
		return nil, fmt.Errorf("logger lookup: %w", ErrLoggerNotFound)
	}
	return logger, nil
}

// Log returns the logger from ctx or a no-op logger.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}
	return Nop()
}

// NewRequestIDContext stores requestID in ctx, generating one when empty.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

func GenerateRequestID() string {
	return uuid.New().String()
}
