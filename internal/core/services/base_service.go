package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the request logger from context or returns the default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}

// isCallerError reports whether err is a rejection the caller can fix rather than a fault.
func isCallerError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrDuplicate,
		apperrors.ErrInvalidSchedule,
		apperrors.ErrInvalidPayment,
		apperrors.ErrOverpayment,
		apperrors.ErrScheduleLocked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// LogError logs a failed operation. Rejected input is logged at warn level.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	level := slog.LevelError
	if isCallerError(err) {
		level = slog.LevelWarn
	}
	s.log(ctx, level, err, msg, keyvals...)
}

// LogWarn logs a recoverable problem
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	s.log(ctx, slog.LevelWarn, err, msg, keyvals...)
}

func (s *BaseService) log(ctx context.Context, level slog.Level, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Log(ctx, level, msg, args...)
}

// LogInfo logs an info message
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
