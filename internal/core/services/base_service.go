package services

import (
	"context"
	"log/slog"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	"github.com/tourdetaxa/bogfoering-backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireAdminLike returns ErrForbidden unless the actor is admin or superbruger.
func (s *BaseService) RequireAdminLike(ctx context.Context, actor domain.User) error {
	if !actor.Role.IsAdminLike() {
		s.LogDebug(ctx, "admin role required", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireSuperbruger returns ErrForbidden unless the actor is superbruger.
func (s *BaseService) RequireSuperbruger(ctx context.Context, actor domain.User) error {
	if actor.Role != domain.RoleSuperbruger {
		s.LogDebug(ctx, "superbruger role required", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireAfdelingAccess returns ErrForbidden unless the actor may act on the
// given department id.
func (s *BaseService) RequireAfdelingAccess(ctx context.Context, actor domain.User, afdelingID string) error {
	if !actor.CanAccessAfdeling(afdelingID) {
		s.LogDebug(ctx, "department access denied",
			slog.String("user_id", actor.UserID),
			slog.String("afdeling_id", afdelingID))
		return apperrors.ErrForbidden
	}
	return nil
}
