package services

import (
	"context"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// TokenSvcFacade issues bearer tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
