package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/platform/config"
	"github.com/tourdetaxa/bogfoering-backend/internal/utils"
)

type TokenService struct {
	BaseService
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

func (s *TokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to sign access token", "user_id", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
