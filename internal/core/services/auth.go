package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	authAdapter driven.AuthAdapter
	apiKeys     driven.APIKeyStore
}

// NewAuthService creates a new AuthService. apiKeys may be nil, in which
// case only JWTs are accepted.
func NewAuthService(authAdapter driven.AuthAdapter, apiKeys driven.APIKeyStore) driving.AuthService {
	return &authService{
		authAdapter: authAdapter,
		apiKeys:     apiKeys,
	}
}

// ValidateToken validates a bearer credential and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	if id, secret, ok := domain.ParseAPIKey(token); ok {
		return s.validateAPIKey(ctx, id, secret)
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		UserID: claims.UserID,
		Method: domain.AuthMethodJWT,
	}, nil
}

func (s *authService) validateAPIKey(ctx context.Context, id, secret string) (*domain.AuthContext, error) {
	if s.apiKeys == nil {
		return nil, domain.ErrTokenInvalid
	}

	key, err := s.apiKeys.GetAPIKey(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if key.Revoked || !s.authAdapter.VerifySecret(secret, key.SecretHash) {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		UserID: key.UserID,
		KeyID:  key.ID,
		Method: domain.AuthMethodAPIKey,
	}, nil
}
