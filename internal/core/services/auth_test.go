package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockAuthAdapter, *mocks.MockAPIKeyStore, *authService) {
	adapter := mocks.NewMockAuthAdapter()
	keys := mocks.NewMockAPIKeyStore()
	svc := NewAuthService(adapter, keys).(*authService)
	return adapter, keys, svc
}

func TestAuthService_ValidateToken_JWT(t *testing.T) {
	adapter, _, svc := newTestAuthService()
	adapter.AddToken("jwt-ok", &domain.TokenClaims{UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()})
	adapter.AddToken("jwt-old", &domain.TokenClaims{UserID: "user-1", ExpiresAt: time.Now().Add(-time.Hour).Unix()})

	authCtx, err := svc.ValidateToken(context.Background(), "jwt-ok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", authCtx.UserID)
	assert.Equal(t, domain.AuthMethodJWT, authCtx.Method)

	_, err = svc.ValidateToken(context.Background(), "jwt-old")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_APIKey(t *testing.T) {
	_, keys, svc := newTestAuthService()
	keys.Put(&domain.APIKey{ID: "k1", UserID: "user-2", SecretHash: "s3cret"})
	keys.Put(&domain.APIKey{ID: "k2", UserID: "user-2", SecretHash: "s3cret", Revoked: true})

	authCtx, err := svc.ValidateToken(context.Background(), "ssk_k1_s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-2", authCtx.UserID)
	assert.Equal(t, "k1", authCtx.KeyID)
	assert.Equal(t, domain.AuthMethodAPIKey, authCtx.Method)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", "ssk_k1_nope"},
		{"revoked", "ssk_k2_s3cret"},
		{"unknown key", "ssk_k9_s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestAuthService_APIKeysDisabled(t *testing.T) {
	svc := NewAuthService(mocks.NewMockAuthAdapter(), nil)

	_, err := svc.ValidateToken(context.Background(), "ssk_k1_s3cret")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
