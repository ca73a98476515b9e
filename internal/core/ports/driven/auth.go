package driven

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// AuthAdapter handles authentication cryptographic operations.
// Tokens are issued by the external account service; this side only verifies.
type AuthAdapter interface {
	// ParseToken validates a bearer JWT and extracts its claims
	ParseToken(token string) (*domain.TokenClaims, error)

	// VerifySecret checks an API key secret against its stored hash
	VerifySecret(secret, hash string) bool
}

// APIKeyStore looks up machine credentials (PostgreSQL)
type APIKeyStore interface {
	// GetAPIKey retrieves a key by its public ID
	GetAPIKey(ctx context.Context, id string) (*domain.APIKey, error)
}
