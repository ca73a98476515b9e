package driving

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// AuthService resolves request credentials to a caller
type AuthService interface {
	// ValidateToken accepts an account-service JWT or an ssk_ API key and
	// returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
