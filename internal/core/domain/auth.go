package domain

import "strings"

// AuthMethod records how a request was authenticated
type AuthMethod string

const (
	AuthMethodJWT    AuthMethod = "jwt"
	AuthMethodAPIKey AuthMethod = "api_key"
)

// AuthContext contains authenticated caller info for request context
type AuthContext struct {
	UserID string     `json:"user_id"`
	KeyID  string     `json:"key_id,omitempty"`
	Method AuthMethod `json:"method"`
}

// TokenClaims represents the JWT token payload issued by the account service
type TokenClaims struct {
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// APIKeyPrefix marks bearer credentials that are API keys rather than JWTs.
const APIKeyPrefix = "ssk_"

// APIKey is a stored machine credential. Only the bcrypt hash of the secret is kept.
type APIKey struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	SecretHash string `json:"-"`
	Revoked    bool   `json:"revoked"`
}

// ParseAPIKey splits "ssk_<id>_<secret>" into its id and secret.
func ParseAPIKey(token string) (id, secret string, ok bool) {
	if !strings.HasPrefix(token, APIKeyPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(token, APIKeyPrefix)
	id, secret, found := strings.Cut(rest, "_")
	if !found || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
