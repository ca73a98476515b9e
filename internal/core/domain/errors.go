package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates a required backing service is not configured
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrEmbedding indicates the query could not be embedded
	ErrEmbedding = errors.New("query embedding failed")

	// ErrRetrieval indicates a store query failed
	ErrRetrieval = errors.New("candidate retrieval failed")

	// ErrRenderFailed indicates a highlighted copy could not be produced
	ErrRenderFailed = errors.New("highlight render failed")

	// ErrMalformedResponse indicates an oracle answered with unusable output
	ErrMalformedResponse = errors.New("malformed oracle response")
)
