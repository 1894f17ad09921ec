package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden signals an operation outside the caller's role or ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation signals a malformed request payload.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrQueryParseFailed signals an unusable language-model response. It is
	// always recovered inside the query parser and never reaches a caller.
	ErrQueryParseFailed = errors.New("query parse failed")
)
