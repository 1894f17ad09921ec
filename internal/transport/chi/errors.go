package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest       = "bad_request"
	codeValidation       = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeForbidden        = "forbidden"
	codeNotFound         = "not_found"
	codeConflict         = "already_exists"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "embedding_provider_error"
	codeParseUnavailable = "query_parse_failed"
	codeInternal         = "internal_error"
)

type sentinelMapping struct {
	sentinel error
	status   int
	code     string
}

// sentinelMappings maps domain errors to HTTP responses, first match wins.
var sentinelMappings = []sentinelMapping{
	{domain.ErrValidation, http.StatusBadRequest, codeValidation},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, codeUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, codeForbidden},
	{domain.ErrNotFound, http.StatusNotFound, codeNotFound},
	{domain.ErrAlreadyExists, http.StatusConflict, codeConflict},
	{domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited},
	{domain.ErrQueryParseFailed, http.StatusBadGateway, codeParseUnavailable},
	{domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			return m.sentinel.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			s.logger.Warn("domain error", zap.Error(err))
			writeError(w, m.status, m.code, msg)
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
