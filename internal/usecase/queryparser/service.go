// Package queryparser turns raw search text into a ParsedQuery via an LLM,
// degrading to a filterless semantic query when the model is unavailable or
// returns junk.
package queryparser

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
	"github.com/hirepath/hirepath/internal/metrics"
	"github.com/hirepath/hirepath/internal/resilience"
)

// ChatCompleter is the LLM chat surface the parser consumes.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service extracts structured filters from raw queries. Parse never fails:
// every error path yields the fallback interpretation.
type Service struct {
	chat     ChatCompleter
	executor *resilience.Executor
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates the parser. timeout bounds one model call; executor is
// optional retry/breaker wrapping.
func New(chat ChatCompleter, executor *resilience.Executor, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chat:     chat,
		executor: executor,
		timeout:  timeout,
		logger:   logger,
	}
}

// Parse extracts structured filters from the raw query. On any model or
// decode failure the whole raw query becomes the semantic part and no
// structured filters are set.
func (s *Service) Parse(ctx context.Context, raw string) domain.ParsedQuery {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ParsedQuery{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.complete(ctx, buildPrompt(raw))
	if err != nil {
		s.logger.Warn("query parse degraded to fallback", zap.Error(err))
		metrics.QueryParseTotal.WithLabelValues("fallback").Inc()
		return domain.FallbackQuery(raw)
	}

	parsed, err := decodeReply(reply)
	if err != nil {
		s.logger.Warn("query parse reply not decodable",
			zap.String("reply", truncate(reply, 200)),
			zap.Error(err),
		)
		metrics.QueryParseTotal.WithLabelValues("fallback").Inc()
		return domain.FallbackQuery(raw)
	}

	if parsed.SemanticQuery == "" {
		parsed.SemanticQuery = raw
	}

	metrics.QueryParseTotal.WithLabelValues("parsed").Inc()
	return parsed
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.executor == nil {
		return s.chat.Complete(ctx, prompt)
	}

	var reply string
	err := s.executor.Execute(ctx, "queryparser.complete", func(ctx context.Context) error {
		var callErr error
		reply, callErr = s.chat.Complete(ctx, prompt)
		return callErr
	}, classifyChatError)
	return reply, err
}

func classifyChatError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}

// rawReply tolerates the model's loose typing: numbers may arrive as
// strings or floats, skills as a list or a comma-joined string.
type rawReply struct {
	Location      any `json:"location"`
	Salary        any `json:"salary"`
	Experience    any `json:"experience"`
	Skills        any `json:"skills"`
	JobType       any `json:"job_type"`
	SemanticQuery any `json:"semantic_query"`
}

func decodeReply(reply string) (domain.ParsedQuery, error) {
	cleaned := stripFences(reply)

	var r rawReply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return domain.ParsedQuery{}, err
	}

	return domain.ParsedQuery{
		Location:        coerceString(r.Location),
		Salary:          coerceInt(r.Salary),
		ExperienceYears: coerceInt(r.Experience),
		Skills:          coerceStrings(r.Skills),
		JobType:         coerceString(r.JobType),
		SemanticQuery:   coerceString(r.SemanticQuery),
	}, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 10 && !strings.Contains(first, "{") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if isNullish(s) {
		return ""
	}
	return s
}

func coerceInt(v any) int {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int(t)
		}
	case string:
		t = strings.TrimSpace(t)
		if isNullish(t) {
			return 0
		}
		// Tolerate suffixes like "5 years" or "120000 INR".
		digits := leadingDigits(t)
		if digits == "" {
			return 0
		}
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func coerceStrings(v any) []string {
	var parts []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
	case string:
		if isNullish(strings.TrimSpace(t)) {
			return nil
		}
		for _, piece := range strings.Split(t, ",") {
			if s := strings.TrimSpace(piece); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return parts
}

func isNullish(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a":
		return true
	}
	return false
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
