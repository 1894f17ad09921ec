// Package hybridsearch merges structured SQL filtering with semantic KNN
// retrieval: parse once, query both sides concurrently, return structured
// hits first and semantic-only hits after, deduplicated by identifier.
package hybridsearch

import (
	"context"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
	"github.com/hirepath/hirepath/internal/metrics"
)

// Config bounds result sizes.
type Config struct {
	TopK            int
	DefaultPageSize int
	MaxPageSize     int
}

// Service runs hybrid searches over one kind at a time.
type Service struct {
	parser Parser
	store  StructuredStore
	embed  domain.Embedder
	vector VectorQuerier
	cfg    Config
	logger *zap.Logger
}

// New creates the hybrid search service.
func New(parser Parser, store StructuredStore, embed domain.Embedder, vector VectorQuerier, cfg Config, logger *zap.Logger) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		parser: parser,
		store:  store,
		embed:  embed,
		vector: vector,
		cfg:    cfg,
		logger: logger,
	}
}

// SearchJobs runs the hybrid pipeline over job postings.
func (s *Service) SearchJobs(ctx context.Context, raw string, limit int) (*JobsResult, error) {
	metrics.SearchRequestsTotal.WithLabelValues(string(domain.KindJobs)).Inc()
	limit = s.clampLimit(limit)

	parsed := s.parser.Parse(ctx, raw)

	semanticIDs := s.semanticIDsAsync(ctx, domain.KindJobs, parsed.SemanticQuery)

	// A failing store never fails the search; the semantic branch can
	// still deliver results on its own.
	structured, err := s.store.SearchJobs(ctx, parsed, limit)
	if err != nil {
		s.logger.Warn("structured branch degraded: job search failed", zap.Error(err))
		structured = nil
	}
	metrics.SearchSourceResults.WithLabelValues(string(domain.KindJobs), "structured").Add(float64(len(structured)))

	ids := <-semanticIDs
	metrics.SearchSourceResults.WithLabelValues(string(domain.KindJobs), "semantic").Add(float64(len(ids)))

	seen := make(map[domain.EntityID]bool, len(structured))
	merged := make([]domain.Job, 0, len(structured)+len(ids))
	for _, j := range structured {
		if !seen[j.ID] {
			seen[j.ID] = true
			merged = append(merged, j)
		}
	}

	extra := filterUnseen(ids, seen)
	if len(extra) > 0 {
		resolved, err := s.store.GetJobsByIDs(ctx, extra)
		if err != nil {
			s.logger.Warn("resolving semantic job hits failed", zap.Error(err))
		} else {
			merged = append(merged, resolved...)
		}
	}

	return &JobsResult{Query: parsed, Jobs: merged}, nil
}

// SearchCandidates runs the hybrid pipeline over jobseeker profiles.
func (s *Service) SearchCandidates(ctx context.Context, raw string, limit int) (*CandidatesResult, error) {
	metrics.SearchRequestsTotal.WithLabelValues(string(domain.KindCandidates)).Inc()
	limit = s.clampLimit(limit)

	parsed := s.parser.Parse(ctx, raw)

	semanticIDs := s.semanticIDsAsync(ctx, domain.KindCandidates, parsed.SemanticQuery)

	structured, err := s.store.SearchCandidates(ctx, parsed, limit)
	if err != nil {
		s.logger.Warn("structured branch degraded: candidate search failed", zap.Error(err))
		structured = nil
	}
	metrics.SearchSourceResults.WithLabelValues(string(domain.KindCandidates), "structured").Add(float64(len(structured)))

	ids := <-semanticIDs
	metrics.SearchSourceResults.WithLabelValues(string(domain.KindCandidates), "semantic").Add(float64(len(ids)))

	seen := make(map[domain.EntityID]bool, len(structured))
	merged := make([]domain.Candidate, 0, len(structured)+len(ids))
	for _, c := range structured {
		if !seen[c.ID] {
			seen[c.ID] = true
			merged = append(merged, c)
		}
	}

	extra := filterUnseen(ids, seen)
	if len(extra) > 0 {
		resolved, err := s.store.GetCandidatesByIDs(ctx, extra)
		if err != nil {
			s.logger.Warn("resolving semantic candidate hits failed", zap.Error(err))
		} else {
			merged = append(merged, resolved...)
		}
	}

	return &CandidatesResult{Query: parsed, Candidates: merged}, nil
}

// semanticIDsAsync runs the embed-and-KNN branch concurrently with the
// structured query. Any failure on this branch degrades the search to
// structured-only; it never fails the request.
func (s *Service) semanticIDsAsync(ctx context.Context, kind domain.Kind, semanticQuery string) <-chan []domain.EntityID {
	out := make(chan []domain.EntityID, 1)

	if semanticQuery == "" {
		out <- nil
		return out
	}

	go func() {
		defer close(out)

		result, err := s.embed.Embed(ctx, semanticQuery)
		if err != nil {
			s.logger.Warn("semantic branch degraded: embed failed",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			out <- nil
			return
		}

		matches, err := s.vector.Query(ctx, kind, result.Embedding, s.cfg.TopK)
		if err != nil {
			s.logger.Warn("semantic branch degraded: knn failed",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			out <- nil
			return
		}

		ids := make([]domain.EntityID, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		out <- ids
	}()

	return out
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		return s.cfg.MaxPageSize
	}
	return limit
}

// filterUnseen keeps semantic ids not already delivered by the structured
// side, preserving distance order and marking them seen.
func filterUnseen(ids []domain.EntityID, seen map[domain.EntityID]bool) []domain.EntityID {
	out := make([]domain.EntityID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
