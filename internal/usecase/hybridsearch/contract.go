package hybridsearch

import (
	"context"

	"github.com/hirepath/hirepath/internal/domain"
)

// Parser turns raw query text into a structured interpretation. It never
// fails; degraded parses carry the whole raw query as the semantic part.
type Parser interface {
	Parse(ctx context.Context, raw string) domain.ParsedQuery
}

// StructuredStore is the relational search surface the merger consumes.
type StructuredStore interface {
	SearchJobs(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Job, error)
	SearchCandidates(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Candidate, error)
	GetJobsByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Job, error)
	GetCandidatesByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Candidate, error)
}

// VectorQuerier is the nearest-neighbor surface of the vector index.
type VectorQuerier interface {
	Query(ctx context.Context, kind domain.Kind, vector []float32, k int) ([]domain.VectorMatch, error)
}

// JobsResult is one hybrid job search response.
type JobsResult struct {
	Query domain.ParsedQuery `json:"parsed_query"`
	Jobs  []domain.Job       `json:"jobs"`
}

// CandidatesResult is one hybrid candidate search response.
type CandidatesResult struct {
	Query      domain.ParsedQuery `json:"parsed_query"`
	Candidates []domain.Candidate `json:"candidates"`
}
