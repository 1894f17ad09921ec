package hybridsearch

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
	"github.com/hirepath/hirepath/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterCoreMetrics()
	os.Exit(m.Run())
}

type fakeParser struct {
	result domain.ParsedQuery
}

func (f *fakeParser) Parse(ctx context.Context, raw string) domain.ParsedQuery {
	return f.result
}

type fakeStore struct {
	jobs       []domain.Job
	candidates []domain.Candidate
	searchErr  error

	byIDJobs   map[domain.EntityID]domain.Job
	byIDCands  map[domain.EntityID]domain.Candidate
	resolveErr error

	resolvedIDs []domain.EntityID
	searchLimit int
}

func (f *fakeStore) SearchJobs(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Job, error) {
	f.searchLimit = limit
	return f.jobs, f.searchErr
}

func (f *fakeStore) SearchCandidates(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Candidate, error) {
	f.searchLimit = limit
	return f.candidates, f.searchErr
}

func (f *fakeStore) GetJobsByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Job, error) {
	f.resolvedIDs = ids
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := f.byIDJobs[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCandidatesByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Candidate, error) {
	f.resolvedIDs = ids
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	out := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		if c, ok := f.byIDCands[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type fakeVector struct {
	matches []domain.VectorMatch
	err     error
	lastK   int
}

func (f *fakeVector) Query(ctx context.Context, kind domain.Kind, vector []float32, k int) ([]domain.VectorMatch, error) {
	f.lastK = k
	return f.matches, f.err
}

func job(id domain.EntityID, title string) domain.Job {
	return domain.Job{ID: id, Title: title}
}

func newService(parser Parser, store StructuredStore, embed domain.Embedder, vector VectorQuerier) *Service {
	return New(parser, store, embed, vector, Config{TopK: 5, DefaultPageSize: 20, MaxPageSize: 100}, zap.NewNop())
}

func TestSearchJobsMergesStructuredFirst(t *testing.T) {
	store := &fakeStore{
		jobs: []domain.Job{job(1, "A"), job(2, "B"), job(3, "C")},
		byIDJobs: map[domain.EntityID]domain.Job{
			4: job(4, "D"), 5: job(5, "E"), 6: job(6, "F"),
		},
	}
	vector := &fakeVector{matches: []domain.VectorMatch{
		{ID: 4, Distance: 0.1}, {ID: 5, Distance: 0.2}, {ID: 6, Distance: 0.3},
	}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{Location: "Pune", SemanticQuery: "backend"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "backend in Pune", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}

	if len(res.Jobs) != 6 {
		t.Fatalf("expected 6 merged jobs, got %d", len(res.Jobs))
	}
	wantOrder := []domain.EntityID{1, 2, 3, 4, 5, 6}
	for i, want := range wantOrder {
		if res.Jobs[i].ID != want {
			t.Errorf("position %d: ID = %d, want %d", i, res.Jobs[i].ID, want)
		}
	}
	if vector.lastK != 5 {
		t.Errorf("KNN k = %d, want 5", vector.lastK)
	}
}

func TestSearchJobsDeduplicatesByID(t *testing.T) {
	store := &fakeStore{
		jobs: []domain.Job{job(1, "A"), job(2, "B")},
		byIDJobs: map[domain.EntityID]domain.Job{
			3: job(3, "C"),
		},
	}
	// Semantic branch returns an overlap (2) plus a new hit (3).
	vector := &fakeVector{matches: []domain.VectorMatch{
		{ID: 2, Distance: 0.1}, {ID: 3, Distance: 0.2},
	}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}

	if len(res.Jobs) != 3 {
		t.Fatalf("expected 3 jobs after dedup, got %d", len(res.Jobs))
	}
	if res.Jobs[0].ID != 1 || res.Jobs[1].ID != 2 || res.Jobs[2].ID != 3 {
		t.Errorf("order = [%d %d %d], want [1 2 3]",
			res.Jobs[0].ID, res.Jobs[1].ID, res.Jobs[2].ID)
	}
	// Only the unseen id should have been resolved.
	if len(store.resolvedIDs) != 1 || store.resolvedIDs[0] != 3 {
		t.Errorf("resolvedIDs = %v, want [3]", store.resolvedIDs)
	}
}

func TestSearchJobsDegradesWhenVectorFails(t *testing.T) {
	store := &fakeStore{jobs: []domain.Job{job(1, "A")}}
	vector := &fakeVector{err: errors.New("index down")}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].ID != 1 {
		t.Errorf("expected structured-only result, got %v", res.Jobs)
	}
}

func TestSearchJobsDegradesWhenEmbedFails(t *testing.T) {
	store := &fakeStore{jobs: []domain.Job{job(1, "A")}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{err: domain.ErrEmbeddingProviderError}, &fakeVector{})

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if len(res.Jobs) != 1 {
		t.Errorf("expected structured-only result, got %v", res.Jobs)
	}
}

func TestSearchJobsDegradesWhenStructuredFails(t *testing.T) {
	store := &fakeStore{
		searchErr: errors.New("db down"),
		byIDJobs:  map[domain.EntityID]domain.Job{7: job(7, "G")},
	}
	vector := &fakeVector{matches: []domain.VectorMatch{{ID: 7, Distance: 0.1}}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v, want semantic-only degradation", err)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].ID != 7 {
		t.Errorf("expected semantic-only result [7], got %v", res.Jobs)
	}
}

func TestSearchCandidatesDegradesWhenStructuredFails(t *testing.T) {
	store := &fakeStore{
		searchErr: errors.New("db down"),
		byIDCands: map[domain.EntityID]domain.Candidate{21: {ID: 21, Name: "B"}},
	}
	vector := &fakeVector{matches: []domain.VectorMatch{{ID: 21, Distance: 0.1}}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "ml"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchCandidates(context.Background(), "ml", 0)
	if err != nil {
		t.Fatalf("SearchCandidates() error = %v, want semantic-only degradation", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].ID != 21 {
		t.Errorf("expected semantic-only result [21], got %v", res.Candidates)
	}
}

func TestSearchJobsEmptyWhenBothSidesFail(t *testing.T) {
	store := &fakeStore{searchErr: errors.New("db down")}
	vector := &fakeVector{err: errors.New("index down")}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v, want empty result", err)
	}
	if len(res.Jobs) != 0 {
		t.Errorf("expected empty result, got %v", res.Jobs)
	}
}

func TestSearchJobsSkipsSemanticBranchForEmptyQuery(t *testing.T) {
	store := &fakeStore{jobs: []domain.Job{job(1, "A")}}
	vector := &fakeVector{matches: []domain.VectorMatch{{ID: 9}}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if vector.lastK != 0 {
		t.Error("vector query must not run without a semantic query")
	}
	if len(res.Jobs) != 1 {
		t.Errorf("expected 1 job, got %d", len(res.Jobs))
	}
}

func TestSearchJobsClampsLimit(t *testing.T) {
	store := &fakeStore{}
	svc := newService(&fakeParser{}, store, &fakeEmbedder{}, &fakeVector{})

	if _, err := svc.SearchJobs(context.Background(), "", 10000); err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if store.searchLimit != 100 {
		t.Errorf("limit = %d, want clamped 100", store.searchLimit)
	}

	if _, err := svc.SearchJobs(context.Background(), "", 0); err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if store.searchLimit != 20 {
		t.Errorf("limit = %d, want default 20", store.searchLimit)
	}
}

func TestSearchCandidatesMergesAndDedups(t *testing.T) {
	store := &fakeStore{
		candidates: []domain.Candidate{{ID: 10, Name: "A"}},
		byIDCands: map[domain.EntityID]domain.Candidate{
			11: {ID: 11, Name: "B"},
		},
	}
	vector := &fakeVector{matches: []domain.VectorMatch{
		{ID: 10, Distance: 0.1}, {ID: 11, Distance: 0.2},
	}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "ml"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchCandidates(context.Background(), "ml engineers", 0)
	if err != nil {
		t.Fatalf("SearchCandidates() error = %v", err)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if res.Candidates[0].ID != 10 || res.Candidates[1].ID != 11 {
		t.Errorf("order = [%d %d], want [10 11]", res.Candidates[0].ID, res.Candidates[1].ID)
	}
}

func TestSearchJobsToleratesResolveFailure(t *testing.T) {
	store := &fakeStore{
		jobs:       []domain.Job{job(1, "A")},
		resolveErr: errors.New("db hiccup"),
	}
	vector := &fakeVector{matches: []domain.VectorMatch{{ID: 9}}}
	svc := newService(&fakeParser{result: domain.ParsedQuery{SemanticQuery: "x"}}, store, &fakeEmbedder{}, vector)

	res, err := svc.SearchJobs(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("SearchJobs() error = %v", err)
	}
	if len(res.Jobs) != 1 {
		t.Errorf("expected structured results to survive resolve failure, got %v", res.Jobs)
	}
}
