// Package vectorindex maintains the derived searchable copies of jobs and
// candidate profiles in the vector store, one collection per kind.
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/db"
	"github.com/hirepath/hirepath/internal/domain"
)

// Reserved hash field names; metadata keys colliding with them are dropped.
const (
	fieldContent = "content"
	fieldVector  = "vector"
)

// Repository embeds entity text and stores the resulting records as hashes
// under per-kind key prefixes, with one FT index per kind.
type Repository struct {
	store      db.Store
	embedder   domain.Embedder
	keyPrefix  string
	dimensions int
	logger     *zap.Logger
}

// New creates a vector index repository. keyPrefix namespaces all hash keys
// and index names (e.g. "hirepath:").
func New(store db.Store, embedder domain.Embedder, keyPrefix string, dimensions int, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		store:      store,
		embedder:   embedder,
		keyPrefix:  keyPrefix,
		dimensions: dimensions,
		logger:     logger,
	}
}

func (r *Repository) hashPrefix(kind domain.Kind) string {
	return r.keyPrefix + string(kind) + ":"
}

func (r *Repository) hashKey(kind domain.Kind, id domain.EntityID) string {
	return r.hashPrefix(kind) + id.String()
}

func (r *Repository) indexName(kind domain.Kind) string {
	return r.keyPrefix + string(kind) + ":idx"
}

// EnsureIndexes creates the per-kind FT indexes if they are missing.
// Safe to call on every startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	for _, kind := range []domain.Kind{domain.KindJobs, domain.KindCandidates} {
		name := r.indexName(kind)

		exists, err := r.store.IndexExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		if exists {
			continue
		}

		err = r.store.CreateIndex(ctx, &db.IndexDefinition{
			Name:       name,
			Prefix:     r.hashPrefix(kind),
			Dimensions: r.dimensions,
		})
		if err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", name, err)
		}

		r.logger.Info("vector index created",
			zap.String("index", name),
			zap.Int("dimensions", r.dimensions),
		)
	}
	return nil
}

// Upsert embeds the content text and replaces the whole record for the
// identifier. Metadata keys shadowing reserved field names are dropped.
func (r *Repository) Upsert(ctx context.Context, kind domain.Kind, id domain.EntityID, content string, metadata map[string]string) error {
	result, err := r.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed %s %s: %w", kind, id, err)
	}

	fields := make(map[string]string, len(metadata)+2)
	for k, v := range metadata {
		if k == fieldContent || k == fieldVector {
			continue
		}
		fields[k] = v
	}
	fields[fieldContent] = content
	fields[fieldVector] = db.EncodeVector(result.Embedding)

	key := r.hashKey(kind, id)

	// Full replace: stale metadata fields from an earlier version must not
	// survive the upsert.
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Delete removes the record for the identifier. Deleting a missing record
// is not an error.
func (r *Repository) Delete(ctx context.Context, kind domain.Kind, id domain.EntityID) error {
	if err := r.store.Del(ctx, r.hashKey(kind, id)); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}

// Query runs a KNN search over the kind's collection and converts hash keys
// back to entity identifiers. Keys whose identifier part is not numeric are
// skipped with a warning; matches come back in increasing distance order.
func (r *Repository) Query(ctx context.Context, kind domain.Kind, vector []float32, k int) ([]domain.VectorMatch, error) {
	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(kind),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldContent},
	})
	if err != nil {
		return nil, fmt.Errorf("knn %s: %w", kind, err)
	}

	prefix := r.hashPrefix(kind)
	matches := make([]domain.VectorMatch, 0, len(result.Entries))
	for _, entry := range result.Entries {
		idStr := strings.TrimPrefix(entry.Key, prefix)
		id, err := domain.ParseEntityID(idStr)
		if err != nil {
			r.logger.Warn("skipping non-numeric vector key",
				zap.String("key", entry.Key),
			)
			continue
		}
		matches = append(matches, domain.VectorMatch{
			ID:       id,
			Content:  entry.Fields[fieldContent],
			Distance: entry.Distance,
		})
	}
	return matches, nil
}
