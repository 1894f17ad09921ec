// Package db wraps rueidis with the hash, index, and KNN search operations
// the vector index is built on.
package db

import (
	"context"
	"time"
)

// Store is the database facade the vector index repository consumes.
type Store interface {
	Ping(ctx context.Context) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// IndexDefinition describes an FT index over hashes with one HNSW vector
// field named "vector" and one TEXT field named "content".
type IndexDefinition struct {
	Name       string
	Prefix     string
	Dimensions int
}

// KNNQuery is a nearest-neighbor search against one FT index.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchEntry is one hit: the hash key, its returned fields, and the cosine
// distance reported by the index.
type SearchEntry struct {
	Key      string
	Distance float64
	Fields   map[string]string
}

// SearchResult is a parsed FT.SEARCH reply.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
