// Package indexsync keeps the vector index's derived records in step with
// the relational store: per-entity refreshes driven by reindex events, and
// a full resync for bootstrap or recovery.
package indexsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

// EntityStore is the relational read surface the syncer consumes.
type EntityStore interface {
	GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error)
	GetUserByID(ctx context.Context, id domain.EntityID) (*domain.User, error)
	ListJobIDs(ctx context.Context) ([]domain.EntityID, error)
	ListCandidateIDs(ctx context.Context) ([]domain.EntityID, error)
}

// VectorIndex is the write surface of the vector index.
type VectorIndex interface {
	EnsureIndexes(ctx context.Context) error
	Upsert(ctx context.Context, kind domain.Kind, id domain.EntityID, content string, metadata map[string]string) error
	Delete(ctx context.Context, kind domain.Kind, id domain.EntityID) error
}

// Service applies reindex events and full resyncs.
type Service struct {
	store  EntityStore
	index  VectorIndex
	logger *zap.Logger
}

// New creates the syncer.
func New(store EntityStore, index VectorIndex, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, index: index, logger: logger}
}

// Handle applies one reindex event. An entity that no longer exists in the
// store is treated as deleted so the derived record cannot outlive it.
func (s *Service) Handle(ctx context.Context, event domain.ReindexEvent) error {
	if !event.Kind.Valid() {
		return fmt.Errorf("unknown reindex kind %q", event.Kind)
	}

	if event.Deleted {
		return s.index.Delete(ctx, event.Kind, event.ID)
	}

	switch event.Kind {
	case domain.KindJobs:
		return s.syncJob(ctx, event.ID)
	case domain.KindCandidates:
		return s.syncCandidate(ctx, event.ID)
	}
	return nil
}

// Resync rebuilds every derived record from the store. Per-entity failures
// are logged and counted but do not stop the sweep.
func (s *Service) Resync(ctx context.Context) error {
	if err := s.index.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	jobIDs, err := s.store.ListJobIDs(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	candidateIDs, err := s.store.ListCandidateIDs(ctx)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	var failed int
	for _, id := range jobIDs {
		if err := s.syncJob(ctx, id); err != nil {
			failed++
			s.logger.Warn("resync job failed",
				zap.String("id", id.String()),
				zap.Error(err),
			)
		}
	}
	for _, id := range candidateIDs {
		if err := s.syncCandidate(ctx, id); err != nil {
			failed++
			s.logger.Warn("resync candidate failed",
				zap.String("id", id.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("resync finished",
		zap.Int("jobs", len(jobIDs)),
		zap.Int("candidates", len(candidateIDs)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("resync: %d entities failed", failed)
	}
	return nil
}

func (s *Service) syncJob(ctx context.Context, id domain.EntityID) error {
	j, err := s.store.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.index.Delete(ctx, domain.KindJobs, id)
		}
		return fmt.Errorf("load job %s: %w", id, err)
	}

	return s.index.Upsert(ctx, domain.KindJobs, id, JobEmbeddingText(j), map[string]string{
		"title":           j.Title,
		"location":        j.Location,
		"employment_type": j.EmploymentType,
	})
}

func (s *Service) syncCandidate(ctx context.Context, id domain.EntityID) error {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.index.Delete(ctx, domain.KindCandidates, id)
		}
		return fmt.Errorf("load candidate %s: %w", id, err)
	}
	if u.Type != domain.UserTypeJobseeker {
		return s.index.Delete(ctx, domain.KindCandidates, id)
	}

	return s.index.Upsert(ctx, domain.KindCandidates, id, CandidateEmbeddingText(u), map[string]string{
		"name":     u.Name,
		"location": u.Location,
	})
}

// JobEmbeddingText builds the free-text representation a posting is
// embedded under: title, description and skill list.
func JobEmbeddingText(j *domain.Job) string {
	parts := make([]string, 0, 3)
	if j.Title != "" {
		parts = append(parts, j.Title)
	}
	if j.Description != "" {
		parts = append(parts, j.Description)
	}
	if len(j.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(j.Skills, ", "))
	}
	return strings.Join(parts, ". ")
}

// CandidateEmbeddingText builds the free-text representation a profile is
// embedded under: name, location, experience, education and skills.
func CandidateEmbeddingText(u *domain.User) string {
	parts := make([]string, 0, 5)
	if u.Name != "" {
		parts = append(parts, u.Name)
	}
	if u.Location != "" {
		parts = append(parts, "Location: "+u.Location)
	}
	if u.ExperienceLevel != "" {
		parts = append(parts, "Experience: "+u.ExperienceLevel)
	}
	if u.Education != "" {
		parts = append(parts, "Education: "+u.Education)
	}
	if len(u.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(u.Skills, ", "))
	}
	return strings.Join(parts, ". ")
}
