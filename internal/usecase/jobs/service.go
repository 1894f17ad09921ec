// Package jobs covers recruiter posting management.
package jobs

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

// JobStore is the relational surface the job service consumes.
type JobStore interface {
	CreateJob(ctx context.Context, j *domain.Job) (domain.EntityID, error)
	GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID domain.EntityID) ([]domain.Job, error)
	UpdateJob(ctx context.Context, j *domain.Job) error
	DeleteJob(ctx context.Context, id, recruiterID domain.EntityID) error
}

// ReindexPublisher emits refresh events for the vector index.
type ReindexPublisher interface {
	PublishReindex(ctx context.Context, event domain.ReindexEvent) error
}

// Service implements posting operations.
type Service struct {
	store  JobStore
	queue  ReindexPublisher
	logger *zap.Logger
}

// New creates the job service. queue may be nil in tooling contexts.
func New(store JobStore, queue ReindexPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, queue: queue, logger: logger}
}

// Input is the mutable posting payload.
type Input struct {
	Title          string
	Location       string
	EmploymentType string
	Description    string
	Skills         []string
	MinSalary      int
	MaxSalary      int
	MinExperience  int
	MaxExperience  int
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if in.MinSalary < 0 || in.MaxSalary < 0 {
		return fmt.Errorf("salary must not be negative: %w", domain.ErrValidation)
	}
	if in.MinSalary > 0 && in.MaxSalary > 0 && in.MinSalary > in.MaxSalary {
		return fmt.Errorf("min salary above max: %w", domain.ErrValidation)
	}
	if in.MinExperience < 0 || in.MaxExperience < 0 {
		return fmt.Errorf("experience must not be negative: %w", domain.ErrValidation)
	}
	if in.MaxExperience > 0 && in.MinExperience > in.MaxExperience {
		return fmt.Errorf("min experience above max: %w", domain.ErrValidation)
	}
	return nil
}

func (in *Input) toJob(id, recruiterID domain.EntityID) *domain.Job {
	skills := make([]string, 0, len(in.Skills))
	for _, skill := range in.Skills {
		if s := strings.TrimSpace(skill); s != "" {
			skills = append(skills, s)
		}
	}
	return &domain.Job{
		ID:             id,
		RecruiterID:    recruiterID,
		Title:          strings.TrimSpace(in.Title),
		Location:       in.Location,
		EmploymentType: in.EmploymentType,
		Description:    in.Description,
		Skills:         skills,
		MinSalary:      in.MinSalary,
		MaxSalary:      in.MaxSalary,
		MinExperience:  in.MinExperience,
		MaxExperience:  in.MaxExperience,
	}
}

// Create stores a new posting and schedules its indexing.
func (s *Service) Create(ctx context.Context, recruiterID domain.EntityID, in Input) (*domain.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	job := in.toJob(0, recruiterID)
	id, err := s.store.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id

	s.publish(ctx, domain.ReindexEvent{Kind: domain.KindJobs, ID: id})
	return job, nil
}

// Get fetches a posting.
func (s *Service) Get(ctx context.Context, id domain.EntityID) (*domain.Job, error) {
	return s.store.GetJobByID(ctx, id)
}

// ListMine returns the recruiter's postings, newest first.
func (s *Service) ListMine(ctx context.Context, recruiterID domain.EntityID) ([]domain.Job, error) {
	return s.store.ListJobsByRecruiter(ctx, recruiterID)
}

// Update replaces a posting owned by the recruiter and schedules reindexing.
func (s *Service) Update(ctx context.Context, id, recruiterID domain.EntityID, in Input) (*domain.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	job := in.toJob(id, recruiterID)
	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.ReindexEvent{Kind: domain.KindJobs, ID: id})
	return job, nil
}

// Delete removes a posting owned by the recruiter and schedules removal of
// its derived record.
func (s *Service) Delete(ctx context.Context, id, recruiterID domain.EntityID) error {
	if err := s.store.DeleteJob(ctx, id, recruiterID); err != nil {
		return err
	}
	s.publish(ctx, domain.ReindexEvent{Kind: domain.KindJobs, ID: id, Deleted: true})
	return nil
}

func (s *Service) publish(ctx context.Context, event domain.ReindexEvent) {
	if s.queue == nil {
		return
	}
	if err := s.queue.PublishReindex(ctx, event); err != nil {
		s.logger.Warn("job reindex publish failed",
			zap.String("id", event.ID.String()),
			zap.Bool("deleted", event.Deleted),
			zap.Error(err),
		)
	}
}
