// Package applications covers applying to postings and the recruiter-side
// review workflow.
package applications

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

// Store is the relational surface the application service consumes.
type Store interface {
	CreateApplication(ctx context.Context, jobID, jobseekerID domain.EntityID) (domain.EntityID, error)
	GetApplicationByID(ctx context.Context, id domain.EntityID) (*domain.Application, error)
	ListApplicationsByJobseeker(ctx context.Context, jobseekerID domain.EntityID) ([]domain.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID domain.EntityID) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id domain.EntityID, status domain.ApplicationStatus) error
	GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error)
}

// Service implements application operations.
type Service struct {
	store  Store
	logger *zap.Logger
}

// New creates the application service.
func New(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Apply records a jobseeker applying to a posting. The posting must exist;
// a second application to the same posting maps to domain.ErrAlreadyExists.
func (s *Service) Apply(ctx context.Context, jobID, jobseekerID domain.EntityID) (*domain.Application, error) {
	if _, err := s.store.GetJobByID(ctx, jobID); err != nil {
		return nil, err
	}

	id, err := s.store.CreateApplication(ctx, jobID, jobseekerID)
	if err != nil {
		return nil, err
	}
	return s.store.GetApplicationByID(ctx, id)
}

// ListForJobseeker returns the caller's applications, newest first.
func (s *Service) ListForJobseeker(ctx context.Context, jobseekerID domain.EntityID) ([]domain.Application, error) {
	return s.store.ListApplicationsByJobseeker(ctx, jobseekerID)
}

// ListForJob returns a posting's applications for its owning recruiter.
// A recruiter asking about someone else's posting gets domain.ErrForbidden.
func (s *Service) ListForJob(ctx context.Context, jobID, recruiterID domain.EntityID) ([]domain.Application, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, fmt.Errorf("job %d: %w", jobID, domain.ErrForbidden)
	}
	return s.store.ListApplicationsByJob(ctx, jobID)
}

// UpdateStatus moves an application to a new review state. Only the
// recruiter owning the posting may do this.
func (s *Service) UpdateStatus(ctx context.Context, applicationID, recruiterID domain.EntityID, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrValidation)
	}

	app, err := s.store.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	job, err := s.store.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, fmt.Errorf("application %d: %w", applicationID, domain.ErrForbidden)
	}

	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status
	return app, nil
}
