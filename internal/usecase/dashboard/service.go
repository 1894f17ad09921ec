// Package dashboard aggregates per-role landing data: the caller's profile
// plus counters and, for jobseekers, a recommendation list.
package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

// Store is the relational surface the dashboards read from.
type Store interface {
	GetUserByID(ctx context.Context, id domain.EntityID) (*domain.User, error)
	ListRecentJobs(ctx context.Context, limit int) ([]domain.Job, error)
	CountApplicationsByJobseeker(ctx context.Context, jobseekerID domain.EntityID) (int, error)
	CountJobsByRecruiter(ctx context.Context, recruiterID domain.EntityID) (int, error)
	CountApplicationsByRecruiter(ctx context.Context, recruiterID domain.EntityID) (int, error)
}

// recommendationLimit bounds the jobseeker job list. Recommendations are
// currently the newest postings; no personalization yet.
const recommendationLimit = 10

// JobseekerData is the jobseeker landing payload.
type JobseekerData struct {
	User             *domain.User `json:"-"`
	RecommendedJobs  []domain.Job `json:"recommended_jobs"`
	ApplicationCount int          `json:"application_count"`
}

// RecruiterData is the recruiter landing payload.
type RecruiterData struct {
	User             *domain.User `json:"-"`
	JobCount         int          `json:"job_count"`
	ApplicationCount int          `json:"application_count"`
}

// Service assembles dashboards.
type Service struct {
	store  Store
	logger *zap.Logger
}

// New creates the dashboard service.
func New(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Jobseeker builds the jobseeker dashboard. The caller must already be
// authenticated; a non-jobseeker account is rejected.
func (s *Service) Jobseeker(ctx context.Context, id domain.EntityID) (*JobseekerData, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load jobseeker: %w", err)
	}
	if user.Type != domain.UserTypeJobseeker {
		return nil, fmt.Errorf("account %d is not a jobseeker: %w", id, domain.ErrForbidden)
	}

	jobs, err := s.store.ListRecentJobs(ctx, recommendationLimit)
	if err != nil {
		return nil, fmt.Errorf("list recommended jobs: %w", err)
	}

	count, err := s.store.CountApplicationsByJobseeker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	return &JobseekerData{
		User:             user,
		RecommendedJobs:  jobs,
		ApplicationCount: count,
	}, nil
}

// Recruiter builds the recruiter dashboard.
func (s *Service) Recruiter(ctx context.Context, id domain.EntityID) (*RecruiterData, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load recruiter: %w", err)
	}
	if user.Type != domain.UserTypeRecruiter {
		return nil, fmt.Errorf("account %d is not a recruiter: %w", id, domain.ErrForbidden)
	}

	jobCount, err := s.store.CountJobsByRecruiter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	appCount, err := s.store.CountApplicationsByRecruiter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count received applications: %w", err)
	}

	return &RecruiterData{
		User:             user,
		JobCount:         jobCount,
		ApplicationCount: appCount,
	}, nil
}
