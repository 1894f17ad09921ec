package applications

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

type fakeStore struct {
	jobs   map[domain.EntityID]*domain.Job
	apps   map[domain.EntityID]*domain.Application
	nextID domain.EntityID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:   make(map[domain.EntityID]*domain.Job),
		apps:   make(map[domain.EntityID]*domain.Application),
		nextID: 1,
	}
}

func (f *fakeStore) CreateApplication(ctx context.Context, jobID, jobseekerID domain.EntityID) (domain.EntityID, error) {
	for _, app := range f.apps {
		if app.JobID == jobID && app.JobseekerID == jobseekerID {
			return 0, fmt.Errorf("application for job %d: %w", jobID, domain.ErrAlreadyExists)
		}
	}
	id := f.nextID
	f.nextID++
	f.apps[id] = &domain.Application{
		ID: id, JobID: jobID, JobseekerID: jobseekerID,
		Status: domain.StatusPending, AppliedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetApplicationByID(ctx context.Context, id domain.EntityID) (*domain.Application, error) {
	if app, ok := f.apps[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, fmt.Errorf("application %d: %w", id, domain.ErrNotFound)
}

func (f *fakeStore) ListApplicationsByJobseeker(ctx context.Context, jobseekerID domain.EntityID) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.apps {
		if app.JobseekerID == jobseekerID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeStore) ListApplicationsByJob(ctx context.Context, jobID domain.EntityID) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApplicationStatus(ctx context.Context, id domain.EntityID, status domain.ApplicationStatus) error {
	app, ok := f.apps[id]
	if !ok {
		return fmt.Errorf("application %d: %w", id, domain.ErrNotFound)
	}
	app.Status = status
	return nil
}

func (f *fakeStore) GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
}

func testService() (*Service, *fakeStore) {
	store := newFakeStore()
	store.jobs[10] = &domain.Job{ID: 10, RecruiterID: 1, Title: "Go Developer"}
	return New(store, zap.NewNop()), store
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	svc, _ := testService()

	app, err := svc.Apply(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if app.Status != domain.StatusPending {
		t.Errorf("Status = %q, want pending", app.Status)
	}
	if app.JobID != 10 || app.JobseekerID != 5 {
		t.Errorf("app = %+v", app)
	}
}

func TestApplyUnknownJob(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Apply(context.Background(), 999, 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyTwiceFails(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Apply(context.Background(), 10, 5); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	_, err := svc.Apply(context.Background(), 10, 5)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListForJobRequiresOwnership(t *testing.T) {
	svc, _ := testService()

	if _, err := svc.Apply(context.Background(), 10, 5); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	apps, err := svc.ListForJob(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("ListForJob() owner error = %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("expected 1 application, got %d", len(apps))
	}

	_, err = svc.ListForJob(context.Background(), 10, 2)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign recruiter, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := testService()

	app, err := svc.Apply(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), app.ID, 1, domain.StatusShortlisted)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != domain.StatusShortlisted {
		t.Errorf("Status = %q", updated.Status)
	}
}

func TestUpdateStatusForeignRecruiter(t *testing.T) {
	svc, _ := testService()

	app, _ := svc.Apply(context.Background(), 10, 5)

	_, err := svc.UpdateStatus(context.Background(), app.ID, 99, domain.StatusReviewed)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc, _ := testService()

	app, _ := svc.Apply(context.Background(), 10, 5)

	_, err := svc.UpdateStatus(context.Background(), app.ID, 1, "archived")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
