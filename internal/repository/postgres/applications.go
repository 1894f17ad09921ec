package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirepath/hirepath/internal/domain"
)

// CreateApplication records a jobseeker applying to a job. Applying twice
// to the same job maps to domain.ErrAlreadyExists.
func (s *Store) CreateApplication(ctx context.Context, jobID, jobseekerID domain.EntityID) (domain.EntityID, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO applications (job_id, jobseeker_id, status)
VALUES ($1,$2,$3)
RETURNING id
`, int64(jobID), int64(jobseekerID), string(domain.StatusPending)).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("application for job %d: %w", jobID, domain.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return domain.EntityID(id), nil
}

// GetApplicationByID fetches a single application.
func (s *Store) GetApplicationByID(ctx context.Context, id domain.EntityID) (*domain.Application, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, job_id, jobseeker_id, status, applied_at
FROM applications
WHERE id = $1
`, int64(id))

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}
	return app, nil
}

// ListApplicationsByJobseeker returns a jobseeker's applications, newest first.
func (s *Store) ListApplicationsByJobseeker(ctx context.Context, jobseekerID domain.EntityID) ([]domain.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, job_id, jobseeker_id, status, applied_at
FROM applications
WHERE jobseeker_id = $1
ORDER BY applied_at DESC, id DESC
`, int64(jobseekerID))
	if err != nil {
		return nil, fmt.Errorf("list applications by jobseeker: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListApplicationsByJob returns the applications for one posting, newest first.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID domain.EntityID) ([]domain.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, job_id, jobseeker_id, status, applied_at
FROM applications
WHERE job_id = $1
ORDER BY applied_at DESC, id DESC
`, int64(jobID))
	if err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// UpdateApplicationStatus moves an application to a new review state.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id domain.EntityID, status domain.ApplicationStatus) error {
	result, err := s.db.ExecContext(ctx, `
UPDATE applications
SET status = $2
WHERE id = $1
`, int64(id), string(status))
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountApplicationsByJobseeker returns how many applications a jobseeker
// has filed.
func (s *Store) CountApplicationsByJobseeker(ctx context.Context, jobseekerID domain.EntityID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM applications WHERE jobseeker_id = $1
`, int64(jobseekerID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count applications by jobseeker: %w", err)
	}
	return count, nil
}

// CountApplicationsByRecruiter returns how many applications landed across
// all of a recruiter's postings.
func (s *Store) CountApplicationsByRecruiter(ctx context.Context, recruiterID domain.EntityID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE j.recruiter_id = $1
`, int64(recruiterID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count applications by recruiter: %w", err)
	}
	return count, nil
}

func collectApplications(rows *sql.Rows) ([]domain.Application, error) {
	out := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app         domain.Application
		id          int64
		jobID       int64
		jobseekerID int64
		status      string
	)
	err := row.Scan(&id, &jobID, &jobseekerID, &status, &app.AppliedAt)
	if err != nil {
		return nil, err
	}
	app.ID = domain.EntityID(id)
	app.JobID = domain.EntityID(jobID)
	app.JobseekerID = domain.EntityID(jobseekerID)
	app.Status = domain.ApplicationStatus(status)
	return &app, nil
}
