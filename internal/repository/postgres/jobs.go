package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hirepath/hirepath/internal/domain"
)

const jobColumns = `id, recruiter_id, title, location, employment_type, description, skills, min_salary, max_salary, min_experience, max_experience, created_at`

// CreateJob inserts a posting and returns its identifier.
func (s *Store) CreateJob(ctx context.Context, j *domain.Job) (domain.EntityID, error) {
	skillsJSON, err := json.Marshal(skillsOrEmpty(j.Skills))
	if err != nil {
		return 0, fmt.Errorf("marshal skills: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
INSERT INTO jobs (recruiter_id, title, location, employment_type, description, skills, min_salary, max_salary, min_experience, max_experience)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id
`, int64(j.RecruiterID), j.Title, j.Location, j.EmploymentType, j.Description, skillsJSON,
		j.MinSalary, j.MaxSalary, j.MinExperience, j.MaxExperience).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return domain.EntityID(id), nil
}

// GetJobByID fetches a single posting.
func (s *Store) GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE id = $1
`, int64(id))

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return j, nil
}

// ListJobsByRecruiter returns a recruiter's postings, newest first.
func (s *Store) ListJobsByRecruiter(ctx context.Context, recruiterID domain.EntityID) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE recruiter_id = $1
ORDER BY created_at DESC, id DESC
`, int64(recruiterID))
	if err != nil {
		return nil, fmt.Errorf("list jobs by recruiter: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateJob replaces the mutable fields of a posting. The recruiter
// identifier scopes the update to the owner.
func (s *Store) UpdateJob(ctx context.Context, j *domain.Job) error {
	skillsJSON, err := json.Marshal(skillsOrEmpty(j.Skills))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
UPDATE jobs
SET title = $3, location = $4, employment_type = $5, description = $6, skills = $7,
    min_salary = $8, max_salary = $9, min_experience = $10, max_experience = $11
WHERE id = $1 AND recruiter_id = $2
`, int64(j.ID), int64(j.RecruiterID), j.Title, j.Location, j.EmploymentType, j.Description, skillsJSON,
		j.MinSalary, j.MaxSalary, j.MinExperience, j.MaxExperience)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job %d: %w", j.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteJob removes a posting owned by the recruiter.
func (s *Store) DeleteJob(ctx context.Context, id, recruiterID domain.EntityID) error {
	result, err := s.db.ExecContext(ctx, `
DELETE FROM jobs
WHERE id = $1 AND recruiter_id = $2
`, int64(id), int64(recruiterID))
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetJobsByIDs fetches the given postings and returns them in the order of
// the input identifiers. Missing identifiers are silently skipped.
func (s *Store) GetJobsByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE id = ANY($1)
`, raw)
	if err != nil {
		return nil, fmt.Errorf("get jobs by ids: %w", err)
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[domain.EntityID]domain.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

// ListRecentJobs returns the newest postings across all recruiters.
func (s *Store) ListRecentJobs(ctx context.Context, limit int) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
ORDER BY created_at DESC, id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// CountJobsByRecruiter returns the number of postings a recruiter owns.
func (s *Store) CountJobsByRecruiter(ctx context.Context, recruiterID domain.EntityID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM jobs WHERE recruiter_id = $1
`, int64(recruiterID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count jobs by recruiter: %w", err)
	}
	return count, nil
}

// ListJobIDs returns all posting identifiers, oldest first. Used by the
// indexer's full resync.
func (s *Store) ListJobIDs(ctx context.Context) ([]domain.EntityID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list job ids: %w", err)
	}
	defer rows.Close()

	var ids []domain.EntityID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan job id: %w", err)
		}
		ids = append(ids, domain.EntityID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job ids: %w", err)
	}
	return ids, nil
}

func collectJobs(rows *sql.Rows) ([]domain.Job, error) {
	out := make([]domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return out, nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		j           domain.Job
		id          int64
		recruiterID int64
		skillsRaw   []byte
	)
	err := row.Scan(
		&id,
		&recruiterID,
		&j.Title,
		&j.Location,
		&j.EmploymentType,
		&j.Description,
		&skillsRaw,
		&j.MinSalary,
		&j.MaxSalary,
		&j.MinExperience,
		&j.MaxExperience,
		&j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.ID = domain.EntityID(id)
	j.RecruiterID = domain.EntityID(recruiterID)
	if err := json.Unmarshal(skillsRaw, &j.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	return &j, nil
}
