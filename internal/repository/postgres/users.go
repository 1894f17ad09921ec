package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hirepath/hirepath/internal/domain"
)

const userColumns = `id, email, password_hash, user_type, name, phone, company, location, experience_level, education, skills, created_at`

// CreateUser inserts a new account and returns its identifier.
// A duplicate email maps to domain.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (domain.EntityID, error) {
	skillsJSON, err := json.Marshal(skillsOrEmpty(u.Skills))
	if err != nil {
		return 0, fmt.Errorf("marshal skills: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
INSERT INTO users (email, password_hash, user_type, name, phone, company, location, experience_level, education, skills)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id
`, u.Email, u.PasswordHash, string(u.Type), u.Name, u.Phone, u.Company, u.Location, u.ExperienceLevel, u.Education, skillsJSON).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("email %s: %w", u.Email, domain.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return domain.EntityID(id), nil
}

// GetUserByEmail looks an account up for authentication.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE email = $1
`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID fetches a single account.
func (s *Store) GetUserByID(ctx context.Context, id domain.EntityID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = $1
`, int64(id))

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// UpdateProfile replaces the mutable profile fields of a jobseeker.
func (s *Store) UpdateProfile(ctx context.Context, id domain.EntityID, name, phone, location, experienceLevel, education string) error {
	result, err := s.db.ExecContext(ctx, `
UPDATE users
SET name = $2, phone = $3, location = $4, experience_level = $5, education = $6
WHERE id = $1
`, int64(id), name, phone, location, experienceLevel, education)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireRows(result, id)
}

// UpdateSkills replaces the skill list of a user.
func (s *Store) UpdateSkills(ctx context.Context, id domain.EntityID, skills []string) error {
	skillsJSON, err := json.Marshal(skillsOrEmpty(skills))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
UPDATE users
SET skills = $2
WHERE id = $1
`, int64(id), skillsJSON)
	if err != nil {
		return fmt.Errorf("update skills: %w", err)
	}
	return requireRows(result, id)
}

// UpsertPreferences stores the jobseeker's preference row, replacing any
// previous values.
func (s *Store) UpsertPreferences(ctx context.Context, id domain.EntityID, p domain.JobPreferences) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO job_preferences (user_id, preferred_role, preferred_industry, work_mode, job_type)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (user_id) DO UPDATE
SET preferred_role = EXCLUDED.preferred_role,
    preferred_industry = EXCLUDED.preferred_industry,
    work_mode = EXCLUDED.work_mode,
    job_type = EXCLUDED.job_type
`, int64(id), p.PreferredRole, p.PreferredIndustry, p.WorkMode, p.JobType)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

// GetPreferences fetches the jobseeker's preference row.
func (s *Store) GetPreferences(ctx context.Context, id domain.EntityID) (*domain.JobPreferences, error) {
	var p domain.JobPreferences
	err := s.db.QueryRowContext(ctx, `
SELECT preferred_role, preferred_industry, work_mode, job_type
FROM job_preferences
WHERE user_id = $1
`, int64(id)).Scan(&p.PreferredRole, &p.PreferredIndustry, &p.WorkMode, &p.JobType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preferences for user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// ListCandidateIDs returns the identifiers of all jobseeker accounts,
// oldest first. Used by the indexer's full resync.
func (s *Store) ListCandidateIDs(ctx context.Context) ([]domain.EntityID, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id FROM users WHERE user_type = $1 ORDER BY id
`, string(domain.UserTypeJobseeker))
	if err != nil {
		return nil, fmt.Errorf("list candidate ids: %w", err)
	}
	defer rows.Close()

	var ids []domain.EntityID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan candidate id: %w", err)
		}
		ids = append(ids, domain.EntityID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate ids: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		id        int64
		userType  string
		skillsRaw []byte
	)
	err := row.Scan(
		&id,
		&u.Email,
		&u.PasswordHash,
		&userType,
		&u.Name,
		&u.Phone,
		&u.Company,
		&u.Location,
		&u.ExperienceLevel,
		&u.Education,
		&skillsRaw,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ID = domain.EntityID(id)
	u.Type = domain.UserType(userType)
	if err := json.Unmarshal(skillsRaw, &u.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	return &u, nil
}

// CandidateFromUser projects a jobseeker account into its searchable form.
func CandidateFromUser(u *domain.User) domain.Candidate {
	return domain.Candidate{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Phone:           u.Phone,
		Location:        u.Location,
		ExperienceLevel: u.ExperienceLevel,
		Education:       u.Education,
		Skills:          u.Skills,
		CreatedAt:       u.CreatedAt,
	}
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func requireRows(result sql.Result, id domain.EntityID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
