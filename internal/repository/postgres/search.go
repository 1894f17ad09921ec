package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirepath/hirepath/internal/domain"
)

// SearchJobs applies the structured filters of a parsed query as a
// conjunction over the jobs table. With no filters present the newest
// postings are returned up to limit.
//
// Filter semantics: location and employment type are case-insensitive
// substring matches; salary matches when either salary bound meets the
// requested amount; experience matches when the requested years fall inside
// the posting's range (a zero max is open-ended); each requested skill must
// match some entry of the posting's skill list.
func (s *Store) SearchJobs(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Job, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE %s", arg("%"+q.Location+"%")))
	}
	if q.Salary > 0 {
		p := arg(q.Salary)
		conds = append(conds, fmt.Sprintf("(min_salary >= %s OR max_salary >= %s)", p, p))
	}
	if q.ExperienceYears > 0 {
		p := arg(q.ExperienceYears)
		conds = append(conds, fmt.Sprintf("(min_experience <= %s AND (max_experience = 0 OR max_experience >= %s))", p, p))
	}
	for _, skill := range q.Skills {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(skills) AS skill WHERE skill ILIKE %s)",
			arg("%"+skill+"%")))
	}
	if q.JobType != "" {
		conds = append(conds, fmt.Sprintf("employment_type ILIKE %s", arg("%"+q.JobType+"%")))
	}

	query := "SELECT " + jobColumns + "\nFROM jobs\n"
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, "\nAND ") + "\n"
	}
	query += "ORDER BY created_at DESC, id DESC\nLIMIT " + arg(limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// SearchCandidates applies the candidate-relevant structured filters
// (location and skills) over jobseeker accounts. Salary, experience and
// job type do not apply to profiles and are ignored.
func (s *Store) SearchCandidates(ctx context.Context, q domain.ParsedQuery, limit int) ([]domain.Candidate, error) {
	conds := []string{"user_type = $1"}
	args := []any{string(domain.UserTypeJobseeker)}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE %s", arg("%"+q.Location+"%")))
	}
	for _, skill := range q.Skills {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(skills) AS skill WHERE skill ILIKE %s)",
			arg("%"+skill+"%")))
	}

	query := "SELECT " + userColumns + "\nFROM users\nWHERE " + strings.Join(conds, "\nAND ") +
		"\nORDER BY created_at DESC, id DESC\nLIMIT " + arg(limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Candidate, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, CandidateFromUser(u))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

// GetCandidatesByIDs fetches the given jobseeker profiles preserving the
// order of the input identifiers. Missing or non-jobseeker identifiers are
// silently skipped.
func (s *Store) GetCandidatesByIDs(ctx context.Context, ids []domain.EntityID) ([]domain.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = ANY($1) AND user_type = $2
`, raw, string(domain.UserTypeJobseeker))
	if err != nil {
		return nil, fmt.Errorf("get candidates by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[domain.EntityID]domain.Candidate, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		byID[u.ID] = CandidateFromUser(u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	out := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
