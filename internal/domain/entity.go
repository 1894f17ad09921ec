package domain

import (
	"fmt"
	"strconv"
	"time"
)

// EntityID identifies a job or a user. The relational store keys entities by
// integer; the vector index keys the derived records by the decimal string
// form. String() and ParseEntityID are the only sanctioned conversions.
type EntityID int64

// String returns the vector-index representation of the identifier.
func (id EntityID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseEntityID converts a vector-index key back to a store identifier.
func ParseEntityID(s string) (EntityID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse entity id %q: %w", s, err)
	}
	return EntityID(n), nil
}

// Kind selects which searchable corpus an operation targets.
type Kind string

const (
	KindJobs       Kind = "jobs"
	KindCandidates Kind = "candidates"
)

// Valid reports whether the kind is one of the two known corpora.
func (k Kind) Valid() bool {
	return k == KindJobs || k == KindCandidates
}

// UserType is the role a registered user holds.
type UserType string

const (
	UserTypeJobseeker UserType = "jobseeker"
	UserTypeRecruiter UserType = "recruiter"
)

// Valid reports whether the user type is known.
func (t UserType) Valid() bool {
	return t == UserTypeJobseeker || t == UserTypeRecruiter
}

// User is a registered account. Candidates are users of type jobseeker.
type User struct {
	ID              EntityID
	Email           string
	PasswordHash    string
	Type            UserType
	Name            string
	Phone           string
	Company         string
	Location        string
	ExperienceLevel string
	Education       string
	Skills          []string
	CreatedAt       time.Time
}

// Candidate is the searchable projection of a jobseeker user.
type Candidate struct {
	ID              EntityID  `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experience_level"`
	Education       string    `json:"education"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"created_at"`
}

// Job is a recruiter's posting.
//
// Experience requirements are a numeric year range: MinExperience is the
// lowest acceptable number of years, MaxExperience the highest, with 0
// meaning open-ended. The range is what the experience search filter
// compares against.
type Job struct {
	ID             EntityID  `json:"id"`
	RecruiterID    EntityID  `json:"recruiter_id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
	Skills         []string  `json:"skills"`
	MinSalary      int       `json:"min_salary"`
	MaxSalary      int       `json:"max_salary"`
	MinExperience  int       `json:"min_experience"`
	MaxExperience  int       `json:"max_experience"`
	CreatedAt      time.Time `json:"created_at"`
}

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether the status is a known review state.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Application links a jobseeker to a job posting.
type Application struct {
	ID          EntityID          `json:"id"`
	JobID       EntityID          `json:"job_id"`
	JobseekerID EntityID          `json:"jobseeker_id"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
}

// JobPreferences is a jobseeker's stated preference set, one row per user.
type JobPreferences struct {
	PreferredRole     string `json:"preferred_role"`
	PreferredIndustry string `json:"preferred_industry"`
	WorkMode          string `json:"work_mode"`
	JobType           string `json:"job_type"`
}
