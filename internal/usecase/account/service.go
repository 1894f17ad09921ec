// Package account covers registration, login and jobseeker profile upkeep.
package account

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/auth"
	"github.com/hirepath/hirepath/internal/domain"
)

// UserStore is the relational surface the account service consumes.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (domain.EntityID, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id domain.EntityID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id domain.EntityID, name, phone, location, experienceLevel, education string) error
	UpdateSkills(ctx context.Context, id domain.EntityID, skills []string) error
	UpsertPreferences(ctx context.Context, id domain.EntityID, p domain.JobPreferences) error
	GetPreferences(ctx context.Context, id domain.EntityID) (*domain.JobPreferences, error)
}

// ReindexPublisher emits refresh events for the vector index. Publishing is
// best effort; the relational store stays the source of truth.
type ReindexPublisher interface {
	PublishReindex(ctx context.Context, event domain.ReindexEvent) error
}

// Service implements account operations.
type Service struct {
	store  UserStore
	tokens *auth.TokenManager
	queue  ReindexPublisher
	logger *zap.Logger
}

// New creates the account service. queue may be nil in tooling contexts.
func New(store UserStore, tokens *auth.TokenManager, queue ReindexPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, tokens: tokens, queue: queue, logger: logger}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email    string
	Password string
	Type     domain.UserType
	Name     string
	Phone    string
	Company  string
	Location string
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	if !in.Type.Valid() {
		return nil, "", fmt.Errorf("user type %q: %w", in.Type, domain.ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", fmt.Errorf("name is required: %w", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Type:         in.Type,
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		Company:      in.Company,
		Location:     in.Location,
	}

	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	if user.Type == domain.UserTypeJobseeker {
		s.publishCandidate(ctx, id)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken validates an access token and returns its claims.
func (s *Service) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// GetProfile fetches an account.
func (s *Service) GetProfile(ctx context.Context, id domain.EntityID) (*domain.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// ProfileInput is the mutable jobseeker profile payload.
type ProfileInput struct {
	Name            string
	Phone           string
	Location        string
	ExperienceLevel string
	Education       string
}

// UpdateProfile replaces the profile fields and schedules a reindex.
func (s *Service) UpdateProfile(ctx context.Context, id domain.EntityID, in ProfileInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}

	err := s.store.UpdateProfile(ctx, id, strings.TrimSpace(in.Name), in.Phone, in.Location, in.ExperienceLevel, in.Education)
	if err != nil {
		return err
	}
	s.publishCandidate(ctx, id)
	return nil
}

// UpdateSkills replaces the skill list and schedules a reindex.
func (s *Service) UpdateSkills(ctx context.Context, id domain.EntityID, skills []string) error {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if s := strings.TrimSpace(skill); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if err := s.store.UpdateSkills(ctx, id, cleaned); err != nil {
		return err
	}
	s.publishCandidate(ctx, id)
	return nil
}

// SetPreferences stores the jobseeker's preference row.
func (s *Service) SetPreferences(ctx context.Context, id domain.EntityID, p domain.JobPreferences) error {
	return s.store.UpsertPreferences(ctx, id, p)
}

// GetPreferences fetches the jobseeker's preference row.
func (s *Service) GetPreferences(ctx context.Context, id domain.EntityID) (*domain.JobPreferences, error) {
	return s.store.GetPreferences(ctx, id)
}

func (s *Service) publishCandidate(ctx context.Context, id domain.EntityID) {
	if s.queue == nil {
		return
	}
	event := domain.ReindexEvent{Kind: domain.KindCandidates, ID: id}
	if err := s.queue.PublishReindex(ctx, event); err != nil {
		s.logger.Warn("candidate reindex publish failed",
			zap.String("id", id.String()),
			zap.Error(err),
		)
	}
}
