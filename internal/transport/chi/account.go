package chi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hirepath/hirepath/internal/domain"
	accountuc "github.com/hirepath/hirepath/internal/usecase/account"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       domain.EntityID `json:"id"`
	Email    string          `json:"email"`
	UserType domain.UserType `json:"user_type"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone,omitempty"`
	Company  string          `json:"company,omitempty"`
	Location string          `json:"location,omitempty"`

	ExperienceLevel string   `json:"experience_level,omitempty"`
	Education       string   `json:"education,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

func userToResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		UserType:        u.Type,
		Name:            u.Name,
		Phone:           u.Phone,
		Company:         u.Company,
		Location:        u.Location,
		ExperienceLevel: u.ExperienceLevel,
		Education:       u.Education,
		Skills:          u.Skills,
	}
}

// handleRegister handles POST /register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, token, err := s.accounts.Register(r.Context(), accountuc.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Type:     domain.UserType(req.UserType),
		Name:     req.Name,
		Phone:    req.Phone,
		Company:  req.Company,
		Location: req.Location,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: userToResponse(user)})
}

// handleLogin handles POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: userToResponse(user)})
}

// handleVerifyToken handles GET /verify-token. The token comes from the
// Authorization header so clients can probe the one they already hold.
func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(header, bearerPrefix) {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header must use Bearer scheme")
		return
	}

	claims, err := s.accounts.VerifyToken(header[len(bearerPrefix):])
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":     true,
		"user_id":   claims.UserID,
		"email":     claims.Email,
		"user_type": claims.UserType,
	})
}

// handleGetProfile handles GET /profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return
	}

	user, err := s.accounts.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// handleUpdateProfile handles PUT /profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Location        string `json:"location"`
		ExperienceLevel string `json:"experience_level"`
		Education       string `json:"education"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := s.accounts.UpdateProfile(r.Context(), claims.UserID, accountuc.ProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		Education:       req.Education,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateSkills handles PUT /profile/skills.
func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req struct {
		Skills []string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.accounts.UpdateSkills(r.Context(), claims.UserID, req.Skills); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetPreferences handles GET /profile/preferences.
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	prefs, err := s.accounts.GetPreferences(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// handleSetPreferences handles PUT /profile/preferences.
func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req domain.JobPreferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.accounts.SetPreferences(r.Context(), claims.UserID, req); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
