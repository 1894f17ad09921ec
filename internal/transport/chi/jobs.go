package chi

import (
	"encoding/json"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/hirepath/hirepath/internal/domain"
	jobsuc "github.com/hirepath/hirepath/internal/usecase/jobs"
)

type jobRequest struct {
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	MinSalary      int      `json:"min_salary"`
	MaxSalary      int      `json:"max_salary"`
	MinExperience  int      `json:"min_experience"`
	MaxExperience  int      `json:"max_experience"`
}

func (req jobRequest) toInput() jobsuc.Input {
	return jobsuc.Input{
		Title:          req.Title,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		Skills:         req.Skills,
		MinSalary:      req.MinSalary,
		MaxSalary:      req.MaxSalary,
		MinExperience:  req.MinExperience,
		MaxExperience:  req.MaxExperience,
	}
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (domain.EntityID, bool) {
	id, err := domain.ParseEntityID(chirouter.URLParam(r, "id"))
	return id, err == nil
}

// handleCreateJob handles POST /jobs.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	job, err := s.jobs.Create(r.Context(), claims.UserID, req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// handleListMyJobs handles GET /jobs for the recruiter's own postings.
func (s *Server) handleListMyJobs(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	jobs, err := s.jobs.ListMine(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob handles GET /jobs/{id}.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid job id")
		return
	}

	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// handleUpdateJob handles PUT /jobs/{id}.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid job id")
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	job, err := s.jobs.Update(r.Context(), id, claims.UserID, req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// handleDeleteJob handles DELETE /jobs/{id}.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid job id")
		return
	}

	if err := s.jobs.Delete(r.Context(), id, claims.UserID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
