package chi

import (
	"encoding/json"
	"net/http"

	"github.com/hirepath/hirepath/internal/domain"
)

// handleApply handles POST /jobs/{id}/apply.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	jobID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid job id")
		return
	}

	application, err := s.applications.Apply(r.Context(), jobID, claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, application)
}

// handleListMyApplications handles GET /applications for the jobseeker.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	applications, err := s.applications.ListForJobseeker(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applications": applications})
}

// handleListJobApplications handles GET /jobs/{id}/applications.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	jobID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid job id")
		return
	}

	applications, err := s.applications.ListForJob(r.Context(), jobID, claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applications": applications})
}

// handleUpdateApplicationStatus handles PUT /applications/{id}/status.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	applicationID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid application id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	application, err := s.applications.UpdateStatus(r.Context(), applicationID, claims.UserID, domain.ApplicationStatus(req.Status))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}
