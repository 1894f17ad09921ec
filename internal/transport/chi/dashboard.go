package chi

import "net/http"

// handleJobseekerDashboard handles GET /jobseeker/dashboard.
func (s *Server) handleJobseekerDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	data, err := s.dashboard.Jobseeker(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":              userToResponse(data.User),
		"recommended_jobs":  data.RecommendedJobs,
		"application_count": data.ApplicationCount,
	})
}

// handleRecruiterDashboard handles GET /recruiter/dashboard.
func (s *Server) handleRecruiterDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	data, err := s.dashboard.Recruiter(r.Context(), claims.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":              userToResponse(data.User),
		"job_count":         data.JobCount,
		"application_count": data.ApplicationCount,
	})
}
