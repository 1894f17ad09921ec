package chi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return searchRequest{}, false
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "query must not be empty")
		return searchRequest{}, false
	}
	return req, true
}

// handleSearchJobs handles POST /search/jobs.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	result, err := s.search.SearchJobs(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":      result.Jobs,
		"parsed_query": result.Query,
	})
}

// handleSearchCandidates handles POST /search/candidates.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	result, err := s.search.SearchCandidates(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":      result.Candidates,
		"parsed_query": result.Query,
	})
}
