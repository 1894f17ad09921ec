// Package chi is the HTTP transport: routing, auth, request logging and
// the JSON handlers over the use-case layer.
package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hirepath/hirepath/internal/domain"
	"github.com/hirepath/hirepath/internal/metrics"
	accountuc "github.com/hirepath/hirepath/internal/usecase/account"
	applicationsuc "github.com/hirepath/hirepath/internal/usecase/applications"
	dashboarduc "github.com/hirepath/hirepath/internal/usecase/dashboard"
	healthuc "github.com/hirepath/hirepath/internal/usecase/health"
	"github.com/hirepath/hirepath/internal/usecase/hybridsearch"
	jobsuc "github.com/hirepath/hirepath/internal/usecase/jobs"
)

// Server wires the use cases into HTTP handlers.
type Server struct {
	accounts     *accountuc.Service
	jobs         *jobsuc.Service
	applications *applicationsuc.Service
	search       *hybridsearch.Service
	dashboard    *dashboarduc.Service
	health       *healthuc.Service
	verifier     TokenVerifier
	limiter      *rate.Limiter
	logger       *zap.Logger
}

// NewServer creates the HTTP API server. limiter may be nil to disable
// search rate limiting.
func NewServer(
	accounts *accountuc.Service,
	jobs *jobsuc.Service,
	applications *applicationsuc.Service,
	search *hybridsearch.Service,
	dashboard *dashboarduc.Service,
	health *healthuc.Service,
	verifier TokenVerifier,
	limiter *rate.Limiter,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		accounts:     accounts,
		jobs:         jobs,
		applications: applications,
		search:       search,
		dashboard:    dashboard,
		health:       health,
		verifier:     verifier,
		limiter:      limiter,
		logger:       logger,
	}
}

// Routes builds the router. Health and metrics stay outside authentication.
func (s *Server) Routes() http.Handler {
	r := chirouter.NewRouter()

	r.Use(jsonRecoverer(s.logger))
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Get("/verify-token", s.handleVerifyToken)

	r.Group(func(pr chirouter.Router) {
		pr.Use(authMiddleware(s.verifier))

		pr.Get("/profile", s.handleGetProfile)

		pr.Group(func(js chirouter.Router) {
			js.Use(requireType(domain.UserTypeJobseeker))
			js.Get("/jobseeker/dashboard", s.handleJobseekerDashboard)
			js.Put("/profile", s.handleUpdateProfile)
			js.Put("/profile/skills", s.handleUpdateSkills)
			js.Get("/profile/preferences", s.handleGetPreferences)
			js.Put("/profile/preferences", s.handleSetPreferences)
			js.Post("/jobs/{id}/apply", s.handleApply)
			js.Get("/applications", s.handleListMyApplications)
		})

		pr.Get("/jobs/{id}", s.handleGetJob)

		pr.Group(func(rec chirouter.Router) {
			rec.Use(requireType(domain.UserTypeRecruiter))
			rec.Get("/recruiter/dashboard", s.handleRecruiterDashboard)
			rec.Post("/jobs", s.handleCreateJob)
			rec.Get("/jobs", s.handleListMyJobs)
			rec.Put("/jobs/{id}", s.handleUpdateJob)
			rec.Delete("/jobs/{id}", s.handleDeleteJob)
			rec.Get("/jobs/{id}/applications", s.handleListJobApplications)
			rec.Put("/applications/{id}/status", s.handleUpdateApplicationStatus)
		})

		pr.Group(func(sr chirouter.Router) {
			sr.Use(rateLimit(s.limiter))
			sr.With(requireType(domain.UserTypeJobseeker)).Post("/search/jobs", s.handleSearchJobs)
			sr.With(requireType(domain.UserTypeRecruiter)).Post("/search/candidates", s.handleSearchCandidates)
		})
	})

	return r
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if !status.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, status)
}
