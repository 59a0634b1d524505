// Package server exposes the inbound HTTP API: the aggregation endpoint, the
// static category/job-type listings, and the LinkedIn OAuth redirect flow.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"matchpoint-api/internal/config"
	"matchpoint-api/internal/models"
	"matchpoint-api/pkg/httpclient"
)

// JobFetcher is the aggregation core as the server sees it.
type JobFetcher interface {
	FetchAllJobs(ctx context.Context, query string, categories, userSkills []string, filters models.Filters) ([]models.Job, bool)
}

// Server holds the HTTP handler dependencies.
type Server struct {
	aggregator JobFetcher
	cfg        *config.Config
	logger     *logrus.Logger
	client     *httpclient.HttpClient
	states     *stateStore
}

// New creates a Server. The HTTP client is used for the OAuth token and
// userinfo calls.
func New(aggregator JobFetcher, cfg *config.Config, client *httpclient.HttpClient, logger *logrus.Logger) *Server {
	return &Server{
		aggregator: aggregator,
		cfg:        cfg,
		logger:     logger,
		client:     client,
		states:     newStateStore(),
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.cors)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/categories", s.handleCategories)
		r.Get("/job-types", s.handleJobTypes)
		r.Post("/jobs", s.handleJobs)
		r.Get("/auth/linkedin", s.handleLinkedInAuth)
		r.Get("/auth/linkedin/callback", s.handleLinkedInCallback)
	})

	return r
}

func (s *Server) cors(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.cfg.Server.AllowedOrigins))
	for _, origin := range s.cfg.Server.AllowedOrigins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.Categories)
}

func (s *Server) handleJobTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.JobTypes)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	var req models.JobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	jobs, cached := s.aggregator.FetchAllJobs(r.Context(), req.Query, req.Categories, req.Skills, req.Filters)
	writeJSON(w, http.StatusOK, models.JobsResponse{
		Jobs:   jobs,
		Total:  len(jobs),
		Cached: cached,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
