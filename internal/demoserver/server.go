// Package demoserver serves the MyCV REST API under /api from a local
// SQLite store. Resume generation is a deterministic keyword match, so the
// server needs no language model and works offline.
package demoserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/store"
)

// Server is the HTTP API surface of the demo backend.
type Server struct {
	cfg      Config
	store    *store.Store
	router   chi.Router
	logger   logging.Logger
	renderer pdfRenderer
	chrome   *chromeRenderer
}

// NewServer opens the store named by cfg.DSN and registers all routes.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("demoserver")
	}

	st, err := store.Open(cfg.DSN, logger.With(logging.Field{Key: "component", Value: "store"}))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		router:   chi.NewRouter(),
		logger:   logger,
		renderer: textRenderer{},
	}
	if cfg.ChromePDF {
		s.chrome = newChromeRenderer(cfg.ChromeHeadless, logger)
		s.renderer = fallbackRenderer{primary: s.chrome, logger: logger}
	}
	s.routes()
	return s, nil
}

// Store exposes the backing store for tests and seeding.
func (s *Server) Store() *store.Store {
	return s.store
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/personal-info", s.handleGetPersonalInfo)
		r.Put("/personal-info", s.handleUpdatePersonalInfo)

		r.Get("/work-experiences", s.handleListWorkExperiences)
		r.Post("/work-experiences", s.handleCreateWorkExperience)
		r.Put("/work-experiences/{id}", s.handleUpdateWorkExperience)
		r.Delete("/work-experiences/{id}", s.handleDeleteWorkExperience)

		r.Get("/education", s.handleListEducation)
		r.Post("/education", s.handleCreateEducation)
		r.Put("/education/{id}", s.handleUpdateEducation)
		r.Delete("/education/{id}", s.handleDeleteEducation)

		r.Get("/skills", s.handleListSkills)
		r.Post("/skills", s.handleCreateSkills)
		r.Delete("/skills/{id}", s.handleDeleteSkill)

		r.Get("/projects", s.handleListProjects)
		r.Post("/projects", s.handleCreateProject)
		r.Put("/projects/{id}", s.handleUpdateProject)
		r.Delete("/projects/{id}", s.handleDeleteProject)

		r.Get("/languages", s.handleListLanguages)
		r.Post("/languages", s.handleCreateLanguage)
		r.Put("/languages/reorder", s.handleReorderLanguages)
		r.Put("/languages/{id}", s.handleUpdateLanguage)
		r.Delete("/languages/{id}", s.handleDeleteLanguage)

		r.Get("/photos", s.handleGetPhoto)
		r.Put("/photos", s.handleUploadPhoto)
		r.Delete("/photos", s.handleDeletePhoto)

		r.Get("/profile/complete", s.handleCompleteProfile)
		r.Put("/profile/import", s.handleImportProfile)

		r.Post("/resumes/generate", s.handleGenerateResume)
		r.Get("/resumes", s.handleListResumes)
		r.Get("/resumes/{id}", s.handleGetResume)
		r.Put("/resumes/{id}", s.handleUpdateResume)
		r.Delete("/resumes/{id}", s.handleDeleteResume)
		r.Get("/resumes/{id}/pdf", s.handleResumePDF)

		r.Get("/job-descriptions", s.handleListJobDescriptions)
		r.Post("/job-descriptions", s.handleCreateJobDescription)
		r.Get("/job-descriptions/{id}", s.handleGetJobDescription)
		r.Put("/job-descriptions/{id}", s.handleUpdateJobDescription)
		r.Delete("/job-descriptions/{id}", s.handleDeleteJobDescription)
		r.Get("/job-descriptions/{id}/resumes", s.handleJobDescriptionResumes)
		r.Get("/job-descriptions/{id}/versions", s.handleJobDescriptionVersions)
		r.Post("/job-descriptions/{id}/versions/{versionID}/restore", s.handleRestoreVersion)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)
	fields = append(fields, logging.Field{Key: "request_id", Value: id})
	if r.ContentLength > 0 {
		fields = append(fields, logging.Field{Key: "body_bytes", Value: r.ContentLength})
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the store and the browser, if one was started.
func (s *Server) Close() {
	if s.chrome != nil {
		s.chrome.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
}
