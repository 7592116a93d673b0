package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", healthHandler)

	r.Route("/api/orgs/{orgID}", func(r chi.Router) {
		r.Get("/config", s.getConfig)
		r.Put("/config", s.putConfig)

		r.Get("/exposure", s.getExposure)
		r.Post("/exposure", s.postExposure)
		r.Get("/regulations", s.getRegulations)

		r.Get("/readiness", s.getReadiness)
		r.Get("/gaps", s.getGaps)
		r.Post("/review", s.postReview)

		r.Route("/evidence", func(r chi.Router) {
			r.Get("/", s.listEvidence)
			r.Post("/", s.postEvidence)
			r.Get("/{itemID}", s.getEvidence)
			r.Put("/{itemID}", s.putEvidence)
			r.Delete("/{itemID}", s.deleteEvidence)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
