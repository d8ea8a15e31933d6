package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"github.com/psq-lab/psiquo/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	noAuth bool
}

type Options func(*Server)

// WithNoAuth disables token authentication. The acting company is taken
// from the X-Company-ID header instead; for local development only.
func WithNoAuth(enabled bool) Options {
	return func(s *Server) {
		s.noAuth = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
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

	r.Route("/api", func(r chi.Router) {
		// Registration and login do not require a session
		r.Post("/company", s.handleRegisterCompany)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware())

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/company", s.handleGetCompany)

			r.Route("/questionnaire", func(r chi.Router) {
				r.Get("/questions", s.handleListQuestions)
				r.Post("/answers", s.handleSubmitAnswer)
				r.Get("/answers", s.handleListAnswers)
			})

			r.Route("/assessment", func(r chi.Router) {
				r.Post("/regenerate", s.handleRegenerate)
				r.Get("/risks", s.handleListRisks)
				r.Put("/risks/{riskID}", s.handleUpdateRisk)
				r.Post("/approve", s.handleApprove)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Post("/", s.handleCreatePlan)
				r.Get("/", s.handleListPlans)
				r.Patch("/{planID}", s.handleUpdatePlan)
				r.Delete("/{planID}", s.handleDeletePlan)
			})

			r.Route("/evidence", func(r chi.Router) {
				r.Post("/", s.handleAddEvidence)
				r.Get("/", s.handleListEvidence)
				r.Get("/{evidenceID}/download", s.handleDownloadEvidence)
				r.Delete("/{evidenceID}", s.handleDeleteEvidence)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Post("/", s.handleGenerateReport)
				r.Get("/", s.handleListReports)
				r.Get("/{reportID}/download", s.handleDownloadReport)
				r.Post("/{reportID}/archive", s.handleArchiveReport)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
	})

	return s
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

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid JSON body", goerr.T(types.ErrTagValidation))
	}
	return nil
}
