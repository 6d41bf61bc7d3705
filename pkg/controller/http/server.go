package http

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	// requestTimeout bounds a single API call, 0 disables it
	requestTimeout time.Duration
}

type Options func(*Server)

// WithRequestTimeout cancels the request context of API calls after d
func WithRequestTimeout(d time.Duration) Options {
	return func(s *Server) {
		s.requestTimeout = d
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
	r.Use(requestLogger)
	r.Use(accessLogger)
	if sentry.CurrentHub().Client() != nil {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	r.Use(middleware.Recoverer)
	if s.requestTimeout > 0 {
		r.Use(middleware.Timeout(s.requestTimeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.listProfiles)
			r.Post("/", s.createProfile)

			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", s.getProfile)
				r.Put("/", s.updateProfile)
				r.Delete("/", s.deleteProfile)

				r.Route("/simulations", func(r chi.Router) {
					r.Post("/monte-carlo", s.monteCarlo)
					r.Post("/what-if", s.whatIf)
					r.Post("/sensitivity", s.sensitivity)
					r.Get("/threat", s.threat)
					r.Get("/threat/{level}", s.threat)
				})

				r.Route("/roi", func(r chi.Router) {
					r.Post("/", s.roi)
					r.Post("/optimal", s.optimal)
					r.Post("/combined", s.combined)
					r.Post("/cost-benefit", s.costBenefit)
					r.Post("/recommend", s.recommend)
					r.Get("/target", s.target)
				})

				r.Get("/report", s.report)
				r.Post("/report/export", s.exportReport)
			})
		})

		r.Route("/investments", func(r chi.Router) {
			r.Get("/", s.listInvestments)
			r.Post("/", s.createInvestment)
			r.Get("/{investmentID}", s.getInvestment)
			r.Put("/{investmentID}", s.updateInvestment)
			r.Delete("/{investmentID}", s.deleteInvestment)
		})

		r.Get("/portfolio", s.portfolio)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
