package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/repository"
)

// Repositories are the stores behind the three collections.
type Repositories struct {
	Outbreaks  repository.OutbreakRepository
	Facilities repository.FacilityRepository
	CaseStats  repository.CaseStatRepository
}

// NewServer creates the API router. authMiddleware guards every route
// except /health; logger may be nil.
func NewServer(repos Repositories, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if logger != nil {
		r.Use(requestLogger(logger))
	}

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}

		mount(r, "/"+outbreak.Path, &resourceHandler[outbreak.ListItem, outbreak.Detail, outbreak.Payload]{
			name:     "outbreak",
			repo:     repos.Outbreaks,
			fields:   outbreak.PatchFields,
			validate: outbreak.Payload.Validate,
		})
		mount(r, "/"+facility.Path, &resourceHandler[facility.Facility, facility.Facility, facility.Payload]{
			name:     "facility",
			repo:     repos.Facilities,
			fields:   facility.PatchFields,
			validate: facility.Payload.Validate,
		})
		mount(r, "/"+casestat.Path, &resourceHandler[casestat.CaseStat, casestat.CaseStat, casestat.Payload]{
			name:     "case stat",
			repo:     repos.CaseStats,
			fields:   casestat.PatchFields,
			validate: casestat.Payload.Validate,
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("api request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start))
		})
	}
}
