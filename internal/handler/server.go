// Package handler implements the HTTP API for tzplanner.
// All handlers are methods on Server. Methods are split into
// resource-specific files (health.go, session.go, draft.go, etc.) but share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/tzplanner/internal/domain"
	"github.com/pkordes/tzplanner/internal/middleware"
	"github.com/pkordes/tzplanner/internal/reference"
)

// DefaultExportFilename is the attachment name used when Options leaves it empty.
const DefaultExportFilename = "timezone_conversions.xlsx"

// SessionServicer defines the Session Registry operations the handlers use.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage.
type SessionServicer interface {
	Add(ctx context.Context, d domain.Draft) (domain.Session, error)
	Delete(ctx context.Context, position int) error
	List(ctx context.Context) ([]domain.Session, error)
}

// DraftServicer defines the workspace draft operations.
type DraftServicer interface {
	Get(ctx context.Context) domain.Draft
	Replace(ctx context.Context, d domain.Draft) domain.Draft
	ToggleDate(ctx context.Context, date time.Time) domain.Draft
	Commit(ctx context.Context) (domain.Session, error)
}

// ExportServicer builds the export tables.
type ExportServicer interface {
	Export(ctx context.Context) (domain.Export, error)
}

// Options tunes the HTTP surface. Zero values select the defaults.
type Options struct {
	// ExportFilename is the attachment name of the xlsx download.
	ExportFilename string

	// ExportRateLimit caps /export requests per client IP per minute.
	// Zero or negative disables the limit.
	ExportRateLimit int

	// Logger receives unexpected handler errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server holds the dependencies of every endpoint.
type Server struct {
	sessions SessionServicer
	drafts   DraftServicer
	export   ExportServicer
	refs     reference.Data

	exportFilename  string
	exportRateLimit int
	log             *slog.Logger
	validate        *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(sessions SessionServicer, drafts DraftServicer, export ExportServicer, refs reference.Data, opts Options) *Server {
	if opts.ExportFilename == "" {
		opts.ExportFilename = DefaultExportFilename
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		sessions:        sessions,
		drafts:          drafts,
		export:          export,
		refs:            refs,
		exportFilename:  opts.ExportFilename,
		exportRateLimit: opts.ExportRateLimit,
		log:             opts.Logger,
		validate:        newValidator(),
	}
}

// Routes returns the chi router serving every endpoint.
// Cross-cutting middleware (request IDs, logging, CORS, body limits) is
// applied by the caller around it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Delete("/{position}", s.DeleteSession)
	})

	r.Route("/draft", func(r chi.Router) {
		r.Get("/", s.GetDraft)
		r.Put("/", s.ReplaceDraft)
		r.Post("/dates/{date}", s.ToggleDraftDate)
		r.Post("/commit", s.CommitDraft)
	})

	if s.exportRateLimit > 0 {
		r.With(middleware.NewRateLimiter(s.exportRateLimit, time.Minute)).Get("/export", s.GetExport)
	} else {
		r.Get("/export", s.GetExport)
	}

	r.Route("/reference", func(r chi.Router) {
		r.Get("/countries", s.ListCountries)
		r.Get("/courses", s.ListCourses)
		r.Get("/timezones", s.ListTimezones)
	})

	return r
}
