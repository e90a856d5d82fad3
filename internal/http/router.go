package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"relnotes-faq/internal/escalate"
	"relnotes-faq/internal/handlers"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/indexer"
	"relnotes-faq/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine     rag.Engine
	Escalation *escalate.Service
	Pipeline   *indexer.Pipeline
	CorpusPath string
	DB         *sql.DB
	Index      *index.Manager
	SinkOK     bool
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	queryHandler := handlers.NewQueryHandler(deps.Engine)
	contactHandler := handlers.NewContactHandler(deps.Escalation)
	validateHandler := handlers.NewValidateHandler(deps.Escalation)
	reindexHandler := handlers.NewReindexHandler(deps.Pipeline, deps.CorpusPath)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Index, deps.SinkOK)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/query", queryHandler)
		r.Post("/contact", contactHandler.Submit)
		r.Get("/contact/recent", contactHandler.Recent)
		r.Post("/contact/status", contactHandler.UpdateStatus)
		r.Method(http.MethodPost, "/contact/validate", validateHandler)
		r.Method(http.MethodPost, "/reindex", reindexHandler)
	})

	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
