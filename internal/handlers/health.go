package handlers

import (
	"database/sql"
	"net/http"

	"relnotes-faq/internal/index"
)

// HealthHandler reports component readiness.
type HealthHandler struct {
	db      *sql.DB
	manager *index.Manager
	sinkOK  bool
}

// NewHealthHandler creates a new HealthHandler. sinkOK records whether the
// contact sink initialized at startup.
func NewHealthHandler(db *sql.DB, manager *index.Manager, sinkOK bool) *HealthHandler {
	return &HealthHandler{db: db, manager: manager, sinkOK: sinkOK}
}

// HealthResponse reports per-component readiness.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    bool   `json:"database"`
	Index       bool   `json:"index"`
	ContactSink bool   `json:"contact_sink"`
}

// ServeHTTP reports readiness. The service is healthy when every component
// is; a degraded service still answers with the per-component breakdown.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := HealthResponse{
		Database:    h.db.PingContext(ctx) == nil,
		Index:       h.manager.Ready(),
		ContactSink: h.sinkOK,
	}

	status := http.StatusOK
	if resp.Database && resp.Index && resp.ContactSink {
		resp.Status = "healthy"
	} else {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(ctx, w, status, resp)
}
