package handlers

import (
	"errors"
	"net/http"
	"sync"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/corpus"
	"relnotes-faq/internal/index"
	"relnotes-faq/internal/indexer"
)

// ReindexHandler triggers a full corpus reload and index rebuild. Rebuilds are
// exclusive: a second request while one is running gets a 409. Queries are not
// blocked; they keep hitting the prior index until the swap.
type ReindexHandler struct {
	pipeline   *indexer.Pipeline
	corpusPath string

	mu sync.Mutex // held for the whole run, including corpus load and embedding
}

// NewReindexHandler creates a new ReindexHandler.
func NewReindexHandler(pipeline *indexer.Pipeline, corpusPath string) *ReindexHandler {
	return &ReindexHandler{pipeline: pipeline, corpusPath: corpusPath}
}

// ReindexResponse reports the completed rebuild.
type ReindexResponse struct {
	Success   bool `json:"success"`
	Documents int  `json:"documents"`
}

// ServeHTTP runs the rebuild synchronously and reports the outcome.
func (h *ReindexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if !h.mu.TryLock() {
		writeError(ctx, w, http.StatusConflict, "Reindex already in progress")
		return
	}
	defer h.mu.Unlock()

	docs, err := corpus.LoadJSON(h.corpusPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load corpus", "path", h.corpusPath, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to load corpus")
		return
	}

	if err := h.pipeline.Rebuild(ctx, docs); err != nil {
		if errors.Is(err, index.ErrRebuildInProgress) {
			writeError(ctx, w, http.StatusConflict, "Reindex already in progress")
			return
		}
		logger.ErrorContext(ctx, "reindex failed", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Reindex failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, ReindexResponse{Success: true, Documents: len(docs)})
}
