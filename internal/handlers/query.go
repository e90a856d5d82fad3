package handlers

import (
	"encoding/json"
	"net/http"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/rag"
)

// QueryHandler handles question-answering requests.
type QueryHandler struct {
	engine rag.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(engine rag.Engine) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// QueryRequest is the HTTP request payload for a question.
type QueryRequest struct {
	Question string `json:"question"`
}

// ServeHTTP answers a question. The engine degrades pipeline failures into an
// insufficient answer, so a well-formed request always gets a 200 with the
// full response shape.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(ctx, w, http.StatusBadRequest, "Question is required")
		return
	}

	answer := h.engine.Query(ctx, req.Question)

	logger.InfoContext(ctx, "question answered",
		"sufficient", answer.HasSufficientInfo, "citations", len(answer.Citations))
	writeJSON(ctx, w, http.StatusOK, answer)
}
