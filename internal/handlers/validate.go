package handlers

import (
	"encoding/json"
	"net/http"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/escalate"
)

// ValidateHandler checks contact details without logging anything.
type ValidateHandler struct {
	svc *escalate.Service
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(svc *escalate.Service) *ValidateHandler {
	return &ValidateHandler{svc: svc}
}

// ValidateRequest is the HTTP request payload for contact validation.
type ValidateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
}

// ServeHTTP validates contact details and returns field-level errors. A
// failing validation is still a 200; the caller is mid-form, not in error.
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.svc.ValidateContact(req.Name, req.Email, req.Organization)
	writeJSON(ctx, w, http.StatusOK, result)
}
