package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/escalate"
	"relnotes-faq/internal/storage"
)

// ContactHandler handles contact submission, listing, and status updates for
// escalated questions.
type ContactHandler struct {
	svc *escalate.Service
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *escalate.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// ContactRequest is the HTTP request payload for a contact submission.
type ContactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Organization     string `json:"organization"`
	OriginalQuestion string `json:"original_question"`
}

// ContactResponse is the HTTP response for a contact submission.
type ContactResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message,omitempty"`
	Error            string   `json:"error,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// Submit logs the contact details for a question the pipeline could not
// answer. Validation failures come back as 400 with field-level messages;
// sink failures as 502.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	validation, err := h.svc.Escalate(ctx, req.Name, req.Email, req.Organization, req.OriginalQuestion)
	if err != nil {
		logger.ErrorContext(ctx, "failed to log contact submission", "error", err)
		writeJSON(ctx, w, http.StatusBadGateway, ContactResponse{
			Success: false,
			Error:   "Failed to log contact information",
		})
		return
	}
	if !validation.IsValid {
		writeJSON(ctx, w, http.StatusBadRequest, ContactResponse{
			Success:          false,
			Error:            "Invalid contact information",
			ValidationErrors: validation.Errors,
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, ContactResponse{
		Success: true,
		Message: "Contact information logged successfully. Our support team will reach out to you within 24-48 hours.",
	})
}

// RecentResponse is the HTTP response for the recent-submissions listing.
type RecentResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// SubmissionResponse is one logged submission in the listing.
type SubmissionResponse struct {
	ID               int64  `json:"id"`
	Timestamp        string `json:"timestamp"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Organization     string `json:"organization"`
	OriginalQuestion string `json:"original_question"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
}

// Recent lists the most recent submissions, newest first. The limit query
// parameter caps the result; it defaults to 10.
func (h *ContactHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	subs, err := h.svc.RecentSubmissions(ctx, limit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list submissions", "error", err)
		writeError(ctx, w, http.StatusBadGateway, "Failed to list contact submissions")
		return
	}

	resp := RecentResponse{Submissions: make([]SubmissionResponse, len(subs))}
	for i, sub := range subs {
		resp.Submissions[i] = SubmissionResponse{
			ID:               sub.ID,
			Timestamp:        sub.Timestamp,
			Name:             sub.Name,
			Email:            sub.Email,
			Organization:     sub.Organization,
			OriginalQuestion: sub.OriginalQuestion,
			Reason:           sub.Reason,
			Status:           sub.Status,
		}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// StatusRequest is the HTTP request payload for a status update.
type StatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// UpdateStatus changes the status of a logged submission.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == 0 || req.Status == "" {
		writeError(ctx, w, http.StatusBadRequest, "ID and status are required")
		return
	}

	if err := h.svc.UpdateStatus(ctx, req.ID, req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Submission not found")
			return
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to update submission status",
			"id", req.ID, "error", err)
		writeError(ctx, w, http.StatusBadGateway, "Failed to update submission status")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ContactResponse{Success: true})
}
