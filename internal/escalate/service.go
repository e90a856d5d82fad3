package escalate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/storage"
)

// Submission metadata recorded with every escalated contact.
const (
	ReasonInsufficientContext = "insufficient_context"
	StatusNew                 = "New"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationResult carries field-level error messages for a contact form.
// A failing validation leaves the caller collecting contact details; nothing
// is logged until validation passes.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Service collects and persists contact details for questions the answer
// pipeline could not cover.
type Service struct {
	sink ContactSink
}

// NewService creates an escalation service over the given sink.
func NewService(sink ContactSink) *Service {
	return &Service{sink: sink}
}

// ValidateContact checks a contact form: all three fields non-empty after
// trimming, and a syntactically valid email.
func (s *Service) ValidateContact(name, email, organization string) ValidationResult {
	var errs []string

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "Name is required")
	}

	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(trimmedEmail) {
		errs = append(errs, "Invalid email format")
	}

	if strings.TrimSpace(organization) == "" {
		errs = append(errs, "Organization is required")
	}

	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Escalate validates the contact details and appends a submission to the sink.
// Appending is not idempotent: resubmitting the same contact for the same
// question creates a second row. Returns the validation result when it fails;
// sink failures are returned as errors.
func (s *Service) Escalate(ctx context.Context, name, email, organization, originalQuestion string) (ValidationResult, error) {
	validation := s.ValidateContact(name, email, organization)
	if !validation.IsValid {
		return validation, nil
	}

	sub := &storage.ContactSubmission{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Name:             strings.TrimSpace(name),
		Email:            strings.TrimSpace(email),
		Organization:     strings.TrimSpace(organization),
		OriginalQuestion: originalQuestion,
		Reason:           ReasonInsufficientContext,
		Status:           StatusNew,
	}

	if err := s.sink.Append(ctx, sub); err != nil {
		return validation, fmt.Errorf("failed to log contact submission: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "contact submission logged",
		"email", sub.Email, "id", sub.ID)
	return validation, nil
}

// RecentSubmissions returns the most recent submissions, newest first.
func (s *Service) RecentSubmissions(ctx context.Context, limit int) ([]storage.ContactSubmission, error) {
	return s.sink.ListRecent(ctx, limit)
}

// UpdateStatus changes the status of a logged submission.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	return s.sink.UpdateStatus(ctx, id, status)
}
