package escalate

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sink.go -package=mocks relnotes-faq/internal/escalate ContactSink

import (
	"context"

	"relnotes-faq/internal/storage"
)

// ContactSink persists escalated contact submissions. The SQLite contact repo
// is the default sink; a Google Sheets sink can be configured instead.
type ContactSink interface {
	// Append adds a new contact submission. Implementations set sub.ID when
	// the backend assigns one.
	Append(ctx context.Context, sub *storage.ContactSubmission) error

	// ListRecent returns the most recent submissions, newest first.
	ListRecent(ctx context.Context, limit int) ([]storage.ContactSubmission, error)

	// UpdateStatus changes the status of a logged submission.
	UpdateStatus(ctx context.Context, id int64, status string) error
}
