package storage_test

import (
	"context"
	"errors"
	"testing"

	"relnotes-faq/internal/storage"
)

func submission(name, question string) *storage.ContactSubmission {
	return &storage.ContactSubmission{
		Timestamp:        "2026-09-01T12:00:00Z",
		Name:             name,
		Email:            "jane@acme.com",
		Organization:     "Acme",
		OriginalQuestion: question,
		Reason:           "insufficient_context",
		Status:           "New",
	}
}

func TestContactRepo_AppendAssignsID(t *testing.T) {
	db := testDB(t)
	repo := storage.NewContactRepo(db)
	ctx := context.Background()

	sub := submission("Jane Doe", "What is Feature X?")
	if err := repo.Append(ctx, sub); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if sub.ID == 0 {
		t.Error("Append() did not assign an ID")
	}
}

func TestContactRepo_AppendIsNotIdempotent(t *testing.T) {
	db := testDB(t)
	repo := storage.NewContactRepo(db)
	ctx := context.Background()

	first := submission("Jane Doe", "same question")
	second := submission("Jane Doe", "same question")
	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("resubmission reused row %d, want a second row", first.ID)
	}
}

func TestContactRepo_ListRecent(t *testing.T) {
	db := testDB(t)
	repo := storage.NewContactRepo(db)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		if err := repo.Append(ctx, submission(name, "q")); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	subs, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("ListRecent() = %d rows, want 2", len(subs))
	}
	if subs[0].Name != "Third" || subs[1].Name != "Second" {
		t.Errorf("ListRecent() order = [%s, %s], want newest first", subs[0].Name, subs[1].Name)
	}
}

func TestContactRepo_UpdateStatus(t *testing.T) {
	db := testDB(t)
	repo := storage.NewContactRepo(db)
	ctx := context.Background()

	sub := submission("Jane Doe", "q")
	if err := repo.Append(ctx, sub); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := repo.UpdateStatus(ctx, sub.ID, "Contacted"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	subs, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if subs[0].Status != "Contacted" {
		t.Errorf("Status = %q, want %q", subs[0].Status, "Contacted")
	}

	if err := repo.UpdateStatus(ctx, 9999, "Contacted"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}
