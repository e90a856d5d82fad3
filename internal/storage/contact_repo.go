package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ContactRepo persists contact submissions in SQLite. It is the default
// escalation sink; rows are append-only, resubmitting the same contact for
// the same question creates a second row.
type ContactRepo struct {
	db *sql.DB
}

// NewContactRepo creates a new ContactRepo.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// Append adds a new contact submission row.
func (r *ContactRepo) Append(ctx context.Context, sub *ContactSubmission) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_submissions
		(timestamp, name, email, organization, original_question, reason, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.Timestamp, sub.Name, sub.Email, sub.Organization, sub.OriginalQuestion, sub.Reason, sub.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to append contact submission: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		sub.ID = id
	}
	return nil
}

// ListRecent returns the most recent submissions, newest first.
func (r *ContactRepo) ListRecent(ctx context.Context, limit int) ([]ContactSubmission, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, name, email, organization, original_question, reason, status
		FROM contact_submissions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var subs []ContactSubmission
	for rows.Next() {
		var sub ContactSubmission
		if err := rows.Scan(&sub.ID, &sub.Timestamp, &sub.Name, &sub.Email,
			&sub.Organization, &sub.OriginalQuestion, &sub.Reason, &sub.Status); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return subs, nil
}

// UpdateStatus changes the status of a logged submission.
// Returns ErrNotFound if the row does not exist.
func (r *ContactRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contact_submissions SET status = ? WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
