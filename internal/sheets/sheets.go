// Package sheets implements a Google Sheets contact sink. Submissions land as
// rows in a fixed worksheet, one column per field, so non-engineering staff
// can work the escalation queue from the spreadsheet directly.
package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/storage"
)

// DefaultWorksheet is the worksheet name used when none is configured.
const DefaultWorksheet = "Contact Submissions"

var headerRow = []any{
	"Timestamp", "Name", "Email", "Organization",
	"Original Question", "Reason for Escalation", "Status",
}

// Sink appends contact submissions to a Google Sheets worksheet.
// It implements the escalate.ContactSink interface. Row numbers double as
// submission IDs; the header occupies row 1.
type Sink struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	worksheet     string
}

// NewSink creates a sink authenticated with a service-account credentials
// file and ensures the worksheet header row is in place.
func NewSink(ctx context.Context, credentialsPath, spreadsheetID, worksheet string) (*Sink, error) {
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	s := &Sink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}
	if err := s.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) ensureHeader(ctx context.Context) error {
	rangeRef := fmt.Sprintf("%s!A1:G1", s.worksheet)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read worksheet header: %w", err)
	}

	if len(resp.Values) == 1 && rowMatches(resp.Values[0], headerRow) {
		return nil
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rangeRef, &sheetsapi.ValueRange{
		Values: [][]any{headerRow},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write worksheet header: %w", err)
	}
	return nil
}

func rowMatches(got, want []any) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if fmt.Sprint(got[i]) != fmt.Sprint(want[i]) {
			return false
		}
	}
	return true
}

// Append adds the submission as a new row and records the assigned row number
// as the submission ID.
func (s *Sink) Append(ctx context.Context, sub *storage.ContactSubmission) error {
	row := []any{
		sub.Timestamp, sub.Name, sub.Email, sub.Organization,
		sub.OriginalQuestion, sub.Reason, sub.Status,
	}

	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID,
		fmt.Sprintf("%s!A:G", s.worksheet),
		&sheetsapi.ValueRange{Values: [][]any{row}},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append contact row: %w", err)
	}

	if resp.Updates != nil {
		if rowNum, ok := rowFromRange(resp.Updates.UpdatedRange); ok {
			sub.ID = rowNum
		}
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "contact row appended",
		"worksheet", s.worksheet, "row", sub.ID)
	return nil
}

// rowFromRange extracts the row number from an A1-notation range such as
// "Contact Submissions!A5:G5".
func rowFromRange(updatedRange string) (int64, bool) {
	idx := strings.LastIndex(updatedRange, ":")
	if idx == -1 || idx+1 >= len(updatedRange) {
		return 0, false
	}
	cell := updatedRange[idx+1:]
	digits := strings.TrimLeftFunc(cell, func(r rune) bool {
		return r < '0' || r > '9'
	})
	rowNum, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return rowNum, true
}

// ListRecent reads all data rows and returns the most recent ones, newest
// first by timestamp.
func (s *Sink) ListRecent(ctx context.Context, limit int) ([]storage.ContactSubmission, error) {
	if limit <= 0 {
		limit = 10
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID,
		fmt.Sprintf("%s!A2:G", s.worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read contact rows: %w", err)
	}

	subs := make([]storage.ContactSubmission, 0, len(resp.Values))
	for i, row := range resp.Values {
		sub := storage.ContactSubmission{ID: int64(i + 2)} // row 1 is the header
		fields := []*string{
			&sub.Timestamp, &sub.Name, &sub.Email, &sub.Organization,
			&sub.OriginalQuestion, &sub.Reason, &sub.Status,
		}
		for j, field := range fields {
			if j < len(row) {
				*field = fmt.Sprint(row[j])
			}
		}
		subs = append(subs, sub)
	}

	sort.Slice(subs, func(i, j int) bool { return subs[i].Timestamp > subs[j].Timestamp })
	if len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

// UpdateStatus rewrites the status cell of the given row.
func (s *Sink) UpdateStatus(ctx context.Context, id int64, status string) error {
	if id < 2 {
		return storage.ErrNotFound
	}

	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID,
		fmt.Sprintf("%s!G%d", s.worksheet, id),
		&sheetsapi.ValueRange{Values: [][]any{{status}}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	return nil
}
