package storage

import "time"

// DocumentRecord is an ingested release-note document in the database.
type DocumentRecord struct {
	ID        string // UUID
	Title     string
	Heading   string
	URL       string
	Source    string
	Text      string
	CreatedAt time.Time
}

// ChunkRecord is a chunk of a document, indexed for vector search.
// The ID doubles as the Qdrant point ID.
type ChunkRecord struct {
	ID         string // UUID (same as Qdrant point ID)
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Index within document (starts at 0)
	Text       string
}

// ContactSubmission is one escalated contact request. Rows are append-only;
// only the status column is updated afterwards.
type ContactSubmission struct {
	ID               int64
	Timestamp        string // UTC ISO-8601
	Name             string
	Email            string
	Organization     string
	OriginalQuestion string
	Reason           string
	Status           string
}

// IndexMeta records which vector collection is currently active. There is at
// most one row; the rebuild swap updates it atomically.
type IndexMeta struct {
	Collection string
	VectorSize int
	ChunkCount int
	BuiltAt    time.Time
}
