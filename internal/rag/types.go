package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks relnotes-faq/internal/rag Engine,Retriever

import "context"

// Citation identifies the source of evidence used in an answer.
type Citation struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Heading string `json:"heading"`
}

// Answer is the unit returned per question. It is never persisted.
type Answer struct {
	Text              string     `json:"answer"`
	Citations         []Citation `json:"citations"`
	HasSufficientInfo bool       `json:"has_sufficient_info"`
	NeedsContact      bool       `json:"needs_contact"`
}

// RetrievedChunk is a chunk that survived diversified retrieval, with the
// metadata needed for context assembly and citation extraction.
type RetrievedChunk struct {
	ID      string
	Text    string
	Title   string
	Heading string
	URL     string
	Score   float64
}

// Retriever returns the chunks that survive diversified retrieval for a
// question. An empty result is a valid, expected outcome, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]RetrievedChunk, error)
}

// Engine answers questions against the indexed release notes.
type Engine interface {
	// Query answers a question. Failures in retrieval or generation degrade
	// to a synthetic insufficient answer; they are never surfaced as errors.
	Query(ctx context.Context, question string) Answer
}
