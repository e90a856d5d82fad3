package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"relnotes-faq/internal/corpus"
)

// defaultSeparators is the boundary ladder tried in priority order: paragraph
// breaks, line breaks, sentence-terminal punctuation, whitespace, then hard
// character cuts.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunk is a bounded, overlapping sub-span of a document, the unit of
// retrieval. Metadata is inherited verbatim from the parent document.
type Chunk struct {
	ID         string
	DocumentID string
	Index      int
	Text       string
	Meta       corpus.Metadata
}

// Chunker splits document text into overlapping passages suitable for
// indexing. Sizes are measured in runes so multibyte text (the corpus is
// bilingual) is cut consistently.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewChunker creates a chunker with the given target size and overlap.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// SplitDocument splits a document into ordered chunks. A document whose text
// is empty or whitespace-only yields zero chunks.
func (c *Chunker) SplitDocument(doc corpus.Document) []Chunk {
	texts := c.SplitText(doc.Text)
	if len(texts) == 0 {
		return nil
	}

	meta := doc.Metadata()
	chunks := make([]Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Index:      i,
			Text:       text,
			Meta:       meta,
		})
	}
	return chunks
}

// SplitText splits raw text into overlapping passages of at most chunkSize
// runes, preferring the highest-priority boundary that keeps pieces under the
// target size. Consecutive passages share roughly chunkOverlap runes.
func (c *Chunker) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pieces := c.split(text, c.separators)
	return c.merge(pieces)
}

// split recursively cuts text into pieces smaller than chunkSize, keeping
// separators attached so concatenating the pieces reconstructs the input.
func (c *Chunker) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	rest := separators
	for i, s := range separators {
		if s == "" {
			sep = ""
			rest = nil
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}

	var pieces []string
	for _, piece := range splitKeepSeparator(text, sep) {
		if utf8.RuneCountInString(piece) < c.chunkSize || len(rest) == 0 {
			pieces = append(pieces, piece)
			continue
		}
		pieces = append(pieces, c.split(piece, rest)...)
	}
	return pieces
}

// splitKeepSeparator splits text by sep, keeping the separator at the end of
// each piece. An empty separator splits into individual runes, which the
// merge pass turns into hard character cuts.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		runes := []rune(text)
		pieces := make([]string, len(runes))
		for i, r := range runes {
			pieces[i] = string(r)
		}
		return pieces
	}

	parts := strings.SplitAfter(text, sep)
	pieces := parts[:0]
	for _, part := range parts {
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// merge greedily packs pieces into chunks of at most chunkSize runes. When a
// chunk is emitted the window keeps its trailing pieces, up to chunkOverlap
// runes, so consecutive chunks share boundary context.
func (c *Chunker) merge(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		joined := strings.TrimSpace(strings.Join(window, ""))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		if total+pieceLen > c.chunkSize && total > 0 {
			flush()
			for len(window) > 0 && (total > c.chunkOverlap || total+pieceLen > c.chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}

		window = append(window, piece)
		total += pieceLen
	}

	if len(window) > 0 {
		flush()
	}

	return chunks
}
