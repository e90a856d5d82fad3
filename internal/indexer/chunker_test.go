package indexer_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"relnotes-faq/internal/corpus"
	"relnotes-faq/internal/indexer"
)

func TestSplitText_Empty(t *testing.T) {
	c := indexer.NewChunker(100, 20)

	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "   \n\t  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.SplitText(tt.text); len(got) != 0 {
				t.Errorf("SplitText(%q) = %d chunks, want 0", tt.text, len(got))
			}
		})
	}
}

func TestSplitText_SingleChunk(t *testing.T) {
	c := indexer.NewChunker(100, 20)

	text := "A short release note."
	chunks := c.SplitText(text)

	if len(chunks) != 1 {
		t.Fatalf("SplitText() = %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk = %q, want %q", chunks[0], text)
	}
}

func TestSplitText_RespectsChunkSize(t *testing.T) {
	const chunkSize = 50
	c := indexer.NewChunker(chunkSize, 10)

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("word word word word word.\n\n")
	}

	chunks := c.SplitText(b.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > chunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, chunkSize)
		}
	}
}

func TestSplitText_PrefersParagraphBoundaries(t *testing.T) {
	c := indexer.NewChunker(40, 0)

	text := "First paragraph here.\n\nSecond paragraph here."
	chunks := c.SplitText(text)

	if len(chunks) != 2 {
		t.Fatalf("SplitText() = %d chunks, want 2: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "First paragraph") {
		t.Errorf("chunk 0 = %q, want first paragraph", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "Second paragraph") {
		t.Errorf("chunk 1 = %q, want second paragraph", chunks[1])
	}
}

func TestSplitText_OverlapSharedBetweenChunks(t *testing.T) {
	c := indexer.NewChunker(30, 15)

	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	chunks := c.SplitText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		carried := prevWords[len(prevWords)-1]
		if !strings.Contains(chunks[i], carried) {
			t.Errorf("chunk %d %q does not share overlap with previous chunk %q", i, chunks[i], chunks[i-1])
		}
	}
}

func TestSplitText_HardCutsWithoutSeparators(t *testing.T) {
	const chunkSize = 10
	c := indexer.NewChunker(chunkSize, 0)

	text := strings.Repeat("x", 35)
	chunks := c.SplitText(text)

	if len(chunks) < 3 {
		t.Fatalf("expected hard character cuts, got %d chunks", len(chunks))
	}
	var total int
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > chunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, chunkSize)
		}
		total += utf8.RuneCountInString(chunk)
	}
	if total != 35 {
		t.Errorf("chunks cover %d runes, want 35", total)
	}
}

func TestSplitText_ChunksReconstructSource(t *testing.T) {
	const chunkSize = 60
	c := indexer.NewChunker(chunkSize, 15)

	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "Sentence number %d of the release note body. ", i)
	}
	text := strings.TrimSpace(b.String())

	chunks := c.SplitText(text)
	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	// Every chunk is a contiguous span of the source, the spans appear in
	// order, and together they cover all of the source except whitespace
	// trimmed at chunk boundaries.
	covered := make([]bool, len(text))
	searchFrom := 0
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > chunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, chunkSize)
		}

		start := strings.Index(text[searchFrom:], chunk)
		if start < 0 {
			t.Fatalf("chunk %d %q is not a span of the source at or after offset %d", i, chunk, searchFrom)
		}
		start += searchFrom
		for j := start; j < start+len(chunk); j++ {
			covered[j] = true
		}
		searchFrom = start + 1
	}

	for i, r := range text {
		if !unicode.IsSpace(r) && !covered[i] {
			t.Fatalf("source rune at offset %d (%q) not covered by any chunk", i, r)
		}
	}
}

func TestSplitText_MultibyteRunes(t *testing.T) {
	const chunkSize = 20
	c := indexer.NewChunker(chunkSize, 5)

	text := strings.Repeat("qué cómo cuándo ", 10)
	chunks := c.SplitText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > chunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, chunkSize)
		}
	}
}

func TestSplitDocument(t *testing.T) {
	c := indexer.NewChunker(40, 10)

	doc := corpus.Document{
		ID:      "doc-1",
		Title:   "Release 12.3",
		Heading: "New Features",
		URL:     "https://example.com/12.3",
		Text:    "First paragraph of the note.\n\nSecond paragraph of the note.",
	}

	chunks := c.SplitDocument(doc)
	if len(chunks) < 2 {
		t.Fatalf("SplitDocument() = %d chunks, want >= 2", len(chunks))
	}

	seen := make(map[string]bool)
	for i, chunk := range chunks {
		if chunk.DocumentID != doc.ID {
			t.Errorf("chunk %d DocumentID = %q, want %q", i, chunk.DocumentID, doc.ID)
		}
		if chunk.Index != i {
			t.Errorf("chunk %d Index = %d, want %d", i, chunk.Index, i)
		}
		if chunk.ID == "" || seen[chunk.ID] {
			t.Errorf("chunk %d has missing or duplicate ID %q", i, chunk.ID)
		}
		seen[chunk.ID] = true

		want := corpus.Metadata{
			Title:   doc.Title,
			Heading: doc.Heading,
			URL:     doc.URL,
			Source:  corpus.SourceTag,
		}
		if chunk.Meta != want {
			t.Errorf("chunk %d Meta = %+v, want %+v", i, chunk.Meta, want)
		}
	}
}

func TestSplitDocument_EmptyText(t *testing.T) {
	c := indexer.NewChunker(100, 20)

	doc := corpus.Document{ID: "doc-1", Title: "Empty", Text: "  \n "}
	if got := c.SplitDocument(doc); len(got) != 0 {
		t.Errorf("SplitDocument() = %d chunks, want 0", len(got))
	}
}
