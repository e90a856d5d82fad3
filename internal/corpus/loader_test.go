package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"relnotes-faq/internal/corpus"
)

func TestDocumentsFromBlocks(t *testing.T) {
	blocks := []corpus.Block{
		{Title: "R1", Heading: "New Feature X", Content: "Feature X does Y.", URL: "http://x"},
		{Title: "", Heading: "", Content: "", URL: "http://empty"},
		{Title: "R2", Heading: "", Content: "Content only.", URL: "http://y"},
	}

	docs := corpus.DocumentsFromBlocks(blocks)
	if len(docs) != 2 {
		t.Fatalf("DocumentsFromBlocks() = %d documents, want 2 (blank block dropped)", len(docs))
	}

	if docs[0].Text != "R1\nNew Feature X\nFeature X does Y." {
		t.Errorf("docs[0].Text = %q", docs[0].Text)
	}
	if docs[0].Title != "R1" || docs[0].Heading != "New Feature X" || docs[0].URL != "http://x" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[0].ID == "" || docs[1].ID == "" || docs[0].ID == docs[1].ID {
		t.Error("documents missing unique IDs")
	}

	// Blank parts are skipped when joining.
	if docs[1].Text != "R2\nContent only." {
		t.Errorf("docs[1].Text = %q", docs[1].Text)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	raw := `[
		{"title": "R1", "heading": "New Feature X", "content": "Feature X does Y.", "url": "http://x"},
		{"title": "R1", "heading": "Fixes", "content": "Fixed the thing.", "url": "http://x#fixes"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}

	docs, err := corpus.LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("LoadJSON() = %d documents, want 2", len(docs))
	}
	if docs[1].Heading != "Fixes" || docs[1].URL != "http://x#fixes" {
		t.Errorf("docs[1] = %+v", docs[1])
	}
}

func TestLoadJSON_Missing(t *testing.T) {
	if _, err := corpus.LoadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("LoadJSON() error = nil, want failure for missing file")
	}
}

func TestLoadJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}
	if _, err := corpus.LoadJSON(path); err == nil {
		t.Fatal("LoadJSON() error = nil, want parse failure")
	}
}

func TestMetadata(t *testing.T) {
	doc := corpus.Document{ID: "d1", Title: "R1", Heading: "H", URL: "http://x", Text: "t"}
	meta := doc.Metadata()

	want := corpus.Metadata{Title: "R1", Heading: "H", URL: "http://x", Source: corpus.SourceTag}
	if meta != want {
		t.Errorf("Metadata() = %+v, want %+v", meta, want)
	}
}
