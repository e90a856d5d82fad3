package corpus_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relnotes-faq/internal/corpus"
)

func TestMarkdownLoader_Extract(t *testing.T) {
	loader := corpus.NewMarkdownLoader()

	content := []byte("# Release 12.3\n\nFeature X does Y.\n\n## Fixes\n\n- Fixed the thing\n- Fixed another thing\n")
	heading, plain := loader.Extract(content)

	if heading != "Release 12.3" {
		t.Errorf("heading = %q, want %q", heading, "Release 12.3")
	}
	for _, want := range []string{"Release 12.3", "Feature X does Y.", "Fixed the thing", "Fixed another thing"} {
		if !strings.Contains(plain, want) {
			t.Errorf("plain text missing %q:\n%s", want, plain)
		}
	}
}

func TestMarkdownLoader_ExtractCodeBlocks(t *testing.T) {
	loader := corpus.NewMarkdownLoader()

	content := []byte("# Upgrade Steps\n\nRun the migration:\n\n```\nrelctl migrate --to 12.3\n```\n\nThen restart:\n\n    systemctl restart relativity\n")
	_, plain := loader.Extract(content)

	if !strings.Contains(plain, "relctl migrate --to 12.3") {
		t.Errorf("plain text missing fenced code block content:\n%s", plain)
	}
	if !strings.Contains(plain, "systemctl restart relativity") {
		t.Errorf("plain text missing indented code block content:\n%s", plain)
	}
}

func TestMarkdownLoader_ExtractEmpty(t *testing.T) {
	loader := corpus.NewMarkdownLoader()

	heading, plain := loader.Extract(nil)
	if heading != "" || plain != "" {
		t.Errorf("Extract(nil) = (%q, %q), want empty", heading, plain)
	}
}

func TestMarkdownLoader_LoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"release-12.3.md": "# Release 12.3\n\nFeature X does Y.\n",
		"no-heading.md":   "Just some text without a heading.\n",
		"empty.md":        "",
		"notes.txt":       "not markdown, skipped\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	loader := corpus.NewMarkdownLoader()
	docs, err := loader.LoadDir(dir, "https://docs.example.com/releases/")
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("LoadDir() = %d documents, want 2", len(docs))
	}

	byTitle := make(map[string]corpus.Document, len(docs))
	for _, doc := range docs {
		byTitle[doc.Title] = doc
	}

	withHeading, ok := byTitle["release-12.3"]
	if !ok {
		t.Fatal("missing document for release-12.3.md")
	}
	if withHeading.Heading != "Release 12.3" {
		t.Errorf("Heading = %q", withHeading.Heading)
	}
	if withHeading.URL != "https://docs.example.com/releases/release-12.3.md" {
		t.Errorf("URL = %q", withHeading.URL)
	}
	if withHeading.ID == "" {
		t.Error("document missing ID")
	}

	plain, ok := byTitle["no-heading"]
	if !ok {
		t.Fatal("missing document for no-heading.md")
	}
	if plain.Heading != "" {
		t.Errorf("Heading = %q, want empty", plain.Heading)
	}
}

func TestMarkdownLoader_LoadDirMissing(t *testing.T) {
	loader := corpus.NewMarkdownLoader()
	if _, err := loader.LoadDir(filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Fatal("LoadDir() error = nil, want failure for missing directory")
	}
}
