package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Block is one extracted content block as produced by the release-notes
// crawler. The crawler itself is external to this service; its JSON output
// is the ingestion contract.
type Block struct {
	Title   string `json:"title"`
	Heading string `json:"heading"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// LoadJSON reads crawler output and converts each block into a Document.
// The document text joins title, heading and content with newlines, skipping
// blank parts. Blocks whose combined text is blank are dropped.
func LoadJSON(path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}

	var blocks []Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	return DocumentsFromBlocks(blocks), nil
}

// DocumentsFromBlocks converts content blocks into Documents, assigning IDs.
func DocumentsFromBlocks(blocks []Block) []Document {
	docs := make([]Document, 0, len(blocks))
	for _, block := range blocks {
		parts := make([]string, 0, 3)
		for _, part := range []string{block.Title, block.Heading, block.Content} {
			if strings.TrimSpace(part) != "" {
				parts = append(parts, part)
			}
		}
		text := strings.Join(parts, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		docs = append(docs, Document{
			ID:      uuid.New().String(),
			Title:   block.Title,
			Heading: block.Heading,
			URL:     block.URL,
			Text:    text,
		})
	}
	return docs
}
