package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader converts markdown release-note files into Documents by
// parsing the goldmark AST and extracting plain text.
type MarkdownLoader struct {
	parser goldmark.Markdown
}

// NewMarkdownLoader creates a markdown loader with table support.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// LoadDir reads every .md file under dir (non-recursive) and converts each
// into a Document. The first heading becomes the document heading; the file
// name (without extension) becomes the title when no heading is present.
func (l *MarkdownLoader) LoadDir(dir, baseURL string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		heading, plain := l.Extract(content)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		title := strings.TrimSuffix(entry.Name(), ".md")
		url := baseURL
		if url != "" {
			url = strings.TrimSuffix(baseURL, "/") + "/" + entry.Name()
		}

		docs = append(docs, Document{
			ID:      uuid.New().String(),
			Title:   title,
			Heading: heading,
			URL:     url,
			Text:    plain,
		})
	}
	return docs, nil
}

// Extract parses markdown content and returns the first heading text and the
// plain text of the whole document, with block boundaries collapsed to newlines.
func (l *MarkdownLoader) Extract(content []byte) (heading, plain string) {
	if len(content) == 0 {
		return "", ""
	}

	reader := text.NewReader(content)
	doc := l.parser.Parser().Parse(reader)

	var builder strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if heading == "" {
				heading = nodeText(node, content)
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
		case *ast.Paragraph, *ast.ListItem:
			if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
				builder.WriteString("\n")
			}
		case *ast.Text:
			builder.Write(node.Segment.Value(content))
		case *ast.String:
			builder.Write(node.Value)
		case *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				builder.Write(line.Value(content))
			}
		case *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				builder.Write(line.Value(content))
			}
		}
		return ast.WalkContinue, nil
	})

	return heading, strings.TrimSpace(builder.String())
}

// nodeText extracts the concatenated text content of a node's children.
func nodeText(n ast.Node, content []byte) string {
	var builder strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			builder.Write(v.Segment.Value(content))
		case *ast.String:
			builder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}
