package rag

// extractCitations emits one citation per surviving chunk whose metadata
// carries a URL plus at least a title or a heading; chunks failing that check
// are silently skipped. With dedup enabled, only the first chunk per URL
// contributes a citation.
func extractCitations(chunks []RetrievedChunk, dedup bool) []Citation {
	citations := []Citation{}
	seen := make(map[string]bool, len(chunks))

	for _, chunk := range chunks {
		if chunk.URL == "" || (chunk.Title == "" && chunk.Heading == "") {
			continue
		}
		if dedup {
			if seen[chunk.URL] {
				continue
			}
			seen[chunk.URL] = true
		}
		citations = append(citations, Citation{
			URL:     chunk.URL,
			Title:   chunk.Title,
			Heading: chunk.Heading,
		})
	}
	return citations
}
