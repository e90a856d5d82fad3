package corpus

// SourceTag identifies the corpus every document in this system comes from.
const SourceTag = "relativity_release_notes"

// Document is one logical unit of the source corpus: a titled, URL-addressable
// block of release-note text. Documents are immutable once ingested.
type Document struct {
	ID      string
	Title   string
	Heading string
	URL     string
	Text    string
}

// Metadata is the per-chunk metadata inherited verbatim from the parent document.
type Metadata struct {
	Title   string
	Heading string
	URL     string
	Source  string
}

// Metadata returns the document metadata that chunks inherit.
func (d Document) Metadata() Metadata {
	return Metadata{
		Title:   d.Title,
		Heading: d.Heading,
		URL:     d.URL,
		Source:  SourceTag,
	}
}
