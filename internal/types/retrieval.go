package types

// SearchMode selects which ranking strategy index.Search uses.
type SearchMode string

const (
	ModeVectorOnly  SearchMode = "vector_only"
	ModeKeywordOnly SearchMode = "keyword_only"
	ModeHybrid      SearchMode = "hybrid"
)

// Document describes the retrieval engine's indexed unit. The index keeps
// its own internal record rather than this type: index.Add takes
// id/text/metadata and index.Search returns SearchResult copies.
type Document struct {
	ID       string
	Text     string
	Vector   []float64
	Tokens   []string
	Metadata map[string]string
}

// SearchResult is a ranked hit returned to callers. It carries copies, never
// aliases into the engine's internal tables.
type SearchResult struct {
	ID       string
	Text     string
	Score    float64
	Metadata map[string]string
}
