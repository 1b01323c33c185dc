package retrieval

import (
	"context"
	"sort"

	"github.com/steveyegge/mind/internal/types"
)

// Reranker refines a ranked result list given the original query. It never
// mutates its input; it returns new SearchResult values.
type Reranker interface {
	Rerank(ctx context.Context, query string, results []types.SearchResult, topK int) []types.SearchResult
}

// SimpleReranker scores keyword overlap between the query and each
// document's tokens, with no external dependency. It is the degrade target
// for CrossEncoderReranker when the model is unavailable.
type SimpleReranker struct{}

func (SimpleReranker) Rerank(_ context.Context, query string, results []types.SearchResult, topK int) []types.SearchResult {
	queryTokens := Tokenize(query)
	queryUnique := uniqueTokens(queryTokens)

	out := make([]types.SearchResult, len(results))
	copy(out, results)

	for i, r := range out {
		docTokens := Tokenize(r.Text)
		if len(docTokens) == 0 {
			out[i].Score = 0
			continue
		}
		tf := termFrequencies(docTokens)
		docUnique := uniqueTokens(docTokens)

		var overlapTF int
		for t := range queryUnique {
			overlapTF += tf[t]
		}
		var sharedUnique int
		for t := range queryUnique {
			if _, ok := docUnique[t]; ok {
				sharedUnique++
			}
		}
		out[i].Score = float64(overlapTF)/float64(len(docTokens)) + 0.1*float64(sharedUnique)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topK >= 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}
