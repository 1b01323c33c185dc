package retrieval

import (
	"math"

	"github.com/steveyegge/mind/internal/types"
)

// KeywordSearch ranks documents by Okapi BM25 against query, returning only
// documents with score > 0, top-scoring first. BM25 is pure arithmetic over
// already-computed state, so this never fails; it exists as its own
// function to keep the vector and keyword pipelines independent per
// spec.md §9.
func (idx *Index) KeywordSearch(query string, topK int) []types.SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.keywordSearchLocked(query, topK)
}

func (idx *Index) keywordSearchLocked(query string, topK int) []types.SearchResult {
	queryTokens := uniqueTokens(Tokenize(query))
	if len(queryTokens) == 0 || len(idx.docs) == 0 {
		return nil
	}

	n := float64(len(idx.docs))
	avgdl := idx.averageDocumentLengthLocked()
	k1, b := idx.cfg.BM25K1, idx.cfg.BM25B

	results := make([]types.SearchResult, 0, len(idx.docs))
	for _, doc := range idx.docs {
		var score float64
		dl := float64(len(doc.tokens))
		for t := range queryTokens {
			tf, ok := doc.tf[t]
			if !ok {
				continue
			}
			df := float64(idx.documentFreq[t])
			idf := math.Log((n-df+0.5)/(df+0.5) + 1)
			numerator := float64(tf) * (k1 + 1)
			denominator := float64(tf) + k1*(1-b+b*dl/avgdl)
			score += idf * (numerator / denominator)
		}
		if score > 0 {
			results = append(results, toSearchResult(doc, score))
		}
	}

	idx.sortResults(results)
	if topK >= 0 && topK < len(results) {
		results = results[:topK]
	}
	return results
}
