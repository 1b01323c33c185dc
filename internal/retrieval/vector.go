package retrieval

import (
	"context"

	"github.com/steveyegge/mind/internal/types"
)

// VectorSearch embeds query and ranks every document by cosine similarity,
// descending, returning at most topK results. An embedding failure is
// returned so Search can fall through to keyword-only for that query.
func (idx *Index) VectorSearch(ctx context.Context, query string, topK int) ([]types.SearchResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.vectorSearchLocked(ctx, query, topK)
}

func (idx *Index) vectorSearchLocked(ctx context.Context, query string, topK int) ([]types.SearchResult, error) {
	qVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0, len(idx.docs))
	for _, doc := range idx.docs {
		score := idx.embedder.Similarity(qVec, doc.vector)
		results = append(results, toSearchResult(doc, score))
	}
	idx.sortResults(results)
	if topK >= 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}
