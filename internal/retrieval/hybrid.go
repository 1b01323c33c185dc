package retrieval

import (
	"context"

	"github.com/steveyegge/mind/internal/types"
	"golang.org/x/sync/errgroup"
)

// Search answers a ranked query under one of the three modes. A
// whitespace-only query returns the first topK documents in insertion
// order with score 1.0 (spec.md §4.2's "any context" seed), regardless of
// mode.
func (idx *Index) Search(ctx context.Context, query string, mode types.SearchMode, topK int) []types.SearchResult {
	if isWhitespace(query) {
		return idx.emptyQueryFallback(topK)
	}

	switch mode {
	case types.ModeKeywordOnly:
		return idx.KeywordSearch(query, topK)
	case types.ModeVectorOnly:
		results, err := idx.VectorSearch(ctx, query, topK)
		if err != nil {
			return idx.KeywordSearch(query, topK)
		}
		return results
	default:
		return idx.hybridSearch(ctx, query, topK)
	}
}

func (idx *Index) emptyQueryFallback(topK int) []types.SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := len(idx.order)
	if topK >= 0 && topK < n {
		n = topK
	}
	out := make([]types.SearchResult, 0, n)
	for _, id := range idx.order[:n] {
		out = append(out, toSearchResult(idx.docs[id], 1.0))
	}
	return out
}

func (idx *Index) hybridSearch(ctx context.Context, query string, topK int) []types.SearchResult {
	idx.mu.RLock()
	docCount := len(idx.docs)
	idx.mu.RUnlock()

	fetchK := idx.cfg.FetchMultiplier * topK
	if fetchK > docCount {
		fetchK = docCount
	}

	var vectorResults, keywordResults []types.SearchResult
	var vectorErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vectorResults, vectorErr = idx.VectorSearch(gctx, query, fetchK)
		return nil
	})
	g.Go(func() error {
		keywordResults = idx.KeywordSearch(query, fetchK)
		return nil
	})
	_ = g.Wait()

	if vectorErr != nil {
		vectorResults = nil
	}

	fused := idx.fuseRRF(vectorResults, keywordResults)
	if topK >= 0 && topK < len(fused) {
		fused = fused[:topK]
	}
	return fused
}

// fuseRRF combines two ranked lists with weighted Reciprocal Rank Fusion:
// each document at 0-indexed rank r in a list contributes
// weight / (K + r + 1) to its fused score. A document present in only one
// list still contributes from that list alone.
func (idx *Index) fuseRRF(vectorResults, keywordResults []types.SearchResult) []types.SearchResult {
	type accum struct {
		result types.SearchResult
		score  float64
	}
	byID := make(map[string]*accum)
	var insertionOrder []string

	add := func(list []types.SearchResult, weight float64) {
		for r, res := range list {
			contribution := weight / (idx.cfg.RRFK + float64(r) + 1)
			if a, ok := byID[res.ID]; ok {
				a.score += contribution
				continue
			}
			byID[res.ID] = &accum{result: res, score: contribution}
			insertionOrder = append(insertionOrder, res.ID)
		}
	}

	add(vectorResults, idx.cfg.VectorWeight)
	add(keywordResults, idx.cfg.KeywordWeight)

	out := make([]types.SearchResult, 0, len(insertionOrder))
	for _, id := range insertionOrder {
		a := byID[id]
		a.result.Score = a.score
		out = append(out, a.result)
	}

	idx.mu.RLock()
	idx.sortResults(out)
	idx.mu.RUnlock()
	return out
}
