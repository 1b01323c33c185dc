package retrieval

import (
	"context"
	"testing"

	"github.com/steveyegge/mind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVectorsFor(texts ...string) map[string][]float64 {
	vectors := make(map[string][]float64, len(texts))
	for i, t := range texts {
		v := make([]float64, Dimension)
		v[i%Dimension] = 1.0
		vectors[t] = v
	}
	return vectors
}

func TestSearch_WhitespaceQuery_ReturnsInsertionOrderWithScoreOne(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("a", "first document", nil)
	idx.Add("b", "second document", nil)

	results := idx.Search(context.Background(), "   ", types.ModeHybrid, -1)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, "b", results[1].ID)
}

func TestSearch_KeywordOnlyMode(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("a", "sqlite local storage", nil)
	idx.Add("b", "completely unrelated text", nil)

	results := idx.Search(context.Background(), "sqlite", types.ModeKeywordOnly, -1)
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].ID)
}

func TestSearch_VectorOnlyMode_FallsBackToKeywordOnEmbedError(t *testing.T) {
	idx := NewIndex(erroringEmbedder{}, DefaultConfig())
	idx.Add("a", "sqlite local storage", nil)

	results := idx.Search(context.Background(), "sqlite", types.ModeVectorOnly, -1)
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].ID)
}

func TestSearch_HybridMode_FusesVectorAndKeywordResults(t *testing.T) {
	vecs := unitVectorsFor("query", "sqlite local storage", "postgres for scale")
	idx := NewIndex(fixedEmbedder{vectors: vecs}, DefaultConfig())
	idx.Add("sqlite", "sqlite local storage", nil)
	idx.Add("postgres", "postgres for scale", nil)

	results := idx.Search(context.Background(), "query", types.ModeHybrid, -1)
	require.Len(t, results, 2)
	// neither vector (both orthogonal to query) nor keyword (no term overlap)
	// favors one over the other, but both must appear via RRF union.
	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "sqlite")
	assert.Contains(t, ids, "postgres")
}

func TestSearch_HybridMode_DocumentInBothListsOutranksSingleList(t *testing.T) {
	vecs := unitVectorsFor("query")
	// "match" has the query's vector and its token, so it tops both lists;
	// "keywordonly" lacks the query token and appears in the vector list only.
	vecs["query match"] = vecs["query"]
	vecs["keywordonly"] = []float64{0, 1, 0}
	idx := NewIndex(fixedEmbedder{vectors: vecs}, DefaultConfig())
	idx.Add("match", "query match", nil)
	idx.Add("keywordonly", "keywordonly", nil)

	results := idx.Search(context.Background(), "query", types.ModeHybrid, -1)
	require.NotEmpty(t, results)
	assert.Equal(t, "match", results[0].ID)
}

func TestFuseRRF_DocumentOnlyInOneList_StillIncluded(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("a", "a", nil)
	idx.Add("b", "b", nil)

	vectorOnly := []types.SearchResult{{ID: "a", Score: 0.9}}
	keywordOnly := []types.SearchResult{{ID: "b", Score: 5.0}}

	fused := idx.fuseRRF(vectorOnly, keywordOnly)
	ids := map[string]bool{}
	for _, r := range fused {
		ids[r.ID] = true
	}
	assert.True(t, ids["a"])
	assert.True(t, ids["b"])
}
