package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/steveyegge/mind/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleReranker_RanksHigherOverlapFirst(t *testing.T) {
	r := SimpleReranker{}
	results := []types.SearchResult{
		{ID: "low", Text: "the weather is nice today and nothing else"},
		{ID: "high", Text: "sqlite storage local"},
	}

	out := r.Rerank(context.Background(), "sqlite storage", results, -1)
	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].ID)
}

func TestSimpleReranker_DoesNotMutateInput(t *testing.T) {
	r := SimpleReranker{}
	results := []types.SearchResult{{ID: "a", Text: "sqlite", Score: 42}}
	_ = r.Rerank(context.Background(), "sqlite", results, -1)
	assert.Equal(t, 42.0, results[0].Score)
}

func TestSimpleReranker_RespectsTopK(t *testing.T) {
	r := SimpleReranker{}
	results := []types.SearchResult{
		{ID: "a", Text: "sqlite"},
		{ID: "b", Text: "sqlite sqlite"},
		{ID: "c", Text: "sqlite sqlite sqlite"},
	}
	out := r.Rerank(context.Background(), "sqlite", results, 1)
	assert.Len(t, out, 1)
}

type stubScorer struct {
	scores []float64
	err    error
}

func (s stubScorer) ScorePairs(context.Context, string, []string) ([]float64, error) {
	return s.scores, s.err
}

func TestCrossEncoderReranker_UsesScorerScores(t *testing.T) {
	results := []types.SearchResult{
		{ID: "a", Text: "one", Score: 0.1},
		{ID: "b", Text: "two", Score: 0.9},
	}
	r := NewCrossEncoderReranker(stubScorer{scores: []float64{0.9, 0.1}})

	out := r.Rerank(context.Background(), "query", results, -1)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, 0.9, out[0].Score)
}

func TestCrossEncoderReranker_NilScorer_DegradesToSimpleReranker(t *testing.T) {
	results := []types.SearchResult{
		{ID: "low", Text: "unrelated content entirely"},
		{ID: "high", Text: "sqlite storage local"},
	}
	r := NewCrossEncoderReranker(nil)

	out := r.Rerank(context.Background(), "sqlite storage", results, -1)
	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].ID)
}

func TestCrossEncoderReranker_ScorerError_DegradesToSimpleReranker(t *testing.T) {
	results := []types.SearchResult{
		{ID: "low", Text: "unrelated content entirely"},
		{ID: "high", Text: "sqlite storage local"},
	}
	r := NewCrossEncoderReranker(stubScorer{err: errors.New("model down")})

	out := r.Rerank(context.Background(), "sqlite storage", results, -1)
	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].ID)
}

func TestNewAnthropicPairScorer_NoAPIKey_ReturnsNil(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	scorer := NewAnthropicPairScorer("", "")
	assert.Nil(t, scorer)
}
