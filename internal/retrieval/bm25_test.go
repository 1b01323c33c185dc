package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordSearch_RanksExactTermMatchAboveUnrelated(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("sqlite", "we use SQLite for local-first storage", nil)
	idx.Add("postgres", "we use PostgreSQL for scale", nil)
	idx.Add("unrelated", "the weather today is cold and windy", nil)

	results := idx.KeywordSearch("sqlite storage", -1)
	require.NotEmpty(t, results)
	assert.Equal(t, "sqlite", results[0].ID)
	for _, r := range results {
		assert.NotEqual(t, "unrelated", r.ID)
	}
}

func TestKeywordSearch_EmptyQueryTokensReturnsNil(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("a", "some text", nil)
	assert.Nil(t, idx.KeywordSearch("  ", -1))
	assert.Nil(t, idx.KeywordSearch("a", -1)) // single-char token below min length
}

func TestKeywordSearch_EmptyIndexReturnsNil(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	assert.Nil(t, idx.KeywordSearch("sqlite", -1))
}

func TestKeywordSearch_ExcludesZeroScoreDocuments(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("match", "sqlite local storage", nil)
	idx.Add("nomatch", "completely different topic entirely", nil)

	results := idx.KeywordSearch("sqlite", -1)
	for _, r := range results {
		assert.NotEqual(t, "nomatch", r.ID)
	}
}

func TestKeywordSearch_RespectsTopK(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("a", "sqlite sqlite sqlite", nil)
	idx.Add("b", "sqlite database", nil)
	idx.Add("c", "sqlite storage engine", nil)

	results := idx.KeywordSearch("sqlite", 2)
	assert.Len(t, results, 2)
}

func TestKeywordSearch_TieBreaksByInsertionOrder(t *testing.T) {
	idx := NewIndex(nil, DefaultConfig())
	idx.Add("first", "sqlite", nil)
	idx.Add("second", "sqlite", nil)

	results := idx.KeywordSearch("sqlite", -1)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
}
