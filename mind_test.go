package mind_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mind"
)

func TestNewParser_ParsesEntities(t *testing.T) {
	p := mind.NewParser()
	result := p.Parse("**Decided:** use SQLite because local-first\n", "MEMORY.md")
	require.Len(t, result.Entities, 1)
	assert.Equal(t, mind.KindDecision, result.Entities[0].Kind)
}

func TestNewIndex_AddAndSearch(t *testing.T) {
	idx := mind.NewIndex()
	idx.Add("doc_1", "postgres rollback plan", nil)

	results := idx.Search(context.Background(), "postgres", mind.ModeKeywordOnly, 5)
	require.Len(t, results, 1)
	assert.Equal(t, "doc_1", results[0].ID)
}

func TestNewMemoryStorage_GetProjectNotFound(t *testing.T) {
	store := mind.NewMemoryStorage()
	_, err := store.GetProject(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestGeneratePrimer_EmptyInputsProduceEmptyResult(t *testing.T) {
	result := mind.GeneratePrimer(
		mind.Project{},
		nil,
		nil,
		nil,
		nil,
		mind.AccessStats{},
		time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC),
	)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Decisions)
	assert.Empty(t, result.Edges)
	assert.NotEmpty(t, result.Briefing)
}
