package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	h := NewHashEmbedder(Dimension)
	v1, err := h.Embed(context.Background(), "use SQLite for local storage")
	require.NoError(t, err)
	v2, err := h.Embed(context.Background(), "use SQLite for local storage")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, Dimension)
}

func TestHashEmbedder_DifferentTextDifferentVector(t *testing.T) {
	h := NewHashEmbedder(Dimension)
	v1, _ := h.Embed(context.Background(), "sqlite")
	v2, _ := h.Embed(context.Background(), "postgres")
	assert.NotEqual(t, v1, v2)
}

func TestHashEmbedder_UnitNormalized(t *testing.T) {
	h := NewHashEmbedder(Dimension)
	v, _ := h.Embed(context.Background(), "anything")
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	assert.InDelta(t, 1.0, sumSq, 0.0001)
}

func TestHashEmbedder_SelfSimilarityIsOne(t *testing.T) {
	h := NewHashEmbedder(Dimension)
	v, _ := h.Embed(context.Background(), "self similarity check")
	assert.InDelta(t, 1.0, h.Similarity(v, v), 0.0001)
}

type erroringEmbedder struct{}

func (erroringEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("model unavailable")
}
func (erroringEmbedder) EmbedBatch(context.Context, []string) ([][]float64, error) {
	return nil, errors.New("model unavailable")
}
func (erroringEmbedder) Similarity(u, v []float64) float64 { return cosineSimilarity(u, v) }

func TestFallbackEmbedder_DegradesOnError(t *testing.T) {
	f := NewFallbackEmbedder(erroringEmbedder{}, Dimension)
	v, err := f.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, Dimension)

	h := NewHashEmbedder(Dimension)
	want, _ := h.Embed(context.Background(), "hello")
	assert.Equal(t, want, v)
}

type fixedEmbedder struct {
	vectors map[string][]float64
}

func (f fixedEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	v, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no fixture for " + text)
	}
	return v, nil
}

func (f fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f fixedEmbedder) Similarity(u, v []float64) float64 { return cosineSimilarity(u, v) }
