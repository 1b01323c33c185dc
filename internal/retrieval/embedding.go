package retrieval

import (
	"context"
	"crypto/sha512"
	"math"
)

// Embedder is the engine's embedding capability: exactly three operations,
// per spec.md §4.2 and §9.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Similarity(u, v []float64) float64
}

// Dimension is the fixed vector length D every embedder in this package
// produces.
const Dimension = 384

// HashEmbedder is the mandatory deterministic fallback: a cryptographic
// hash of the UTF-8 text, reinterpreted as a unit vector. It never fails
// and is reproducible across processes, so it is what lets the system run
// without a GPU or network model.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder returns a HashEmbedder producing vectors of length dim.
// dim <= 0 defaults to Dimension.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = Dimension
	}
	return &HashEmbedder{dim: dim}
}

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	sum := sha512.Sum384([]byte(text))
	vec := make([]float64, h.dim)
	for i := 0; i < h.dim; i++ {
		b := sum[i%len(sum)]
		vec[i] = float64(b)/127.5 - 1.0
	}
	return normalize(vec), nil
}

func (h *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (h *HashEmbedder) Similarity(u, v []float64) float64 {
	return cosineSimilarity(u, v)
}

func normalize(v []float64) []float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func cosineSimilarity(u, v []float64) float64 {
	n := len(u)
	if len(v) < n {
		n = len(v)
	}
	var dot, nu, nv float64
	for i := 0; i < n; i++ {
		dot += u[i] * v[i]
		nu += u[i] * u[i]
		nv += v[i] * v[i]
	}
	if nu == 0 || nv == 0 {
		return 0
	}
	return dot / (math.Sqrt(nu) * math.Sqrt(nv))
}

// FallbackEmbedder wraps a preferred Embedder and transparently degrades to
// a HashEmbedder whenever the preferred provider errors, per spec.md §4.2's
// "model unavailable → hash fallback" rule. Preferred may be nil, in which
// case it behaves exactly like the hash embedder.
type FallbackEmbedder struct {
	Preferred Embedder
	fallback  *HashEmbedder
}

// NewFallbackEmbedder returns an Embedder that prefers preferred and
// degrades to a dim-sized HashEmbedder on any error.
func NewFallbackEmbedder(preferred Embedder, dim int) *FallbackEmbedder {
	return &FallbackEmbedder{Preferred: preferred, fallback: NewHashEmbedder(dim)}
}

func (f *FallbackEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.Preferred != nil {
		if v, err := f.Preferred.Embed(ctx, text); err == nil {
			return v, nil
		}
	}
	return f.fallback.Embed(ctx, text)
}

func (f *FallbackEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if f.Preferred != nil {
		if v, err := f.Preferred.EmbedBatch(ctx, texts); err == nil {
			return v, nil
		}
	}
	return f.fallback.EmbedBatch(ctx, texts)
}

func (f *FallbackEmbedder) Similarity(u, v []float64) float64 {
	return cosineSimilarity(u, v)
}
