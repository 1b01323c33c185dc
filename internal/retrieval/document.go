// Package retrieval implements the hybrid lexical+vector index: BM25
// keyword search, cosine vector search, and Reciprocal Rank Fusion between
// them, plus an optional reranking pass. The document table, the
// document-frequency table, and the running average document length are
// one logical, single-owner object — exposed only through Index's
// exclusive-mutation methods, per spec.md §9.
package retrieval

import (
	"context"
	"sort"
	"sync"

	"github.com/steveyegge/mind/internal/types"
)

// Config tunes the scoring constants from spec.md §4.2.
type Config struct {
	BM25K1          float64
	BM25B           float64
	RRFK            float64
	VectorWeight    float64
	KeywordWeight   float64
	FetchMultiplier int
}

// DefaultConfig returns the constants spec.md §4.2 names.
func DefaultConfig() Config {
	return Config{
		BM25K1:          1.5,
		BM25B:           0.75,
		RRFK:            60,
		VectorWeight:    0.7,
		KeywordWeight:   0.3,
		FetchMultiplier: 3,
	}
}

type indexedDoc struct {
	id       string
	text     string
	vector   []float64
	tokens   []string
	tf       map[string]int
	uniq     map[string]struct{}
	metadata map[string]string
}

// Index is the engine's single-writer, multi-reader in-memory corpus.
type Index struct {
	mu       sync.RWMutex
	cfg      Config
	embedder Embedder

	docs         map[string]*indexedDoc
	order        []string // insertion order, for empty-query fallback and tie-breaks
	documentFreq map[string]int
	totalTokens  int
}

// NewIndex returns an empty index using embedder for vector search. Pass
// nil to use a hash-fallback-only embedder.
func NewIndex(embedder Embedder, cfg Config) *Index {
	if embedder == nil {
		embedder = NewFallbackEmbedder(nil, Dimension)
	}
	return &Index{
		cfg:          cfg,
		embedder:     embedder,
		docs:         make(map[string]*indexedDoc),
		documentFreq: make(map[string]int),
	}
}

// Add inserts or replaces a document. Non-failing: an embedding error
// silently leaves the document's vector empty, which scores 0 under cosine
// similarity rather than blocking the write.
func (idx *Index) Add(id, text string, metadata map[string]string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if existing, ok := idx.docs[id]; ok {
		idx.subtractFrequencies(existing)
	} else {
		idx.order = append(idx.order, id)
	}

	tokens := Tokenize(text)
	vector, _ := idx.embedder.Embed(context.Background(), text)

	doc := &indexedDoc{
		id:       id,
		text:     text,
		vector:   vector,
		tokens:   tokens,
		tf:       termFrequencies(tokens),
		uniq:     uniqueTokens(tokens),
		metadata: metadata,
	}
	idx.docs[id] = doc
	idx.addFrequencies(doc)
}

// Remove deletes a document, if present. Non-failing on a missing id.
func (idx *Index) Remove(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	doc, ok := idx.docs[id]
	if !ok {
		return
	}
	idx.subtractFrequencies(doc)
	delete(idx.docs, id)
	for i, existing := range idx.order {
		if existing == id {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Clear empties the index.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docs = make(map[string]*indexedDoc)
	idx.order = nil
	idx.documentFreq = make(map[string]int)
	idx.totalTokens = 0
}

// Contains reports whether id is currently indexed.
func (idx *Index) Contains(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.docs[id]
	return ok
}

// Size returns the current document count.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// DocumentFrequency returns the number of documents currently containing
// token t. Exposed for testing the invariant in spec.md §8 property 9.
func (idx *Index) DocumentFrequency(t string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.documentFreq[t]
}

// AverageDocumentLength returns (Σ tokens per doc) / document_count, or 0
// when the index is empty.
func (idx *Index) AverageDocumentLength() float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.averageDocumentLengthLocked()
}

func (idx *Index) averageDocumentLengthLocked() float64 {
	if len(idx.docs) == 0 {
		return 0
	}
	return float64(idx.totalTokens) / float64(len(idx.docs))
}

func (idx *Index) addFrequencies(doc *indexedDoc) {
	for t := range doc.uniq {
		idx.documentFreq[t]++
	}
	idx.totalTokens += len(doc.tokens)
}

func (idx *Index) subtractFrequencies(doc *indexedDoc) {
	for t := range doc.uniq {
		idx.documentFreq[t]--
		if idx.documentFreq[t] <= 0 {
			delete(idx.documentFreq, t)
		}
	}
	idx.totalTokens -= len(doc.tokens)
}

func toSearchResult(doc *indexedDoc, score float64) types.SearchResult {
	meta := make(map[string]string, len(doc.metadata))
	for k, v := range doc.metadata {
		meta[k] = v
	}
	return types.SearchResult{ID: doc.id, Text: doc.text, Score: score, Metadata: meta}
}

// isWhitespace reports whether s contains no non-whitespace characters.
func isWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// sortResults sorts by score descending, breaking ties by the documents'
// insertion order (earlier id in order wins), per spec.md §5.
func (idx *Index) sortResults(results []types.SearchResult) {
	position := make(map[string]int, len(idx.order))
	for i, id := range idx.order {
		position[id] = i
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return position[results[i].ID] < position[results[j].ID]
	})
}
