package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/steveyegge/mind/internal/mindconfig"
	"github.com/steveyegge/mind/internal/parser"
	"github.com/steveyegge/mind/internal/retrieval"
	"github.com/steveyegge/mind/internal/types"
)

var (
	searchMode string
	searchTopK int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Parse MEMORY.md, index its entities, and run a hybrid search",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		os.Exit(runSearch(projectDir, args[0], searchMode, searchTopK, jsonOutput))
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchMode, "mode", "hybrid", "Search mode: hybrid, keyword_only, vector_only")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 10, "Maximum results to return")
}

func buildIndex(dir string) (*retrieval.Index, error) {
	memoryPath := filepath.Join(dir, "MEMORY.md")
	text, err := os.ReadFile(memoryPath) // #nosec G304 - path built from caller-supplied project dir
	if err != nil {
		return nil, fmt.Errorf("reading MEMORY.md: %w", err)
	}

	v := mindconfig.NewViper(dir)
	rc := mindconfig.RetrievalConfigFromViper(v)
	cfg := retrieval.Config{
		BM25K1:          rc.BM25K1,
		BM25B:           rc.BM25B,
		RRFK:            rc.RRFK,
		VectorWeight:    rc.VectorWeight,
		KeywordWeight:   rc.KeywordWeight,
		FetchMultiplier: rc.FetchMultiplier,
	}

	embedder := retrieval.NewFallbackEmbedder(nil, rc.EmbeddingDim)
	index := retrieval.NewIndex(embedder, cfg)

	result := parser.New().Parse(string(text), memoryPath)
	for i, e := range result.Entities {
		index.Add(
			memoryPath+"#"+strconv.Itoa(i),
			e.Content,
			map[string]string{"kind": string(e.Kind), "title": e.Title},
		)
	}
	return index, nil
}

func runSearch(dir, query, mode string, topK int, asJSON bool) int {
	index, err := buildIndex(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	results := index.Search(context.Background(), query, types.SearchMode(mode), topK)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return 0
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return 0
	}
	for _, r := range results {
		fmt.Printf("%.4f  %s  %s\n", r.Score, r.Metadata["kind"], r.Text)
	}
	return 0
}
