package retrieval

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
	"github.com/steveyegge/mind/internal/types"
)

// PairScorer scores a query against a batch of candidate texts, returning
// one relevance score per text, in order.
type PairScorer interface {
	ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error)
}

// CrossEncoderReranker calls an external sequence-pair scorer on (query,
// text) pairs in batches; emitted scores replace the fused score. If the
// scorer is unavailable at construction time it degrades to
// SimpleReranker, per spec.md §4.2.
type CrossEncoderReranker struct {
	scorer   PairScorer
	fallback SimpleReranker
}

// NewCrossEncoderReranker wraps scorer. A nil scorer makes every Rerank
// call degrade straight to the keyword-overlap fallback.
func NewCrossEncoderReranker(scorer PairScorer) *CrossEncoderReranker {
	return &CrossEncoderReranker{scorer: scorer}
}

func (c *CrossEncoderReranker) Rerank(ctx context.Context, query string, results []types.SearchResult, topK int) []types.SearchResult {
	if c.scorer == nil || len(results) == 0 {
		return c.fallback.Rerank(ctx, query, results, topK)
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}

	scores, err := c.scorer.ScorePairs(ctx, query, texts)
	if err != nil || len(scores) != len(results) {
		return c.fallback.Rerank(ctx, query, results, topK)
	}

	out := make([]types.SearchResult, len(results))
	copy(out, results)
	for i := range out {
		out[i].Score = scores[i]
	}
	sortByScoreDesc(out)
	if topK >= 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}

func sortByScoreDesc(results []types.SearchResult) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Score > results[j-1].Score; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

// AnthropicPairScorer implements PairScorer by asking a Claude model to
// emit a single relevance score per candidate, with exponential-backoff
// retry around each network call. Grounded on internal/compact's Haiku
// client, minus its audit/telemetry plumbing, which this module has no
// home for.
type AnthropicPairScorer struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicPairScorer returns nil if no API key is available (explicit
// apiKey or ANTHROPIC_API_KEY), so callers can construct a
// CrossEncoderReranker that degrades cleanly when no key is configured.
func NewAnthropicPairScorer(apiKey, model string) *AnthropicPairScorer {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		apiKey = envKey
	}
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "claude-haiku-4-5"
	}
	return &AnthropicPairScorer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (a *AnthropicPairScorer) ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		score, err := a.scoreOne(ctx, query, text)
		if err != nil {
			return nil, fmt.Errorf("scoring pair %d: %w", i, err)
		}
		scores[i] = score
	}
	return scores, nil
}

func (a *AnthropicPairScorer) scoreOne(ctx context.Context, query, text string) (float64, error) {
	prompt := fmt.Sprintf(
		"Rate how relevant the passage is to the query on a 0.0-1.0 scale. "+
			"Respond with only the number.\nQuery: %s\nPassage: %s",
		query, text,
	)

	var reply string
	op := func() error {
		message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: 8,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return err
		}
		if len(message.Content) == 0 || message.Content[0].Type != "text" {
			return backoff.Permanent(fmt.Errorf("unexpected response format"))
		}
		reply = message.Content[0].Text
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	retryable := backoff.WithMaxRetries(bo, 3)
	if err := backoff.Retry(op, backoff.WithContext(retryable, ctx)); err != nil {
		return 0, err
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing score %q: %w", reply, err)
	}
	return score, nil
}
