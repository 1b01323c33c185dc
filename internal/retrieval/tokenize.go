package retrieval

import "strings"

// Tokenize lowercases text and extracts alphanumeric runs of length >= 2,
// the normalization used for both the BM25 token bag and the keyword-overlap
// reranker.
func Tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() >= 2 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
	}

	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			cur.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			cur.WriteRune(r - 'A' + 'a')
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// uniqueTokens returns the distinct tokens in tokens, used to update the
// document-frequency table (each document contributes at most 1 per term).
func uniqueTokens(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
