package primer

import (
	"regexp"
	"strings"

	"github.com/steveyegge/mind/internal/types"
)

// detectionPatternMatches reports whether any context-type detection
// pattern matches ctx, or any trigger phrase is a literal substring of it.
// A malformed regex is treated as non-matching rather than propagated,
// per spec.md §7's "regex compilation failures ... skip, continue" policy
// and §9's "one bad pattern must never break an entire primer generation".
func detectionPatternMatches(patterns []types.DetectionPattern, triggerPhrases []string, ctx string) bool {
	for _, p := range patterns {
		if p.Type != types.DetectionContext {
			continue
		}
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			continue
		}
		if re.MatchString(ctx) {
			return true
		}
	}
	for _, phrase := range triggerPhrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(ctx, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
