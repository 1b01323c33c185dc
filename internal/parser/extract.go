package parser

import (
	"regexp"
	"strings"

	"github.com/steveyegge/mind/internal/types"
)

var (
	boldStrip   = regexp.MustCompile(`\*\*`)
	labelPrefix = regexp.MustCompile(`(?i)^(decided|chose|problem|issue|bug|learned|til|gotcha):\s*`)
	memPrefix   = regexp.MustCompile(`(?i)^memory:\s*`)

	reasoningSpan = regexp.MustCompile(`(?i)\b(because|since|due to|so that|reason:)\s*(.+?)(?:\s*[.;,]|\s+\b(?:over|instead of|rather than)\b|$)`)
	altSpan       = regexp.MustCompile(`(?i)\b(over|instead of|rather than)\s+(.+?)(?:\s*[.;,]|\s+\b(?:because|since|due to|so that|reason:)\b|$)`)
)

// extractTitle returns the short span identifying what the entity is about:
// the line with markdown/label noise stripped, cut at the first reasoning
// or alternative marker, truncated to 200 bytes.
func extractTitle(line string, _ types.EntityKind) string {
	s := boldStrip.ReplaceAllString(line, "")
	s = memPrefix.ReplaceAllString(s, "")
	s = labelPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.TrimSpace(s)

	cut := len(s)
	if loc := reasoningSpan.FindStringIndex(s); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	if loc := findAltStart(s); loc >= 0 && loc < cut {
		cut = loc
	}
	s = strings.TrimSpace(s[:cut])
	s = strings.TrimRight(s, ".,;:")
	return truncate(s, 200)
}

func findAltStart(s string) int {
	loc := altSpan.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// extractReasoning returns the first span following
// because|since|due to|so that|reason: in the line, or "".
func extractReasoning(line string) string {
	m := reasoningSpan.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(m[2], ".,;"))
}

// extractAlternatives returns every span following over|instead of|rather
// than in the line, in order.
func extractAlternatives(line string) []string {
	matches := altSpan.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		v := strings.TrimSpace(strings.Trim(m[2], ".,;"))
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var (
	fixedMarker   = regexp.MustCompile(`(?i)\*\*fixed:\*\*|\bfixed:|\bresolved:|\bsolved:|\[x\]`)
	blockedMarker = regexp.MustCompile(`(?i)\bblocked (by|on)\b|\bwaiting (for|on)\b|\bneed (to|more)\b`)
)

// resolveIssueStatus applies the fixed > blocked > open priority from
// spec.md §4.1 to an (already-lowercased) issue line.
func resolveIssueStatus(lower string) types.IssueStatus {
	switch {
	case fixedMarker.MatchString(lower):
		return types.StatusResolved
	case blockedMarker.MatchString(lower):
		return types.StatusBlocked
	default:
		return types.StatusOpen
	}
}
