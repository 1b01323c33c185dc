package parser

import (
	"regexp"
	"strings"

	"github.com/steveyegge/mind/internal/types"
)

// matcher is one (pattern, base confidence) pair tried in recognizer order.
type matcher struct {
	re   *regexp.Regexp
	base float64
}

func mustMatchers(pairs ...struct {
	pattern string
	base    float64
}) []matcher {
	out := make([]matcher, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, matcher{re: regexp.MustCompile(p.pattern), base: p.base})
	}
	return out
}

type pb = struct {
	pattern string
	base    float64
}

var decisionMatchers = mustMatchers(
	pb{`\*\*decided:\*\*`, 0.9},
	pb{`^memory:\s*decided\b`, 0.7},
	pb{`\b(decided|chose|going with|went with|settled on|picked)\b`, 0.55},
	pb{`\busing\b.+\b(instead|over|because)\b`, 0.55},
)

var decisionFalsePositives = regexp.MustCompile(
	`\b(i decided not to|haven't decided|should we decide|if we decide|might decide|need to decide)\b`,
)

var issueMatchers = mustMatchers(
	pb{`\*\*(problem|issue|bug):\*\*`, 0.9},
	pb{`\b(problem|issue|bug):`, 0.55},
	pb{`\b(hit a problem with|struggling with|stuck on)\b`, 0.55},
	pb{`\b\w[\w -]*\b\s+(doesn't work|broken)\b`, 0.4},
)

var learningMatchers = mustMatchers(
	pb{`\*\*(learned|til|gotcha):\*\*`, 0.9},
	pb{`\b(learned|discovered|realized|turns out|found out)\b`, 0.5},
)

var (
	boldMarker     = regexp.MustCompile(`\*\*`)
	memoryPrefix   = regexp.MustCompile(`(?i)^memory:`)
	reasoningRegex = regexp.MustCompile(`(?i)\b(because|since|due to|so that|so|reason:)\b\s*(.+)$`)
	alternativeRegex = regexp.MustCompile(`(?i)\b(over|instead of|rather than)\b\s*([^.;,]+)`)
)

// recognize tries decision, then issue, then learning, in that order, and
// returns the first entity produced. A line yields at most one entity.
func recognize(line string) (types.Entity, bool) {
	lower := strings.ToLower(line)

	if e, ok := tryDecision(line, lower); ok {
		return e, true
	}
	if e, ok := tryIssue(line, lower); ok {
		return e, true
	}
	if e, ok := tryLearning(line, lower); ok {
		return e, true
	}
	return types.Entity{}, false
}

func tryDecision(line, lower string) (types.Entity, bool) {
	if decisionFalsePositives.MatchString(lower) {
		return types.Entity{}, false
	}
	base, ok := firstMatch(decisionMatchers, lower)
	if !ok {
		return types.Entity{}, false
	}
	return buildEntity(types.KindDecision, line, lower, base), true
}

func tryIssue(line, lower string) (types.Entity, bool) {
	base, ok := firstMatch(issueMatchers, lower)
	if !ok {
		return types.Entity{}, false
	}
	return buildEntity(types.KindIssue, line, lower, base), true
}

func tryLearning(line, lower string) (types.Entity, bool) {
	base, ok := firstMatch(learningMatchers, lower)
	if !ok {
		return types.Entity{}, false
	}
	return buildEntity(types.KindLearning, line, lower, base), true
}

func firstMatch(matchers []matcher, lower string) (float64, bool) {
	for _, m := range matchers {
		if m.re.MatchString(lower) {
			return m.base, true
		}
	}
	return 0, false
}

func buildEntity(kind types.EntityKind, line, lower string, base float64) types.Entity {
	conf := base
	if boldMarker.MatchString(line) {
		conf += 0.2
	}
	if reasoningRegex.MatchString(lower) {
		conf += 0.15
	}
	if alternativeRegex.MatchString(lower) {
		conf += 0.1
	}
	if memoryPrefix.MatchString(line) {
		conf += 0.1
	}
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}

	e := types.Entity{
		Kind:       kind,
		Title:      extractTitle(line, kind),
		Content:    truncate(line, 1000),
		Confidence: conf,
	}
	e.Reasoning = extractReasoning(line)
	e.Alternatives = extractAlternatives(line)
	if kind == types.KindIssue {
		e.Status = resolveIssueStatus(lower)
	}
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
