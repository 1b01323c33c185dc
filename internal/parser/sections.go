package parser

import (
	"regexp"
	"strings"

	"github.com/steveyegge/mind/internal/types"
)

var sessionHeaderRe = regexp.MustCompile(`^##\s+(.+?)\s*\|\s*(.+?)\s*(?:\|\s*mood:\s*(.+?)\s*)?$`)

// parseSessionSummary matches "## <date> | <summary> | mood: <mood>".
func parseSessionSummary(line string) (types.SessionSummary, bool) {
	m := sessionHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return types.SessionSummary{}, false
	}
	return types.SessionSummary{
		Date:    strings.TrimSpace(m[1]),
		Summary: strings.TrimSpace(m[2]),
		Mood:    strings.TrimSpace(m[3]),
	}, true
}

var placeholders = map[string]bool{
	"(describe your goal)": true,
	"(add your stack)":     true,
	"none":                 true,
	"":                     true,
}

// applyProjectStateBullet populates one field of ps from a trimmed
// "- Goal: <g>" / "- Stack: <tags>" / "- Blocked: <b>" line, skipping
// recognized placeholder values.
func applyProjectStateBullet(ps *types.ProjectState, trimmed string) {
	switch {
	case goalBulletRe.MatchString(trimmed):
		v := valueAfterColon(trimmed)
		if !placeholders[strings.ToLower(v)] {
			ps.Goal = v
		}
	case stackBulletRe.MatchString(trimmed):
		v := valueAfterColon(trimmed)
		if !placeholders[strings.ToLower(v)] {
			ps.Stack = splitStack(v)
		}
	case blockBulletRe.MatchString(trimmed):
		v := valueAfterColon(trimmed)
		if !placeholders[strings.ToLower(v)] {
			ps.BlockedBy = v
		}
	}
}

func valueAfterColon(s string) string {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(s[idx+1:])
}

func splitStack(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var gotchaSeparator = regexp.MustCompile(`->|→|--`)

// parseGotchaBullet splits a "## Gotchas" bullet line on the first ->, →,
// or -- into title and optional workaround.
func parseGotchaBullet(trimmed string) (types.ProjectEdge, bool) {
	if !gotchaBullet.MatchString(trimmed) {
		return types.ProjectEdge{}, false
	}
	body := strings.TrimSpace(gotchaBullet.ReplaceAllString(trimmed, ""))
	if body == "" {
		return types.ProjectEdge{}, false
	}

	loc := gotchaSeparator.FindStringIndex(body)
	if loc == nil {
		return types.ProjectEdge{Title: body}, true
	}
	title := strings.TrimSpace(body[:loc[0]])
	workaround := strings.TrimSpace(body[loc[1]:])
	return types.ProjectEdge{Title: title, Workaround: workaround}, true
}
