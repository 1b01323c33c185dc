package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/steveyegge/mind/internal/timeparsing"
	"github.com/steveyegge/mind/internal/types"
)

// Parser scans MEMORY.md-shaped Markdown into a ParseResult. Its only state
// is the clock used to compute days-ago from date headers; Now defaults to
// time.Now and is overridden in tests for deterministic output.
type Parser struct {
	Now func() time.Time
}

// New returns a Parser using the real wall clock.
func New() *Parser {
	return &Parser{Now: time.Now}
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

var (
	topHeaderRe   = regexp.MustCompile(`^#\s+`)
	anyHeaderRe   = regexp.MustCompile(`^##\s+`)
	htmlCommentRe = regexp.MustCompile(`^\s*<!--.*-->\s*$`)
	hruleRe       = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
	goalBulletRe  = regexp.MustCompile(`(?i)^-\s*goal:`)
	stackBulletRe = regexp.MustCompile(`(?i)^-\s*stack:`)
	blockBulletRe = regexp.MustCompile(`(?i)^-\s*blocked:`)
	keywordsRe    = regexp.MustCompile(`(?i)^keywords:`)
	mindMarkerRe  = regexp.MustCompile(`MIND MEMORY`)
	gotchaBullet  = regexp.MustCompile(`^[-*]\s+`)
)

// Parse is total: every input, however malformed, yields a ParseResult.
func (p *Parser) Parse(text, source string) types.ParseResult {
	lines := strings.Split(text, "\n")
	now := p.now()

	result := types.ParseResult{}
	section := "" // "", "project_state", "gotchas"
	dateContext := ""
	hasDate := false

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if anyHeaderRe.MatchString(line) {
			if ss, ok := parseSessionSummary(line); ok {
				result.SessionSummaries = append(result.SessionSummaries, ss)
				section = ""
				continue
			}
			if date, ok := timeparsing.MatchDateHeader(line, now); ok {
				dateContext, hasDate = date, true
				section = ""
				continue
			}
			switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "##"))) {
			case "project state":
				section = "project_state"
			case "gotchas":
				section = "gotchas"
			default:
				section = ""
			}
			continue
		}

		if genericSkip(trimmed) {
			continue
		}

		switch section {
		case "project_state":
			applyProjectStateBullet(&result.ProjectState, trimmed)
			continue
		case "gotchas":
			if edge, ok := parseGotchaBullet(trimmed); ok {
				result.ProjectEdges = append(result.ProjectEdges, edge)
			}
			continue
		}

		if goalBulletRe.MatchString(trimmed) || stackBulletRe.MatchString(trimmed) || blockBulletRe.MatchString(trimmed) {
			// A stray project-state-shaped bullet outside "## Project
			// State" is still never a meaningful prose line.
			continue
		}

		entity, ok := recognize(line)
		if !ok {
			continue
		}
		entity.SourceFile = source
		entity.SourceLine = i + 1
		if hasDate {
			entity.Date = dateContext
			entity.HasDate = true
			entity.DaysAgo = timeparsing.DaysAgo(dateContext, now)
		}
		result.Entities = append(result.Entities, entity)
	}

	applyKeyMarkers(result.Entities)
	return result
}

// genericSkip applies the skip rules that hold regardless of section.
func genericSkip(trimmed string) bool {
	if trimmed == "" {
		return true
	}
	if topHeaderRe.MatchString(trimmed) {
		return true
	}
	if htmlCommentRe.MatchString(trimmed) {
		return true
	}
	if mindMarkerRe.MatchString(trimmed) {
		return true
	}
	if hruleRe.MatchString(trimmed) {
		return true
	}
	if keywordsRe.MatchString(trimmed) {
		return true
	}
	return false
}

var keyMarkerRe = regexp.MustCompile(`(?i)^(\*\*key:\*\*|key:|\*\*important:\*\*|important:)`)

// applyKeyMarkers post-processes entities in place: IsKey is true iff the
// originating content begins (after trim) with a key/important marker.
func applyKeyMarkers(entities []types.Entity) {
	for i := range entities {
		trimmed := strings.TrimSpace(entities[i].Content)
		entities[i].IsKey = keyMarkerRe.MatchString(trimmed)
	}
}
