// Package primer ranks open issues, revisitable decisions, and sharp edges
// for a new-session briefing. Scoring is purely functional: the same
// Project, Session, and candidate lists always produce the same result,
// so the scorer never touches disk or the clock beyond what it is given.
package primer

import (
	"sort"
	"strings"
	"time"

	"github.com/steveyegge/mind/internal/types"
)

// AccessStats maps an item id to its access history; missing ids score as
// zero, per spec.md §7's "access-stats unavailable" policy.
type AccessStats map[string]types.AccessStats

func (a AccessStats) count(id string) int {
	return a[id].AccessCount
}

// scoringContext bundles the pre-computed lookup state shared by every scoring
// function, built once per Generate call.
type scoringContext struct {
	now            time.Time
	nextStepsText  string
	contextTerms   map[string]struct{}
	goal           string
	stack          []string
}

func buildContext(project types.Project, prior *types.Session, now time.Time) scoringContext {
	var nextSteps []string
	if prior != nil {
		nextSteps = prior.NextSteps
	}

	ctx := scoringContext{
		now:           now,
		nextStepsText: strings.ToLower(strings.Join(nextSteps, " ")),
		contextTerms:  make(map[string]struct{}),
		goal:          project.Goal,
		stack:         project.Stack,
	}

	addTerms := func(s string) {
		for _, w := range strings.Fields(strings.ToLower(s)) {
			if len(w) > 3 {
				ctx.contextTerms[w] = struct{}{}
			}
		}
	}
	addTerms(project.Goal)
	for _, s := range project.Stack {
		addTerms(s)
	}
	for _, t := range project.OpenThreads {
		addTerms(t)
	}
	for _, n := range nextSteps {
		addTerms(n)
	}

	return ctx
}

// relatedToGoal implements spec.md §4.3's related_to_goal: substring either
// direction, or a shared word longer than 3 characters.
func relatedToGoal(goal, title string) bool {
	if goal == "" || title == "" {
		return false
	}
	g, t := strings.ToLower(goal), strings.ToLower(title)
	if strings.Contains(t, g) || strings.Contains(g, t) {
		return true
	}
	goalWords := make(map[string]struct{})
	for _, w := range strings.Fields(g) {
		if len(w) > 3 {
			goalWords[w] = struct{}{}
		}
	}
	for _, w := range strings.Fields(t) {
		if len(w) <= 3 {
			continue
		}
		if _, ok := goalWords[w]; ok {
			return true
		}
	}
	return false
}

func daysSince(t time.Time, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	d := now.Sub(t)
	days := int(d.Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

func severityBase(s types.Severity) float64 {
	switch s {
	case types.SeverityBlocking:
		return 100
	case types.SeverityMajor:
		return 50
	case types.SeverityMinor:
		return 20
	case types.SeverityCosmetic:
		return 5
	default:
		return 0
	}
}

func scoreIssue(ctx scoringContext, issue types.Issue, accessCount int) types.ScoredIssue {
	score := severityBase(issue.Severity)
	var hint string

	continuity := ctx.nextStepsText != "" && strings.Contains(ctx.nextStepsText, strings.ToLower(issue.Title))
	if continuity {
		score += 80
	}

	goalRelated := relatedToGoal(ctx.goal, issue.Title)
	if goalRelated {
		score += 60
	}

	score += float64(max0(30 - max0(daysSince(issue.UpdatedAt, ctx.now))))
	score += minF(5*float64(accessCount), 30)

	switch {
	case issue.Severity == types.SeverityBlocking:
		// no hint: blocking speaks for itself
	case continuity:
		hint = "from last session"
	case goalRelated:
		hint = "goal-related"
	}

	return types.ScoredIssue{Issue: issue, Score: score, Hint: hint}
}

func isDecisionCandidate(d types.Decision) bool {
	return d.RevisitIf != "" || d.Confidence < 0.7
}

func scoreDecision(ctx scoringContext, d types.Decision, accessCount int) types.ScoredDecision {
	var score float64
	var hint string

	if d.RevisitIf != "" {
		lower := strings.ToLower(d.RevisitIf)
		for term := range ctx.contextTerms {
			if strings.Contains(lower, term) {
				score += 100
				hint = "condition triggered: \"" + truncate(d.RevisitIf, 30) + "\""
				break
			}
		}
	}

	switch {
	case d.Confidence < 0.5:
		score += 40
		if hint == "" {
			hint = "low confidence"
		}
	case d.Confidence < 0.7:
		score += 20
		if hint == "" {
			hint = "low confidence"
		}
	}

	if relatedToGoal(ctx.goal, d.Title) {
		score += 50
		if hint == "" {
			hint = "goal-related"
		}
	}

	score += float64(max0(15 - max0(daysSince(d.DecidedAt, ctx.now))))
	score += minF(3*float64(accessCount), 20)

	return types.ScoredDecision{Decision: d, Score: score, Hint: hint}
}

func scoreEdge(ctx scoringContext, e types.SharpEdge, accessCount int) types.ScoredEdge {
	var score float64
	var hint string

	lowerTitle := strings.ToLower(e.Title)
	lowerDesc := strings.ToLower(e.Description)
	for _, tag := range ctx.stack {
		tag = strings.ToLower(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(lowerTitle, tag) || strings.Contains(lowerDesc, tag) {
			score += 80
			hint = "matches stack"
			break
		}
	}

	if relatedToGoal(ctx.goal, e.Title) {
		score += 60
		if hint == "" {
			hint = "goal-related"
		}
	}

	if accessCount > 0 {
		score += 40
		if hint == "" {
			hint = "seen before"
		}
	}

	edgeContext := strings.ToLower(ctx.goal + " " + strings.Join(ctx.stack, " "))
	if detectionPatternMatches(e.Detection, e.TriggerPhrases, edgeContext) {
		score += 50
	}

	return types.ScoredEdge{Edge: e, Score: score, Hint: hint}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sortIssues, sortDecisions and sortEdges order by score descending, ties broken by input-list order,
// per spec.md §5.
func sortIssues(items []types.ScoredIssue) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
}

func sortDecisions(items []types.ScoredDecision) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
}

func sortEdges(items []types.ScoredEdge) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
}
