package primer

import (
	"time"

	"github.com/steveyegge/mind/internal/types"
)

const (
	maxIssues    = 3
	maxDecisions = 2
	maxEdges     = 2
)

// Generate scores issues, decisions, and sharp edges against project and
// the prior session (nil if this is the first session), returning the
// top candidates by priority plus a rendered briefing. now is passed in
// explicitly so the scorer stays a pure function of its arguments, per
// spec.md §5's "purely functional over its inputs" rule.
func Generate(
	project types.Project,
	prior *types.Session,
	issues []types.Issue,
	decisions []types.Decision,
	edges []types.SharpEdge,
	access AccessStats,
	now time.Time,
) types.PrimerResult {
	ctx := buildContext(project, prior, now)

	scoredIssues := make([]types.ScoredIssue, 0, len(issues))
	for _, iss := range issues {
		scoredIssues = append(scoredIssues, scoreIssue(ctx, iss, access.count(iss.ID)))
	}
	sortIssues(scoredIssues)
	if len(scoredIssues) > maxIssues {
		scoredIssues = scoredIssues[:maxIssues]
	}

	scoredDecisions := make([]types.ScoredDecision, 0, len(decisions))
	for _, d := range decisions {
		if !isDecisionCandidate(d) {
			continue
		}
		scoredDecisions = append(scoredDecisions, scoreDecision(ctx, d, access.count(d.ID)))
	}
	sortDecisions(scoredDecisions)
	if len(scoredDecisions) > maxDecisions {
		scoredDecisions = scoredDecisions[:maxDecisions]
	}

	scoredEdges := make([]types.ScoredEdge, 0, len(edges))
	for _, e := range edges {
		scoredEdges = append(scoredEdges, scoreEdge(ctx, e, access.count(e.ID)))
	}
	sortEdges(scoredEdges)
	if len(scoredEdges) > maxEdges {
		scoredEdges = scoredEdges[:maxEdges]
	}

	result := types.PrimerResult{
		Issues:    scoredIssues,
		Decisions: scoredDecisions,
		Edges:     scoredEdges,
	}
	result.Briefing = renderBriefing(project, prior, result, now)
	return result
}
