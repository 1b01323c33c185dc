package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/mind/internal/parser"
	"github.com/steveyegge/mind/internal/primer"
	"github.com/steveyegge/mind/internal/types"
)

var primerCmd = &cobra.Command{
	Use:   "primer",
	Short: "Generate a session-start briefing from MEMORY.md",
	Run: func(_ *cobra.Command, _ []string) {
		os.Exit(runPrimer(projectDir, jsonOutput))
	},
}

func runPrimer(dir string, asJSON bool) int {
	memoryPath := filepath.Join(dir, "MEMORY.md")
	text, err := os.ReadFile(memoryPath) // #nosec G304 - path built from caller-supplied project dir
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result := parser.New().Parse(string(text), memoryPath)
	project := projectFromState(result.ProjectState)
	issues, decisions := entitiesToCandidates(result.Entities)
	edges := projectEdgesToSharpEdges(result.ProjectEdges)

	briefing := primer.Generate(project, nil, issues, decisions, edges, primer.AccessStats{}, time.Now())

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(briefing)
		return 0
	}

	fmt.Println(briefing.Briefing)
	return 0
}

func projectFromState(ps types.ProjectState) types.Project {
	var blockedBy []string
	if ps.BlockedBy != "" {
		for _, s := range strings.Split(ps.BlockedBy, ",") {
			if t := strings.TrimSpace(s); t != "" {
				blockedBy = append(blockedBy, t)
			}
		}
	}
	return types.Project{
		Goal:      ps.Goal,
		Stack:     ps.Stack,
		BlockedBy: blockedBy,
	}
}

// entitiesToCandidates maps parsed issue/decision entities into the
// primer's candidate shapes. The parser extracts confidence and
// open/blocked/resolved status, not a severity tier, so blocked issues
// map to SeverityBlocking, key-marked issues to SeverityMajor, and the
// rest to SeverityMinor.
func entitiesToCandidates(entities []types.Entity) ([]types.Issue, []types.Decision) {
	var issues []types.Issue
	var decisions []types.Decision

	for i, e := range entities {
		updatedAt := time.Now()
		if e.HasDate {
			if t, err := time.Parse("2006-01-02", e.Date); err == nil {
				updatedAt = t
			}
		}

		switch e.Kind {
		case types.KindIssue:
			if e.Status == types.StatusResolved {
				continue
			}
			issues = append(issues, types.Issue{
				ID:        fmt.Sprintf("iss_%d", i),
				Title:     e.Title,
				Severity:  issueSeverity(e),
				UpdatedAt: updatedAt,
			})
		case types.KindDecision:
			decisions = append(decisions, types.Decision{
				ID:         fmt.Sprintf("dec_%d", i),
				Title:      e.Title,
				Confidence: e.Confidence,
				DecidedAt:  updatedAt,
			})
		}
	}
	return issues, decisions
}

func issueSeverity(e types.Entity) types.Severity {
	switch {
	case e.Status == types.StatusBlocked:
		return types.SeverityBlocking
	case e.IsKey:
		return types.SeverityMajor
	default:
		return types.SeverityMinor
	}
}

func projectEdgesToSharpEdges(edges []types.ProjectEdge) []types.SharpEdge {
	out := make([]types.SharpEdge, 0, len(edges))
	for i, e := range edges {
		out = append(out, types.SharpEdge{
			ID:          fmt.Sprintf("edge_%d", i),
			Title:       e.Title,
			Description: e.Workaround,
		})
	}
	return out
}
