package primer

import (
	"fmt"
	"strings"
	"time"

	"github.com/steveyegge/mind/internal/types"
)

func severityEmoji(s types.Severity) string {
	switch s {
	case types.SeverityBlocking:
		return "🛑"
	case types.SeverityMajor:
		return "🔴"
	case types.SeverityMinor:
		return "🟡"
	case types.SeverityCosmetic:
		return "⚪"
	default:
		return "•"
	}
}

// timeAgo humanizes the gap between t and now per spec.md §4.3.
func timeAgo(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins < 1 {
			mins = 1
		}
		return pluralize(mins, "minute") + " ago"
	case d < 24*time.Hour:
		hours := int(d.Hours())
		return pluralize(hours, "hour") + " ago"
	case d < 48*time.Hour:
		return "Yesterday"
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		return pluralize(days, "day") + " ago"
	case d < 30*24*time.Hour:
		weeks := int(d.Hours() / 24 / 7)
		return pluralize(weeks, "week") + " ago"
	default:
		return t.Format("2006-01-02")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func renderBriefing(project types.Project, prior *types.Session, result types.PrimerResult, now time.Time) string {
	var b strings.Builder

	if prior != nil {
		fmt.Fprintf(&b, "Last session: %s\n", timeAgo(prior.EndedAt, now))
		fmt.Fprintf(&b, "Ended with: %s\n", prior.Summary)
		if prior.Mood != "" {
			fmt.Fprintf(&b, "Mood: %s\n", prior.Mood)
		}
		if len(prior.NextSteps) > 0 {
			fmt.Fprintf(&b, "Next step was: %s\n", prior.NextSteps[0])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Current goal: %s\n", project.Goal)
	if len(project.BlockedBy) > 0 {
		fmt.Fprintf(&b, "Blocked by: %s\n", strings.Join(project.BlockedBy, ", "))
	}
	if len(project.OpenThreads) > 0 {
		fmt.Fprintf(&b, "Open threads: %s\n", strings.Join(project.OpenThreads, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Open issues (%d):\n", len(result.Issues))
	for _, si := range result.Issues {
		fmt.Fprintf(&b, "  %s %s (%s)", severityEmoji(si.Issue.Severity), si.Issue.Title, si.Issue.Severity)
		if si.Hint != "" {
			fmt.Fprintf(&b, " ← %s", si.Hint)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Decisions to revisit (%d):\n", len(result.Decisions))
	for _, sd := range result.Decisions {
		fmt.Fprintf(&b, "  - %s", sd.Decision.Title)
		if sd.Hint != "" {
			fmt.Fprintf(&b, " ← %s", sd.Hint)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Watch out for:\n")
	for _, se := range result.Edges {
		fmt.Fprintf(&b, "  ⚠ %s", se.Edge.Title)
		if se.Hint != "" {
			fmt.Fprintf(&b, " ← %s", se.Hint)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("What would you like to focus on?")
	return b.String()
}
