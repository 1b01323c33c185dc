// Package types holds the data model shared by the parser, retrieval engine,
// and primer scorer: plain records with no behavior of their own.
package types

// EntityKind classifies what a parsed line represents.
type EntityKind string

const (
	KindDecision EntityKind = "decision"
	KindIssue    EntityKind = "issue"
	KindLearning EntityKind = "learning"
	KindEdge     EntityKind = "edge"
)

// IssueStatus is only meaningful when Entity.Kind == KindIssue.
type IssueStatus string

const (
	StatusOpen     IssueStatus = "open"
	StatusResolved IssueStatus = "resolved"
	StatusBlocked  IssueStatus = "blocked"
)

// Entity is the parser's output record: one typed, confidence-scored fact
// extracted from a single line of Markdown prose.
type Entity struct {
	Kind         EntityKind
	Title        string // ≤200 chars
	Content      string // the full originating line, ≤1000 chars
	SourceFile   string
	SourceLine   int
	Confidence   float64 // in [0,1]
	Reasoning    string  // optional, span following because|since|due to|so that|reason:
	Alternatives []string
	Status       IssueStatus // only set when Kind == KindIssue
	Date         string      // "" if no date header seen yet; else YYYY-MM-DD
	IsKey        bool
	DaysAgo      int // only meaningful when Date != ""
	HasDate      bool
}

// ProjectState is the header-extracted state from "## Project State".
type ProjectState struct {
	Goal      string
	Stack     []string
	BlockedBy string
}

// ProjectEdge is a project-local gotcha from "## Gotchas".
type ProjectEdge struct {
	Title      string
	Workaround string
}

// DetectionPatternType distinguishes the three kinds of GlobalEdge trigger.
type DetectionPatternType string

const (
	DetectionContext DetectionPatternType = "context"
	DetectionIntent  DetectionPatternType = "intent"
	DetectionCode    DetectionPatternType = "code"
)

// DetectionPattern is one matcher within a GlobalEdge's detection set.
type DetectionPattern struct {
	Type    DetectionPatternType
	Pattern string // regular expression, evaluated case-insensitively
}

// EdgeSeverity ranks a GlobalEdge's urgency.
type EdgeSeverity string

const (
	SeverityInfo     EdgeSeverity = "info"
	SeverityWarning  EdgeSeverity = "warning"
	SeverityCritical EdgeSeverity = "critical"
)

// GlobalEdge is a cross-project, process-wide gotcha.
type GlobalEdge struct {
	ID               string
	Title            string
	Description      string
	Workaround       string
	Detection        []DetectionPattern
	TriggerPhrases   []string
	StackTags        []string
	Severity         EdgeSeverity
	CreatedAt        string
}

// SessionSummary is a one-line "## <date> | <summary> | mood: <mood>" header.
type SessionSummary struct {
	Date    string
	Summary string
	Mood    string // "" if absent
}

// ParseResult is the total output of one parser pass over one source.
type ParseResult struct {
	ProjectState    ProjectState
	Entities        []Entity
	ProjectEdges    []ProjectEdge
	SessionSummaries []SessionSummary
}
