package types

import "time"

// Severity ranks an open issue's urgency for primer scoring.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityCosmetic Severity = "cosmetic"
)

// Project is the current snapshot fed to the primer scorer.
type Project struct {
	Goal         string
	Stack        []string
	OpenThreads  []string
	BlockedBy    []string
}

// Session describes a prior session's closing notes.
type Session struct {
	EndedAt   time.Time
	Summary   string
	Mood      string
	NextSteps []string
}

// Issue is a candidate for the primer's "Open issues" section.
type Issue struct {
	ID        string
	Title     string
	Severity  Severity
	UpdatedAt time.Time
}

// Decision is a candidate for the primer's "Decisions to revisit" section.
type Decision struct {
	ID         string
	Title      string
	RevisitIf  string
	Confidence float64
	DecidedAt  time.Time
}

// SharpEdge is a candidate for the primer's "Watch out for" section.
type SharpEdge struct {
	ID          string
	Title       string
	Description string
	Detection   []DetectionPattern
	TriggerPhrases []string
}

// AccessStats is the per-item access history the storage collaborator
// supplies; missing ids are treated as zero access count.
type AccessStats struct {
	AccessCount int
}

// ScoredIssue, ScoredDecision, ScoredEdge carry a candidate plus the
// priority score and optional human-readable hint used to render it.
type ScoredIssue struct {
	Issue Issue
	Score float64
	Hint  string
}

type ScoredDecision struct {
	Decision Decision
	Score    float64
	Hint     string
}

type ScoredEdge struct {
	Edge  SharpEdge
	Score float64
	Hint  string
}

// PrimerResult is the primer scorer's total output: the ranked structured
// lists plus a pre-rendered textual briefing.
type PrimerResult struct {
	Issues    []ScoredIssue
	Decisions []ScoredDecision
	Edges     []ScoredEdge
	Briefing  string
}

// MemoryItem is the primer collaborator's view of a storage record. The
// scorer does not consume it: it reads Issue, Decision and SharpEdge
// values plus an AccessStats map keyed by their IDs.
type MemoryItem struct {
	Kind           EntityKind
	Title          string
	Severity       Severity
	UpdatedAt      time.Time
	AccessCount    int
	DetectionPatterns []DetectionPattern
	TriggerPhrases []string
}
