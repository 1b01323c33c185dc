// Package mind provides a minimal public API for embedding the memory
// substrate's core pieces — parsing, retrieval, and primer scoring — into
// a host program without going through the tool-server's JSON protocol.
//
// Most assistant-host integrations should speak the line-framed protocol
// in internal/toolserver instead. This package exports only the essential
// types and constructors for Go programs that want to call the core
// packages directly.
package mind

import (
	"github.com/steveyegge/mind/internal/parser"
	"github.com/steveyegge/mind/internal/primer"
	"github.com/steveyegge/mind/internal/retrieval"
	"github.com/steveyegge/mind/internal/storage"
	"github.com/steveyegge/mind/internal/types"
)

// Core record types for working with parsed and scored memory.
type (
	Entity       = types.Entity
	EntityKind   = types.EntityKind
	ParseResult  = types.ParseResult
	Project      = types.Project
	Session      = types.Session
	Issue        = types.Issue
	Decision     = types.Decision
	SharpEdge    = types.SharpEdge
	PrimerResult = types.PrimerResult
	SearchResult = types.SearchResult
	SearchMode   = types.SearchMode
	AccessStats  = primer.AccessStats
)

// Entity kind constants.
const (
	KindDecision = types.KindDecision
	KindIssue    = types.KindIssue
	KindLearning = types.KindLearning
	KindEdge     = types.KindEdge
)

// Search mode constants.
const (
	ModeVectorOnly  = types.ModeVectorOnly
	ModeKeywordOnly = types.ModeKeywordOnly
	ModeHybrid      = types.ModeHybrid
)

// Parser parses MEMORY.md-shaped Markdown into typed entities.
type Parser = parser.Parser

// NewParser returns a Parser using the real wall clock.
func NewParser() *Parser {
	return parser.New()
}

// Index is the hybrid lexical+vector retrieval engine.
type Index = retrieval.Index

// NewIndex returns an empty Index using the package's default scoring
// constants and a deterministic hash-based embedder.
func NewIndex() *Index {
	cfg := retrieval.DefaultConfig()
	return retrieval.NewIndex(retrieval.NewHashEmbedder(retrieval.Dimension), cfg)
}

// Storage is the collaborator interface the primer scorer consumes for
// project snapshots, open issues, decisions, sharp edges, and access
// stats.
type Storage = storage.Storage

// NewMemoryStorage returns an in-memory Storage suitable for embedding
// or tests.
func NewMemoryStorage() *storage.MemoryStore {
	return storage.NewMemoryStore()
}

// GeneratePrimer scores issues, decisions, and sharp edges against a
// project and its prior session, returning the top candidates plus a
// rendered briefing. now is passed explicitly so the scorer stays a
// pure function of its arguments.
var GeneratePrimer = primer.Generate
