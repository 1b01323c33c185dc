// Package toolserver exposes the core's six logical operations (parse,
// scan_inline, index mutation/search, rerank, primer.generate) over a
// line-framed JSON request/response protocol, grounded on the teacher's
// internal/rpc.Request/Response/operation-constant shape, scaled down to
// this module's much smaller surface.
package toolserver

import (
	"encoding/json"

	"github.com/steveyegge/mind/internal/types"
)

// Operation constants for every tool-server request, mirroring
// internal/rpc's OpXxx naming convention.
const (
	OpParse          = "parse"
	OpScanInline     = "scan_inline"
	OpIndexAdd       = "index_add"
	OpIndexRemove    = "index_remove"
	OpIndexClear     = "index_clear"
	OpIndexContains  = "index_contains"
	OpIndexSize      = "index_size"
	OpIndexSearch    = "index_search"
	OpRerank         = "rerank"
	OpPrimerGenerate = "primer_generate"
)

// Request is one line-framed request from the assistant host.
type Request struct {
	Operation string          `json:"operation"`
	RequestID string          `json:"request_id,omitempty"`
	Args      json.RawMessage `json:"args"`
}

// Response is one line-framed response back to the assistant host.
type Response struct {
	RequestID string          `json:"request_id,omitempty"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ParseArgs are the arguments for OpParse.
type ParseArgs struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ScanInlineArgs are the arguments for OpScanInline.
type ScanInlineArgs struct {
	Directory string `json:"directory"`
}

// IndexAddArgs are the arguments for OpIndexAdd.
type IndexAddArgs struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IndexRemoveArgs are the arguments for OpIndexRemove.
type IndexRemoveArgs struct {
	ID string `json:"id"`
}

// IndexContainsArgs are the arguments for OpIndexContains.
type IndexContainsArgs struct {
	ID string `json:"id"`
}

// IndexSearchArgs are the arguments for OpIndexSearch.
type IndexSearchArgs struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
	TopK  int    `json:"top_k"`
}

// RerankArgs are the arguments for OpRerank.
type RerankArgs struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// IndexContainsResult is the response payload for OpIndexContains.
type IndexContainsResult struct {
	Contains bool `json:"contains"`
}

// IndexSizeResult is the response payload for OpIndexSize.
type IndexSizeResult struct {
	Size int `json:"size"`
}

// PrimerGenerateArgs are the arguments for OpPrimerGenerate: the project
// snapshot, the optional prior session, and the candidate lists the
// storage collaborator supplied.
type PrimerGenerateArgs struct {
	Project      types.Project                `json:"project"`
	PriorSession *types.Session               `json:"prior_session,omitempty"`
	Issues       []types.Issue                `json:"issues"`
	Decisions    []types.Decision             `json:"decisions"`
	Edges        []types.SharpEdge            `json:"edges"`
	AccessStats  map[string]types.AccessStats `json:"access_stats"`
}
