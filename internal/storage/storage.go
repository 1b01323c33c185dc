// Package storage defines the collaborator interface the primer scorer
// consumes: project snapshots, open issues, decisions, sharp edges, and
// access-frequency stats. The core never reads disk directly; it is
// handed these through this interface, per spec.md §6.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/steveyegge/mind/internal/types"
)

// ErrStorageUnavailable is returned when a collaborator query fails,
// per spec.md §7's "propagate as storage_unavailable to the caller".
var ErrStorageUnavailable = errors.New("storage_unavailable")

// ErrProjectNotFound is returned when a referenced project has no
// recorded snapshot at all (distinct from a project with zero open
// issues/decisions/edges, which is a well-defined empty result).
var ErrProjectNotFound = errors.New("project_not_found")

// Storage is the collaborator interface consumed by the primer scorer and
// the tool-server/CLI layers above it.
type Storage interface {
	GetProject(ctx context.Context, name string) (types.Project, error)
	ListOpenIssues(ctx context.Context, project string) ([]types.Issue, error)
	ListDecisions(ctx context.Context, project string, status string) ([]types.Decision, error)
	ListSharpEdges(ctx context.Context, project string) ([]types.SharpEdge, error)
	GetAccessStats(ctx context.Context, ids []string) (map[string]types.AccessStats, error)
}

// NewID returns a fresh synthetic identifier for a record with no natural
// key, e.g. an issue or decision parsed fresh out of MEMORY.md.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
