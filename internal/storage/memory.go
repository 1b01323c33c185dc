package storage

import (
	"context"
	"sync"

	"github.com/steveyegge/mind/internal/types"
)

// issueRecord and decisionRecord carry an internal status alongside the
// public scoring view, so ListOpenIssues/ListDecisions can filter without
// widening the types the primer scorer already consumes.
type issueRecord struct {
	issue  types.Issue
	status types.IssueStatus
}

type decisionRecord struct {
	decision types.Decision
	status   string
}

// MemoryStore is a single-writer, multi-reader in-memory Storage
// implementation, the same RWMutex-guarded-map shape the retrieval index
// uses. It exists for tests, for library callers (mind.NewMemoryStorage),
// and as the reference implementation of the Storage contract.
type MemoryStore struct {
	mu sync.RWMutex

	projects  map[string]types.Project
	issues    map[string][]issueRecord
	decisions map[string][]decisionRecord
	edges     map[string][]types.SharpEdge
	access    map[string]types.AccessStats
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:  make(map[string]types.Project),
		issues:    make(map[string][]issueRecord),
		decisions: make(map[string][]decisionRecord),
		edges:     make(map[string][]types.SharpEdge),
		access:    make(map[string]types.AccessStats),
	}
}

// PutProject upserts the project snapshot for name.
func (m *MemoryStore) PutProject(name string, project types.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[name] = project
}

// AddIssue records an issue under project with the given status.
func (m *MemoryStore) AddIssue(project string, issue types.Issue, status types.IssueStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues[project] = append(m.issues[project], issueRecord{issue: issue, status: status})
}

// AddDecision records a decision under project with the given status
// ("open", "revisited", or any caller-defined value used for filtering).
func (m *MemoryStore) AddDecision(project string, decision types.Decision, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[project] = append(m.decisions[project], decisionRecord{decision: decision, status: status})
}

// AddSharpEdge records a sharp edge under project.
func (m *MemoryStore) AddSharpEdge(project string, edge types.SharpEdge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[project] = append(m.edges[project], edge)
}

// RecordAccess increments id's access count by one, creating the record
// if absent.
func (m *MemoryStore) RecordAccess(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.access[id]
	stats.AccessCount++
	m.access[id] = stats
}

// GetProject returns ErrProjectNotFound when name has never been
// registered via PutProject, distinct from a registered project with an
// empty goal/stack/threads.
func (m *MemoryStore) GetProject(_ context.Context, name string) (types.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	project, ok := m.projects[name]
	if !ok {
		return types.Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (m *MemoryStore) ListOpenIssues(_ context.Context, project string) ([]types.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.issues[project]
	out := make([]types.Issue, 0, len(records))
	for _, r := range records {
		if r.status == types.StatusOpen || r.status == types.StatusBlocked {
			out = append(out, r.issue)
		}
	}
	return out, nil
}

// ListDecisions returns decisions for project. An empty status returns
// every decision regardless of status.
func (m *MemoryStore) ListDecisions(_ context.Context, project string, status string) ([]types.Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.decisions[project]
	out := make([]types.Decision, 0, len(records))
	for _, r := range records {
		if status == "" || r.status == status {
			out = append(out, r.decision)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListSharpEdges(_ context.Context, project string) ([]types.SharpEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	edges := m.edges[project]
	out := make([]types.SharpEdge, len(edges))
	copy(out, edges)
	return out, nil
}

// GetAccessStats looks up access counts for ids. A missing id is reported
// as access_count 0, per spec.md §7's access-stats-unavailable policy,
// rather than being omitted from the result.
func (m *MemoryStore) GetAccessStats(_ context.Context, ids []string) (map[string]types.AccessStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]types.AccessStats, len(ids))
	for _, id := range ids {
		out[id] = m.access[id]
	}
	return out, nil
}

var _ Storage = (*MemoryStore)(nil)
