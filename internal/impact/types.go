// Package impact selects the interaction surfaces affected by a change set.
// An analysis is a pure computation over a VCS diff, the persisted
// interaction graph, and a freshly built dependency graph; nothing here is
// written back to disk.
package impact

// SelectionReason explains why a route was selected.
type SelectionReason string

const (
	// DirectChange means a file backing the route appears in the diff.
	DirectChange SelectionReason = "direct-change"
	// DependencyChange means the route's file transitively depends on a
	// changed file.
	DependencyChange SelectionReason = "dependency-change"
)

// SelectedRoute is one affected surface in an analysis result.
type SelectedRoute struct {
	ID     string          `json:"id"`
	File   string          `json:"file"`
	Reason SelectionReason `json:"reason"`
}

// Result is the outcome of an impact analysis.
type Result struct {
	BaseRev        string          `json:"baseRev"`
	HeadRev        string          `json:"headRev"`
	ChangedFiles   []string        `json:"changedFiles"`
	SelectedRoutes []SelectedRoute `json:"selectedRoutes"`
	Warnings       []string        `json:"warnings,omitempty"`
}
