package impact

import (
	"context"
	"fmt"
	"os"
	"sort"

	"routelens/internal/depgraph"
	rlerrors "routelens/internal/errors"
	"routelens/internal/interaction"
	"routelens/internal/logging"
	"routelens/internal/paths"
	"routelens/internal/syntax"
)

// Options configures an impact analysis.
type Options struct {
	BaseRev   string // default "HEAD~1"
	HeadRev   string // default "HEAD"
	GraphPath string // persisted interaction graph
	Includes  []string
	Excludes  []string
	MaxDepth  int // transitive dependent depth, <= 0 unlimited
}

// Analyzer computes affected surfaces for a change set.
type Analyzer struct {
	repoRoot string
	provider syntax.Provider
	logger   *logging.Logger
}

// NewAnalyzer creates an analyzer rooted at repoRoot.
func NewAnalyzer(repoRoot string, provider syntax.Provider, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		repoRoot: repoRoot,
		provider: provider,
		logger:   logger,
	}
}

// Analyze resolves the revisions, diffs them, and intersects the change set
// with the route files of the persisted interaction graph, directly and
// through transitive dependents. A dependency graph build failure degrades
// the analysis to direct matches with a warning rather than failing it.
func (a *Analyzer) Analyze(ctx context.Context, opts Options) (*Result, error) {
	if _, err := os.Stat(a.repoRoot); err != nil {
		return nil, rlerrors.New(rlerrors.RootMissing,
			fmt.Sprintf("repository root %s does not exist", a.repoRoot), err)
	}

	baseRev := opts.BaseRev
	if baseRev == "" {
		baseRev = "HEAD~1"
	}
	headRev := opts.HeadRev
	if headRev == "" {
		headRev = "HEAD"
	}

	base, err := ResolveRevision(ctx, a.repoRoot, baseRev)
	if err != nil {
		return nil, err
	}
	head, err := ResolveRevision(ctx, a.repoRoot, headRev)
	if err != nil {
		return nil, err
	}

	graph, err := interaction.Load(opts.GraphPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BaseRev:        baseRev,
		HeadRev:        headRev,
		ChangedFiles:   []string{},
		SelectedRoutes: []SelectedRoute{},
	}

	changed, err := ChangedFiles(ctx, a.repoRoot, base, head)
	if err != nil {
		return nil, err
	}
	result.ChangedFiles = append(result.ChangedFiles, changed...)
	if len(changed) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no files changed between %s and %s", baseRev, headRev))
		return result, nil
	}

	routesByFile := a.routeFiles(graph)
	if len(routesByFile) == 0 {
		result.Warnings = append(result.Warnings, "interaction graph contains no routes")
		return result, nil
	}

	changedAbs := make([]string, 0, len(changed))
	for _, rel := range changed {
		abs, canonErr := paths.Canonicalize(paths.JoinRepo(a.repoRoot, rel))
		if canonErr != nil {
			continue
		}
		changedAbs = append(changedAbs, abs)
	}

	selected := map[string]SelectedRoute{}

	// Direct matches: a changed file is itself a route file.
	for _, abs := range changedAbs {
		for _, route := range routesByFile[abs] {
			if _, ok := selected[route.ID]; !ok {
				route.Reason = DirectChange
				selected[route.ID] = route
			}
		}
	}

	// Transitive matches through the dependency graph.
	builder := depgraph.NewBuilder(a.repoRoot, a.provider, a.logger)
	depGraph, depWarnings, depErr := builder.Build(ctx, depgraph.BuildOptions{
		Includes: opts.Includes,
		Excludes: opts.Excludes,
	})
	result.Warnings = append(result.Warnings, depWarnings...)
	if depErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("dependency graph build failed, selection limited to direct matches: %v", depErr))
	} else {
		for _, abs := range changedAbs {
			for _, dependent := range depGraph.FindDependents(abs, opts.MaxDepth) {
				for _, route := range routesByFile[dependent] {
					if _, ok := selected[route.ID]; !ok {
						route.Reason = DependencyChange
						selected[route.ID] = route
					}
				}
			}
		}
	}

	for _, route := range selected {
		result.SelectedRoutes = append(result.SelectedRoutes, route)
	}
	sort.Slice(result.SelectedRoutes, func(i, j int) bool {
		return result.SelectedRoutes[i].ID < result.SelectedRoutes[j].ID
	})

	a.logger.Info("Impact analysis complete", map[string]interface{}{
		"changedFiles":   len(result.ChangedFiles),
		"selectedRoutes": len(result.SelectedRoutes),
	})

	return result, nil
}

// routeFiles maps canonical absolute file paths to the route nodes they back.
func (a *Analyzer) routeFiles(graph *interaction.Graph) map[string][]SelectedRoute {
	byFile := map[string][]SelectedRoute{}
	for _, node := range graph.Routes() {
		abs, err := paths.Canonicalize(paths.JoinRepo(a.repoRoot, node.File))
		if err != nil {
			continue
		}
		byFile[abs] = append(byFile[abs], SelectedRoute{ID: node.ID, File: node.File})
	}
	return byFile
}
