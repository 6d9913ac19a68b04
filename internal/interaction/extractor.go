package interaction

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"routelens/internal/logging"
	"routelens/internal/paths"
	"routelens/internal/syntax"
)

// httpMethods is the fixed vocabulary matched against exported symbol names
// on API handler files.
var httpMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
}

// skipDirs are never descended into during surface enumeration.
var skipDirs = map[string]bool{
	".git":         true,
	".next":        true,
	".routelens":   true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// edge-producing call suffixes
const (
	calleeNavigate  = ".navigate"
	calleeOpenModal = ".modal.open"
	calleeRunAction = ".action.run"
)

// Options configures an extraction pass.
type Options struct {
	SurfaceGlobs []string // page and API handler file patterns
	APIGlobs     []string // sub-pattern marking API handler files
	Roots        []string // prefixes stripped during route id derivation
	BuildSalt    string   // opaque correlation token, optional
}

// Extractor builds the interaction graph for one repository.
type Extractor struct {
	repoRoot string
	provider syntax.Provider
	logger   *logging.Logger
}

// NewExtractor creates a new extractor rooted at repoRoot.
func NewExtractor(repoRoot string, provider syntax.Provider, logger *logging.Logger) *Extractor {
	return &Extractor{
		repoRoot: repoRoot,
		provider: provider,
		logger:   logger,
	}
}

// Extract walks the surface files and produces the interaction graph plus
// non-fatal warnings. A single unparsable file never aborts the pass.
func (e *Extractor) Extract(ctx context.Context, opts Options) (*Graph, []string, error) {
	graph := NewGraph(opts.BuildSalt)
	var warnings []string

	files, err := e.enumerateSurfaces(opts.SurfaceGlobs)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate surface files: %w", err)
	}

	if len(files) == 0 {
		warnings = append(warnings, fmt.Sprintf("no surface files matched %v under %s", opts.SurfaceGlobs, e.repoRoot))
		return graph, warnings, nil
	}

	modalsSeen := make(map[string]bool)
	actionsSeen := make(map[string]bool)

	for _, rel := range files {
		if warning := e.extractFile(ctx, graph, rel, opts, modalsSeen, actionsSeen); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	e.logger.Info("Interaction graph extracted", map[string]interface{}{
		"routes":      graph.Stats.Routes,
		"navigations": graph.Stats.Navigations,
		"modals":      graph.Stats.Modals,
		"actions":     graph.Stats.Actions,
		"warnings":    len(warnings),
	})

	return graph, warnings, nil
}

// extractFile adds one surface file's nodes and edges to the graph. Any
// per-file failure is returned as a warning string.
func (e *Extractor) extractFile(ctx context.Context, graph *Graph, rel string, opts Options, modalsSeen, actionsSeen map[string]bool) string {
	abs := paths.JoinRepo(e.repoRoot, rel)
	routeID := DeriveRouteID(rel, opts.Roots)

	route := Node{
		ID:   routeID,
		Kind: KindRoute,
		File: rel,
		Path: routeID,
	}

	exported, exportErr := e.provider.ExportedNames(ctx, abs)
	if exportErr != nil {
		// Malformed or unreadable file: record and move on.
		return fmt.Sprintf("%s: %v", rel, exportErr)
	}

	if e.isAPIFile(rel, opts.APIGlobs, exported) {
		route.Methods = exportedMethods(exported)
	}
	graph.AddNode(route)

	attrs, err := e.provider.StringAttributes(ctx, abs, "to", "href")
	if err != nil {
		return fmt.Sprintf("%s: %v", rel, err)
	}
	for _, attr := range attrs {
		if !strings.HasPrefix(attr.Value, "/") {
			continue // external or relative target
		}
		graph.AddEdge(Edge{
			Kind:   EdgeNavigate,
			From:   routeID,
			To:     attr.Value,
			File:   rel,
			Source: "attr:" + attr.Name,
		})
	}

	calls, err := e.provider.CallExpressions(ctx, abs)
	if err != nil {
		return fmt.Sprintf("%s: %v", rel, err)
	}
	for _, call := range calls {
		if !call.ArgIsLit {
			continue // computed target, invisible by design
		}
		switch {
		case strings.HasSuffix(call.Callee, calleeNavigate):
			graph.AddEdge(Edge{
				Kind:   EdgeNavigate,
				From:   routeID,
				To:     call.Arg,
				File:   rel,
				Source: "call:navigate",
			})
		case strings.HasSuffix(call.Callee, calleeOpenModal):
			if !modalsSeen[call.Arg] {
				modalsSeen[call.Arg] = true
				graph.AddNode(Node{ID: call.Arg, Kind: KindModal, File: rel, Name: call.Arg})
			}
			graph.AddEdge(Edge{
				Kind:   EdgeOpenModal,
				From:   routeID,
				To:     call.Arg,
				File:   rel,
				Source: "call:modal.open",
			})
		case strings.HasSuffix(call.Callee, calleeRunAction):
			if !actionsSeen[call.Arg] {
				actionsSeen[call.Arg] = true
				graph.AddNode(Node{ID: call.Arg, Kind: KindAction, File: rel, Name: call.Arg})
			}
			graph.AddEdge(Edge{
				Kind:   EdgeRunAction,
				From:   routeID,
				To:     call.Arg,
				File:   rel,
				Source: "call:action.run",
			})
		}
	}

	return ""
}

// enumerateSurfaces returns repo-relative paths matching any surface glob,
// sorted for deterministic ordering of nodes and warnings.
func (e *Extractor) enumerateSurfaces(globs []string) ([]string, error) {
	var matched []string

	err := filepath.WalkDir(e.repoRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(e.repoRoot, p)
		if relErr != nil {
			return nil
		}
		rel = paths.Normalize(rel)

		for _, glob := range globs {
			if ok, _ := doublestar.Match(paths.Normalize(glob), rel); ok {
				matched = append(matched, rel)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matched)
	return matched, nil
}

// isAPIFile reports whether a surface file is an API handler, either by the
// configured sub-pattern or by exporting recognized HTTP method names.
func (e *Extractor) isAPIFile(rel string, apiGlobs []string, exported []string) bool {
	for _, glob := range apiGlobs {
		if ok, _ := doublestar.Match(paths.Normalize(glob), rel); ok {
			return true
		}
	}
	for _, name := range exported {
		if httpMethods[name] {
			return true
		}
	}
	return false
}

// exportedMethods filters exported names against the HTTP method vocabulary,
// defaulting to GET when none are recognized.
func exportedMethods(exported []string) []string {
	var methods []string
	for _, name := range exported {
		if httpMethods[name] {
			methods = append(methods, name)
		}
	}
	if len(methods) == 0 {
		return []string{"GET"}
	}
	sort.Strings(methods)
	return methods
}
