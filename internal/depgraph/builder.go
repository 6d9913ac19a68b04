package depgraph

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"routelens/internal/logging"
	"routelens/internal/paths"
	"routelens/internal/syntax"
)

// candidateExtensions are tried, in order, when a specifier does not name a
// file directly.
var candidateExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".next":        true,
	".routelens":   true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// BuildOptions configures a dependency graph build.
type BuildOptions struct {
	Includes []string // glob patterns selecting files, e.g. "**/*.{ts,tsx}"
	Excludes []string // suffix or glob patterns removing files
}

// Builder constructs the dependency graph for a repository.
type Builder struct {
	repoRoot string
	provider syntax.Provider
	logger   *logging.Logger
}

// NewBuilder creates a builder rooted at repoRoot.
func NewBuilder(repoRoot string, provider syntax.Provider, logger *logging.Logger) *Builder {
	return &Builder{
		repoRoot: repoRoot,
		provider: provider,
		logger:   logger,
	}
}

// Build enumerates the included files, resolves each file's import and
// re-export specifiers, and returns the bidirectional graph plus per-file
// warnings. Unresolvable specifiers are dropped silently; unparsable files
// produce a warning and keep their (empty) graph entries.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (*Graph, []string, error) {
	if _, err := os.Stat(b.repoRoot); err != nil {
		return nil, nil, fmt.Errorf("repository root %s: %w", b.repoRoot, err)
	}

	files, err := b.enumerate(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate files: %w", err)
	}

	graph := NewGraph()
	for _, f := range files {
		graph.AddFile(f)
	}

	var warnings []string
	for _, file := range files {
		specs, err := b.provider.ImportSpecifiers(ctx, filepath.FromSlash(file))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		for _, spec := range specs {
			if target, ok := b.resolve(file, spec, graph.Files); ok {
				graph.AddEdge(file, target)
			}
		}
	}

	b.logger.Debug("Dependency graph built", map[string]interface{}{
		"files": len(graph.Files),
		"edges": graph.EdgeCount(),
	})

	return graph, warnings, nil
}

// enumerate returns the canonical absolute paths of all included files.
func (b *Builder) enumerate(opts BuildOptions) ([]string, error) {
	var files []string

	err := filepath.WalkDir(b.repoRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(b.repoRoot, p)
		if relErr != nil {
			return nil
		}
		rel = paths.Normalize(rel)

		if !matchesAny(opts.Includes, rel) || isExcluded(opts.Excludes, rel) {
			return nil
		}

		canonical, canonErr := paths.Canonicalize(p)
		if canonErr != nil {
			return nil
		}
		files = append(files, canonical)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// resolve maps a specifier from file to a concrete file in the included set.
// Only relative and root-anchored specifiers are considered; bare package
// specifiers fall outside the codebase and are ignored. Resolution tries the
// literal path, the literal path with each candidate extension, then an
// index-file variant under the literal path.
func (b *Builder) resolve(file, spec string, included map[string]bool) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		base = path.Join(path.Dir(file), spec)
	case strings.HasPrefix(spec, "/"):
		root, err := paths.Canonicalize(b.repoRoot)
		if err != nil {
			return "", false
		}
		base = path.Join(root, spec)
	default:
		return "", false
	}

	for _, candidate := range candidates(base) {
		if included[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// candidates expands a resolved base path into the ordered lookup list.
func candidates(base string) []string {
	list := []string{base}
	for _, ext := range candidateExtensions {
		list = append(list, base+ext)
	}
	for _, ext := range candidateExtensions {
		list = append(list, base+"/index"+ext)
	}
	return list
}

// matchesAny reports whether a normalized relative path matches any glob.
func matchesAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(paths.Normalize(glob), rel); ok {
			return true
		}
	}
	return false
}

// isExcluded applies exclude patterns: glob match, path suffix match, or
// directory prefix match against the normalized path.
func isExcluded(excludes []string, rel string) bool {
	for _, pattern := range excludes {
		normalized := paths.Normalize(pattern)

		if ok, _ := doublestar.Match(normalized, rel); ok {
			return true
		}
		if strings.HasSuffix(rel, normalized) {
			return true
		}
		dir := strings.TrimSuffix(normalized, "/") + "/"
		if strings.HasPrefix(rel, dir) || rel == strings.TrimSuffix(normalized, "/") {
			return true
		}
	}
	return false
}
