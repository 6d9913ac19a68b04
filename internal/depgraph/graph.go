// Package depgraph builds and traverses the file-level dependency graph of a
// source tree, derived from statically resolvable import relationships.
package depgraph

import "sort"

// Graph is a bidirectional file dependency graph. Dependents is maintained as
// the exact transpose of Dependencies: for all files a,b,
// b ∈ Dependencies[a] ⟺ a ∈ Dependents[b]. Every file in Files has an entry
// (possibly empty) in both maps. Cycles are legal.
//
// File identity is a canonicalized, slash-normalized absolute path.
type Graph struct {
	Dependencies map[string]map[string]bool
	Dependents   map[string]map[string]bool
	Files        map[string]bool
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		Dependencies: make(map[string]map[string]bool),
		Dependents:   make(map[string]map[string]bool),
		Files:        make(map[string]bool),
	}
}

// AddFile seeds entries for a file in all three maps.
func (g *Graph) AddFile(file string) {
	if g.Files[file] {
		return
	}
	g.Files[file] = true
	g.Dependencies[file] = make(map[string]bool)
	g.Dependents[file] = make(map[string]bool)
}

// AddEdge records that source depends on target, updating both directions in
// the same step to preserve the transpose invariant.
func (g *Graph) AddEdge(source, target string) {
	g.AddFile(source)
	g.AddFile(target)
	g.Dependencies[source][target] = true
	g.Dependents[target][source] = true
}

// FileList returns the files of the graph in sorted order.
func (g *Graph) FileList() []string {
	files := make([]string, 0, len(g.Files))
	for f := range g.Files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// EdgeCount returns the number of dependency edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, deps := range g.Dependencies {
		count += len(deps)
	}
	return count
}
