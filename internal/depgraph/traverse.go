package depgraph

import "sort"

// FindDependents returns every file that depends on start, directly or
// transitively, up to maxDepth hops. maxDepth <= 0 means unlimited. The
// traversal is breadth-first, so each file is reported at its shortest
// distance from start and the result for depth n is always a subset of the
// result for depth n+1. The start file itself appears (once) only when a
// cycle leads back to it.
func (g *Graph) FindDependents(start string, maxDepth int) []string {
	return g.traverse(start, maxDepth, g.Dependents)
}

// FindDependencies returns every file that start depends on, directly or
// transitively, up to maxDepth hops. maxDepth <= 0 means unlimited.
func (g *Graph) FindDependencies(start string, maxDepth int) []string {
	return g.traverse(start, maxDepth, g.Dependencies)
}

func (g *Graph) traverse(start string, maxDepth int, edges map[string]map[string]bool) []string {
	// visited controls expansion; reported controls the result. They differ
	// only for the start file, which is reported when first reached through
	// an edge but never expanded twice.
	visited := map[string]bool{start: true}
	reported := map[string]bool{}
	var result []string

	type item struct {
		file  string
		depth int
	}
	queue := []item{{start, 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && current.depth >= maxDepth {
			continue
		}
		for neighbor := range edges[current.file] {
			if !reported[neighbor] {
				reported[neighbor] = true
				result = append(result, neighbor)
			}
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			queue = append(queue, item{neighbor, current.depth + 1})
		}
	}

	sort.Strings(result)
	return result
}

// DetectCircularDependencies finds import cycles and returns each as a file
// path sequence where the first and last element are the same file. Start
// nodes are visited in sorted order so the output is deterministic.
func (g *Graph) DetectCircularDependencies() [][]string {
	var cycles [][]string
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string

	var visit func(file string)
	visit = func(file string) {
		visited[file] = true
		onStack[file] = true
		stack = append(stack, file)

		targets := make([]string, 0, len(g.Dependencies[file]))
		for t := range g.Dependencies[file] {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		for _, target := range targets {
			if onStack[target] {
				// Slice the current path from the revisited node to
				// close the cycle.
				for i, f := range stack {
					if f == target {
						cycle := make([]string, 0, len(stack)-i+1)
						cycle = append(cycle, stack[i:]...)
						cycle = append(cycle, target)
						cycles = append(cycles, cycle)
						break
					}
				}
				continue
			}
			if !visited[target] {
				visit(target)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[file] = false
	}

	for _, file := range g.FileList() {
		if !visited[file] {
			visit(file)
		}
	}
	return cycles
}
