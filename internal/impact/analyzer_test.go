package impact

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"routelens/internal/interaction"
	"routelens/internal/logging"
	"routelens/internal/syntax"
)

// chainProvider serves import specifiers keyed by file basename.
type chainProvider struct {
	imports map[string][]string
}

func (p *chainProvider) ImportSpecifiers(ctx context.Context, path string) ([]string, error) {
	return p.imports[filepath.Base(path)], nil
}

func (p *chainProvider) CallExpressions(ctx context.Context, path string) ([]syntax.Call, error) {
	return nil, nil
}

func (p *chainProvider) StringAttributes(ctx context.Context, path string, names ...string) ([]syntax.Attribute, error) {
	return nil, nil
}

func (p *chainProvider) ExportedNames(ctx context.Context, path string) ([]string, error) {
	return nil, nil
}

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// setupRepo builds a git repo with a route page importing lib/service, which
// imports lib/data. The second commit touches only lib/data.
func setupRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	runGit(t, root, "init", "-q")

	write(t, root, "app/orders/page.tsx", "export default function Page() {}\n")
	write(t, root, "lib/service.ts", "import { rows } from '../lib/data'\n")
	write(t, root, "lib/data.ts", "export const rows = []\n")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-q", "-m", "initial")

	write(t, root, "lib/data.ts", "export const rows = [1]\n")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-q", "-m", "change data")

	return root
}

// saveGraph persists an interaction graph with one route per file.
func saveGraph(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	graph := interaction.NewGraph("test-salt")
	for id, file := range files {
		graph.AddNode(interaction.Node{ID: id, Kind: interaction.KindRoute, File: file, Path: id})
	}
	path := filepath.Join(root, ".routelens", "interaction-graph.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := interaction.Save(graph, path); err != nil {
		t.Fatalf("save graph: %v", err)
	}
	return path
}

func defaultOptions(graphPath string) Options {
	return Options{
		GraphPath: graphPath,
		Includes:  []string{"**/*.ts", "**/*.tsx"},
	}
}

func TestAnalyzeSelectsTransitiveDependents(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	provider := &chainProvider{imports: map[string][]string{
		"page.tsx":   {"../../lib/service"},
		"service.ts": {"./data"},
	}}
	analyzer := NewAnalyzer(root, provider, quietLogger())

	result, err := analyzer.Analyze(context.Background(), defaultOptions(graphPath))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(result.ChangedFiles) != 1 || result.ChangedFiles[0] != "lib/data.ts" {
		t.Errorf("ChangedFiles = %v, want [lib/data.ts]", result.ChangedFiles)
	}
	if len(result.SelectedRoutes) != 1 {
		t.Fatalf("SelectedRoutes = %v, want the /orders route", result.SelectedRoutes)
	}
	route := result.SelectedRoutes[0]
	if route.ID != "/orders" || route.Reason != DependencyChange {
		t.Errorf("selected %+v, want /orders via dependency-change", route)
	}
}

func TestAnalyzeSelectsDirectChange(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	write(t, root, "app/orders/page.tsx", "export default function Page() { return null }\n")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-q", "-m", "change page")

	analyzer := NewAnalyzer(root, &chainProvider{}, quietLogger())
	result, err := analyzer.Analyze(context.Background(), defaultOptions(graphPath))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(result.SelectedRoutes) != 1 {
		t.Fatalf("SelectedRoutes = %v, want one route", result.SelectedRoutes)
	}
	if result.SelectedRoutes[0].Reason != DirectChange {
		t.Errorf("reason = %s, want direct-change", result.SelectedRoutes[0].Reason)
	}
}

func TestAnalyzeUnrelatedChangeSelectsNothing(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	write(t, root, "docs/notes.ts", "export const notes = true\n")
	runGit(t, root, "add", ".")
	runGit(t, root, "commit", "-q", "-m", "add notes")

	analyzer := NewAnalyzer(root, &chainProvider{}, quietLogger())
	result, err := analyzer.Analyze(context.Background(), defaultOptions(graphPath))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.SelectedRoutes) != 0 {
		t.Errorf("SelectedRoutes = %v, want none", result.SelectedRoutes)
	}
}

func TestAnalyzeExplicitRevisions(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	opts := defaultOptions(graphPath)
	opts.BaseRev = "HEAD~1"
	opts.HeadRev = "HEAD"

	provider := &chainProvider{imports: map[string][]string{
		"page.tsx":   {"../../lib/service"},
		"service.ts": {"./data"},
	}}
	analyzer := NewAnalyzer(root, provider, quietLogger())
	result, err := analyzer.Analyze(context.Background(), opts)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.SelectedRoutes) != 1 {
		t.Errorf("SelectedRoutes = %v, want one route", result.SelectedRoutes)
	}
}

func TestAnalyzeRejectsHostileRevision(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	opts := defaultOptions(graphPath)
	opts.BaseRev = "HEAD; rm -rf /"

	analyzer := NewAnalyzer(root, &chainProvider{}, quietLogger())
	if _, err := analyzer.Analyze(context.Background(), opts); err == nil {
		t.Fatal("expected error for revision with shell metacharacters")
	}
}

func TestAnalyzeUnresolvableRevision(t *testing.T) {
	root := setupRepo(t)
	graphPath := saveGraph(t, root, map[string]string{"/orders": "app/orders/page.tsx"})

	opts := defaultOptions(graphPath)
	opts.BaseRev = "no-such-branch"

	analyzer := NewAnalyzer(root, &chainProvider{}, quietLogger())
	if _, err := analyzer.Analyze(context.Background(), opts); err == nil {
		t.Fatal("expected error for unresolvable revision")
	}
}

func TestAnalyzeMissingRoot(t *testing.T) {
	analyzer := NewAnalyzer(filepath.Join(t.TempDir(), "missing"), &chainProvider{}, quietLogger())
	if _, err := analyzer.Analyze(context.Background(), Options{GraphPath: "unused"}); err == nil {
		t.Fatal("expected error for missing repository root")
	}
}
