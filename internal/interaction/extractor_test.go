package interaction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"routelens/internal/logging"
	"routelens/internal/syntax"
)

// fakeProvider serves canned syntax facts keyed by file basename, so
// extractor behavior is testable without a cgo parser.
type fakeProvider struct {
	exports map[string][]string
	attrs   map[string][]syntax.Attribute
	calls   map[string][]syntax.Call
	fail    map[string]error
}

func (f *fakeProvider) key(path string) string { return filepath.Base(path) }

func (f *fakeProvider) ImportSpecifiers(ctx context.Context, path string) ([]string, error) {
	if err := f.fail[f.key(path)]; err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeProvider) CallExpressions(ctx context.Context, path string) ([]syntax.Call, error) {
	if err := f.fail[f.key(path)]; err != nil {
		return nil, err
	}
	return f.calls[f.key(path)], nil
}

func (f *fakeProvider) StringAttributes(ctx context.Context, path string, names ...string) ([]syntax.Attribute, error) {
	if err := f.fail[f.key(path)]; err != nil {
		return nil, err
	}
	return f.attrs[f.key(path)], nil
}

func (f *fakeProvider) ExportedNames(ctx context.Context, path string) ([]string, error) {
	if err := f.fail[f.key(path)]; err != nil {
		return nil, err
	}
	return f.exports[f.key(path)], nil
}

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
}

func writeSurface(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte("export default function Page() {}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func defaultOpts() Options {
	return Options{
		SurfaceGlobs: []string{"app/**/page.tsx", "app/**/route.ts"},
		APIGlobs:     []string{"**/route.ts"},
		Roots:        []string{"app"},
		BuildSalt:    "test-salt",
	}
}

func TestExtractRoutesAndEdges(t *testing.T) {
	root := t.TempDir()
	writeSurface(t, root, "app/page.tsx")
	writeSurface(t, root, "app/about/page.tsx")

	provider := &fakeProvider{
		attrs: map[string][]syntax.Attribute{
			"page.tsx": {{Name: "href", Value: "/about"}},
		},
		calls: map[string][]syntax.Call{
			"page.tsx": {
				{Callee: "ui.modal.open", Arg: "confirm-delete", ArgIsLit: true},
				{Callee: "tasks.action.run", Arg: "sync-user", ArgIsLit: true},
				{Callee: "router.navigate", ArgIsLit: false}, // computed target
			},
		},
		exports: map[string][]string{},
	}

	graph, warnings, err := NewExtractor(root, provider, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if graph.Stats.Routes != 2 {
		t.Errorf("routes = %d, want 2", graph.Stats.Routes)
	}
	if !graph.HasNode("/") || !graph.HasNode("/about") {
		t.Errorf("missing route nodes: %+v", graph.Nodes)
	}
	if !graph.HasNode("confirm-delete") || !graph.HasNode("sync-user") {
		t.Errorf("missing modal/action nodes: %+v", graph.Nodes)
	}

	// Canned attrs are keyed by basename, so both page.tsx files produce the
	// href edge. The computed navigate call must produce none.
	navigates := 0
	for _, e := range graph.Edges {
		if e.Kind == EdgeNavigate {
			navigates++
			if e.To != "/about" {
				t.Errorf("unexpected navigate target %q", e.To)
			}
		}
	}
	if navigates != 2 {
		t.Errorf("navigate edges = %d, want 2 (one per page file, none for computed)", navigates)
	}
	if graph.Stats.Navigations != navigates {
		t.Errorf("stats.navigations = %d, want %d", graph.Stats.Navigations, navigates)
	}
}

func TestExtractAPIRouteMethods(t *testing.T) {
	root := t.TempDir()
	writeSurface(t, root, "app/api/users/route.ts")
	writeSurface(t, root, "app/api/health/route.ts")

	provider := &fakeProvider{
		exports: map[string][]string{
			"route.ts": {"GET", "POST", "helper"},
		},
	}
	graph, _, err := NewExtractor(root, provider, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for _, n := range graph.Routes() {
		if len(n.Methods) != 2 || n.Methods[0] != "GET" || n.Methods[1] != "POST" {
			t.Errorf("route %s methods = %v, want [GET POST]", n.ID, n.Methods)
		}
	}
}

func TestExtractAPIRouteDefaultsToGET(t *testing.T) {
	root := t.TempDir()
	writeSurface(t, root, "app/api/ping/route.ts")

	provider := &fakeProvider{exports: map[string][]string{"route.ts": {"handler"}}}
	graph, _, err := NewExtractor(root, provider, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	routes := graph.Routes()
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	if len(routes[0].Methods) != 1 || routes[0].Methods[0] != "GET" {
		t.Errorf("methods = %v, want [GET]", routes[0].Methods)
	}
}

func TestExtractZeroMatchesWarns(t *testing.T) {
	root := t.TempDir()

	graph, warnings, err := NewExtractor(root, &fakeProvider{}, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("Extract should not fail on zero matches: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", len(graph.Nodes), len(graph.Edges))
	}
}

func TestExtractBadFileContinues(t *testing.T) {
	root := t.TempDir()
	writeSurface(t, root, "app/broken/page.tsx")
	writeSurface(t, root, "app/api/ok/route.ts")

	provider := &fakeProvider{
		fail: map[string]error{"page.tsx": errors.New("unexpected token")},
	}

	graph, warnings, err := NewExtractor(root, provider, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("one bad file must not abort extraction: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "app/broken/page.tsx") {
		t.Errorf("warnings = %v, want one referencing the broken file", warnings)
	}
	if !graph.HasNode("/api/ok") {
		t.Errorf("good file should still be extracted: %+v", graph.Nodes)
	}
}

func TestExtractSkipsNodeModules(t *testing.T) {
	root := t.TempDir()
	writeSurface(t, root, "app/page.tsx")
	writeSurface(t, root, "node_modules/pkg/app/page.tsx")

	graph, _, err := NewExtractor(root, &fakeProvider{}, quietLogger()).Extract(context.Background(), defaultOpts())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if graph.Stats.Routes != 1 {
		t.Errorf("routes = %d, want 1 (node_modules excluded)", graph.Stats.Routes)
	}
}
