package interaction

import "testing"

func TestDeriveRouteID(t *testing.T) {
	roots := []string{"src/app", "src/pages", "app", "pages"}

	cases := []struct {
		rel  string
		want string
	}{
		{"app/page.tsx", "/"},
		{"app/about/page.tsx", "/about"},
		{"app/blog/posts/page.tsx", "/blog/posts"},
		{"app/api/users/route.ts", "/api/users"},
		{"src/app/settings/page.tsx", "/settings"},
		{"pages/index.tsx", "/"},
		{"pages/about.tsx", "/about"},
		{"pages/docs/index.tsx", "/docs"},
		{"pages/docs/install.tsx", "/docs/install"},
	}
	for _, c := range cases {
		if got := DeriveRouteID(c.rel, roots); got != c.want {
			t.Errorf("DeriveRouteID(%q) = %q, want %q", c.rel, got, c.want)
		}
	}
}

func TestDeriveRouteIDSeparatorNormalization(t *testing.T) {
	roots := []string{"app"}
	forward := DeriveRouteID("app/blog/page.tsx", roots)
	backward := DeriveRouteID(`app\blog\page.tsx`, roots)
	if forward != backward {
		t.Errorf("separator styles disagree: %q vs %q", forward, backward)
	}
	if forward != "/blog" {
		t.Errorf("DeriveRouteID = %q, want /blog", forward)
	}
}

func TestDeriveRouteIDIdempotent(t *testing.T) {
	roots := []string{"app"}
	// Deriving twice from the same input must be stable
	first := DeriveRouteID("app/team/page.tsx", roots)
	second := DeriveRouteID("app/team/page.tsx", roots)
	if first != second {
		t.Errorf("derivation not deterministic: %q vs %q", first, second)
	}
}

func TestGraphStatsAccumulate(t *testing.T) {
	g := NewGraph("salt-1")
	if g.BuildSalt != "salt-1" {
		t.Errorf("BuildSalt = %q, want salt-1", g.BuildSalt)
	}

	g.AddNode(Node{ID: "/", Kind: KindRoute, File: "app/page.tsx"})
	g.AddNode(Node{ID: "confirm", Kind: KindModal, Name: "confirm"})
	g.AddNode(Node{ID: "save", Kind: KindAction, Name: "save"})
	g.AddEdge(Edge{Kind: EdgeNavigate, From: "/", To: "/about"})
	g.AddEdge(Edge{Kind: EdgeOpenModal, From: "/", To: "confirm"})

	if g.Stats.Routes != 1 || g.Stats.Modals != 1 || g.Stats.Actions != 1 {
		t.Errorf("node stats = %+v", g.Stats)
	}
	if g.Stats.Navigations != 1 {
		t.Errorf("navigations = %d, want 1", g.Stats.Navigations)
	}
}

func TestNewGraphDefaultSalt(t *testing.T) {
	g := NewGraph("")
	if g.BuildSalt == "" {
		t.Error("expected a generated build salt")
	}
	if g.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", g.SchemaVersion, SchemaVersion)
	}
}
