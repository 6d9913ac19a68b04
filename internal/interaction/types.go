// Package interaction models the graph of navigable surfaces extracted from a
// web application: routes, modals, actions, and the edges between them.
package interaction

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the persisted graph document version. Readers reject
// documents with any other value.
const SchemaVersion = 1

// NodeKind identifies the kind of a surface node.
type NodeKind string

const (
	KindRoute  NodeKind = "route"
	KindModal  NodeKind = "modal"
	KindAction NodeKind = "action"
)

// EdgeKind identifies the kind of an interaction edge.
type EdgeKind string

const (
	EdgeNavigate  EdgeKind = "navigate"
	EdgeOpenModal EdgeKind = "open-modal"
	EdgeRunAction EdgeKind = "run-action"
)

// Node is a navigable surface. Routes carry Path and optionally Methods;
// modals and actions carry Name and use it as their id.
type Node struct {
	ID      string   `json:"id"`
	Kind    NodeKind `json:"kind"`
	File    string   `json:"file"`
	Path    string   `json:"path,omitempty"`
	Name    string   `json:"name,omitempty"`
	Methods []string `json:"methods,omitempty"`
}

// Edge connects a surface to a navigation target, modal, or action.
// Source is a provenance tag naming the literal pattern that produced the
// edge; it carries no graph semantics.
type Edge struct {
	Kind   EdgeKind `json:"kind"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	File   string   `json:"file"`
	Source string   `json:"source"`
}

// Stats aggregates graph contents. Counters accumulate as nodes and edges are
// appended; there is no separate aggregation pass.
type Stats struct {
	Routes      int `json:"routes"`
	Navigations int `json:"navigations"`
	Modals      int `json:"modals"`
	Actions     int `json:"actions"`
}

// Graph is the complete interaction graph for one extraction pass. It is
// append-only while being built and immutable once persisted.
type Graph struct {
	SchemaVersion int       `json:"schemaVersion"`
	GeneratedAt   time.Time `json:"generatedAt"`
	BuildSalt     string    `json:"buildSalt"`
	Nodes         []Node    `json:"nodes"`
	Edges         []Edge    `json:"edges"`
	Stats         Stats     `json:"stats"`
}

// NewGraph creates an empty graph. An empty buildSalt gets a fresh UUID so
// every graph can be correlated with the run that produced it.
func NewGraph(buildSalt string) *Graph {
	if buildSalt == "" {
		buildSalt = uuid.NewString()
	}
	return &Graph{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		BuildSalt:     buildSalt,
		Nodes:         []Node{},
		Edges:         []Edge{},
	}
}

// AddNode appends a node and bumps the matching stats counter.
func (g *Graph) AddNode(n Node) {
	g.Nodes = append(g.Nodes, n)
	switch n.Kind {
	case KindRoute:
		g.Stats.Routes++
	case KindModal:
		g.Stats.Modals++
	case KindAction:
		g.Stats.Actions++
	}
}

// AddEdge appends an edge and bumps the matching stats counter.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
	if e.Kind == EdgeNavigate {
		g.Stats.Navigations++
	}
}

// Routes returns the route nodes of the graph.
func (g *Graph) Routes() []Node {
	var routes []Node
	for _, n := range g.Nodes {
		if n.Kind == KindRoute {
			routes = append(routes, n)
		}
	}
	return routes
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
