// Package scenario turns interaction routes into test scenario descriptors
// for an external test generator.
package scenario

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"routelens/internal/interaction"
)

// Scenario kinds.
const (
	KindRouteSmoke = "route-smoke"
	KindAPISmoke   = "api-smoke"
)

// Scenario is one test descriptor. The assertion tier passes through to the
// generator untouched.
type Scenario struct {
	ID            string   `json:"id" yaml:"id"`
	Kind          string   `json:"kind" yaml:"kind"`
	Route         string   `json:"route" yaml:"route"`
	Methods       []string `json:"methods,omitempty" yaml:"methods,omitempty"`
	AssertionTier string   `json:"assertionTier" yaml:"assertionTier"`
}

// Options configures scenario generation.
type Options struct {
	APIPrefix   string // route paths under this prefix become api-smoke
	DefaultTier string
	Policy      *TierPolicy // nil means no policy file
	RouteIDs    []string    // restrict to these routes; nil means all
}

// Generate produces one scenario per route node, sorted by route id.
func Generate(graph *interaction.Graph, opts Options) []Scenario {
	var filter map[string]bool
	if opts.RouteIDs != nil {
		filter = make(map[string]bool, len(opts.RouteIDs))
		for _, id := range opts.RouteIDs {
			filter[id] = true
		}
	}

	policy := opts.Policy
	if policy == nil {
		policy = &TierPolicy{}
	}

	var scenarios []Scenario
	for _, route := range graph.Routes() {
		if filter != nil && !filter[route.ID] {
			continue
		}

		kind := KindRouteSmoke
		if isAPI(route, opts.APIPrefix) {
			kind = KindAPISmoke
		}

		scenarios = append(scenarios, Scenario{
			ID:            scenarioID(kind, route.ID),
			Kind:          kind,
			Route:         route.ID,
			Methods:       route.Methods,
			AssertionTier: policy.TierFor(route.ID, opts.DefaultTier),
		})
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Route < scenarios[j].Route
	})
	return scenarios
}

// isAPI reports whether a route is an API surface: under the API prefix, or
// carrying recorded HTTP methods.
func isAPI(route interaction.Node, apiPrefix string) bool {
	if len(route.Methods) > 0 {
		return true
	}
	if apiPrefix == "" {
		return false
	}
	return route.ID == apiPrefix || strings.HasPrefix(route.ID, apiPrefix+"/")
}

// scenarioID derives a stable descriptor id from the kind and route path.
func scenarioID(kind, routeID string) string {
	slug := strings.Trim(routeID, "/")
	if slug == "" {
		slug = "root"
	}
	slug = strings.ReplaceAll(slug, "/", "-")
	return fmt.Sprintf("%s:%s", kind, slug)
}

// MarshalJSON renders scenarios as an indented JSON array.
func MarshalJSON(scenarios []Scenario) ([]byte, error) {
	if scenarios == nil {
		scenarios = []Scenario{}
	}
	return json.MarshalIndent(scenarios, "", "  ")
}

// MarshalYAML renders scenarios as a YAML document.
func MarshalYAML(scenarios []Scenario) ([]byte, error) {
	return yaml.Marshal(scenarios)
}
