package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// validTiers is the closed assertion-tier vocabulary. The tiers themselves
// are opaque to the engine; only the policy file and config choose them.
var validTiers = map[string]bool{"L0": true, "L1": true, "L2": true, "L3": true}

// TierRule assigns an assertion tier to every route under a path prefix.
type TierRule struct {
	Prefix string `toml:"prefix"`
	Tier   string `toml:"tier"`
}

// TierPolicy maps route paths to assertion tiers stored in tiers.toml.
type TierPolicy struct {
	Default string     `toml:"default,omitempty"`
	Rules   []TierRule `toml:"rule"`
}

// LoadTierPolicy reads a tier policy file. A missing file is not an error;
// it yields an empty policy so the configured default tier applies.
func LoadTierPolicy(path string) (*TierPolicy, error) {
	var policy TierPolicy
	if _, err := toml.DecodeFile(path, &policy); err != nil {
		if os.IsNotExist(err) {
			return &TierPolicy{}, nil
		}
		return nil, fmt.Errorf("failed to parse tier policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &policy, nil
}

// Validate checks that every tier named in the policy is known.
func (p *TierPolicy) Validate() error {
	if p.Default != "" && !validTiers[p.Default] {
		return fmt.Errorf("unknown default tier %q", p.Default)
	}
	for _, rule := range p.Rules {
		if !validTiers[rule.Tier] {
			return fmt.Errorf("unknown tier %q for prefix %q", rule.Tier, rule.Prefix)
		}
		if !strings.HasPrefix(rule.Prefix, "/") {
			return fmt.Errorf("tier rule prefix %q must start with /", rule.Prefix)
		}
	}
	return nil
}

// TierFor returns the assertion tier for a route path: the longest matching
// rule prefix wins, then the policy default, then fallback.
func (p *TierPolicy) TierFor(routePath, fallback string) string {
	rules := make([]TierRule, len(p.Rules))
	copy(rules, p.Rules)
	sort.Slice(rules, func(i, j int) bool {
		return len(rules[i].Prefix) > len(rules[j].Prefix)
	})

	for _, rule := range rules {
		if prefixMatches(routePath, rule.Prefix) {
			return rule.Tier
		}
	}
	if p.Default != "" {
		return p.Default
	}
	return fallback
}

// prefixMatches tests a path prefix on path-segment boundaries, so /order
// does not capture /orders.
func prefixMatches(routePath, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if routePath == prefix {
		return true
	}
	return strings.HasPrefix(routePath, prefix+"/")
}
