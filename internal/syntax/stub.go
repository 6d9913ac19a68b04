//go:build !cgo

package syntax

import (
	"context"

	rlerrors "routelens/internal/errors"
)

// stubProvider is compiled when cgo is disabled. Every operation fails with
// PARSER_UNAVAILABLE so callers surface the condition instead of silently
// producing empty graphs.
type stubProvider struct{}

// NewProvider creates the default syntax provider.
func NewProvider() Provider {
	return stubProvider{}
}

// Available reports whether a real parser is compiled in.
func Available() bool {
	return false
}

func (stubProvider) err() error {
	return rlerrors.New(rlerrors.ParserUnavailable, "tree-sitter requires cgo; rebuild with CGO_ENABLED=1", nil)
}

func (s stubProvider) ImportSpecifiers(ctx context.Context, path string) ([]string, error) {
	return nil, s.err()
}

func (s stubProvider) CallExpressions(ctx context.Context, path string) ([]Call, error) {
	return nil, s.err()
}

func (s stubProvider) StringAttributes(ctx context.Context, path string, names ...string) ([]Attribute, error) {
	return nil, s.err()
}

func (s stubProvider) ExportedNames(ctx context.Context, path string) ([]string, error) {
	return nil, s.err()
}
