// Package syntax defines the parser capability the engine consumes.
//
// The engine never walks syntax trees itself: it asks a Provider for import
// specifiers, call expressions, string-literal attribute values, and exported
// symbol names. Any parser exposing those four operations is swappable.
package syntax

import (
	"context"
	"path/filepath"
	"strings"
)

// Call is a call expression with an optionally literal first argument.
type Call struct {
	Callee   string // full callee text, e.g. "router.navigate"
	Arg      string // first argument when it is a plain string literal
	ArgIsLit bool   // false when the first argument is computed or absent
}

// Attribute is a string-literal attribute occurrence, e.g. href="/about".
// Attributes whose value is computed are never reported.
type Attribute struct {
	Name  string
	Value string
}

// Provider exposes the syntactic facts the engine needs from a source file.
type Provider interface {
	// ImportSpecifiers returns the import and re-export specifiers of a file.
	ImportSpecifiers(ctx context.Context, path string) ([]string, error)
	// CallExpressions returns all call expressions in a file.
	CallExpressions(ctx context.Context, path string) ([]Call, error)
	// StringAttributes returns attributes with the given names whose values
	// are plain string literals.
	StringAttributes(ctx context.Context, path string, names ...string) ([]Attribute, error)
	// ExportedNames returns the names of a file's exported symbols.
	ExportedNames(ctx context.Context, path string) ([]string, error)
}

// Language identifies a supported grammar.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LanguageForPath maps a file path to its grammar by extension.
func LanguageForPath(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}
