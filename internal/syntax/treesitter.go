//go:build cgo

package syntax

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TreeSitterProvider implements Provider using tree-sitter grammars for
// JavaScript, TypeScript and TSX. Instances are request-scoped: each caller
// owns its parser, so there is no shared mutable state.
type TreeSitterProvider struct {
	parser *sitter.Parser
}

// NewProvider creates the default syntax provider.
func NewProvider() Provider {
	return &TreeSitterProvider{
		parser: sitter.NewParser(),
	}
}

// Available reports whether a real parser is compiled in.
func Available() bool {
	return true
}

func grammarFor(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// parse reads and parses a file, returning the root node and source bytes.
func (p *TreeSitterProvider) parse(ctx context.Context, path string) (*sitter.Node, []byte, error) {
	lang, ok := LanguageForPath(path)
	if !ok {
		return nil, nil, fmt.Errorf("no grammar for %s", path)
	}
	grammar, err := grammarFor(lang)
	if err != nil {
		return nil, nil, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	p.parser.SetLanguage(grammar)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return tree.RootNode(), source, nil
}

// ImportSpecifiers returns import and re-export specifiers.
func (p *TreeSitterProvider) ImportSpecifiers(ctx context.Context, path string) ([]string, error) {
	root, source, err := p.parse(ctx, path)
	if err != nil {
		return nil, err
	}

	var specs []string
	for _, node := range findNodes(root, "import_statement", "export_statement") {
		src := node.ChildByFieldName("source")
		if src == nil {
			continue // export without re-export source
		}
		if value, ok := stringLiteral(src, source); ok {
			specs = append(specs, value)
		}
	}
	return specs, nil
}

// CallExpressions returns every call expression with its callee text and,
// when the first argument is a plain string literal, that literal value.
func (p *TreeSitterProvider) CallExpressions(ctx context.Context, path string) ([]Call, error) {
	root, source, err := p.parse(ctx, path)
	if err != nil {
		return nil, err
	}

	var calls []Call
	for _, node := range findNodes(root, "call_expression") {
		fn := node.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		call := Call{Callee: text(fn, source)}

		if args := node.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
			if value, ok := stringLiteral(args.NamedChild(0), source); ok {
				call.Arg = value
				call.ArgIsLit = true
			}
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// StringAttributes returns JSX attributes with the given names whose values
// are plain string literals. Computed values (jsx expressions, template
// strings) are skipped.
func (p *TreeSitterProvider) StringAttributes(ctx context.Context, path string, names ...string) ([]Attribute, error) {
	root, source, err := p.parse(ctx, path)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var attrs []Attribute
	for _, node := range findNodes(root, "jsx_attribute") {
		var name string
		var value string
		var isLit bool
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "property_identifier":
				name = text(child, source)
			case "string":
				value, isLit = stringLiteral(child, source)
			}
		}
		if isLit && wanted[name] {
			attrs = append(attrs, Attribute{Name: name, Value: value})
		}
	}
	return attrs, nil
}

// ExportedNames returns the names bound by a file's export statements.
func (p *TreeSitterProvider) ExportedNames(ctx context.Context, path string) ([]string, error) {
	root, source, err := p.parse(ctx, path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, node := range findNodes(root, "export_statement") {
		if node.ChildByFieldName("source") != nil {
			continue // re-export, names belong to the other file
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "function_declaration", "generator_function_declaration", "class_declaration":
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					names = append(names, text(nameNode, source))
				}
			case "lexical_declaration", "variable_declaration":
				for _, decl := range findNodes(child, "variable_declarator") {
					if nameNode := decl.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
						names = append(names, text(nameNode, source))
					}
				}
			case "export_clause":
				for _, spec := range findNodes(child, "export_specifier") {
					if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
						names = append(names, text(nameNode, source))
					}
				}
			}
		}
	}
	return names, nil
}

// stringLiteral extracts the value of a plain string literal node. Template
// strings and any other computed expression report false.
func stringLiteral(node *sitter.Node, source []byte) (string, bool) {
	if node == nil || node.Type() != "string" {
		return "", false
	}
	raw := text(node, source)
	if len(raw) < 2 {
		return "", false
	}
	quote := raw[0]
	if (quote != '\'' && quote != '"') || raw[len(raw)-1] != quote {
		return "", false
	}
	return raw[1 : len(raw)-1], true
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// findNodes collects all descendants of the given types in document order.
func findNodes(root *sitter.Node, types ...string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		nodeType := node.Type()
		for _, t := range types {
			if nodeType == t {
				result = append(result, node)
				break
			}
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(root)
	return result
}
