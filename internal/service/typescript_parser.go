package service

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// NewTypeScriptParser creates the TypeScript inventory parser. The grammar
// extends the JavaScript table with TypeScript-only declaration kinds.
func NewTypeScriptParser() (*TreeSitterParser, error) {
	grammar := javascriptGrammar()
	grammar.Classes["abstract_class_declaration"] = true
	grammar.Identifiers["type_identifier"] = true

	parser, err := NewTreeSitterParser("typescript", tree_sitter.NewLanguage(typescript.LanguageTypescript()), grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to create TypeScript parser: %w", err)
	}
	return parser, nil
}
