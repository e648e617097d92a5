package service

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// NewGoParser creates the Go inventory parser. Go has no classes, so every
// declaration lands in the free-function inventory.
func NewGoParser() (*TreeSitterParser, error) {
	grammar := Grammar{
		Imports: map[string]bool{"import_declaration": true},
		Functions: map[string]bool{
			"function_declaration": true,
			"method_declaration":   true,
		},
		Classes: map[string]bool{},
		Conditionals: map[string]bool{
			"if_statement":                true,
			"expression_switch_statement": true,
			"type_switch_statement":       true,
			"select_statement":            true,
		},
		Loops:   map[string]bool{"for_statement": true},
		Excepts: map[string]bool{},
		Cases: map[string]bool{
			"expression_case":    true,
			"type_case":          true,
			"communication_case": true,
		},
		BoolOps:   map[string]bool{},
		BinaryOps: map[string]bool{"&&": true, "||": true},
		Calls:     map[string]bool{"call_expression": true},
		Identifiers: map[string]bool{
			"identifier":      true,
			"type_identifier": true,
		},
		Unwrap:     map[string]bool{},
		Comments:   map[string]bool{"comment": true},
		ReturnKind: "return_statement",
	}

	parser, err := NewTreeSitterParser("go", tree_sitter.NewLanguage(golang.Language()), grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to create Go parser: %w", err)
	}
	return parser, nil
}
