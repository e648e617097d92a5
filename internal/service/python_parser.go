package service

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// NewPythonParser creates the Python inventory parser
func NewPythonParser() (*TreeSitterParser, error) {
	grammar := Grammar{
		Imports: map[string]bool{
			"import_statement":        true,
			"import_from_statement":   true,
			"future_import_statement": true,
		},
		Functions: map[string]bool{"function_definition": true},
		Classes:   map[string]bool{"class_definition": true},
		Conditionals: map[string]bool{
			"if_statement":           true,
			"elif_clause":            true,
			"conditional_expression": true,
		},
		Loops: map[string]bool{
			"for_statement":   true,
			"while_statement": true,
			"for_in_clause":   true, // comprehension clauses branch like loops
		},
		Excepts:     map[string]bool{"except_clause": true},
		Cases:       map[string]bool{"case_clause": true},
		BoolOps:     map[string]bool{"boolean_operator": true},
		Calls:       map[string]bool{"call": true},
		Identifiers: map[string]bool{"identifier": true},
		Unwrap:      map[string]bool{"decorated_definition": true},
		Comments:    map[string]bool{"comment": true},
		ReturnKind:  "return_statement",
		BasesField:  "superclasses",
		HasDocstring: func(body *tree_sitter.Node, source []byte) bool {
			if body.NamedChildCount() == 0 {
				return false
			}
			first := body.NamedChild(0)
			if first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
				return false
			}
			return first.NamedChild(0).Kind() == "string"
		},
	}

	parser, err := NewTreeSitterParser("python", tree_sitter.NewLanguage(python.Language()), grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to create Python parser: %w", err)
	}
	return parser, nil
}
