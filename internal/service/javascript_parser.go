package service

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// javascriptGrammar is shared by the JavaScript and TypeScript parsers
func javascriptGrammar() Grammar {
	return Grammar{
		Imports: map[string]bool{"import_statement": true},
		Functions: map[string]bool{
			"function_declaration":           true,
			"generator_function_declaration": true,
			"method_definition":              true,
		},
		Classes: map[string]bool{"class_declaration": true},
		Conditionals: map[string]bool{
			"if_statement":       true,
			"switch_statement":   true,
			"ternary_expression": true,
		},
		Loops: map[string]bool{
			"for_statement":    true,
			"for_in_statement": true,
			"while_statement":  true,
			"do_statement":     true,
		},
		Excepts:   map[string]bool{"catch_clause": true},
		Cases:     map[string]bool{"switch_case": true},
		BoolOps:   map[string]bool{},
		BinaryOps: map[string]bool{"&&": true, "||": true},
		Calls: map[string]bool{
			"call_expression": true,
			"new_expression":  true,
		},
		Identifiers: map[string]bool{
			"identifier":          true,
			"property_identifier": true,
		},
		Unwrap:     map[string]bool{"export_statement": true},
		Comments:   map[string]bool{"comment": true},
		ReturnKind: "return_statement",
	}
}

// NewJavaScriptParser creates the JavaScript inventory parser
func NewJavaScriptParser() (*TreeSitterParser, error) {
	parser, err := NewTreeSitterParser("javascript", tree_sitter.NewLanguage(javascript.Language()), javascriptGrammar())
	if err != nil {
		return nil, fmt.Errorf("failed to create JavaScript parser: %w", err)
	}
	return parser, nil
}
