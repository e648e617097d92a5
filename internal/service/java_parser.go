package service

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// NewJavaParser creates the Java inventory parser
func NewJavaParser() (*TreeSitterParser, error) {
	grammar := Grammar{
		Imports: map[string]bool{"import_declaration": true},
		Functions: map[string]bool{
			"method_declaration":      true,
			"constructor_declaration": true,
		},
		Classes: map[string]bool{
			"class_declaration":     true,
			"interface_declaration": true,
			"enum_declaration":      true,
		},
		Conditionals: map[string]bool{
			"if_statement":       true,
			"switch_expression":  true,
			"ternary_expression": true,
		},
		Loops: map[string]bool{
			"for_statement":          true,
			"enhanced_for_statement": true,
			"while_statement":        true,
			"do_statement":           true,
		},
		Excepts:   map[string]bool{"catch_clause": true},
		Cases:     map[string]bool{"switch_block_statement_group": true},
		BoolOps:   map[string]bool{},
		BinaryOps: map[string]bool{"&&": true, "||": true},
		Calls: map[string]bool{
			"method_invocation":          true,
			"object_creation_expression": true,
		},
		Identifiers: map[string]bool{
			"identifier":      true,
			"type_identifier": true,
		},
		Unwrap: map[string]bool{},
		Comments: map[string]bool{
			"line_comment":  true,
			"block_comment": true,
		},
		ReturnKind: "return_statement",
		BasesField: "superclass",
	}

	parser, err := NewTreeSitterParser("java", tree_sitter.NewLanguage(java.Language()), grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to create Java parser: %w", err)
	}
	return parser, nil
}
