package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"paperbot-go/internal/model/code"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser extracts a structural inventory from normalized source text
type Parser interface {
	// Language returns the language identifier this parser handles
	Language() string

	// Parse builds the entity inventory for one source unit.
	// Returns *MalformedSourceError when the source cannot be parsed at all.
	Parse(ctx context.Context, source []byte) (*code.Inventory, error)
}

// ParserRegistry manages the available language parsers
type ParserRegistry struct {
	parsers map[string]Parser
	mu      sync.RWMutex
}

// NewParserRegistry creates an empty parser registry
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{
		parsers: make(map[string]Parser),
	}
}

// Register adds a parser to the registry
func (r *ParserRegistry) Register(parser Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[parser.Language()] = parser
}

// Get retrieves a parser by language
func (r *ParserRegistry) Get(language string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parser, ok := r.parsers[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	return parser, nil
}

// Languages returns the registered language identifiers, sorted
func (r *ParserRegistry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	languages := make([]string, 0, len(r.parsers))
	for lang := range r.parsers {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

// Grammar maps the node kinds and field names of one tree-sitter grammar
// onto the concepts the inventory walker extracts. Adding a language means
// adding a table, not a new walker.
type Grammar struct {
	Imports      map[string]bool
	Functions    map[string]bool
	Classes      map[string]bool
	Conditionals map[string]bool
	Loops        map[string]bool
	Excepts      map[string]bool
	Cases        map[string]bool
	BoolOps      map[string]bool // node kinds that are boolean operators themselves
	BinaryOps    map[string]bool // operator texts on binary_expression nodes
	Calls        map[string]bool
	Identifiers  map[string]bool
	Unwrap       map[string]bool // wrapper kinds scanned in place (decorators, exports)
	Comments     map[string]bool
	ReturnKind   string
	BasesField   string // field holding base classes on a class node

	// HasDocstring reports whether a definition body starts with a
	// documentation string. Nil means the language uses leading comments.
	HasDocstring func(body *tree_sitter.Node, source []byte) bool
}

// TreeSitterParser is a grammar-table-driven Parser over a tree-sitter
// language. The embedded parser is guarded by a mutex because tree-sitter
// parsers are not thread-safe.
type TreeSitterParser struct {
	language string
	parser   *tree_sitter.Parser
	grammar  Grammar
	mu       sync.Mutex
}

// NewTreeSitterParser wires a tree-sitter language and its grammar table
func NewTreeSitterParser(language string, tsLang *tree_sitter.Language, grammar Grammar) (*TreeSitterParser, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", language, err)
	}
	return &TreeSitterParser{
		language: language,
		parser:   parser,
		grammar:  grammar,
	}, nil
}

func (p *TreeSitterParser) Language() string {
	return p.language
}

// Parse builds the inventory for one source unit
func (p *TreeSitterParser) Parse(ctx context.Context, source []byte) (*code.Inventory, error) {
	p.mu.Lock()
	tree := p.parser.Parse(source, nil)
	p.mu.Unlock()

	if tree == nil {
		return nil, &MalformedSourceError{Language: p.language, Msg: "parser produced no syntax tree"}
	}
	defer tree.Close()

	root := tree.RootNode()

	// Errors outside any function body are fatal; errors inside a body
	// degrade that body to baseline complexity instead.
	if root.HasError() {
		if errNode := p.findFatalError(root); errNode != nil {
			pt := errNode.StartPosition()
			return nil, &MalformedSourceError{
				Language: p.language,
				Line:     int(pt.Row) + 1,
				Column:   int(pt.Column) + 1,
				Msg:      "unparseable syntax",
			}
		}
	}

	inv := &code.Inventory{Language: p.language}
	countFileMetrics(inv, source)
	p.walkScope(root, source, inv, nil)

	return inv, nil
}

// findFatalError locates the first ERROR node that is not inside a
// function or class body
func (p *TreeSitterParser) findFatalError(node *tree_sitter.Node) *tree_sitter.Node {
	if node.Kind() == "ERROR" {
		return node
	}
	if !node.HasError() {
		return nil
	}
	if p.grammar.Functions[node.Kind()] {
		return nil // degraded, not fatal
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := p.findFatalError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// walkScope scans the statements of a module or class body. owner is nil
// at module level and the enclosing class otherwise.
func (p *TreeSitterParser) walkScope(scope *tree_sitter.Node, source []byte, inv *code.Inventory, owner *code.ClassInfo) {
	for i := uint(0); i < scope.NamedChildCount(); i++ {
		child := scope.NamedChild(i)
		kind := child.Kind()

		switch {
		case p.grammar.Unwrap[kind]:
			p.walkScope(child, source, inv, owner)
		case p.grammar.Imports[kind]:
			if owner == nil {
				inv.ImportCount++
			}
		case p.grammar.Functions[kind]:
			fn := p.extractFunction(child, source, owner)
			if owner != nil {
				owner.Methods = append(owner.Methods, fn)
			} else {
				inv.Functions = append(inv.Functions, fn)
			}
		case p.grammar.Classes[kind]:
			if owner == nil {
				inv.Classes = append(inv.Classes, p.extractClass(child, source, inv))
			}
		}
	}
}

func (p *TreeSitterParser) extractClass(node *tree_sitter.Node, source []byte, inv *code.Inventory) *code.ClassInfo {
	cls := &code.ClassInfo{
		Name:      p.entityName(node, source),
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
	}

	if p.grammar.BasesField != "" {
		if bases := node.ChildByFieldName(p.grammar.BasesField); bases != nil {
			cls.Bases = p.collectIdentifiers(bases, source)
		}
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		cls.Docstring = p.hasDoc(node, body, source)
		p.walkScope(body, source, inv, cls)
	}
	return cls
}

func (p *TreeSitterParser) extractFunction(node *tree_sitter.Node, source []byte, owner *code.ClassInfo) *code.FunctionInfo {
	fn := &code.FunctionInfo{
		Name:      p.entityName(node, source),
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
	}
	if owner != nil {
		fn.ClassName = owner.Name
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = p.collectParameters(params, source)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		fn.Docstring = p.hasDoc(node, body, source)
		fn.Body = p.summarizeBody(body, source)
	} else {
		fn.Body.Unsupported = node.HasError()
	}
	return fn
}

// summarizeBody produces the typed syntax summary every later stage
// consumes
func (p *TreeSitterParser) summarizeBody(body *tree_sitter.Node, source []byte) code.BodySummary {
	summary := code.BodySummary{Unsupported: body.HasError()}
	seen := make(map[string]bool)
	seenCalls := make(map[string]bool)
	p.walkBody(body, source, &summary, seen, seenCalls, 0)
	return summary
}

func (p *TreeSitterParser) walkBody(node *tree_sitter.Node, source []byte, summary *code.BodySummary, seen, seenCalls map[string]bool, depth int) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		kind := child.Kind()
		childDepth := depth

		switch {
		case p.grammar.Conditionals[kind]:
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlConditional, Depth: depth})
			childDepth = depth + 1
		case p.grammar.Loops[kind]:
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlLoop, Depth: depth})
			childDepth = depth + 1
		case p.grammar.Excepts[kind]:
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlExcept, Depth: depth})
			childDepth = depth + 1
		case p.grammar.Cases[kind]:
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlCase, Depth: depth})
			childDepth = depth + 1
		case p.grammar.BoolOps[kind]:
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlBoolOp, Depth: depth})
		case kind == "binary_expression" && p.binaryBoolOp(child, source):
			summary.Controls = append(summary.Controls, code.ControlEvent{Kind: code.ControlBoolOp, Depth: depth})
		case kind == p.grammar.ReturnKind:
			if head, ok := p.classifyReturn(child, source); ok {
				summary.Returns = append(summary.Returns, head)
			}
		case p.grammar.Calls[kind]:
			if head := p.callHead(child, source); head != "" && !seenCalls[head] {
				seenCalls[head] = true
				summary.Calls = append(summary.Calls, head)
			}
		case p.grammar.Identifiers[kind]:
			name := child.Utf8Text(source)
			if name != "" && !seen[name] {
				seen[name] = true
				summary.Identifiers = append(summary.Identifiers, name)
			}
		}

		p.walkBody(child, source, summary, seen, seenCalls, childDepth)
	}
}

func (p *TreeSitterParser) binaryBoolOp(node *tree_sitter.Node, source []byte) bool {
	if len(p.grammar.BinaryOps) == 0 {
		return false
	}
	op := node.ChildByFieldName("operator")
	return op != nil && p.grammar.BinaryOps[op.Utf8Text(source)]
}

// classifyReturn labels the return expression head; a bare return carries
// no expression and yields no exit point
func (p *TreeSitterParser) classifyReturn(ret *tree_sitter.Node, source []byte) (string, bool) {
	if ret.NamedChildCount() == 0 {
		return "", false
	}
	expr := ret.NamedChild(0)
	// Go wraps return values in an expression_list
	if expr.Kind() == "expression_list" && expr.NamedChildCount() > 0 {
		expr = expr.NamedChild(0)
	}
	kind := expr.Kind()

	switch {
	case p.grammar.Identifiers[kind]:
		return expr.Utf8Text(source), true
	case kind == "attribute" || kind == "member_expression" || kind == "selector_expression" || kind == "field_access":
		return expr.Utf8Text(source), true
	case p.grammar.Calls[kind]:
		if head := p.callHead(expr, source); head != "" {
			return head, true
		}
		return "unknown", true
	default:
		return "unknown", true
	}
}

// callHead extracts the callee head of a call node
func (p *TreeSitterParser) callHead(call *tree_sitter.Node, source []byte) string {
	callee := call.ChildByFieldName("function")
	if callee == nil {
		callee = call.ChildByFieldName("name")
	}
	if callee == nil && call.NamedChildCount() > 0 {
		callee = call.NamedChild(0)
	}
	if callee == nil {
		return ""
	}
	return callee.Utf8Text(source)
}

// entityName resolves the declared name of a function or class node
func (p *TreeSitterParser) entityName(node *tree_sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(source)
	}
	if id := p.firstIdentifier(node, source); id != "" {
		return id
	}
	return "anonymous"
}

func (p *TreeSitterParser) firstIdentifier(node *tree_sitter.Node, source []byte) string {
	if p.grammar.Identifiers[node.Kind()] {
		return node.Utf8Text(source)
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if id := p.firstIdentifier(node.NamedChild(i), source); id != "" {
			return id
		}
	}
	return ""
}

// collectParameters extracts the declared parameter names in order
func (p *TreeSitterParser) collectParameters(params *tree_sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		if p.grammar.Identifiers[child.Kind()] {
			names = append(names, child.Utf8Text(source))
			continue
		}
		if nameNode := child.ChildByFieldName("name"); nameNode != nil {
			names = append(names, nameNode.Utf8Text(source))
			continue
		}
		if id := p.firstIdentifier(child, source); id != "" {
			names = append(names, id)
		}
	}
	return names
}

// collectIdentifiers gathers all identifier texts under a node, deduplicated
func (p *TreeSitterParser) collectIdentifiers(node *tree_sitter.Node, source []byte) []string {
	var result []string
	seen := make(map[string]bool)
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if p.grammar.Identifiers[n.Kind()] {
			text := n.Utf8Text(source)
			if text != "" && !seen[text] {
				seen[text] = true
				result = append(result, text)
			}
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(node)
	return result
}

// hasDoc reports whether a definition is documented, either by a leading
// documentation string inside the body or by a comment directly above the
// definition
func (p *TreeSitterParser) hasDoc(def, body *tree_sitter.Node, source []byte) bool {
	if p.grammar.HasDocstring != nil {
		return p.grammar.HasDocstring(body, source)
	}
	prev := def.PrevNamedSibling()
	if prev == nil && def.Parent() != nil {
		// wrapped definitions look one level up
		prev = def.Parent().PrevNamedSibling()
	}
	if prev == nil || !p.grammar.Comments[prev.Kind()] {
		return false
	}
	return int(prev.EndPosition().Row)+1 >= int(def.StartPosition().Row)
}

// countFileMetrics fills the file-level line and character counts
func countFileMetrics(inv *code.Inventory, source []byte) {
	text := string(source)
	inv.CharacterCount = len(text)

	lines := strings.Split(text, "\n")
	// a trailing newline does not start another source line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	inv.TotalLines = len(lines)
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			inv.NonEmptyLines++
		}
	}
}
