package code

// EntityKind identifies the kind of a code entity in the inventory
type EntityKind string

const (
	KindFunction EntityKind = "function"
	KindMethod   EntityKind = "method"
	KindClass    EntityKind = "class"
)

// ControlKind identifies a control structure encountered in a body
type ControlKind string

const (
	ControlConditional ControlKind = "conditional"
	ControlLoop        ControlKind = "loop"
	ControlBoolOp      ControlKind = "bool_op"
	ControlExcept      ControlKind = "except"
	ControlCase        ControlKind = "case"
)

// ControlEvent records one control structure and the nesting depth it sits at.
// Depth 0 means the structure is at the top level of the function body.
type ControlEvent struct {
	Kind  ControlKind
	Depth int
}

// BodySummary is the typed syntax summary of one function body produced by
// the parser walk. Every later analysis stage consumes this instead of
// re-parsing source text.
type BodySummary struct {
	Controls    []ControlEvent
	Returns     []string // return expression heads, "unknown" when unclassifiable
	Identifiers []string // identifier references in first-seen order, deduplicated
	Calls       []string // call target heads in first-seen order
	Unsupported bool     // body contained constructs the grammar could not parse
}

// FunctionInfo describes one function or method
type FunctionInfo struct {
	Name       string
	ClassName  string // empty for free functions
	Parameters []string
	StartLine  int
	EndLine    int
	Docstring  bool
	Body       BodySummary
}

// IsMethod reports whether this callable belongs to a class
func (f *FunctionInfo) IsMethod() bool {
	return f.ClassName != ""
}

// QualifiedName returns Class.name for methods, name for free functions.
// Complexity and dependency maps key on this to keep same-named methods of
// different classes apart.
func (f *FunctionInfo) QualifiedName() string {
	if f.ClassName != "" {
		return f.ClassName + "." + f.Name
	}
	return f.Name
}

// LineCount returns the declared span of the callable
func (f *FunctionInfo) LineCount() int {
	if f.EndLine < f.StartLine {
		return 0
	}
	return f.EndLine - f.StartLine + 1
}

// ClassInfo describes one class and its methods
type ClassInfo struct {
	Name      string
	Bases     []string
	StartLine int
	EndLine   int
	Docstring bool
	Methods   []*FunctionInfo
}

// LineCount returns the declared span of the class
func (c *ClassInfo) LineCount() int {
	if c.EndLine < c.StartLine {
		return 0
	}
	return c.EndLine - c.StartLine + 1
}

// OwnLineCount returns the class span minus the spans of its methods
func (c *ClassInfo) OwnLineCount() int {
	own := c.LineCount()
	for _, m := range c.Methods {
		own -= m.LineCount()
	}
	if own < 0 {
		own = 0
	}
	return own
}
