package code

// Inventory is the structural inventory of one analyzed source unit.
// It is created once by the parser and read-only input to every later
// analysis stage; no stage mutates it.
type Inventory struct {
	Language string

	TotalLines     int
	NonEmptyLines  int
	CharacterCount int
	ImportCount    int

	Functions []*FunctionInfo // free functions in declaration order
	Classes   []*ClassInfo    // classes in declaration order
}

// Callables returns all free functions followed by all methods in
// declaration order
func (inv *Inventory) Callables() []*FunctionInfo {
	result := make([]*FunctionInfo, 0, len(inv.Functions))
	result = append(result, inv.Functions...)
	for _, cls := range inv.Classes {
		result = append(result, cls.Methods...)
	}
	return result
}

// FunctionCount returns the number of free functions plus methods
func (inv *Inventory) FunctionCount() int {
	n := len(inv.Functions)
	for _, cls := range inv.Classes {
		n += len(cls.Methods)
	}
	return n
}

// ClassCount returns the number of classes
func (inv *Inventory) ClassCount() int {
	return len(inv.Classes)
}

// EntityKinds returns every inventory entity name mapped to its kind.
// Methods appear under their qualified name and classes under their own
// name, so the map doubles as the reference set for dependency matching.
func (inv *Inventory) EntityKinds() map[string]EntityKind {
	kinds := make(map[string]EntityKind, inv.FunctionCount()+inv.ClassCount())
	for _, fn := range inv.Functions {
		kinds[fn.Name] = KindFunction
	}
	for _, cls := range inv.Classes {
		kinds[cls.Name] = KindClass
		for _, m := range cls.Methods {
			kinds[m.QualifiedName()] = KindMethod
		}
	}
	return kinds
}
