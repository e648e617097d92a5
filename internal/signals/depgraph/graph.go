// Package depgraph builds the intra-file dependency graph. One canonical
// edge set is stored; depends_on and depended_by are both derived from it,
// so the two views cannot drift apart.
package depgraph

import (
	"sort"
	"strings"

	"paperbot-go/internal/model/code"
	"paperbot-go/internal/model/report"
)

// Edge is one directed "references" relation between two inventory entities
type Edge struct {
	Source string
	Target string
}

// Graph holds the canonical, deduplicated edge set of one analysis run
type Graph struct {
	edges []Edge
	seen  map[Edge]bool
	kinds map[string]code.EntityKind
}

// Build derives the dependency graph from the inventory. Edges come from
// identifier co-occurrence against the inventory name set plus structural
// class/method ownership; references to names outside the inventory are
// dropped.
func Build(inv *code.Inventory) *Graph {
	g := &Graph{
		seen:  make(map[Edge]bool),
		kinds: inv.EntityKinds(),
	}

	// plain method name -> qualified name, per owning class
	siblings := make(map[string]map[string]string)
	for _, cls := range inv.Classes {
		byName := make(map[string]string, len(cls.Methods))
		for _, m := range cls.Methods {
			byName[m.Name] = m.QualifiedName()
		}
		siblings[cls.Name] = byName
	}

	for _, cls := range inv.Classes {
		for _, m := range cls.Methods {
			// ownership edges exist regardless of textual references
			g.add(cls.Name, m.QualifiedName())
			g.add(m.QualifiedName(), cls.Name)
		}
		for _, base := range cls.Bases {
			g.addIfKnown(cls.Name, base)
		}
	}

	for _, fn := range inv.Callables() {
		source := fn.QualifiedName()
		for _, name := range fn.Body.Identifiers {
			g.addReference(source, name, fn, siblings)
		}
		for _, name := range fn.Body.Calls {
			g.addReference(source, name, fn, siblings)
		}
	}

	return g
}

// addReference resolves a referenced name against the inventory. Bare and
// receiver-qualified (self.x, this.x) method names resolve within the
// referencing method's own class.
func (g *Graph) addReference(source, name string, fn *code.FunctionInfo, siblings map[string]map[string]string) {
	if fn.IsMethod() {
		bare := name
		if rest, ok := strings.CutPrefix(name, "self."); ok {
			bare = rest
		} else if rest, ok := strings.CutPrefix(name, "this."); ok {
			bare = rest
		}
		if qualified, ok := siblings[fn.ClassName][bare]; ok {
			g.add(source, qualified)
			return
		}
	}
	g.addIfKnown(source, name)
}

func (g *Graph) addIfKnown(source, target string) {
	if _, ok := g.kinds[target]; !ok {
		return
	}
	g.add(source, target)
}

func (g *Graph) add(source, target string) {
	if source == target {
		return
	}
	edge := Edge{Source: source, Target: target}
	if g.seen[edge] {
		return
	}
	g.seen[edge] = true
	g.edges = append(g.edges, edge)
}

// Edges returns a copy of the canonical edge set
func (g *Graph) Edges() []Edge {
	result := make([]Edge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Dependencies derives both directional views from the canonical edge set
// in a single pass
func (g *Graph) Dependencies() map[string]report.EntityDeps {
	deps := make(map[string]report.EntityDeps, len(g.kinds))
	for name, kind := range g.kinds {
		deps[name] = report.EntityDeps{
			Type:       string(kind),
			DependsOn:  []string{},
			DependedBy: []string{},
		}
	}

	for _, edge := range g.edges {
		source := deps[edge.Source]
		source.DependsOn = append(source.DependsOn, edge.Target)
		deps[edge.Source] = source

		target := deps[edge.Target]
		target.DependedBy = append(target.DependedBy, edge.Source)
		deps[edge.Target] = target
	}

	for name, entry := range deps {
		sort.Strings(entry.DependsOn)
		sort.Strings(entry.DependedBy)
		deps[name] = entry
	}
	return deps
}
