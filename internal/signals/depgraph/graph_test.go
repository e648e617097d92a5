package depgraph

import (
	"testing"

	"paperbot-go/internal/model/code"
)

func transformerInventory() *code.Inventory {
	attend := &code.FunctionInfo{
		Name:      "call",
		ClassName: "MultiHeadAttention",
		StartLine: 30, EndLine: 45,
	}
	attend.Body.Calls = []string{"self.split_heads", "softmax"} // softmax is external
	splitHeads := &code.FunctionInfo{
		Name:      "split_heads",
		ClassName: "MultiHeadAttention",
		StartLine: 20, EndLine: 28,
	}

	layerCall := &code.FunctionInfo{
		Name:      "call",
		ClassName: "EncoderLayer",
		StartLine: 55, EndLine: 70,
	}
	layerCall.Body.Identifiers = []string{"MultiHeadAttention", "x", "training"}

	helper := &code.FunctionInfo{Name: "positional_encoding", StartLine: 1, EndLine: 10}
	helper.Body.Calls = []string{"get_angles", "get_angles"} // duplicate reference
	angles := &code.FunctionInfo{Name: "get_angles", StartLine: 12, EndLine: 16}

	return &code.Inventory{
		Language:  "python",
		Functions: []*code.FunctionInfo{helper, angles},
		Classes: []*code.ClassInfo{
			{
				Name:      "MultiHeadAttention",
				StartLine: 18, EndLine: 46,
				Methods: []*code.FunctionInfo{splitHeads, attend},
			},
			{
				Name:  "EncoderLayer",
				Bases: []string{"Layer"}, // external base, not in inventory
				StartLine: 50, EndLine: 71,
				Methods: []*code.FunctionInfo{layerCall},
			},
		},
	}
}

func TestDependencies_ViewsAreSymmetric(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	for name, entry := range deps {
		for _, target := range entry.DependsOn {
			other, ok := deps[target]
			if !ok {
				t.Fatalf("%s depends on %s which has no entry", name, target)
			}
			if !contains(other.DependedBy, name) {
				t.Errorf("%s depends_on %s but %s is not depended_by %s", name, target, target, name)
			}
		}
		for _, source := range entry.DependedBy {
			other, ok := deps[source]
			if !ok {
				t.Fatalf("%s depended by %s which has no entry", name, source)
			}
			if !contains(other.DependsOn, name) {
				t.Errorf("%s depended_by %s but missing from its depends_on", name, source)
			}
		}
	}
}

func TestDependencies_ClassMethodOwnership(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	cls := deps["MultiHeadAttention"]
	if cls.Type != "class" {
		t.Errorf("Expected class type, got %q", cls.Type)
	}
	if !contains(cls.DependsOn, "MultiHeadAttention.call") {
		t.Errorf("Class must depend on its methods, got %v", cls.DependsOn)
	}

	method := deps["MultiHeadAttention.call"]
	if method.Type != "method" {
		t.Errorf("Expected method type, got %q", method.Type)
	}
	if !contains(method.DependsOn, "MultiHeadAttention") {
		t.Errorf("Method must depend on its class, got %v", method.DependsOn)
	}
}

func TestDependencies_SiblingMethodResolution(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	// a self.split_heads call inside MultiHeadAttention.call resolves to
	// the qualified sibling
	method := deps["MultiHeadAttention.call"]
	if !contains(method.DependsOn, "MultiHeadAttention.split_heads") {
		t.Errorf("Expected sibling resolution, got %v", method.DependsOn)
	}
	if _, ok := deps["self.split_heads"]; ok {
		t.Error("Receiver-qualified name must not leak into the graph")
	}
}

func TestDependencies_ExternalReferencesDropped(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	if _, ok := deps["softmax"]; ok {
		t.Error("External call target must not appear in the graph")
	}
	if _, ok := deps["Layer"]; ok {
		t.Error("External base class must not appear in the graph")
	}
	layer := deps["EncoderLayer"]
	if contains(layer.DependsOn, "Layer") {
		t.Errorf("External base must be dropped from depends_on, got %v", layer.DependsOn)
	}
}

func TestDependencies_DuplicateReferencesCollapse(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	helper := deps["positional_encoding"]
	seen := 0
	for _, target := range helper.DependsOn {
		if target == "get_angles" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Expected one get_angles edge, got %d (%v)", seen, helper.DependsOn)
	}
}

func TestDependencies_IsolatedEntityHasEmptySlices(t *testing.T) {
	deps := Build(transformerInventory()).Dependencies()

	angles := deps["get_angles"]
	if angles.DependsOn == nil || angles.DependedBy == nil {
		t.Fatal("Dependency slices must be initialized, not nil")
	}
	if len(angles.DependsOn) != 0 {
		t.Errorf("get_angles depends on nothing, got %v", angles.DependsOn)
	}
	if !contains(angles.DependedBy, "positional_encoding") {
		t.Errorf("get_angles must be depended by positional_encoding, got %v", angles.DependedBy)
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
