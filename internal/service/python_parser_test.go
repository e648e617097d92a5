package service

import (
	"context"
	"errors"
	"testing"

	"paperbot-go/internal/model/code"
)

const transformerFixture = `import numpy as np
import tensorflow as tf


def get_angles(pos, i, d_model):
    """Compute the angle rates for each position."""
    angle_rates = 1 / np.power(10000, (2 * (i // 2)) / np.float32(d_model))
    return pos * angle_rates


def positional_encoding(position, d_model):
    angle_rads = get_angles(position, d_model, d_model)
    if position > 0:
        angle_rads = np.sin(angle_rads)
    return tf.cast(angle_rads, dtype=tf.float32)


class MultiHeadAttention(Layer):
    """Splits input projections into parallel attention heads."""

    def __init__(self, d_model, num_heads):
        super().__init__()
        self.num_heads = num_heads
        self.d_model = d_model

    def split_heads(self, x, batch_size):
        x = tf.reshape(x, (batch_size, -1, self.num_heads, self.depth))
        return tf.transpose(x, perm=[0, 2, 1, 3])

    def call(self, v, k, q, mask):
        if mask is not None and q is not None:
            q = self.split_heads(q, 1)
        return q


class Encoder(Layer):
    def __init__(self, num_layers, d_model):
        super().__init__()
        self.enc_layers = [MultiHeadAttention(d_model, 8) for _ in range(num_layers)]

    def call(self, x, training):
        for layer in self.enc_layers:
            x = layer(x, training)
        return x
`

func parseFixture(t *testing.T) *code.Inventory {
	t.Helper()
	parser, err := NewPythonParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	inv, err := parser.Parse(context.Background(), []byte(transformerFixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return inv
}

func TestPythonParser_FileMetrics(t *testing.T) {
	inv := parseFixture(t)

	if inv.Language != "python" {
		t.Errorf("Expected language python, got %q", inv.Language)
	}
	if inv.TotalLines != 44 {
		t.Errorf("Expected 44 lines, got %d", inv.TotalLines)
	}
	if inv.NonEmptyLines != 32 {
		t.Errorf("Expected 32 non-empty lines, got %d", inv.NonEmptyLines)
	}
	if inv.ImportCount != 2 {
		t.Errorf("Expected 2 imports, got %d", inv.ImportCount)
	}
	if inv.CharacterCount != len(transformerFixture) {
		t.Errorf("Expected %d characters, got %d", len(transformerFixture), inv.CharacterCount)
	}
}

func TestPythonParser_EntityInventory(t *testing.T) {
	inv := parseFixture(t)

	if len(inv.Functions) != 2 {
		t.Fatalf("Expected 2 free functions, got %d", len(inv.Functions))
	}
	if inv.ClassCount() != 2 {
		t.Fatalf("Expected 2 classes, got %d", inv.ClassCount())
	}
	// free functions plus methods
	if inv.FunctionCount() != 7 {
		t.Errorf("Expected 7 callables, got %d", inv.FunctionCount())
	}

	angles := inv.Functions[0]
	if angles.Name != "get_angles" {
		t.Fatalf("Expected get_angles first, got %q", angles.Name)
	}
	if len(angles.Parameters) != 3 || angles.Parameters[0] != "pos" || angles.Parameters[2] != "d_model" {
		t.Errorf("Unexpected get_angles parameters: %v", angles.Parameters)
	}
	if !angles.Docstring {
		t.Error("get_angles has a docstring")
	}
	if angles.StartLine != 5 || angles.EndLine != 8 {
		t.Errorf("Unexpected get_angles span: %d-%d", angles.StartLine, angles.EndLine)
	}
	if inv.Functions[1].Docstring {
		t.Error("positional_encoding has no docstring")
	}

	mha := inv.Classes[0]
	if mha.Name != "MultiHeadAttention" {
		t.Fatalf("Expected MultiHeadAttention first, got %q", mha.Name)
	}
	if len(mha.Bases) != 1 || mha.Bases[0] != "Layer" {
		t.Errorf("Unexpected bases: %v", mha.Bases)
	}
	if !mha.Docstring {
		t.Error("MultiHeadAttention has a docstring")
	}
	if len(mha.Methods) != 3 {
		t.Fatalf("Expected 3 methods, got %d", len(mha.Methods))
	}
	call := mha.Methods[2]
	if call.QualifiedName() != "MultiHeadAttention.call" {
		t.Errorf("Unexpected qualified name %q", call.QualifiedName())
	}
	if len(call.Parameters) != 5 || call.Parameters[1] != "v" || call.Parameters[3] != "q" {
		t.Errorf("Unexpected call parameters: %v", call.Parameters)
	}

	encoder := inv.Classes[1]
	if encoder.Docstring {
		t.Error("Encoder has no docstring")
	}
	if encoder.StartLine != 36 || encoder.EndLine != 44 {
		t.Errorf("Unexpected Encoder span: %d-%d", encoder.StartLine, encoder.EndLine)
	}
}

func TestPythonParser_BodySummaries(t *testing.T) {
	inv := parseFixture(t)

	angles := inv.Functions[0]
	if len(angles.Body.Controls) != 0 {
		t.Errorf("get_angles has no control structures, got %v", angles.Body.Controls)
	}
	if len(angles.Body.Returns) != 1 || angles.Body.Returns[0] != "unknown" {
		t.Errorf("Arithmetic return must classify as unknown, got %v", angles.Body.Returns)
	}

	posEnc := inv.Functions[1]
	if len(posEnc.Body.Controls) != 1 || posEnc.Body.Controls[0].Kind != code.ControlConditional {
		t.Errorf("Expected one conditional in positional_encoding, got %v", posEnc.Body.Controls)
	}
	if posEnc.Body.Controls[0].Depth != 0 {
		t.Errorf("Top-level if must sit at depth 0, got %d", posEnc.Body.Controls[0].Depth)
	}
	if len(posEnc.Body.Returns) != 1 || posEnc.Body.Returns[0] != "tf.cast" {
		t.Errorf("Call return must classify by callee head, got %v", posEnc.Body.Returns)
	}
	if !containsString(posEnc.Body.Calls, "get_angles") {
		t.Errorf("Expected get_angles call, got %v", posEnc.Body.Calls)
	}

	call := inv.Classes[0].Methods[2]
	var conditionals, boolOps int
	for _, event := range call.Body.Controls {
		switch event.Kind {
		case code.ControlConditional:
			conditionals++
		case code.ControlBoolOp:
			boolOps++
		}
	}
	if conditionals != 1 || boolOps != 1 {
		t.Errorf("Expected 1 conditional and 1 bool op in call, got %v", call.Body.Controls)
	}
	if len(call.Body.Returns) != 1 || call.Body.Returns[0] != "q" {
		t.Errorf("Identifier return must keep its name, got %v", call.Body.Returns)
	}
	if !containsString(call.Body.Calls, "self.split_heads") {
		t.Errorf("Expected self.split_heads call, got %v", call.Body.Calls)
	}

	encoderInit := inv.Classes[1].Methods[0]
	var loops int
	for _, event := range encoderInit.Body.Controls {
		if event.Kind == code.ControlLoop {
			loops++
		}
	}
	if loops != 1 {
		t.Errorf("Comprehension clause must count as a loop, got %v", encoderInit.Body.Controls)
	}
	if !containsString(encoderInit.Body.Calls, "MultiHeadAttention") {
		t.Errorf("Expected MultiHeadAttention instantiation, got %v", encoderInit.Body.Calls)
	}

	encoderCall := inv.Classes[1].Methods[1]
	if len(encoderCall.Body.Controls) != 1 || encoderCall.Body.Controls[0].Kind != code.ControlLoop {
		t.Errorf("Expected one loop in Encoder.call, got %v", encoderCall.Body.Controls)
	}
}

func TestPythonParser_NestedControlDepth(t *testing.T) {
	parser, err := NewPythonParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	source := `def triage(items):
    for item in items:
        if item.ready:
            while item.pending:
                item.drain()
`
	inv, err := parser.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	controls := inv.Functions[0].Body.Controls
	if len(controls) != 3 {
		t.Fatalf("Expected 3 control events, got %v", controls)
	}
	wantDepths := []int{0, 1, 2}
	for i, event := range controls {
		if event.Depth != wantDepths[i] {
			t.Errorf("Control %d: expected depth %d, got %d", i, wantDepths[i], event.Depth)
		}
	}
}

func TestPythonParser_MalformedSourceIsFatal(t *testing.T) {
	parser, err := NewPythonParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	inv, err := parser.Parse(context.Background(), []byte("= = =\n"))
	if inv != nil {
		t.Fatal("Malformed source must not yield an inventory")
	}
	var malformed *MalformedSourceError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedSourceError, got %v", err)
	}
	if malformed.Language != "python" {
		t.Errorf("Expected python in error, got %q", malformed.Language)
	}
	if malformed.Line != 1 {
		t.Errorf("Expected error on line 1, got %d", malformed.Line)
	}
}

func TestPythonParser_BrokenBodyDegrades(t *testing.T) {
	parser, err := NewPythonParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	source := `def broken(x):
    if x ==
        return


def fine(y):
    return y
`
	inv, err := parser.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Errors inside a body must not be fatal: %v", err)
	}

	var broken *code.FunctionInfo
	for _, fn := range inv.Functions {
		if fn.Name == "broken" {
			broken = fn
		}
	}
	if broken == nil {
		t.Fatalf("broken must still be inventoried, got %v", inv.Functions)
	}
	if !broken.Body.Unsupported {
		t.Error("Unparseable body must be flagged unsupported")
	}
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
