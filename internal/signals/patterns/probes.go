package patterns

import (
	"strings"

	"paperbot-go/internal/model/code"

	"go.uber.org/zap"
)

// Flag categories
const (
	CategoryNeuralNetwork      = "neural_network"
	CategoryOptimization       = "optimization"
	CategoryAttentionMechanism = "attention_mechanism"
	CategoryLinearAlgebra      = "linear_algebra"
	CategoryDesignPatterns     = "design_patterns"
)

// probe is the built-in Probe implementation backed by a predicate function
type probe struct {
	name     string
	category string
	detect   func(inv *code.Inventory, source string) bool
}

func (p *probe) Name() string     { return p.name }
func (p *probe) Category() string { return p.category }
func (p *probe) Detect(inv *code.Inventory, source string) bool {
	return p.detect(inv, source)
}

// textProbe matches when any of the given markers occurs in the lowercased
// source text
func textProbe(category, name string, markers ...string) Probe {
	return &probe{
		name:     name,
		category: category,
		detect: func(inv *code.Inventory, source string) bool {
			lower := strings.ToLower(source)
			for _, marker := range markers {
				if strings.Contains(lower, marker) {
					return true
				}
			}
			return false
		},
	}
}

// DefaultRegistry returns a registry with every built-in probe registered
func DefaultRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)

	r.Register(textProbe(CategoryNeuralNetwork, "layer_architecture", "layers.", "layer(", "nn.module", "keras"))
	r.Register(textProbe(CategoryNeuralNetwork, "activation_functions", "relu", "sigmoid", "tanh", "gelu"))
	r.Register(textProbe(CategoryNeuralNetwork, "dropout_usage", "dropout"))
	r.Register(textProbe(CategoryNeuralNetwork, "batch_normalization", "batchnorm", "batch_normalization", "layernorm", "layer_normalization"))

	r.Register(textProbe(CategoryOptimization, "loss_function", "loss"))
	r.Register(textProbe(CategoryOptimization, "optimizer_usage", "optimizer", "adam", "sgd", "rmsprop"))
	r.Register(textProbe(CategoryOptimization, "learning_rate_schedule", "learning_rate", "lr_schedule", "warmup"))
	r.Register(textProbe(CategoryOptimization, "gradient_computation", "gradient", "backward("))

	r.Register(&probe{
		name:     "query_key_value",
		category: CategoryAttentionMechanism,
		detect:   detectQueryKeyValue,
	})
	r.Register(textProbe(CategoryAttentionMechanism, "softmax_attention", "softmax"))
	r.Register(textProbe(CategoryAttentionMechanism, "positional_encoding", "positional_encoding", "position_embedding", "pos_encoding"))
	r.Register(textProbe(CategoryAttentionMechanism, "multi_head", "multihead", "multi_head", "num_heads"))

	r.Register(textProbe(CategoryLinearAlgebra, "matrix_multiplication", "matmul", "einsum", ".dot("))
	r.Register(textProbe(CategoryLinearAlgebra, "transpose_usage", "transpose", "permute"))
	r.Register(textProbe(CategoryLinearAlgebra, "embedding_lookup", "embedding"))
	r.Register(textProbe(CategoryLinearAlgebra, "tensor_reshape", "reshape", ".view(", "flatten"))

	r.Register(&probe{
		name:     "inheritance",
		category: CategoryDesignPatterns,
		detect:   detectInheritance,
	})
	r.Register(&probe{
		name:     "composition",
		category: CategoryDesignPatterns,
		detect:   detectComposition,
	})
	r.Register(&probe{
		name:     "factory_function",
		category: CategoryDesignPatterns,
		detect:   detectFactoryFunction,
	})
	r.Register(&probe{
		name:     "configuration_object",
		category: CategoryDesignPatterns,
		detect:   detectConfigurationObject,
	})

	return r
}

// detectQueryKeyValue looks for a callable whose parameters carry
// query/key/value-like names together
func detectQueryKeyValue(inv *code.Inventory, source string) bool {
	for _, fn := range inv.Callables() {
		var q, k, v bool
		for _, param := range fn.Parameters {
			switch strings.ToLower(param) {
			case "q", "query", "queries":
				q = true
			case "k", "key", "keys":
				k = true
			case "v", "value", "values":
				v = true
			}
		}
		if q && k && v {
			return true
		}
	}
	return false
}

// detectInheritance reports any class with a declared base
func detectInheritance(inv *code.Inventory, source string) bool {
	for _, cls := range inv.Classes {
		if len(cls.Bases) > 0 {
			return true
		}
	}
	return false
}

// detectComposition reports a class whose methods instantiate another
// inventory class
func detectComposition(inv *code.Inventory, source string) bool {
	classNames := make(map[string]bool, len(inv.Classes))
	for _, cls := range inv.Classes {
		classNames[cls.Name] = true
	}
	for _, cls := range inv.Classes {
		for _, m := range cls.Methods {
			for _, call := range m.Body.Calls {
				if call != cls.Name && classNames[call] {
					return true
				}
			}
		}
	}
	return false
}

// detectFactoryFunction reports a free function that returns an instance of
// an inventory class, or is named like a constructor helper
func detectFactoryFunction(inv *code.Inventory, source string) bool {
	classNames := make(map[string]bool, len(inv.Classes))
	for _, cls := range inv.Classes {
		classNames[cls.Name] = true
	}
	for _, fn := range inv.Functions {
		for _, ret := range fn.Body.Returns {
			if classNames[ret] {
				return true
			}
		}
		lower := strings.ToLower(fn.Name)
		if strings.HasPrefix(lower, "make_") || strings.HasPrefix(lower, "create_") || strings.HasPrefix(lower, "build_") {
			return true
		}
	}
	return false
}

// detectConfigurationObject reports a config-style class or parameter
func detectConfigurationObject(inv *code.Inventory, source string) bool {
	for _, cls := range inv.Classes {
		lower := strings.ToLower(cls.Name)
		if strings.HasSuffix(lower, "config") || strings.HasSuffix(lower, "settings") || strings.HasSuffix(lower, "options") {
			return true
		}
	}
	for _, fn := range inv.Callables() {
		for _, param := range fn.Parameters {
			if strings.ToLower(param) == "config" {
				return true
			}
		}
	}
	return false
}
