// Package patterns detects domain-specific structural signals in the
// analyzed source. Probes are independent named predicates over the
// immutable inventory snapshot; new probes can be registered without
// touching existing ones.
package patterns

import (
	"sort"
	"sync"

	"paperbot-go/internal/model/code"

	"go.uber.org/zap"
)

// Probe is one boolean heuristic over the inventory and raw source text
type Probe interface {
	// Name returns the flag name this probe reports
	Name() string

	// Category returns the flag group this probe belongs to
	Category() string

	// Detect evaluates the probe. It must be pure: same inputs, same answer.
	Detect(inv *code.Inventory, source string) bool
}

// Registry manages the registered probes
type Registry struct {
	probes map[string]Probe
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewRegistry creates an empty probe registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		probes: make(map[string]Probe),
		logger: logger,
	}
}

// Register adds a probe to the registry
func (r *Registry) Register(probe Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[probe.Category()+"."+probe.Name()] = probe
	r.logger.Debug("Registered pattern probe",
		zap.String("probe", probe.Name()),
		zap.String("category", probe.Category()))
}

// Names returns "category.name" for every registered probe, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.probes))
	for key := range r.probes {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// DetectAll runs every probe and groups the flags by category. Probes are
// order-insensitive, so map iteration order does not matter.
func (r *Registry) DetectAll(inv *code.Inventory, source string) map[string]map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flags := make(map[string]map[string]bool)
	for _, probe := range r.probes {
		group, ok := flags[probe.Category()]
		if !ok {
			group = make(map[string]bool)
			flags[probe.Category()] = group
		}
		group[probe.Name()] = probe.Detect(inv, source)
	}
	return flags
}
