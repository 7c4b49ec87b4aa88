package codegen

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Factory builds a Target from common options
type Factory func(opts Options) Target

// Registry manages available output targets
type Registry struct {
	targets map[string]Factory
}

// NewRegistry creates a new target registry
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]Factory),
	}
}

// Register adds a new target factory to the registry
func (r *Registry) Register(name string, factory Factory) {
	r.targets[name] = factory
}

// Get returns the target registered under name
func (r *Registry) Get(name string, opts Options) (Target, error) {
	factory, exists := r.targets[name]
	if !exists {
		return nil, errors.Newf("unsupported target: %s", name)
	}

	return factory(opts), nil
}

// Targets returns the sorted names of the registered targets
func (r *Registry) Targets() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
