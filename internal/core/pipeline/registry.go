// Package pipeline provides step registration and the preset rule order.
package pipeline

import (
	"fmt"
	"sync"
)

// Registry holds registered step factories.
// Step factories create Step instances, allowing for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StepFactory
}

// StepFactory is a function that creates a Step from its dependencies.
type StepFactory func(deps *Dependencies) (Step, error)

// NewRegistry creates a new step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StepFactory),
	}
}

// Register adds a step factory to the registry.
func (r *Registry) Register(name string, factory StepFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a step factory by name.
func (r *Registry) Get(name string) (StepFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// BuildFromNames creates a pipeline from a list of step names.
func (r *Registry) BuildFromNames(names []string, deps *Dependencies) (*Pipeline, error) {
	var steps []Step
	for _, name := range names {
		factory, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
		step, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create step '%s': %w", name, err)
		}
		steps = append(steps, step)
	}
	return New(steps...), nil
}

// Presets defines the built-in rule orders.
var Presets = map[string][]string{
	// pull-request-sync: the full synchronization rule table. The order is
	// fixed: dirty_check must run after opened_labels so an unmergeable PR
	// ends up waiting on the contributor, not ready for testing.
	"pull-request-sync": {
		"classifier",
		"redmine_sync",
		"disallowed_label",
		"issue_links",
		"synchronize_relabel",
		"commit_style",
		"opened_labels",
		"review_labels",
		"dirty_check",
		"path_labels",
		"branch_labels",
	},

	// labels-only: the platform-side rules without tracker synchronization.
	"labels-only": {
		"classifier",
		"disallowed_label",
		"synchronize_relabel",
		"opened_labels",
		"review_labels",
		"dirty_check",
		"path_labels",
		"branch_labels",
	},
}

// GetPreset returns the step names for a preset rule order.
func GetPreset(name string) ([]string, bool) {
	steps, ok := Presets[name]
	return steps, ok
}
