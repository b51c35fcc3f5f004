package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// Classifier short-circuits deliveries the engine must not react to:
// terminal or cosmetic pull_request actions and review comments.
type Classifier struct {
	deps *pipeline.Dependencies
}

// NewClassifier creates the classifier step.
func NewClassifier(deps *pipeline.Dependencies) *Classifier {
	return &Classifier{deps: deps}
}

// Name returns the step name.
func (s *Classifier) Name() string {
	return "classifier"
}

// Run stops the pipeline for filtered deliveries. Dropping such events is
// expected traffic, not an error.
func (s *Classifier) Run(c *pipeline.Context) error {
	if c.Decision.Skip {
		s.deps.Log.Infow("delivery filtered",
			"event", c.Event.DispatchKey(), "reason", c.Decision.SkipReason)
		return pipeline.ErrSkipPipeline
	}
	return nil
}
