package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// OpenedLabels puts a freshly opened PR into the initial review state.
type OpenedLabels struct {
	deps *pipeline.Dependencies
}

// NewOpenedLabels creates the step.
func NewOpenedLabels(deps *pipeline.Dependencies) *OpenedLabels {
	return &OpenedLabels{deps: deps}
}

// Name returns the step name.
func (s *OpenedLabels) Name() string {
	return "opened_labels"
}

// Run sets the label set to exactly {Needs testing, Not yet reviewed} on
// pull_request/opened. The dirty check runs later and may override this.
func (s *OpenedLabels) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || c.Event.DispatchKey() != "pull_request/opened" {
		return nil
	}

	applySetLabels(c, s.deps, []string{labels.NeedsTesting, labels.NotYetReviewed})
	return nil
}
