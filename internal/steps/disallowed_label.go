package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// DisallowedLabel marks the PR as waiting on the contributor when it
// referenced an issue in a project the repository may not act on.
type DisallowedLabel struct {
	deps *pipeline.Dependencies
}

// NewDisallowedLabel creates the step.
func NewDisallowedLabel(deps *pipeline.Dependencies) *DisallowedLabel {
	return &DisallowedLabel{deps: deps}
}

// Name returns the step name.
func (s *DisallowedLabel) Name() string {
	return "disallowed_label"
}

// Run adds the waiting label when the tracker side flagged a disallowed
// project reference.
func (s *DisallowedLabel) Run(c *pipeline.Context) error {
	if !c.NeedsContributorLabel || !c.Decision.ProcessPlatform {
		return nil
	}

	applyReplace(c, s.deps, nil, []string{labels.WaitingOnContributor})
	return nil
}
