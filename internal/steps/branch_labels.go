package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// BranchLabels applies configured labels derived from the PR's target
// branch, e.g. a release label for PRs against a stable branch.
type BranchLabels struct {
	deps *pipeline.Dependencies
}

// NewBranchLabels creates the step.
func NewBranchLabels(deps *pipeline.Dependencies) *BranchLabels {
	return &BranchLabels{deps: deps}
}

// Name returns the step name.
func (s *BranchLabels) Name() string {
	return "branch_labels"
}

// Run adds the labels mapped to the PR's target branch, if any.
func (s *BranchLabels) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || c.Repo == nil || len(c.Repo.BranchLabels) == 0 {
		return nil
	}

	add, ok := c.Repo.BranchLabels[c.PR().TargetBranch]
	if !ok || len(add) == 0 {
		return nil
	}

	applyReplace(c, s.deps, nil, add)
	return nil
}
