package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
	"github.com/jlsherrill/prprocessor/internal/utils/text"
)

// DirtyCheck handles PRs that cannot be merged cleanly: the PR goes back to
// the contributor with rebase instructions. Runs after the opened and
// review rules so it overrides whatever they set.
type DirtyCheck struct {
	deps *pipeline.Dependencies
}

// NewDirtyCheck creates the step.
func NewDirtyCheck(deps *pipeline.Dependencies) *DirtyCheck {
	return &DirtyCheck{deps: deps}
}

// Name returns the step name.
func (s *DirtyCheck) Name() string {
	return "dirty_check"
}

// Run relabels and posts rebase instructions for unmergeable PRs.
func (s *DirtyCheck) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || !c.PR().Dirty() {
		return nil
	}

	applyReplace(c, s.deps,
		[]string{labels.NeedsTesting, labels.NeedsReReview, labels.NotYetReviewed},
		[]string{labels.WaitingOnContributor})
	applyComment(c, s.deps, text.RebaseComment(c.PR().Author, c.PR().TargetBranch))
	return nil
}
