package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// SynchronizeRelabel moves a PR that was waiting on its contributor back
// into the testing queue when new commits are pushed.
type SynchronizeRelabel struct {
	deps *pipeline.Dependencies
}

// NewSynchronizeRelabel creates the step.
func NewSynchronizeRelabel(deps *pipeline.Dependencies) *SynchronizeRelabel {
	return &SynchronizeRelabel{deps: deps}
}

// Name returns the step name.
func (s *SynchronizeRelabel) Name() string {
	return "synchronize_relabel"
}

// Run relabels on pull_request/synchronize for PRs currently waiting on the
// contributor. Already-reviewed PRs additionally need a re-review.
func (s *SynchronizeRelabel) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform {
		return nil
	}
	if c.Event.DispatchKey() != "pull_request/synchronize" || !c.PR().WaitingOnContributor() {
		return nil
	}

	if c.PR().NotYetReviewed() {
		applyReplace(c, s.deps, []string{labels.WaitingOnContributor}, []string{labels.NeedsTesting})
	} else {
		applyReplace(c, s.deps, []string{labels.WaitingOnContributor}, []string{labels.NeedsTesting, labels.NeedsReReview})
	}
	return nil
}
