package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// ReviewLabels translates a submitted review into the PR's label state.
type ReviewLabels struct {
	deps *pipeline.Dependencies
}

// NewReviewLabels creates the step.
func NewReviewLabels(deps *pipeline.Dependencies) *ReviewLabels {
	return &ReviewLabels{deps: deps}
}

// Name returns the step name.
func (s *ReviewLabels) Name() string {
	return "review_labels"
}

// Run handles pull_request_review/submitted. A negative review puts the PR
// back on the contributor; an approval clears the review labels.
func (s *ReviewLabels) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform {
		return nil
	}
	if c.Event.Type != event.TypeReview || c.Event.Action != "submitted" {
		return nil
	}

	reviewPair := []string{labels.NotYetReviewed, labels.NeedsReReview}

	switch c.Event.ReviewState {
	case "rejected", "changes_requested":
		applyReplace(c, s.deps, reviewPair, []string{labels.WaitingOnContributor})
	case "approved":
		applyReplace(c, s.deps, reviewPair, nil)
	}
	return nil
}
