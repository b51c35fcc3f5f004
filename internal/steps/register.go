package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("classifier", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewClassifier(deps), nil
	})

	r.Register("redmine_sync", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewRedmineSync(deps), nil
	})

	r.Register("disallowed_label", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewDisallowedLabel(deps), nil
	})

	r.Register("issue_links", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewIssueLinks(deps), nil
	})

	r.Register("synchronize_relabel", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewSynchronizeRelabel(deps), nil
	})

	r.Register("commit_style", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewCommitStyle(deps), nil
	})

	r.Register("opened_labels", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewOpenedLabels(deps), nil
	})

	r.Register("review_labels", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewReviewLabels(deps), nil
	})

	r.Register("dirty_check", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewDirtyCheck(deps), nil
	})

	r.Register("path_labels", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewPathLabels(deps), nil
	})

	r.Register("branch_labels", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewBranchLabels(deps), nil
	})
}
