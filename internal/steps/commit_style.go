package steps

import (
	"fmt"

	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
	"github.com/jlsherrill/prprocessor/internal/utils/text"
)

// statusContext identifies the processor's commit status checks.
const statusContext = "prprocessor/commit-message"

// CommitStyle verifies that every commit message references a tracker issue
// in the required format, reporting the result as a commit status on the
// PR's head commit. Only runs for repositories where the tracker reference
// is mandatory.
type CommitStyle struct {
	deps *pipeline.Dependencies
}

// NewCommitStyle creates the step.
func NewCommitStyle(deps *pipeline.Dependencies) *CommitStyle {
	return &CommitStyle{deps: deps}
}

// Name returns the step name.
func (s *CommitStyle) Name() string {
	return "commit_style"
}

// Run checks commit messages on opened and synchronized pull requests.
func (s *CommitStyle) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || c.Repo == nil || !c.Repo.RedmineRequired {
		return nil
	}
	key := c.Event.DispatchKey()
	if key != "pull_request/opened" && key != "pull_request/synchronize" {
		return nil
	}

	bad := 0
	for _, message := range c.PR().CommitMessages {
		if !text.CheckCommitMessage(message) {
			bad++
		}
	}

	state := "success"
	description := "Commit messages reference a tracker issue"
	if bad > 0 {
		state = "failure"
		description = fmt.Sprintf("%d commit(s) missing a 'Fixes #<issue> - <summary>' message", bad)
	}

	applyCommitStatus(c, s.deps, state, description, statusContext)
	return nil
}
