package steps

import (
	"fmt"

	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// RedmineSync applies the issue-side transition for every tracker issue the
// pull request references. A failure on one issue is recovered locally and
// never aborts the remaining issues.
type RedmineSync struct {
	deps *pipeline.Dependencies
}

// NewRedmineSync creates the tracker synchronization step.
func NewRedmineSync(deps *pipeline.Dependencies) *RedmineSync {
	return &RedmineSync{deps: deps}
}

// Name returns the step name.
func (s *RedmineSync) Name() string {
	return "redmine_sync"
}

// Run processes the referenced issues sequentially. No references is a
// valid state: the PR simply has no tracker synchronization.
func (s *RedmineSync) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessTracker {
		return nil
	}

	for _, number := range c.PR().IssueRefs {
		s.syncIssue(c, number)
	}
	return nil
}

func (s *RedmineSync) syncIssue(c *pipeline.Context, number int) {
	pr := c.PR()

	issue, err := s.deps.Redmine.GetIssue(c.Ctx, number)
	if err != nil {
		s.fail(c, fmt.Errorf("failed to load issue #%d for PR %s: %w", number, pr.HTMLURL, err))
		return
	}

	project, err := s.deps.Redmine.GetProject(c.Ctx, issue.Project.ID)
	if err != nil {
		s.fail(c, fmt.Errorf("failed to load project for issue #%d: %w", number, err))
		return
	}

	allowed := c.Repo.ProjectAllowed(project.Identifier)
	userID := s.deps.Users.RedmineID(pr.Author)

	if TransitionIssue(issue, pr, userID, allowed) {
		// No write access into that project's triage flow; the label
		// side marks the PR instead.
		s.deps.Log.Infow("issue project not allowed",
			"issue", number, "project", project.Identifier, "repo", c.Repo.FullName)
		c.NeedsContributorLabel = true
		return
	}

	if issue.Rejected() {
		return
	}

	if s.deps.DryRun {
		s.deps.Log.Infow("dry run: save issue", "issue", number, "changes", issue.Changes())
		c.Actions.Record(pipeline.SubsystemTracker, true)
		return
	}

	if err := s.deps.Redmine.SaveIssue(c.Ctx, issue); err != nil {
		s.fail(c, fmt.Errorf("failed to save issue #%d for PR %s: %w", issue.ID, pr.HTMLURL, err))
		return
	}
	c.Actions.Record(pipeline.SubsystemTracker, true)
}

// fail logs the error, forwards it to the error reporting sink and records
// a tracker failure, leaving the remaining issues unaffected.
func (s *RedmineSync) fail(c *pipeline.Context, err error) {
	s.deps.Log.Errorw("tracker sync failed", "error", err)
	s.deps.Report(err)
	c.Actions.Record(pipeline.SubsystemTracker, false)
}
