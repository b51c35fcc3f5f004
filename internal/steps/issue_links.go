package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
	"github.com/jlsherrill/prprocessor/internal/utils/text"
)

// IssueLinks posts a comment cross-linking the referenced tracker issues on
// repositories that opted in. The comment carries a marker so the links are
// posted at most once per pull request.
type IssueLinks struct {
	deps *pipeline.Dependencies
}

// NewIssueLinks creates the step.
func NewIssueLinks(deps *pipeline.Dependencies) *IssueLinks {
	return &IssueLinks{deps: deps}
}

// Name returns the step name.
func (s *IssueLinks) Name() string {
	return "issue_links"
}

// Run posts the links comment if the repo opted in and it is not present yet.
func (s *IssueLinks) Run(c *pipeline.Context) error {
	if !c.Decision.ProcessPlatform || c.Repo == nil || !c.Repo.LinkToRedmine {
		return nil
	}

	body := text.IssueLinksComment(s.deps.TrackerURL, c.PR().IssueRefs)
	if body == "" {
		return nil
	}

	if s.deps.DryRun {
		s.deps.Log.Infow("dry run: issue links comment", "pr", c.PR().Number, "body", body)
		c.Actions.Record(pipeline.SubsystemPlatform, true)
		return nil
	}

	pr := c.PR()
	existing, err := s.deps.GitHub.ListCommentBodies(c.Ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		s.deps.Log.Errorw("failed to inspect existing comments", "pr", pr.Number, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return nil
	}
	for _, comment := range existing {
		if text.IsIssueLinksComment(comment) {
			return nil
		}
	}

	applyComment(c, s.deps, body)
	return nil
}
