package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/integrations/redmine"
)

// TransitionIssue computes and applies the triage transition for one
// referenced issue against the in-memory issue only; the caller decides
// whether to persist the accumulated changes. It returns true when the
// issue's project is outside the repository's allowed set, in which case
// the issue is left untouched and the platform side must instead mark the
// PR as waiting on the contributor.
//
// Applying the same transition twice yields the same final issue state as
// applying it once.
func TransitionIssue(issue *redmine.Issue, pr *event.PullRequest, redmineUserID int, projectAllowed bool) bool {
	if !projectAllowed {
		return true
	}

	// Rejected issues are frozen against this workflow.
	if issue.Rejected() {
		return false
	}

	// A PR against an untriaged or backlog issue re-enters the triage
	// queue instead of keeping a stale version target.
	if issue.Backlog() || issue.RecycleBin() || issue.FixedVersion == nil {
		issue.SetTriaged(false)
		issue.ClearTargetVersion()
	}

	if !pr.CherryPick {
		issue.AddPullRequest(pr.HTMLURL)
	}

	if !issue.Closed() {
		issue.SetStatus(redmine.StatusReadyForTesting)
	}

	if redmineUserID > 0 && issue.AssignedTo == nil {
		issue.SetAssignee(redmineUserID)
	}

	return false
}
