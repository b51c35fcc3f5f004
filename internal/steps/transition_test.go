package steps

import (
	"testing"

	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/core/labels"
	"github.com/jlsherrill/prprocessor/internal/integrations/redmine"
)

func testPR() *event.PullRequest {
	return &event.PullRequest{
		Owner:        "theforeman",
		Repo:         "foreman",
		Number:       42,
		Author:       "octocat",
		HTMLURL:      "https://github.com/theforeman/foreman/pull/42",
		TargetBranch: "develop",
		Labels:       labels.NewSet(),
	}
}

func backlogIssue() *redmine.Issue {
	return &redmine.Issue{
		ID:           1234,
		Project:      redmine.Project{ID: 7},
		Status:       redmine.IDName{ID: redmine.StatusAssigned},
		FixedVersion: &redmine.IDName{ID: 55, Name: redmine.VersionBacklog},
		CustomFields: []redmine.CustomField{
			{ID: redmine.CustomFieldTriaged, Value: "1"},
		},
	}
}

func TestTransitionDisallowedProjectLeavesIssueUntouched(t *testing.T) {
	issue := backlogIssue()

	needsLabel := TransitionIssue(issue, testPR(), 99, false)

	if !needsLabel {
		t.Error("expected contributor label request for disallowed project")
	}
	if issue.HasChanges() {
		t.Errorf("issue mutated despite disallowed project: %v", issue.Changes())
	}
	if issue.Status.ID != redmine.StatusAssigned || !issue.Triaged() || issue.AssignedTo != nil {
		t.Error("issue state changed despite disallowed project")
	}
}

func TestTransitionRejectedIssueIsFrozen(t *testing.T) {
	issue := backlogIssue()
	issue.Status = redmine.IDName{ID: redmine.StatusRejected}

	needsLabel := TransitionIssue(issue, testPR(), 99, true)

	if needsLabel {
		t.Error("rejected issue requested a contributor label")
	}
	if issue.HasChanges() {
		t.Errorf("rejected issue mutated: %v", issue.Changes())
	}
}

func TestTransitionBacklogResetsTriage(t *testing.T) {
	issue := backlogIssue()

	TransitionIssue(issue, testPR(), 0, true)

	if issue.Triaged() {
		t.Error("triaged flag not reset")
	}
	if issue.FixedVersion != nil {
		t.Error("target version not cleared")
	}
	if issue.Status.ID != redmine.StatusReadyForTesting {
		t.Errorf("status = %d, want ready for testing", issue.Status.ID)
	}
}

func TestTransitionNoVersionResetsTriage(t *testing.T) {
	issue := backlogIssue()
	issue.FixedVersion = nil

	TransitionIssue(issue, testPR(), 0, true)

	if issue.Triaged() {
		t.Error("triaged flag not reset for versionless issue")
	}
}

func TestTransitionScheduledIssueKeepsTriage(t *testing.T) {
	issue := backlogIssue()
	issue.FixedVersion = &redmine.IDName{ID: 60, Name: "2.1.0"}

	TransitionIssue(issue, testPR(), 0, true)

	if !issue.Triaged() {
		t.Error("triage reset for a properly scheduled issue")
	}
	if issue.FixedVersion == nil {
		t.Error("target version cleared for a properly scheduled issue")
	}
}

func TestTransitionLinksPullRequest(t *testing.T) {
	issue := backlogIssue()
	pr := testPR()

	TransitionIssue(issue, pr, 0, true)

	urls := issue.PullRequestURLs()
	if len(urls) != 1 || urls[0] != pr.HTMLURL {
		t.Errorf("PullRequestURLs = %v", urls)
	}
}

func TestTransitionCherryPickSkipsLinking(t *testing.T) {
	issue := backlogIssue()
	pr := testPR()
	pr.CherryPick = true

	TransitionIssue(issue, pr, 0, true)

	if len(issue.PullRequestURLs()) != 0 {
		t.Error("cherry-pick PR was linked")
	}
}

func TestTransitionClosedIssueKeepsStatus(t *testing.T) {
	issue := backlogIssue()
	issue.Status = redmine.IDName{ID: redmine.StatusClosed}

	TransitionIssue(issue, testPR(), 0, true)

	if issue.Status.ID != redmine.StatusClosed {
		t.Errorf("closed issue status changed to %d", issue.Status.ID)
	}
	// Linking still happens for closed issues.
	if len(issue.PullRequestURLs()) != 1 {
		t.Error("closed issue not linked")
	}
}

func TestTransitionAssignment(t *testing.T) {
	tests := []struct {
		name       string
		userID     int
		assignedTo *redmine.IDName
		wantID     int
	}{
		{"mapped user, unassigned", 99, nil, 99},
		{"unmapped user", 0, nil, 0},
		{"already assigned", 99, &redmine.IDName{ID: 7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := backlogIssue()
			issue.AssignedTo = tt.assignedTo

			TransitionIssue(issue, testPR(), tt.userID, true)

			switch {
			case tt.wantID == 0 && issue.AssignedTo != nil:
				t.Errorf("unexpected assignee %v", issue.AssignedTo)
			case tt.wantID != 0 && (issue.AssignedTo == nil || issue.AssignedTo.ID != tt.wantID):
				t.Errorf("assignee = %v, want %d", issue.AssignedTo, tt.wantID)
			}
		})
	}
}

func TestTransitionIsIdempotent(t *testing.T) {
	pr := testPR()

	once := backlogIssue()
	TransitionIssue(once, pr, 99, true)

	twice := backlogIssue()
	TransitionIssue(twice, pr, 99, true)
	TransitionIssue(twice, pr, 99, true)

	if once.Status != twice.Status {
		t.Errorf("status diverged: %v vs %v", once.Status, twice.Status)
	}
	if once.Triaged() != twice.Triaged() {
		t.Error("triaged flag diverged")
	}
	if len(once.PullRequestURLs()) != len(twice.PullRequestURLs()) {
		t.Errorf("PR links diverged: %v vs %v", once.PullRequestURLs(), twice.PullRequestURLs())
	}
	if once.AssignedTo == nil || twice.AssignedTo == nil || *once.AssignedTo != *twice.AssignedTo {
		t.Error("assignee diverged")
	}
}
