package event

import (
	"testing"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/labels"
)

const pullRequestPayload = `{
  "action": "opened",
  "repository": {
    "full_name": "theforeman/foreman",
    "name": "foreman",
    "owner": {"login": "theforeman"}
  },
  "pull_request": {
    "number": 42,
    "title": "Fixes #1234 - add feature",
    "body": "details",
    "html_url": "https://github.com/theforeman/foreman/pull/42",
    "mergeable_state": "clean",
    "user": {"login": "octocat"},
    "base": {"ref": "develop"},
    "head": {"sha": "abc123"},
    "labels": [{"name": "Needs testing"}]
  }
}`

const reviewPayload = `{
  "action": "submitted",
  "review": {"state": "approved"},
  "repository": {
    "full_name": "theforeman/foreman",
    "name": "foreman",
    "owner": {"login": "theforeman"}
  },
  "pull_request": {
    "number": 42,
    "title": "Fixes #1234 - add feature",
    "user": {"login": "octocat"},
    "base": {"ref": "develop"},
    "head": {"sha": "abc123"}
  }
}`

func TestSupported(t *testing.T) {
	for _, typ := range []string{"pull_request", "pull_request_review", "pull_request_review_comment"} {
		if !Supported(typ) {
			t.Errorf("Supported(%q) = false", typ)
		}
	}
	for _, typ := range []string{"push", "issues", "issue_comment", ""} {
		if Supported(typ) {
			t.Errorf("Supported(%q) = true", typ)
		}
	}
}

func TestParsePullRequestEvent(t *testing.T) {
	e, err := Parse("pull_request", []byte(pullRequestPayload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if e.Type != TypePullRequest || e.Action != "opened" {
		t.Errorf("got %s/%s", e.Type, e.Action)
	}
	if e.DispatchKey() != "pull_request/opened" {
		t.Errorf("DispatchKey = %q", e.DispatchKey())
	}
	if e.RepoFullName != "theforeman/foreman" {
		t.Errorf("RepoFullName = %q", e.RepoFullName)
	}

	pr := e.PR
	if pr.Owner != "theforeman" || pr.Repo != "foreman" || pr.Number != 42 {
		t.Errorf("pr identity = %s/%s#%d", pr.Owner, pr.Repo, pr.Number)
	}
	if pr.Author != "octocat" {
		t.Errorf("Author = %q", pr.Author)
	}
	if pr.TargetBranch != "develop" || pr.HeadSHA != "abc123" {
		t.Errorf("base/head = %q/%q", pr.TargetBranch, pr.HeadSHA)
	}
	if !pr.Labels.Has(labels.NeedsTesting) {
		t.Error("labels not decoded")
	}
	if pr.Dirty() {
		t.Error("clean PR reported dirty")
	}
}

func TestParseReviewEvent(t *testing.T) {
	e, err := Parse("pull_request_review", []byte(reviewPayload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.Type != TypeReview || e.ReviewState != "approved" {
		t.Errorf("got %s state=%q", e.Type, e.ReviewState)
	}
}

func TestParseRejectsUnsupportedType(t *testing.T) {
	if _, err := Parse("push", []byte(`{}`)); err == nil {
		t.Error("expected error for unsupported event type")
	}
}

func TestResolve(t *testing.T) {
	e, err := Parse("pull_request", []byte(pullRequestPayload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	repo := &config.Repository{Branches: []string{"1.24-stable"}}
	e.PR.Resolve(repo, []string{"Refs #5678 - second commit"})

	if e.PR.CherryPick {
		t.Error("develop PR flagged as cherry-pick")
	}
	if len(e.PR.IssueRefs) != 2 || e.PR.IssueRefs[0] != 1234 || e.PR.IssueRefs[1] != 5678 {
		t.Errorf("IssueRefs = %v", e.PR.IssueRefs)
	}

	// Same payload, same refs: derivation is deterministic.
	again, _ := Parse("pull_request", []byte(pullRequestPayload))
	again.PR.Resolve(repo, []string{"Refs #5678 - second commit"})
	if len(again.PR.IssueRefs) != len(e.PR.IssueRefs) {
		t.Error("issue ref derivation not stable")
	}
}

func TestResolveCherryPick(t *testing.T) {
	e, _ := Parse("pull_request", []byte(pullRequestPayload))
	e.PR.TargetBranch = "1.24-stable"
	e.PR.Resolve(&config.Repository{Branches: []string{"1.24-stable"}}, nil)
	if !e.PR.CherryPick {
		t.Error("stable-branch PR not flagged as cherry-pick")
	}
}

func TestClassify(t *testing.T) {
	both := config.Capabilities{TrackerEnabled: true, PlatformWriteEnabled: true}
	linked := &config.Repository{RedmineProject: "foreman"}

	tests := []struct {
		name     string
		evt      *Event
		caps     config.Capabilities
		repo     *config.Repository
		wantSkip bool
		tracker  bool
		platform bool
	}{
		{"opened", &Event{Type: TypePullRequest, Action: "opened"}, both, linked, false, true, true},
		{"closed skipped", &Event{Type: TypePullRequest, Action: "closed"}, both, linked, true, false, false},
		{"labeled skipped", &Event{Type: TypePullRequest, Action: "labeled"}, both, linked, true, false, false},
		{"unlabeled skipped", &Event{Type: TypePullRequest, Action: "unlabeled"}, both, linked, true, false, false},
		{"review comment created skipped", &Event{Type: TypeReviewComment, Action: "created"}, both, linked, true, false, false},
		{"review submitted", &Event{Type: TypeReview, Action: "submitted"}, both, linked, false, true, true},
		{"no tracker key", &Event{Type: TypePullRequest, Action: "opened"}, config.Capabilities{PlatformWriteEnabled: true}, linked, false, false, true},
		{"no redmine project", &Event{Type: TypePullRequest, Action: "opened"}, both, &config.Repository{}, false, false, true},
		{"no github token", &Event{Type: TypePullRequest, Action: "opened"}, config.Capabilities{TrackerEnabled: true}, linked, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.evt, tt.caps, tt.repo)
			if d.Skip != tt.wantSkip {
				t.Errorf("Skip = %v, want %v", d.Skip, tt.wantSkip)
			}
			if d.Skip {
				return
			}
			if d.ProcessTracker != tt.tracker {
				t.Errorf("ProcessTracker = %v, want %v", d.ProcessTracker, tt.tracker)
			}
			if d.ProcessPlatform != tt.platform {
				t.Errorf("ProcessPlatform = %v, want %v", d.ProcessPlatform, tt.platform)
			}
		})
	}
}
