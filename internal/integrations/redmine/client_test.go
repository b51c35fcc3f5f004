package redmine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const issueJSON = `{
  "issue": {
    "id": 1234,
    "project": {"id": 7, "name": "Foreman"},
    "subject": "Something broke",
    "status": {"id": 2, "name": "Assigned"},
    "fixed_version": {"id": 55, "name": "Backlog"},
    "custom_fields": [
      {"id": 4, "name": "Triaged", "value": "1"},
      {"id": 7, "name": "Pull request", "value": ["https://github.com/theforeman/foreman/pull/1"]}
    ]
  }
}`

func TestGetIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/issues/1234.json", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("X-Redmine-API-Key"))
		_, _ = w.Write([]byte(issueJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	issue, err := c.GetIssue(context.Background(), 1234)
	require.NoError(t, err)

	require.Equal(t, 1234, issue.ID)
	require.True(t, issue.Backlog())
	require.False(t, issue.RecycleBin())
	require.True(t, issue.Triaged())
	require.False(t, issue.Rejected())
	require.False(t, issue.Closed())
	require.Equal(t, []string{"https://github.com/theforeman/foreman/pull/1"}, issue.PullRequestURLs())
}

func TestSaveIssueSendsChanges(t *testing.T) {
	var got map[string]map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/issues/1234.json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	issue := &Issue{ID: 1234, Status: IDName{ID: StatusAssigned}}
	issue.SetStatus(StatusReadyForTesting)

	c := NewClient(srv.URL, "secret")
	require.NoError(t, c.SaveIssue(context.Background(), issue))

	require.EqualValues(t, 7, got["issue"]["status_id"])
	require.False(t, issue.HasChanges(), "changes should be cleared after save")
}

func TestSaveIssueNoChangesIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unchanged issue")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	require.NoError(t, c.SaveIssue(context.Background(), &Issue{ID: 1}))
}

func TestSaveIssueUnprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":["Status is invalid"]}`))
	}))
	defer srv.Close()

	issue := &Issue{ID: 1}
	issue.SetStatus(StatusReadyForTesting)

	c := NewClient(srv.URL, "secret")
	err := c.SaveIssue(context.Background(), issue)
	require.ErrorIs(t, err, ErrUnprocessable)
}

func TestIssueMutationsAreIdempotent(t *testing.T) {
	fresh := func() *Issue {
		var env issueEnvelope
		require.NoError(t, json.Unmarshal([]byte(issueJSON), &env))
		return env.Issue
	}

	apply := func(i *Issue) {
		i.SetTriaged(false)
		i.ClearTargetVersion()
		i.AddPullRequest("https://github.com/theforeman/foreman/pull/2")
		i.SetStatus(StatusReadyForTesting)
		i.SetAssignee(99)
	}

	once := fresh()
	apply(once)

	twice := fresh()
	apply(twice)
	apply(twice)

	require.Equal(t, once.Status, twice.Status)
	require.Equal(t, once.Triaged(), twice.Triaged())
	require.Equal(t, once.FixedVersion, twice.FixedVersion)
	require.Equal(t, once.PullRequestURLs(), twice.PullRequestURLs())
	require.Equal(t, once.AssignedTo, twice.AssignedTo)

	// The same URL linked twice is recorded once.
	require.Len(t, twice.PullRequestURLs(), 2)
}

func TestMutationNoopsRecordNoChanges(t *testing.T) {
	issue := &Issue{
		ID:     1,
		Status: IDName{ID: StatusReadyForTesting},
		CustomFields: []CustomField{
			{ID: CustomFieldTriaged, Value: "0"},
		},
	}

	issue.SetStatus(StatusReadyForTesting)
	issue.SetTriaged(false)
	issue.ClearTargetVersion()

	require.False(t, issue.HasChanges())
}
