// Package event provides typed views over incoming webhook payloads and the
// classification that decides which subsystems process a delivery.
package event

import (
	"fmt"

	"github.com/google/go-github/v60/github"

	"github.com/jlsherrill/prprocessor/internal/core/config"
)

// Type identifies the webhook event kind.
type Type string

// The event types the processor accepts. Everything else is dropped before
// any processing happens.
const (
	TypePullRequest   Type = "pull_request"
	TypeReview        Type = "pull_request_review"
	TypeReviewComment Type = "pull_request_review_comment"
)

// Supported reports whether the given webhook event type is one the
// processor handles.
func Supported(eventType string) bool {
	switch Type(eventType) {
	case TypePullRequest, TypeReview, TypeReviewComment:
		return true
	}
	return false
}

// Event is the immutable, normalized view of one webhook delivery.
type Event struct {
	Type         Type
	Action       string
	RepoFullName string

	// ReviewState is set for pull_request_review events: "approved",
	// "changes_requested", "rejected" or "commented".
	ReviewState string

	// PR is the pull request the event concerns.
	PR *PullRequest
}

// DispatchKey returns the normalized "type/action" key.
func (e *Event) DispatchKey() string {
	return string(e.Type) + "/" + e.Action
}

// Parse decodes a raw webhook payload into an Event. The event type must be
// one of the supported types.
func Parse(eventType string, payload []byte) (*Event, error) {
	if !Supported(eventType) {
		return nil, fmt.Errorf("unsupported event type %q", eventType)
	}

	raw, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", eventType, err)
	}

	switch p := raw.(type) {
	case *github.PullRequestEvent:
		return &Event{
			Type:         TypePullRequest,
			Action:       p.GetAction(),
			RepoFullName: p.GetRepo().GetFullName(),
			PR:           newPullRequest(p.GetRepo(), p.GetPullRequest()),
		}, nil
	case *github.PullRequestReviewEvent:
		return &Event{
			Type:         TypeReview,
			Action:       p.GetAction(),
			RepoFullName: p.GetRepo().GetFullName(),
			ReviewState:  p.GetReview().GetState(),
			PR:           newPullRequest(p.GetRepo(), p.GetPullRequest()),
		}, nil
	case *github.PullRequestReviewCommentEvent:
		return &Event{
			Type:         TypeReviewComment,
			Action:       p.GetAction(),
			RepoFullName: p.GetRepo().GetFullName(),
			PR:           newPullRequest(p.GetRepo(), p.GetPullRequest()),
		}, nil
	}

	return nil, fmt.Errorf("unexpected payload type %T for event %q", raw, eventType)
}

// Decision is the outcome of classifying an event against the configured
// capabilities.
type Decision struct {
	// Skip means the event must produce no side effects at all.
	Skip       bool
	SkipReason string

	// ProcessTracker enables the Redmine synchronization steps.
	ProcessTracker bool

	// ProcessPlatform enables the GitHub label/comment steps.
	ProcessPlatform bool
}

// Classify decides how an event is processed. It is pure: no side effects,
// no client calls.
func Classify(e *Event, caps config.Capabilities, repo *config.Repository) Decision {
	// Terminal and cosmetic actions are ignored so the processor never
	// reacts to its own label writes.
	if e.Type == TypePullRequest {
		switch e.Action {
		case "closed", "labeled", "unlabeled":
			return Decision{Skip: true, SkipReason: "ignored pull_request action: " + e.Action}
		}
	}

	// Comment-level granularity is not tracked.
	if e.Type == TypeReviewComment && e.Action == "created" {
		return Decision{Skip: true, SkipReason: "review comments are not processed"}
	}

	return Decision{
		ProcessTracker:  caps.TrackerEnabled && repo != nil && repo.RedmineProject != "",
		ProcessPlatform: caps.PlatformWriteEnabled,
	}
}
