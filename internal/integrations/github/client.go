package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client with the operations the processor
// performs on pull requests.
type Client struct {
	client *github.Client
}

// ReplaceLabels removes the labels in remove (absence is not an error),
// then adds the labels in add (presence is not an error). Applying the same
// transition twice yields the same final label set.
func (c *Client) ReplaceLabels(ctx context.Context, owner, repo string, number int, remove, add []string) error {
	for _, label := range remove {
		resp, err := c.client.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				continue
			}
			return fmt.Errorf("failed to remove label %q: %w", label, err)
		}
	}

	if len(add) == 0 {
		return nil
	}
	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, add); err != nil {
		return fmt.Errorf("failed to add labels %v: %w", add, err)
	}
	return nil
}

// SetLabels replaces the pull request's labels with exactly the given set.
func (c *Client) SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if _, _, err := c.client.Issues.ReplaceLabelsForIssue(ctx, owner, repo, number, labels); err != nil {
		return fmt.Errorf("failed to set labels %v: %w", labels, err)
	}
	return nil
}

// AddComment posts a comment on the pull request.
func (c *Client) AddComment(ctx context.Context, owner, repo string, number int, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	if _, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListCommentBodies returns the bodies of all comments on the pull request.
func (c *Client) ListCommentBodies(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var bodies []string
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		for _, comment := range comments {
			bodies = append(bodies, comment.GetBody())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return bodies, nil
}

// ListCommitMessages returns the commit messages of the pull request.
func (c *Client) ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var messages []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits: %w", err)
		}
		for _, commit := range commits {
			messages = append(messages, commit.GetCommit().GetMessage())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return messages, nil
}

// ListChangedFiles returns the filenames changed by the pull request.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var files []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		changed, resp, err := c.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list changed files: %w", err)
		}
		for _, f := range changed {
			files = append(files, f.GetFilename())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return files, nil
}

// CreateCommitStatus reports a status check on the given commit.
func (c *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha, state, description, statusContext string) error {
	status := &github.RepoStatus{
		State:       github.String(state),
		Description: github.String(description),
		Context:     github.String(statusContext),
	}
	if _, _, err := c.client.Repositories.CreateStatus(ctx, owner, repo, sha, status); err != nil {
		return fmt.Errorf("failed to create commit status: %w", err)
	}
	return nil
}

// RateLimit returns the remaining and total core API rate limit.
func (c *Client) RateLimit(ctx context.Context) (remaining, limit int, err error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch rate limit: %w", err)
	}
	core := limits.GetCore()
	return core.Remaining, core.Limit, nil
}
