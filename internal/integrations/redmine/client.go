// Package redmine is a client for the Redmine REST API, covering the issue
// and project reads plus the issue updates the processor performs.
package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnprocessable is returned when Redmine rejects an update (HTTP 422),
// typically because a workflow transition is not permitted.
var ErrUnprocessable = errors.New("redmine rejected the update")

// Client talks to a Redmine instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Redmine client for the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type issueEnvelope struct {
	Issue *Issue `json:"issue"`
}

type projectEnvelope struct {
	Project *Project `json:"project"`
}

// GetIssue fetches one issue by number.
func (c *Client) GetIssue(ctx context.Context, id int) (*Issue, error) {
	var env issueEnvelope
	if err := c.get(ctx, fmt.Sprintf("/issues/%d.json", id), &env); err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", id, err)
	}
	if env.Issue == nil {
		return nil, fmt.Errorf("issue #%d missing from response", id)
	}
	return env.Issue, nil
}

// GetProject fetches a project by numeric ID or identifier.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var env projectEnvelope
	if err := c.get(ctx, fmt.Sprintf("/projects/%d.json", id), &env); err != nil {
		return nil, fmt.Errorf("failed to fetch project %d: %w", id, err)
	}
	if env.Project == nil {
		return nil, fmt.Errorf("project %d missing from response", id)
	}
	return env.Project, nil
}

// SaveIssue applies the issue's pending changes. Saving an issue with no
// pending changes is a no-op.
func (c *Client) SaveIssue(ctx context.Context, issue *Issue) error {
	if !issue.HasChanges() {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{"issue": issue.Changes()})
	if err != nil {
		return fmt.Errorf("failed to encode issue %s: %w", issue, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/issues/%d.json", c.baseURL, issue.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save issue %s: %w", issue, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: issue %s: %s", ErrUnprocessable, issue, strings.TrimSpace(string(detail)))
	case resp.StatusCode >= 300:
		return fmt.Errorf("failed to save issue %s: unexpected status %d", issue, resp.StatusCode)
	}

	issue.changes = nil
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Redmine-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}
