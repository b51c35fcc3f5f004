// Package pipeline provides the rule engine that processes one webhook
// delivery. It defines the Step interface, the Context carried through the
// steps, and the Actions aggregator that determines the response status.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/integrations/redmine"
)

// ErrSkipPipeline indicates that the remaining steps should be skipped
// gracefully. This is not an error condition: filtered events are expected,
// frequent traffic.
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface all rule steps implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic. It returns ErrSkipPipeline to stop
	// the pipeline gracefully, or any other error to indicate failure.
	// Per-operation failures against external systems are recorded in
	// Context.Actions instead of returned, so later rules still run.
	Run(ctx *Context) error
}

// PlatformClient is the subset of GitHub operations the steps perform.
type PlatformClient interface {
	ReplaceLabels(ctx context.Context, owner, repo string, number int, remove, add []string) error
	SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	AddComment(ctx context.Context, owner, repo string, number int, body string) error
	ListCommentBodies(ctx context.Context, owner, repo string, number int) ([]string, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)
	CreateCommitStatus(ctx context.Context, owner, repo, sha, state, description, statusContext string) error
}

// TrackerClient is the subset of Redmine operations the steps perform.
type TrackerClient interface {
	GetIssue(ctx context.Context, id int) (*redmine.Issue, error)
	GetProject(ctx context.Context, id int) (*redmine.Project, error)
	SaveIssue(ctx context.Context, issue *redmine.Issue) error
}

// Dependencies holds what steps need, injected at construction time.
type Dependencies struct {
	GitHub  PlatformClient
	Redmine TrackerClient
	Users   config.UserMap
	Log     *zap.SugaredLogger

	// TrackerURL is the Redmine base URL used when rendering issue links.
	TrackerURL string

	// ReportError forwards recovered per-issue failures to the error
	// reporting sink. May be nil.
	ReportError func(error)

	// DryRun logs intended writes instead of performing them.
	DryRun bool
}

// Report sends err to the error reporting sink, if one is configured.
func (d *Dependencies) Report(err error) {
	if d.ReportError != nil {
		d.ReportError(err)
	}
}

// Context carries one delivery through the rule steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Event is the normalized delivery being processed.
	Event *event.Event

	// Repo is the configuration of the repository the event belongs to.
	Repo *config.Repository

	// Decision is the classifier's outcome for this delivery.
	Decision event.Decision

	// Actions accumulates per-subsystem success and failure.
	Actions *Actions

	// NeedsContributorLabel is set by the tracker sync when a referenced
	// issue lives in a project the repository may not act on; the label
	// side then marks the PR as waiting on the contributor.
	NeedsContributorLabel bool
}

// NewContext creates a pipeline context for one delivery.
func NewContext(ctx context.Context, e *event.Event, repo *config.Repository, decision event.Decision) *Context {
	return &Context{
		Ctx:      ctx,
		Event:    e,
		Repo:     repo,
		Decision: decision,
		Actions:  NewActions(),
	}
}

// PR is a shorthand for the pull request under processing.
func (c *Context) PR() *event.PullRequest {
	return c.Event.PR
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order. The order is a correctness requirement:
// later rules must be able to override label state produced by earlier ones.
// Stops on the first error (ErrSkipPipeline is a graceful stop).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				return nil
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
