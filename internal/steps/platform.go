// Package steps contains the rule steps the pipeline evaluates in fixed
// order for each webhook delivery. Each step implements pipeline.Step.
package steps

import (
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// applyReplace performs an idempotent replace-labels transition on the PR,
// keeps the local label view in sync, and records the platform outcome.
// Failures are recorded, not returned, so later rules still run.
func applyReplace(c *pipeline.Context, deps *pipeline.Dependencies, remove, add []string) {
	pr := c.PR()

	if deps.DryRun {
		deps.Log.Infow("dry run: replace labels",
			"pr", pr.Number, "remove", remove, "add", add)
		pr.Labels.Replace(remove, add)
		c.Actions.Record(pipeline.SubsystemPlatform, true)
		return
	}

	if err := deps.GitHub.ReplaceLabels(c.Ctx, pr.Owner, pr.Repo, pr.Number, remove, add); err != nil {
		deps.Log.Errorw("label replace failed",
			"pr", pr.Number, "remove", remove, "add", add, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return
	}

	pr.Labels.Replace(remove, add)
	c.Actions.Record(pipeline.SubsystemPlatform, true)
}

// applySetLabels replaces the PR's labels with exactly the given set.
func applySetLabels(c *pipeline.Context, deps *pipeline.Dependencies, names []string) {
	pr := c.PR()

	if deps.DryRun {
		deps.Log.Infow("dry run: set labels", "pr", pr.Number, "labels", names)
		pr.Labels.ReplaceAll(names...)
		c.Actions.Record(pipeline.SubsystemPlatform, true)
		return
	}

	if err := deps.GitHub.SetLabels(c.Ctx, pr.Owner, pr.Repo, pr.Number, names); err != nil {
		deps.Log.Errorw("label set failed", "pr", pr.Number, "labels", names, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return
	}

	pr.Labels.ReplaceAll(names...)
	c.Actions.Record(pipeline.SubsystemPlatform, true)
}

// applyComment posts a comment on the PR.
func applyComment(c *pipeline.Context, deps *pipeline.Dependencies, body string) {
	pr := c.PR()

	if deps.DryRun {
		deps.Log.Infow("dry run: add comment", "pr", pr.Number, "body", body)
		c.Actions.Record(pipeline.SubsystemPlatform, true)
		return
	}

	if err := deps.GitHub.AddComment(c.Ctx, pr.Owner, pr.Repo, pr.Number, body); err != nil {
		deps.Log.Errorw("comment failed", "pr", pr.Number, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return
	}
	c.Actions.Record(pipeline.SubsystemPlatform, true)
}

// applyCommitStatus reports a status check on the PR's head commit.
func applyCommitStatus(c *pipeline.Context, deps *pipeline.Dependencies, state, description, statusContext string) {
	pr := c.PR()

	if deps.DryRun {
		deps.Log.Infow("dry run: commit status",
			"pr", pr.Number, "sha", pr.HeadSHA, "state", state, "description", description)
		c.Actions.Record(pipeline.SubsystemPlatform, true)
		return
	}

	if err := deps.GitHub.CreateCommitStatus(c.Ctx, pr.Owner, pr.Repo, pr.HeadSHA, state, description, statusContext); err != nil {
		deps.Log.Errorw("commit status failed", "pr", pr.Number, "sha", pr.HeadSHA, "error", err)
		c.Actions.Record(pipeline.SubsystemPlatform, false)
		return
	}
	c.Actions.Record(pipeline.SubsystemPlatform, true)
}
