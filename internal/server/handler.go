package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-github/v60/github"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// handlePullRequest processes one webhook delivery. The response body is the
// per-subsystem action map; a delivery where any recorded action failed
// answers 500 so the sender retries it.
func (s *Server) handlePullRequest(c *fiber.Ctx) error {
	body := c.Body()

	if secret := s.cfg.GitHub.WebhookSecret; secret != "" {
		sig := c.Get("X-Hub-Signature-256")
		if sig == "" {
			sig = c.Get("X-Hub-Signature")
		}
		if err := github.ValidateSignature(sig, body, []byte(secret)); err != nil {
			s.log.Warnw("rejected delivery with invalid signature", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid signature"})
		}
	}

	eventType := c.Get("X-GitHub-Event")
	if !event.Supported(eventType) {
		s.log.Debugw("ignoring unsupported event type", "event", eventType)
		return c.JSON(map[string]bool{})
	}

	e, err := event.Parse(eventType, body)
	if err != nil {
		s.log.Warnw("failed to parse delivery", "event", eventType, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := s.repos.Get(e.RepoFullName)
	decision := event.Classify(e, s.cfg.Capabilities(), repo)
	if decision.Skip {
		s.log.Debugw("delivery filtered", "key", e.DispatchKey(), "reason", decision.SkipReason)
		return c.JSON(map[string]bool{})
	}
	if repo == nil {
		s.log.Errorw("delivery for unconfigured repository", "repo", e.RepoFullName)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "repository not configured: " + e.RepoFullName})
	}

	e.PR.Resolve(repo, s.commitMessages(c.Context(), e, repo, decision))

	pctx := pipeline.NewContext(c.Context(), e, repo, decision)
	if err := s.engine.Run(pctx); err != nil {
		s.log.Errorw("pipeline failed", "key", e.DispatchKey(), "repo", e.RepoFullName, "error", err)
		s.deps.Report(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if pctx.Actions.Failed() {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(pctx.Actions.Map())
}

// commitMessages fetches the PR's commit messages when a rule will need
// them: tracker sync derives issue references from them, and the commit
// style check inspects them when tracker references are mandatory.
func (s *Server) commitMessages(ctx context.Context, e *event.Event, repo *config.Repository, d event.Decision) []string {
	if s.platform == nil {
		return nil
	}
	if !d.ProcessTracker && !(repo.RedmineRequired && d.ProcessPlatform) {
		return nil
	}

	messages, err := s.platform.ListCommitMessages(ctx, e.PR.Owner, e.PR.Repo, e.PR.Number)
	if err != nil {
		s.log.Warnw("failed to list commit messages",
			"repo", e.RepoFullName, "pr", e.PR.Number, "error", err)
		return nil
	}
	return messages
}
