package server

import (
	"sort"

	"github.com/gofiber/fiber/v2"
)

// handleStatus reports which credentials are configured, the repositories
// under management and the remaining platform API quota.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	repos := s.repos.Names()
	sort.Strings(repos)

	out := fiber.Map{
		"github_secret":      s.cfg.GitHub.WebhookSecret != "",
		"github_oauth_token": s.cfg.GitHub.Token != "",
		"redmine_key":        s.cfg.Redmine.APIKey != "",
		"configured_repos":   repos,
	}

	if s.platform != nil {
		remaining, limit, err := s.platform.RateLimit(c.Context())
		if err != nil {
			s.log.Warnw("failed to fetch rate limit", "error", err)
		} else {
			out["rate_limit"] = fiber.Map{"remaining": remaining, "limit": limit}
		}
	}

	return c.JSON(out)
}

// handleRedmineRepos exposes the tracker-to-repository mapping so Redmine
// plugins can discover which repositories and branches feed each project.
func (s *Server) handleRedmineRepos(c *fiber.Ctx) error {
	return c.JSON(s.repos.RedmineIndex())
}
