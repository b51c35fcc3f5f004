// Package server exposes the webhook endpoint and the introspection routes
// over HTTP.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
)

// DefaultPreset is the rule order used for incoming deliveries.
const DefaultPreset = "pull-request-sync"

// PlatformReader is the read-only platform access the server itself needs:
// commit listing before the engine runs and the API quota for /status.
type PlatformReader interface {
	ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error)
	RateLimit(ctx context.Context) (remaining, limit int, err error)
}

// Options bundles the server's collaborators.
type Options struct {
	Config   *config.Config
	Repos    config.Repositories
	Deps     *pipeline.Dependencies
	Registry *pipeline.Registry

	// Preset selects the rule order. Empty means DefaultPreset.
	Preset string

	// Platform may be nil when no GitHub token is configured.
	Platform PlatformReader

	Log *zap.SugaredLogger
}

// Server handles webhook deliveries and introspection requests.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	repos    config.Repositories
	deps     *pipeline.Dependencies
	engine   *pipeline.Pipeline
	platform PlatformReader
	log      *zap.SugaredLogger
}

// New builds the server and its routes. The rule pipeline is constructed
// once; steps are stateless across deliveries.
func New(opts Options) (*Server, error) {
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	names, ok := pipeline.GetPreset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown pipeline preset %q", preset)
	}
	engine, err := opts.Registry.BuildFromNames(names, opts.Deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           opts.Config.Server.RequestTimeout,
		WriteTimeout:          opts.Config.Server.RequestTimeout,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(opts.Log))

	s := &Server{
		app:      app,
		cfg:      opts.Config,
		repos:    opts.Repos,
		deps:     opts.Deps,
		engine:   engine,
		platform: opts.Platform,
		log:      opts.Log,
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/status", s.handleStatus)
	app.Get("/redmine_repos", s.handleRedmineRepos)
	app.Post("/pull_request", s.handlePullRequest)

	return s, nil
}

// App returns the underlying fiber application, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until shutdown.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.ServerAddr())
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
