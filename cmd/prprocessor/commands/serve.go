package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
	"github.com/jlsherrill/prprocessor/internal/integrations/github"
	"github.com/jlsherrill/prprocessor/internal/integrations/redmine"
	"github.com/jlsherrill/prprocessor/internal/logger"
	"github.com/jlsherrill/prprocessor/internal/server"
	"github.com/jlsherrill/prprocessor/internal/steps"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reportError := func(error) {}
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		reportError = func(err error) { sentry.CaptureException(err) }
	}

	repos, err := config.LoadRepositories(cfg.Paths.Repos)
	if err != nil {
		return err
	}
	users, err := config.LoadUsers(cfg.Paths.Users)
	if err != nil {
		return err
	}

	deps, platform := buildDependencies(ctx, cfg, users, log, reportError, false)
	caps := cfg.Capabilities()
	if !caps.TrackerEnabled {
		log.Warnw("no redmine api key configured, tracker synchronization disabled")
	}
	if !caps.PlatformWriteEnabled {
		log.Warnw("no github token configured, label and comment writes disabled")
	}

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)

	opts := server.Options{
		Config:   cfg,
		Repos:    repos,
		Deps:     deps,
		Registry: registry,
		Log:      log,
	}
	if platform != nil {
		opts.Platform = platform
	}
	srv, err := server.New(opts)
	if err != nil {
		return err
	}

	go func() {
		if err := srv.Listen(); err != nil {
			log.Errorw("failed to start server", "error", err)
			stop()
		}
	}()
	log.Infow("server started",
		"addr", cfg.ServerAddr(),
		"repos", len(repos),
		"tracker", caps.TrackerEnabled,
		"platform_writes", caps.PlatformWriteEnabled,
	)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = srv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
	return nil
}

// buildDependencies wires the external clients available with the configured
// credentials. The returned platform client is nil without a GitHub token.
func buildDependencies(ctx context.Context, cfg *config.Config, users config.UserMap,
	log *zap.SugaredLogger, report func(error), dryRun bool) (*pipeline.Dependencies, *github.Client) {
	deps := &pipeline.Dependencies{
		Users:       users,
		Log:         log,
		TrackerURL:  cfg.Redmine.URL,
		ReportError: report,
		DryRun:      dryRun,
	}

	var platform *github.Client
	if cfg.GitHub.Token != "" {
		platform = github.NewClient(ctx, cfg.GitHub.Token)
		deps.GitHub = platform
	}
	if cfg.Redmine.APIKey != "" {
		deps.Redmine = redmine.NewClient(cfg.Redmine.URL, cfg.Redmine.APIKey)
	}
	return deps, platform
}
