package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jlsherrill/prprocessor/internal/core/config"
	"github.com/jlsherrill/prprocessor/internal/core/event"
	"github.com/jlsherrill/prprocessor/internal/core/pipeline"
	"github.com/jlsherrill/prprocessor/internal/logger"
	"github.com/jlsherrill/prprocessor/internal/server"
	"github.com/jlsherrill/prprocessor/internal/steps"
)

var (
	payloadFile string
	eventType   string
	presetName  string
	applyWrites bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a saved webhook payload through the rule engine",
	Long: `Replay reads a webhook payload from a file and runs it through the
rule pipeline, printing the per-subsystem action outcomes. Writes are
logged instead of performed unless --apply is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay()
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&payloadFile, "payload", "", "Path to the webhook payload JSON file")
	replayCmd.Flags().StringVar(&eventType, "event", "pull_request", "Webhook event type of the payload")
	replayCmd.Flags().StringVar(&presetName, "preset", server.DefaultPreset, "Pipeline preset to run")
	replayCmd.Flags().BoolVar(&applyWrites, "apply", false, "Perform writes instead of logging them")
	_ = replayCmd.MarkFlagRequired("payload")
}

func runReplay() error {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repos, err := config.LoadRepositories(cfg.Paths.Repos)
	if err != nil {
		return err
	}
	users, err := config.LoadUsers(cfg.Paths.Users)
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(payloadFile)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	e, err := event.Parse(eventType, payload)
	if err != nil {
		return err
	}

	repo := repos.Get(e.RepoFullName)
	if repo == nil {
		return fmt.Errorf("repository %s is not configured", e.RepoFullName)
	}

	decision := event.Classify(e, cfg.Capabilities(), repo)
	if decision.Skip {
		fmt.Printf("delivery filtered: %s\n", decision.SkipReason)
		return nil
	}

	deps, platform := buildDependencies(ctx, cfg, users, log, func(error) {}, !applyWrites)

	var messages []string
	if platform != nil && (decision.ProcessTracker || (repo.RedmineRequired && decision.ProcessPlatform)) {
		messages, err = platform.ListCommitMessages(ctx, e.PR.Owner, e.PR.Repo, e.PR.Number)
		if err != nil {
			log.Warnw("failed to list commit messages", "pr", e.PR.Number, "error", err)
		}
	}
	e.PR.Resolve(repo, messages)

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)
	names, ok := pipeline.GetPreset(presetName)
	if !ok {
		return fmt.Errorf("unknown pipeline preset %q", presetName)
	}
	p, err := registry.BuildFromNames(names, deps)
	if err != nil {
		return err
	}

	pctx := pipeline.NewContext(ctx, e, repo, decision)
	if err := p.Run(pctx); err != nil {
		return err
	}

	out, err := json.MarshalIndent(pctx.Actions.Map(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if pctx.Actions.Failed() {
		return fmt.Errorf("one or more actions failed")
	}
	return nil
}
