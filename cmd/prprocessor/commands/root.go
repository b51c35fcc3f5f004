// Package commands implements the prprocessor CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prprocessor",
	Short: "Synchronize pull request state with the Foreman issue tracker",
	Long: `prprocessor receives GitHub pull request webhooks and keeps the
review-lifecycle labels and the linked Redmine issues in sync: referenced
issues move to Ready For Testing, get the pull request attached and lose
stale triage state, while the PR's labels track the review conversation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
