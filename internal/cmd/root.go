// Package cmd implements the workplan CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/config"
	"github.com/sinkii09/workplan/internal/github"
	"github.com/sinkii09/workplan/internal/manager"
	"github.com/sinkii09/workplan/internal/notion"
)

var rootCmd = &cobra.Command{
	Use:   "workplan",
	Short: "Sync markdown work plans to GitHub issues and Notion pages",
	Long: `Workplan parses markdown work plan documents into a tree of epics and
issues, creates matching GitHub issues, and publishes the plan as nested
Notion pages. Re-running against a modified document updates only what
changed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newManager wires a Manager from configuration. The publisher is nil
// when Notion is not configured or publishing is skipped.
func newManager(cfg *config.Config, skipPublish bool) (*manager.Manager, manager.Options, error) {
	if err := cfg.RequireGitHub(); err != nil {
		return nil, manager.Options{}, err
	}
	tracker := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo)

	opts := manager.Options{SkipPublish: skipPublish}
	var publisher manager.Publisher
	if !skipPublish {
		if err := cfg.RequireNotion(); err != nil {
			return nil, manager.Options{}, err
		}
		publisher = notion.NewClient(cfg.Notion.Token)
		opts.PublishParentID = cfg.Notion.ParentPageID
	}

	return manager.New(tracker, publisher), opts, nil
}
