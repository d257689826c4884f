package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/config"
	"github.com/sinkii09/workplan/internal/plan"
	"github.com/sinkii09/workplan/internal/style"
)

var (
	createSkipNotion bool
	createDryRun     bool
)

var createCmd = &cobra.Command{
	Use:   "create <plan.md>",
	Short: "Create GitHub issues (and Notion pages) from a work plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		if createDryRun {
			items, err := plan.ParseFile(planPath)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n\n", style.Bold.Render("Dry run - would create:"))
			printTree(items)
			fmt.Printf("\n%d items total\n", len(plan.FlattenAll(items)))
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		mgr, opts, err := newManager(cfg, createSkipNotion)
		if err != nil {
			return err
		}

		result, err := mgr.Create(cmd.Context(), planPath, opts)
		if err != nil {
			return err
		}

		fmt.Printf("%s %d issues created", style.Success.Render("✓"), result.Stats.Created)
		if result.Stats.Failed > 0 {
			fmt.Printf(", %s", style.Error.Render(fmt.Sprintf("%d failed", result.Stats.Failed)))
		}
		fmt.Println()
		for _, title := range result.Failed {
			fmt.Printf("  %s %s\n", style.Error.Render("✗"), title)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&createSkipNotion, "skip-notion", false, "skip publishing to Notion")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "parse and show the plan without creating anything")
}
