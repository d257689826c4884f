package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/config"
	"github.com/sinkii09/workplan/internal/plan"
	"github.com/sinkii09/workplan/internal/style"
)

var (
	updateSkipNotion bool
	updateDryRun     bool
)

var updateCmd = &cobra.Command{
	Use:   "update <plan.md>",
	Short: "Update previously created issues from a modified work plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		if updateDryRun {
			items, err := plan.ParseFile(planPath)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n\n", style.Bold.Render("Dry run - current plan:"))
			printTree(items)
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		mgr, opts, err := newManager(cfg, updateSkipNotion)
		if err != nil {
			return err
		}

		result, err := mgr.Update(cmd.Context(), planPath, opts)
		if err != nil {
			return err
		}

		fmt.Printf("%s %d updated, %d created", style.Success.Render("✓"),
			result.Stats.Updated, result.Stats.Created)
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
	updateCmd.Flags().BoolVar(&updateSkipNotion, "skip-notion", false, "skip publishing to Notion")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "parse and show the plan without touching anything")
}
