package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/config"
	"github.com/sinkii09/workplan/internal/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration and credential status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", style.Bold.Render("root:"), cfg.Root)
		fmt.Printf("%s %s/%s\n", style.Bold.Render("github:"), orUnset(cfg.GitHub.Owner), orUnset(cfg.GitHub.Repo))
		fmt.Printf("%s %s\n", style.Bold.Render("notion parent:"), orUnset(cfg.Notion.ParentPageID))

		for name, status := range cfg.ValidateTokens() {
			switch {
			case !status.Present:
				fmt.Printf("  %s token: %s\n", name, style.Warning.Render("missing"))
			case !status.FormatValid:
				fmt.Printf("  %s token: %s\n", name, style.Warning.Render("present, unrecognized format"))
			default:
				fmt.Printf("  %s token: %s\n", name, style.Success.Render("present"))
			}
		}
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return style.Dim.Render("(unset)")
	}
	return v
}
