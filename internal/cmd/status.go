package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/state"
	"github.com/sinkii09/workplan/internal/style"
)

var statusCmd = &cobra.Command{
	Use:   "status <plan.md>",
	Short: "Show the last sync state for a work plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := state.Load(args[0])
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("%s no sync state for %s (run 'workplan create' first)\n",
				style.Warning.Render("!"), args[0])
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", style.Bold.Render(st.FilePath))
		fmt.Printf("  last sync: %s (run %s)\n",
			st.CreatedAt.Format("2006-01-02 15:04:05"), style.Dim.Render(st.RunID))
		fmt.Printf("  created %d, updated %d, failed %d\n",
			st.Stats.Created, st.Stats.Updated, st.Stats.Failed)
		fmt.Println()
		for _, item := range st.Items {
			ref := style.Dim.Render("not on GitHub")
			if item.GitHubNumber > 0 {
				ref = fmt.Sprintf("#%d", item.GitHubNumber)
			}
			fmt.Printf("  %s %s %s\n", kindLabel(item.Kind), item.Title, ref)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List work plans and their sync state in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", dir, err)
		}

		found := false
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			planPath := filepath.Join(dir, entry.Name())
			st, err := state.Load(planPath)
			if errors.Is(err, os.ErrNotExist) {
				fmt.Printf("  %s %s\n", entry.Name(), style.Dim.Render("(not synced)"))
				found = true
				continue
			}
			if err != nil {
				fmt.Printf("  %s %s\n", entry.Name(),
					style.Error.Render("(unreadable state: "+err.Error()+")"))
				found = true
				continue
			}
			fmt.Printf("  %s %s\n", entry.Name(), style.Success.Render(fmt.Sprintf(
				"(%d items, synced %s)", len(st.Items), st.CreatedAt.Format("2006-01-02"))))
			found = true
		}
		if !found {
			fmt.Println(style.Dim.Render("no markdown files found"))
		}
		return nil
	},
}
