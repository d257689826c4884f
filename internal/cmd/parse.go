package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sinkii09/workplan/internal/plan"
	"github.com/sinkii09/workplan/internal/style"
)

var parseCmd = &cobra.Command{
	Use:   "parse <plan.md>",
	Short: "Parse a work plan and print the resulting tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := plan.ParseFile(args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println(style.Dim.Render("no work items found"))
			return nil
		}
		printTree(items)
		fmt.Printf("\n%d items total\n", len(plan.FlattenAll(items)))
		return nil
	},
}

func printTree(items []*plan.Item) {
	for _, item := range items {
		printItem(item, 0)
	}
}

func printItem(item *plan.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s", indent, kindLabel(item.Kind), style.Bold.Render(item.Title))

	var notes []string
	if item.Priority != "" && item.Priority != "medium" {
		notes = append(notes, "priority: "+item.Priority)
	}
	if item.EstimatedEffort != "" {
		notes = append(notes, "effort: "+item.EstimatedEffort)
	}
	if len(item.Labels) > 0 {
		notes = append(notes, "labels: "+strings.Join(item.Labels, ", "))
	}
	if item.GitHubNumber > 0 {
		notes = append(notes, fmt.Sprintf("#%d", item.GitHubNumber))
	}
	if len(notes) > 0 {
		fmt.Printf(" %s", style.Dim.Render("("+strings.Join(notes, ", ")+")"))
	}
	fmt.Println()

	for _, sub := range item.SubItems {
		printItem(sub, depth+1)
	}
}

func kindLabel(kind plan.Kind) string {
	label := "[" + strings.ToUpper(string(kind)) + "]"
	switch kind {
	case plan.KindEpic:
		return style.Epic.Render(label)
	case plan.KindIssue:
		return style.Issue.Render(label)
	default:
		return style.Dim.Render(label)
	}
}
