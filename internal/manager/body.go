package manager

import (
	"fmt"
	"strings"

	"github.com/sinkii09/workplan/internal/plan"
)

const bodySignature = "---\n*This issue was created/updated automatically from a work plan document.*"

// buildIssueBody renders an item as a markdown issue body: description,
// properties, the labeled lists, and a checklist of direct sub-items.
func buildIssueBody(item *plan.Item) string {
	var parts []string

	if item.Description != "" {
		parts = append(parts, "## Description\n"+item.Description)
	}

	var props []string
	if item.Priority != "" {
		props = append(props, "**Priority**: "+item.Priority)
	}
	if item.EstimatedEffort != "" {
		props = append(props, "**Estimated Effort**: "+item.EstimatedEffort)
	}
	if item.Milestone != "" {
		props = append(props, "**Milestone**: "+item.Milestone)
	}
	if len(props) > 0 {
		parts = append(parts, "## Properties\n"+strings.Join(props, "\n"))
	}

	if len(item.AcceptanceCriteria) > 0 {
		parts = append(parts, "## Acceptance Criteria\n"+checklist(item.AcceptanceCriteria))
	}
	if len(item.Deliverables) > 0 {
		parts = append(parts, "## Deliverables\n"+checklist(item.Deliverables))
	}
	if len(item.Dependencies) > 0 {
		var deps []string
		for _, dep := range item.Dependencies {
			deps = append(deps, "- "+dep)
		}
		parts = append(parts, "## Dependencies\n"+strings.Join(deps, "\n"))
	}

	if len(item.SubItems) > 0 {
		var subs []string
		for _, sub := range item.SubItems {
			line := "- [ ] " + sub.Title
			if sub.GitHubNumber > 0 {
				line += fmt.Sprintf(" (#%d)", sub.GitHubNumber)
			}
			subs = append(subs, line)
		}
		parts = append(parts, "## Sub-Items\n"+strings.Join(subs, "\n"))
	}

	parts = append(parts, bodySignature)
	return strings.Join(parts, "\n\n")
}

func checklist(entries []string) string {
	var lines []string
	for _, entry := range entries {
		lines = append(lines, "- [ ] "+entry)
	}
	return strings.Join(lines, "\n")
}
