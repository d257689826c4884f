package plan

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Keyword sets for classifying sections. Matching is a case-insensitive
// substring test, not a whole-word test: a level-1 header titled
// "Subtasking Notes" would match "task" if it appeared at level 3. This
// mirrors how plans are written in practice and is a known limitation.
var (
	epicKeywords  = []string{"epic", "project", "initiative", "feature set"}
	issueKeywords = []string{"issue", "task"}
)

// section is a header-delimited slice of the document.
type section struct {
	level int
	title string
	body  []string
}

// ParseFile reads a markdown work plan file and parses it into a forest
// of items.
func ParseFile(path string) ([]*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading work plan %s: %w", path, err)
	}
	return ParseContent(string(data)), nil
}

// Parse parses a markdown work plan from a reader.
func Parse(r io.Reader) ([]*Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading work plan: %w", err)
	}
	return ParseContent(string(data)), nil
}

// ParseContent parses markdown content into a forest of work plan items.
//
// The result preserves document order at every level. Sections that do
// not classify as epics or issues are narrative documentation and are
// dropped. Empty input, or input with no classifiable sections, yields
// an empty forest.
func ParseContent(content string) []*Item {
	metadata, content := extractFrontMatter(content)

	sections := splitSections(content)

	var items []*Item
	for _, sec := range sections {
		item := parseSection(sec, metadata)
		if item != nil {
			items = append(items, item)
		}
	}

	return buildHierarchy(items)
}

// splitSections segments the document into header-delimited sections.
// Lines before the first header do not belong to any section and are
// discarded.
func splitSections(content string) []section {
	var sections []section
	var current *section

	for _, line := range strings.Split(content, "\n") {
		if matches := headerRegex.FindStringSubmatch(line); matches != nil {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &section{
				level: len(matches[1]),
				title: strings.TrimSpace(matches[2]),
			}
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
		}
	}

	if current != nil {
		sections = append(sections, *current)
	}

	return sections
}

// classify decides whether a section is an actionable work item, and of
// which kind. Level-2 headers and level-4+ headers never classify; they
// are content sections like "Overview" or per-issue detail headings.
func classify(level int, title string) (Kind, bool) {
	lower := strings.ToLower(title)

	if level == 1 && containsAny(lower, epicKeywords) {
		return KindEpic, true
	}
	if level == 3 && containsAny(lower, issueKeywords) {
		return KindIssue, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// parseSection turns a classified section into an Item. Returns nil for
// sections that are documentation rather than work items.
func parseSection(sec section, docMetadata map[string]any) *Item {
	kind, ok := classify(sec.level, sec.title)
	if !ok {
		return nil
	}

	body := strings.TrimSpace(strings.Join(sec.body, "\n"))
	props := extractProperties(body)

	effort := props["effort"]
	if effort == "" {
		effort = props["estimated_effort"]
	}
	priority := props["priority"]
	if priority == "" {
		priority = "medium"
	}

	// Item-level properties override document metadata on key conflicts.
	metadata := make(map[string]any, len(docMetadata)+len(props))
	for k, v := range docMetadata {
		metadata[k] = v
	}
	for k, v := range props {
		metadata[k] = v
	}

	return &Item{
		Title:              sec.title,
		Kind:               kind,
		Description:        props["description"],
		Labels:             parseCommaList(props["labels"]),
		Assignees:          parseCommaList(props["assignees"]),
		Milestone:          props["milestone"],
		Priority:           priority,
		EstimatedEffort:    effort,
		Dependencies:       collectList(body, dependencyKeywords),
		AcceptanceCriteria: collectList(body, criteriaKeywords),
		Deliverables:       collectList(body, deliverableKeywords),
		Metadata:           metadata,
	}
}
