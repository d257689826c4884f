// Package plan parses markdown work plan documents into a typed tree of
// epics, issues, and tasks for downstream publishing to external trackers.
package plan

// Kind identifies the structural role of a work plan item.
type Kind string

const (
	// KindEpic is a top-level work initiative (level-1 section).
	KindEpic Kind = "epic"

	// KindIssue is a unit of implementable work (level-3 section).
	KindIssue Kind = "issue"

	// KindTask is a finer-grained work unit under an issue.
	KindTask Kind = "task"

	// KindSubtask is the finest-grained work unit.
	KindSubtask Kind = "subtask"
)

// rank orders kinds from coarsest to finest. Lower rank means closer to
// the root of the hierarchy.
var kindRank = map[Kind]int{
	KindEpic:    0,
	KindIssue:   1,
	KindTask:    2,
	KindSubtask: 3,
}

// CanParent reports whether an item of this kind may own child items of
// the given kind. Only epics and issues can have children, and a child
// must be strictly finer-grained than its parent.
func (k Kind) CanParent(child Kind) bool {
	if k != KindEpic && k != KindIssue {
		return false
	}
	return kindRank[child] > kindRank[k]
}

// Item is a single node in the parsed work plan tree.
//
// An item is created once during classification and mutated exactly once
// more during hierarchy construction, when children are appended. The
// GitHubNumber and NotionID fields are populated by external collaborators
// after creation; the parser never sets them.
type Item struct {
	Title              string         `json:"title"`
	Kind               Kind           `json:"type"`
	Description        string         `json:"description"`
	Labels             []string       `json:"labels"`
	Assignees          []string       `json:"assignees"`
	Milestone          string         `json:"milestone,omitempty"`
	Priority           string         `json:"priority"`
	EstimatedEffort    string         `json:"estimated_effort,omitempty"`
	Dependencies       []string       `json:"dependencies"`
	AcceptanceCriteria []string       `json:"acceptance_criteria"`
	Deliverables       []string       `json:"deliverables"`
	SubItems           []*Item        `json:"sub_items"`
	Metadata           map[string]any `json:"metadata"`
	GitHubNumber       int            `json:"github_number,omitempty"`
	NotionID           string         `json:"notion_id,omitempty"`
}

// Flatten returns the item and all of its descendants in depth-first
// document order.
func (it *Item) Flatten() []*Item {
	flat := []*Item{it}
	for _, sub := range it.SubItems {
		flat = append(flat, sub.Flatten()...)
	}
	return flat
}

// FlattenAll flattens a forest of items in depth-first document order.
func FlattenAll(items []*Item) []*Item {
	var flat []*Item
	for _, it := range items {
		flat = append(flat, it.Flatten()...)
	}
	return flat
}
