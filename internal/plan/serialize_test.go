package plan

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestItem_JSONRoundTrip(t *testing.T) {
	original := &Item{
		Title:              "Issue 1: Login",
		Kind:               KindIssue,
		Description:        "Implement the login flow.",
		Labels:             []string{"auth", "backend", "auth"},
		Assignees:          []string{"@me"},
		Milestone:          "Sprint 1",
		Priority:           "High",
		EstimatedEffort:    "2 days",
		Dependencies:       []string{"Schema migration"},
		AcceptanceCriteria: []string{"Users can log in", "Session cookie is set"},
		Deliverables:       []string{"Login endpoint"},
		SubItems: []*Item{
			{
				Title:    "Task: wire session store",
				Kind:     KindTask,
				Priority: "medium",
				Metadata: map[string]any{"milestone": "Sprint 1"},
			},
		},
		Metadata:     map[string]any{"milestone": "Sprint 1", "priority": "High"},
		GitHubNumber: 42,
		NotionID:     "page-123",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Item
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Errorf("round trip changed the item:\n  original: %+v\n  decoded:  %+v", original, &decoded)
	}
}

func TestItem_JSONKeys(t *testing.T) {
	item := &Item{Title: "Epic: Auth", Kind: KindEpic, Priority: "medium", GitHubNumber: 7}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	if m["type"] != "epic" {
		t.Errorf("expected kind under key 'type', got %v", m["type"])
	}
	if m["github_number"] != float64(7) {
		t.Errorf("expected github_number 7, got %v", m["github_number"])
	}
	for _, key := range []string{"title", "description", "labels", "assignees", "priority",
		"dependencies", "acceptance_criteria", "deliverables", "sub_items", "metadata"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in serialized item", key)
		}
	}
}

func TestKind_CanParent(t *testing.T) {
	tests := []struct {
		parent Kind
		child  Kind
		want   bool
	}{
		{KindEpic, KindIssue, true},
		{KindEpic, KindTask, true},
		{KindEpic, KindSubtask, true},
		{KindEpic, KindEpic, false},
		{KindIssue, KindTask, true},
		{KindIssue, KindSubtask, true},
		{KindIssue, KindIssue, false},
		{KindIssue, KindEpic, false},
		{KindTask, KindSubtask, false},
		{KindSubtask, KindSubtask, false},
	}

	for _, tt := range tests {
		if got := tt.parent.CanParent(tt.child); got != tt.want {
			t.Errorf("%s.CanParent(%s) = %v, want %v", tt.parent, tt.child, got, tt.want)
		}
	}
}

func TestFlattenAll(t *testing.T) {
	items := ParseContent(authPlan)

	flat := FlattenAll(items)
	if len(flat) != 3 {
		t.Fatalf("expected 3 flattened items, got %d", len(flat))
	}
	wantOrder := []string{"Epic: Auth", "Issue 1: Login", "Issue 2: Logout"}
	for i, want := range wantOrder {
		if flat[i].Title != want {
			t.Errorf("flatten order[%d] = %q, want %q", i, flat[i].Title, want)
		}
	}
}
