package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sinkii09/workplan/internal/plan"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("ntn_test")
	c.BaseURL = srv.URL
	return c
}

func TestCreatePage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer ntn_test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got == "" {
			t.Error("missing Notion-Version header")
		}

		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Parent.PageID != "parent-1" {
			t.Errorf("unexpected parent %q", req.Parent.PageID)
		}
		if req.Icon == nil || req.Icon.Emoji != "🏔️" {
			t.Errorf("unexpected icon %+v", req.Icon)
		}
		if len(req.Properties.Title.Title) != 1 || req.Properties.Title.Title[0].Text.Content != "Epic: Auth" {
			t.Errorf("unexpected title %+v", req.Properties.Title)
		}

		json.NewEncoder(w).Encode(page{ID: "page-9"})
	})

	id, err := c.CreatePage(context.Background(), "parent-1", "Epic: Auth", "🏔️", nil)
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if id != "page-9" {
		t.Errorf("expected page-9, got %q", id)
	}
}

func TestPublishPlan_NestsPages(t *testing.T) {
	var pages atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := pages.Add(1)

		var req pageRequest
		json.NewDecoder(r.Body).Decode(&req)

		// The first page hangs off the configured parent; the second is
		// the issue nested under the epic's new page.
		switch n {
		case 1:
			if req.Parent.PageID != "root-page" {
				t.Errorf("epic parent = %q, want root-page", req.Parent.PageID)
			}
			json.NewEncoder(w).Encode(page{ID: "epic-page"})
		case 2:
			if req.Parent.PageID != "epic-page" {
				t.Errorf("issue parent = %q, want epic-page", req.Parent.PageID)
			}
			json.NewEncoder(w).Encode(page{ID: "issue-page"})
		default:
			t.Errorf("unexpected extra page creation (%d)", n)
		}
	})

	issue := &plan.Item{Title: "Issue 1: Login", Kind: plan.KindIssue, Priority: "High"}
	epic := &plan.Item{Title: "Epic: Auth", Kind: plan.KindEpic, Priority: "medium", SubItems: []*plan.Item{issue}}

	if err := c.PublishPlan(context.Background(), "root-page", []*plan.Item{epic}); err != nil {
		t.Fatalf("PublishPlan failed: %v", err)
	}

	if epic.NotionID != "epic-page" {
		t.Errorf("epic NotionID = %q", epic.NotionID)
	}
	if issue.NotionID != "issue-page" {
		t.Errorf("issue NotionID = %q", issue.NotionID)
	}
}

func TestItemBlocks(t *testing.T) {
	item := &plan.Item{
		Title:              "Issue 1: Login",
		Kind:               plan.KindIssue,
		Description:        "Implement login.",
		Priority:           "High",
		EstimatedEffort:    "2 days",
		AcceptanceCriteria: []string{"a", "b"},
		Dependencies:       []string{"Schema migration"},
		GitHubNumber:       42,
	}

	blocks := ItemBlocks(item)

	var todos, bullets, paragraphs, headings int
	for _, b := range blocks {
		switch b.Type {
		case "to_do":
			todos++
		case "bulleted_list_item":
			bullets++
		case "paragraph":
			paragraphs++
		case "heading_3":
			headings++
		}
	}

	if todos != 2 {
		t.Errorf("expected 2 todo blocks, got %d", todos)
	}
	if bullets != 1 {
		t.Errorf("expected 1 bullet block, got %d", bullets)
	}
	// Description, two property lines, and the GitHub reference.
	if paragraphs != 4 {
		t.Errorf("expected 4 paragraph blocks, got %d", paragraphs)
	}
	if headings != 2 {
		t.Errorf("expected 2 heading blocks, got %d", headings)
	}
	if blocks[0].Paragraph == nil || blocks[0].Paragraph.RichText[0].Text.Content != "Implement login." {
		t.Errorf("first block should be the description, got %+v", blocks[0])
	}
}

func TestFindPageByTitle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"results":[
			{"id":"other","properties":{"title":{"title":[{"plain_text":"Something Else"}]}}},
			{"id":"match","properties":{"title":{"title":[{"plain_text":"Epic: Auth"}]}}}
		]}`))
	})

	id, err := c.FindPageByTitle(context.Background(), "Epic: Auth")
	if err != nil {
		t.Fatalf("FindPageByTitle failed: %v", err)
	}
	if id != "match" {
		t.Errorf("expected id 'match', got %q", id)
	}
}
