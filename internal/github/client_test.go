package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("ghp_test", "sinkii09", "engine")
	c.BaseURL = srv.URL
	return c
}

func TestCreateIssue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/repos/sinkii09/engine/issues" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token ghp_test" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Title != "Issue 1: Login" {
			t.Errorf("unexpected title %q", req.Title)
		}
		if len(req.Labels) != 2 {
			t.Errorf("expected 2 labels, got %v", req.Labels)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Issue{Number: 42, Title: req.Title, State: "open"})
	})

	issue, err := c.CreateIssue(context.Background(), IssueRequest{
		Title:  "Issue 1: Login",
		Body:   "body",
		Labels: []string{"auth", "issue"},
	})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}
	if issue.Number != 42 {
		t.Errorf("expected issue number 42, got %d", issue.Number)
	}
}

func TestUpdateIssue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/repos/sinkii09/engine/issues/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Issue{Number: 7, Title: "updated"})
	})

	issue, err := c.UpdateIssue(context.Background(), 7, IssueRequest{Title: "updated"})
	if err != nil {
		t.Fatalf("UpdateIssue failed: %v", err)
	}
	if issue.Title != "updated" {
		t.Errorf("unexpected title %q", issue.Title)
	}
}

func TestAddComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/sinkii09/engine/issues/7/comments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["body"] != "Part of: #1" {
			t.Errorf("unexpected comment body %q", payload["body"])
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.AddComment(context.Background(), 7, "Part of: #1"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
}

func TestListIssues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("expected state=open, got %q", got)
		}
		json.NewEncoder(w).Encode([]Issue{{Number: 1}, {Number: 2}})
	})

	issues, err := c.ListIssues(context.Background(), "open")
	if err != nil {
		t.Fatalf("ListIssues failed: %v", err)
	}
	if len(issues) != 2 {
		t.Errorf("expected 2 issues, got %d", len(issues))
	}
}

func TestErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	})

	_, err := c.CreateIssue(context.Background(), IssueRequest{Title: "x"})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
}
