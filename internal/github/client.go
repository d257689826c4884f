// Package github is a minimal client for the GitHub issues API. It
// covers exactly the operations work plan syncing needs: creating and
// updating issues, commenting, and listing.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Issue is the subset of the GitHub issue payload the sync flow uses.
type Issue struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	HTMLURL   string  `json:"html_url"`
	Labels    []Label `json:"labels"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Label is a GitHub issue label.
type Label struct {
	Name string `json:"name"`
}

// IssueRequest is the payload for creating or updating an issue.
type IssueRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}

// Client talks to the GitHub API for a single repository.
type Client struct {
	// BaseURL may be overridden for tests or GitHub Enterprise.
	BaseURL string

	token      string
	owner      string
	repo       string
	httpClient *http.Client
}

// NewClient creates a client for the given repository. The token may be
// empty for read-only access to public repositories.
func NewClient(token, owner, repo string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		token:      token,
		owner:      owner,
		repo:       repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateIssue opens a new issue and returns the created issue, including
// the number assigned by GitHub.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (*Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.BaseURL, c.owner, c.repo)

	var issue Issue
	if err := c.do(ctx, http.MethodPost, url, req, &issue); err != nil {
		return nil, fmt.Errorf("creating issue %q: %w", req.Title, err)
	}
	return &issue, nil
}

// UpdateIssue updates an existing issue in place.
func (c *Client) UpdateIssue(ctx context.Context, number int, req IssueRequest) (*Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.BaseURL, c.owner, c.repo, number)

	var issue Issue
	if err := c.do(ctx, http.MethodPatch, url, req, &issue); err != nil {
		return nil, fmt.Errorf("updating issue #%d: %w", number, err)
	}
	return &issue, nil
}

// AddComment posts a comment on an issue.
func (c *Client) AddComment(ctx context.Context, number int, body string) error {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments", c.BaseURL, c.owner, c.repo, number)

	payload := struct {
		Body string `json:"body"`
	}{Body: body}

	if err := c.do(ctx, http.MethodPost, url, payload, nil); err != nil {
		return fmt.Errorf("commenting on issue #%d: %w", number, err)
	}
	return nil
}

// ListIssues returns repository issues in the given state ("open",
// "closed", or "all").
func (c *Client) ListIssues(ctx context.Context, issueState string) ([]Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=%s", c.BaseURL, c.owner, c.repo, issueState)

	var issues []Issue
	if err := c.do(ctx, http.MethodGet, url, nil, &issues); err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return issues, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
