// Package notion publishes parsed work plans as nested Notion pages.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sinkii09/workplan/internal/plan"
)

const (
	defaultBaseURL = "https://api.notion.com"
	notionVersion  = "2022-06-28"
)

// Client talks to the Notion API.
type Client struct {
	// BaseURL may be overridden for tests.
	BaseURL string

	token      string
	httpClient *http.Client
}

// NewClient creates a Notion API client.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type page struct {
	ID string `json:"id"`
}

type pageRequest struct {
	Parent     pageParent     `json:"parent"`
	Icon       *pageIcon      `json:"icon,omitempty"`
	Properties pageProperties `json:"properties"`
	Children   []Block        `json:"children,omitempty"`
}

type pageParent struct {
	PageID string `json:"page_id"`
}

type pageIcon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

type pageProperties struct {
	Title pageTitle `json:"title"`
}

type pageTitle struct {
	Title []RichText `json:"title"`
}

// CreatePage creates a child page under the given parent and returns the
// new page ID. The icon is an optional emoji.
func (c *Client) CreatePage(ctx context.Context, parentID, title, icon string, children []Block) (string, error) {
	req := pageRequest{
		Parent:     pageParent{PageID: parentID},
		Properties: pageProperties{Title: pageTitle{Title: []RichText{Text(title)}}},
		Children:   children,
	}
	if icon != "" {
		req.Icon = &pageIcon{Type: "emoji", Emoji: icon}
	}

	var created page
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/v1/pages", req, &created); err != nil {
		return "", fmt.Errorf("creating page %q: %w", title, err)
	}
	return created.ID, nil
}

// AppendBlocks appends content blocks to an existing page or block.
func (c *Client) AppendBlocks(ctx context.Context, blockID string, blocks []Block) error {
	payload := struct {
		Children []Block `json:"children"`
	}{Children: blocks}

	url := fmt.Sprintf("%s/v1/blocks/%s/children", c.BaseURL, blockID)
	if err := c.do(ctx, http.MethodPatch, url, payload, nil); err != nil {
		return fmt.Errorf("appending blocks to %s: %w", blockID, err)
	}
	return nil
}

// FindPageByTitle searches the workspace for a page with an exactly
// matching title. Returns an empty ID when no page matches.
func (c *Client) FindPageByTitle(ctx context.Context, title string) (string, error) {
	payload := struct {
		Query  string `json:"query"`
		Filter struct {
			Value    string `json:"value"`
			Property string `json:"property"`
		} `json:"filter"`
	}{Query: title}
	payload.Filter.Value = "page"
	payload.Filter.Property = "object"

	var result struct {
		Results []struct {
			ID         string `json:"id"`
			Properties map[string]struct {
				Title []struct {
					PlainText string `json:"plain_text"`
				} `json:"title"`
			} `json:"properties"`
		} `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/v1/search", payload, &result); err != nil {
		return "", fmt.Errorf("searching for page %q: %w", title, err)
	}

	for _, r := range result.Results {
		for _, prop := range r.Properties {
			for _, t := range prop.Title {
				if t.PlainText == title {
					return r.ID, nil
				}
			}
		}
	}
	return "", nil
}

// PublishPlan renders a work plan forest as nested pages under the given
// parent page: one page per item, child items as child pages. The Notion
// page ID is recorded on each published item.
func (c *Client) PublishPlan(ctx context.Context, parentID string, items []*plan.Item) error {
	for _, item := range items {
		pageID, err := c.CreatePage(ctx, parentID, item.Title, iconFor(item.Kind), ItemBlocks(item))
		if err != nil {
			return err
		}
		item.NotionID = pageID

		if err := c.PublishPlan(ctx, pageID, item.SubItems); err != nil {
			return err
		}
	}
	return nil
}

func iconFor(kind plan.Kind) string {
	switch kind {
	case plan.KindEpic:
		return "🏔️"
	case plan.KindIssue:
		return "📋"
	default:
		return "🔨"
	}
}

// ItemBlocks renders a single item's content (not its sub-items) as
// Notion blocks.
func ItemBlocks(item *plan.Item) []Block {
	var blocks []Block

	if item.Description != "" {
		blocks = append(blocks, Paragraph(Text(item.Description)))
	}

	props := []struct{ label, value string }{
		{"Priority", item.Priority},
		{"Estimated Effort", item.EstimatedEffort},
		{"Milestone", item.Milestone},
	}
	for _, p := range props {
		if p.value != "" {
			blocks = append(blocks, Paragraph(BoldText(p.label+": "), Text(p.value)))
		}
	}

	if len(item.AcceptanceCriteria) > 0 {
		blocks = append(blocks, Heading(3, "Acceptance Criteria"))
		for _, criterion := range item.AcceptanceCriteria {
			blocks = append(blocks, Todo(criterion, false))
		}
	}

	if len(item.Deliverables) > 0 {
		blocks = append(blocks, Heading(3, "Deliverables"))
		for _, deliverable := range item.Deliverables {
			blocks = append(blocks, Todo(deliverable, false))
		}
	}

	if len(item.Dependencies) > 0 {
		blocks = append(blocks, Heading(3, "Dependencies"))
		for _, dep := range item.Dependencies {
			blocks = append(blocks, Bullet(dep))
		}
	}

	if item.GitHubNumber > 0 {
		blocks = append(blocks,
			Divider(),
			Paragraph(Text(fmt.Sprintf("GitHub issue #%d", item.GitHubNumber))))
	}

	return blocks
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
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

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
