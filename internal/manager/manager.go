// Package manager orchestrates work plan runs: parse the document,
// create or update tracker issues, publish to Notion, and record state
// for incremental re-runs.
package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/sinkii09/workplan/internal/github"
	"github.com/sinkii09/workplan/internal/notion"
	"github.com/sinkii09/workplan/internal/plan"
	"github.com/sinkii09/workplan/internal/state"
)

// Tracker creates and updates issues in an external issue tracker.
type Tracker interface {
	CreateIssue(ctx context.Context, req github.IssueRequest) (*github.Issue, error)
	UpdateIssue(ctx context.Context, number int, req github.IssueRequest) (*github.Issue, error)
	AddComment(ctx context.Context, number int, body string) error
}

// Publisher renders a work plan forest to an external document service.
type Publisher interface {
	PublishPlan(ctx context.Context, parentID string, items []*plan.Item) error
}

var (
	_ Tracker   = (*github.Client)(nil)
	_ Publisher = (*notion.Client)(nil)
)

// Options control a single run.
type Options struct {
	// SkipPublish disables Notion publishing for this run.
	SkipPublish bool

	// PublishParentID is the Notion page the plan is published under.
	PublishParentID string
}

// Result summarizes a run.
type Result struct {
	Items  []*plan.Item // the parsed forest, annotated with external IDs
	Stats  state.Stats
	Failed []string // titles that could not be created or updated
}

// Manager runs work plan syncs against injected collaborators.
type Manager struct {
	tracker   Tracker
	publisher Publisher
}

// New creates a Manager. The publisher may be nil when publishing is
// not configured.
func New(tracker Tracker, publisher Publisher) *Manager {
	return &Manager{tracker: tracker, publisher: publisher}
}

// Create parses a work plan document and creates a tracker issue for
// every item, in document order. Parent/child issues are cross-linked
// with comments in a second pass, the plan is optionally published, and
// the run is recorded in the plan's state file.
func (m *Manager) Create(ctx context.Context, planPath string, opts Options) (*Result, error) {
	items, err := plan.ParseFile(planPath)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no work plan items found in %s", planPath)
	}

	result := &Result{Items: items}
	flat := plan.FlattenAll(items)

	for _, item := range flat {
		issue, err := m.tracker.CreateIssue(ctx, issueRequest(item))
		if err != nil {
			log.Error("failed to create issue", "title", item.Title, "err", err)
			result.Failed = append(result.Failed, item.Title)
			result.Stats.Failed++
			continue
		}
		item.GitHubNumber = issue.Number
		result.Stats.Created++
		log.Info("created issue", "number", issue.Number, "kind", item.Kind, "title", item.Title)
	}

	if result.Stats.Created == 0 {
		return result, fmt.Errorf("all %d issue creations failed for %s", len(flat), planPath)
	}

	m.crossReference(ctx, items)

	publishErr := m.publish(ctx, items, opts)

	if err := state.Save(planPath, state.New(planPath, items, result.Stats)); err != nil {
		log.Warn("failed to save work plan state", "err", err)
	}

	return result, publishErr
}

// Update re-parses a previously synced work plan and reconciles it with
// the saved state: items whose titles match an earlier run keep their
// issue numbers and are updated only when their content changed; new
// titles get fresh issues.
func (m *Manager) Update(ctx context.Context, planPath string, opts Options) (*Result, error) {
	items, err := plan.ParseFile(planPath)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no work plan items found in %s", planPath)
	}

	previous := map[string]*plan.Item{}
	if prev, err := state.Load(planPath); err == nil {
		previous = prev.ByTitle()
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	result := &Result{Items: items}

	for _, item := range plan.FlattenAll(items) {
		prevItem, known := previous[item.Title]
		if known && prevItem.GitHubNumber > 0 {
			item.GitHubNumber = prevItem.GitHubNumber
			item.NotionID = prevItem.NotionID
			if !needsUpdate(prevItem, item) {
				continue
			}
			if _, err := m.tracker.UpdateIssue(ctx, item.GitHubNumber, issueRequest(item)); err != nil {
				log.Error("failed to update issue", "number", item.GitHubNumber, "title", item.Title, "err", err)
				result.Failed = append(result.Failed, item.Title)
				result.Stats.Failed++
				continue
			}
			result.Stats.Updated++
			log.Info("updated issue", "number", item.GitHubNumber, "title", item.Title)
			continue
		}

		issue, err := m.tracker.CreateIssue(ctx, issueRequest(item))
		if err != nil {
			log.Error("failed to create issue", "title", item.Title, "err", err)
			result.Failed = append(result.Failed, item.Title)
			result.Stats.Failed++
			continue
		}
		item.GitHubNumber = issue.Number
		result.Stats.Created++
		log.Info("created issue", "number", issue.Number, "title", item.Title)
	}

	publishErr := m.publish(ctx, items, opts)

	if err := state.Save(planPath, state.New(planPath, items, result.Stats)); err != nil {
		log.Warn("failed to save work plan state", "err", err)
	}

	return result, publishErr
}

// crossReference links parents and children with comments on both sides.
// Comment failures are logged and skipped; the issues themselves exist.
func (m *Manager) crossReference(ctx context.Context, items []*plan.Item) {
	for _, parent := range items {
		for _, child := range parent.SubItems {
			if parent.GitHubNumber > 0 && child.GitHubNumber > 0 {
				if err := m.tracker.AddComment(ctx, parent.GitHubNumber,
					fmt.Sprintf("Sub-item: #%d - %s", child.GitHubNumber, child.Title)); err != nil {
					log.Warn("failed to link sub-item", "parent", parent.GitHubNumber, "err", err)
				}
				if err := m.tracker.AddComment(ctx, child.GitHubNumber,
					fmt.Sprintf("Part of: #%d - %s", parent.GitHubNumber, parent.Title)); err != nil {
					log.Warn("failed to link parent", "child", child.GitHubNumber, "err", err)
				}
			}
		}
		m.crossReference(ctx, parent.SubItems)
	}
}

func (m *Manager) publish(ctx context.Context, items []*plan.Item, opts Options) error {
	if opts.SkipPublish || m.publisher == nil {
		return nil
	}
	if err := m.publisher.PublishPlan(ctx, opts.PublishParentID, items); err != nil {
		return fmt.Errorf("publishing plan: %w", err)
	}
	return nil
}

// issueRequest flattens an item into a tracker issue payload. The item
// kind and a non-default priority become labels alongside the item's own.
func issueRequest(item *plan.Item) github.IssueRequest {
	labels := make([]string, 0, len(item.Labels)+2)
	labels = append(labels, item.Labels...)
	labels = append(labels, string(item.Kind))
	if item.Priority != "" && item.Priority != "medium" {
		labels = append(labels, "priority-"+item.Priority)
	}

	return github.IssueRequest{
		Title:     item.Title,
		Body:      buildIssueBody(item),
		Labels:    labels,
		Assignees: item.Assignees,
	}
}

// needsUpdate reports whether an item's tracker-visible content changed
// since the saved snapshot.
func needsUpdate(prev, next *plan.Item) bool {
	return prev.Description != next.Description ||
		prev.Priority != next.Priority ||
		prev.EstimatedEffort != next.EstimatedEffort ||
		!reflect.DeepEqual(prev.Labels, next.Labels) ||
		!reflect.DeepEqual(prev.AcceptanceCriteria, next.AcceptanceCriteria) ||
		!reflect.DeepEqual(prev.Deliverables, next.Deliverables) ||
		!reflect.DeepEqual(prev.Dependencies, next.Dependencies)
}
