// Package state persists parsed work plans as JSON state files so that
// subsequent runs can detect changes and update the tracker incrementally.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/sinkii09/workplan/internal/plan"
)

const stateSuffix = ".workplan_state.json"

// Stats summarizes the outcome of the run that produced a state file.
type Stats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// State is the persisted snapshot of one work plan run. Items are stored
// flattened in depth-first document order; the tree shape is recoverable
// from re-parsing the source document.
type State struct {
	RunID     string       `json:"run_id"`
	FilePath  string       `json:"file_path"`
	CreatedAt time.Time    `json:"created_at"`
	Items     []*plan.Item `json:"items"`
	Stats     Stats        `json:"stats"`
}

// New builds a state snapshot for a parsed forest.
func New(filePath string, items []*plan.Item, stats Stats) *State {
	flat := plan.FlattenAll(items)
	snapshot := make([]*plan.Item, len(flat))
	for i, it := range flat {
		// Store items without their sub-trees; the flattened sequence
		// already contains every descendant.
		copied := *it
		copied.SubItems = nil
		snapshot[i] = &copied
	}

	return &State{
		RunID:     uuid.NewString(),
		FilePath:  filePath,
		CreatedAt: time.Now().UTC(),
		Items:     snapshot,
		Stats:     stats,
	}
}

// Path returns the state file path for a work plan document.
func Path(planPath string) string {
	return strings.TrimSuffix(planPath, ".md") + stateSuffix
}

// Save atomically writes the state file next to the plan document. A
// temp file plus rename keeps readers from observing partial writes,
// and a file lock serializes concurrent runs against the same plan.
func Save(planPath string, st *State) error {
	statePath := Path(planPath)

	lock := flock.New(statePath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking state file: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", statePath, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing state temp file: %w", err)
	}
	if err := os.Rename(tmpPath, statePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming state file: %w", err)
	}

	return nil
}

// Load reads the state file for a plan document. Returns os.ErrNotExist
// (wrapped) when no previous run has been recorded; callers treat that
// as a fresh plan.
func Load(planPath string) (*State, error) {
	statePath := Path(planPath)

	data, err := os.ReadFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", statePath, err)
	}

	return &st, nil
}

// ByTitle indexes the stored items by title for update-time matching.
// Later duplicates win, matching how the tracker update pass walks the
// flattened sequence.
func (s *State) ByTitle() map[string]*plan.Item {
	byTitle := make(map[string]*plan.Item, len(s.Items))
	for _, it := range s.Items {
		byTitle[it.Title] = it
	}
	return byTitle
}
