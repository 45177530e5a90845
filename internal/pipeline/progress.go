// Package pipeline orchestrates document translation: it walks a
// document's untranslated lines in fixed-size batches, drives the
// translation service through the glossary feedback loop, reinserts
// translated lines by identity, and runs many documents through a
// bounded worker pool.
package pipeline

import "sync"

// Status is the lifecycle state of one document in a run.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// FileProgress is the per-document progress record. Counters are line
// counts; GlossarySize is the term store size after the latest merge.
type FileProgress struct {
	Path         string `json:"path"`
	Status       Status `json:"status"`
	TotalLines   int    `json:"total_lines"`
	Translatable int    `json:"translatable"`
	Success      int    `json:"success"`
	Failed       int    `json:"failed"`
	Pending      int    `json:"pending"`
	GlossarySize int    `json:"glossary_size"`
}

// Tracker aggregates progress across all documents in a run. Workers
// update it concurrently; observers read point-in-time snapshots.
type Tracker struct {
	mu    sync.Mutex
	files map[string]*FileProgress
	order []string
}

func NewTracker() *Tracker {
	return &Tracker{files: make(map[string]*FileProgress)}
}

// Register adds a document in the waiting state. Registration order is
// preserved in snapshots.
func (t *Tracker) Register(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.files[path]; ok {
		return
	}
	t.files[path] = &FileProgress{Path: path, Status: StatusWaiting}
	t.order = append(t.order, path)
}

// Update applies fn to the document's record under the tracker lock.
func (t *Tracker) Update(path string, fn func(*FileProgress)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	progress, ok := t.files[path]
	if !ok {
		progress = &FileProgress{Path: path, Status: StatusWaiting}
		t.files[path] = progress
		t.order = append(t.order, path)
	}
	fn(progress)
}

// Snapshot returns copies of all records in registration order.
func (t *Tracker) Snapshot() []FileProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := make([]FileProgress, 0, len(t.order))
	for _, path := range t.order {
		snapshot = append(snapshot, *t.files[path])
	}
	return snapshot
}

// Summary is the aggregate view over one snapshot.
type Summary struct {
	Total      int
	Waiting    int
	Processing int
	Completed  int
	Failed     int
	Skipped    int
	Lines      int
	LinesDone  int
}

// Summarize folds a snapshot into run-level totals.
func Summarize(snapshot []FileProgress) Summary {
	var s Summary
	s.Total = len(snapshot)
	for _, fp := range snapshot {
		switch fp.Status {
		case StatusWaiting:
			s.Waiting++
		case StatusProcessing:
			s.Processing++
		case StatusCompleted:
			s.Completed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
		s.Lines += fp.Translatable
		s.LinesDone += fp.Success + fp.Failed
	}
	return s
}
