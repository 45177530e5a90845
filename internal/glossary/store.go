package glossary

import (
	"fmt"
	"os"
	"sync"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

// Store is the persistent per-document term dictionary. Every
// read-modify-write is serialized by a process-wide mutex shared across
// all workers, so concurrent merges from sibling documents never lose
// updates and the source-term uniqueness invariant holds.
//
// A store file that does not parse as the expected array shape is
// treated as empty rather than fatal: a later merge then degrades to
// "adopt all new valid entries".
type Store struct {
	path string
	dir  segment.Direction
	mu   *sync.Mutex
}

func NewStore(path string, dir segment.Direction, mu *sync.Mutex) *Store {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Store{path: path, dir: dir, mu: mu}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted entries, or nil when the file is absent
// or malformed.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// MergeAndSave re-fetches the latest persisted state, merges the
// incoming entries into it under first-writer-wins semantics, and
// persists the result. Returns the merged set.
func (s *Store) MergeAndSave(incoming []Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := Merge(s.loadLocked(), incoming, func(e Entry) bool {
		return e.Valid(s.dir)
	})
	if err := s.saveLocked(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Save replaces the persisted entries wholesale.
func (s *Store) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entries)
}

func (s *Store) loadLocked() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	entries, err := decodeEntries(data, s.dir.SourceKey(), s.dir.TargetKey())
	if err != nil {
		return nil
	}
	return entries
}

func (s *Store) saveLocked(entries []Entry) error {
	data, err := encodeEntriesIndented(entries, s.dir.SourceKey(), s.dir.TargetKey())
	if err != nil {
		return fmt.Errorf("failed to encode glossary: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write glossary: %w", err)
	}
	return nil
}
