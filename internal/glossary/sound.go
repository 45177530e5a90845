package glossary

import (
	"fmt"
	"os"
	"sync"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

const (
	soundSourceKey = "sound_jp"
	soundTargetKey = "sound_zh"
)

// SoundFileName is the single globally shared onomatopoeia dictionary,
// kept alongside the per-document term stores.
const SoundFileName = "sound_dictionary.json"

// SoundStore is the globally shared onomatopoeia dictionary for the
// Japanese direction. It shares the same locking discipline as Store
// but persists sorted in gojūon order so diffs stay stable.
type SoundStore struct {
	path string
	mu   *sync.Mutex
}

func NewSoundStore(path string, mu *sync.Mutex) *SoundStore {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &SoundStore{path: path, mu: mu}
}

func (s *SoundStore) Path() string {
	return s.path
}

func (s *SoundStore) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// MergeAndSave merges incoming sound entries into the latest persisted
// state under first-writer-wins semantics and saves the result.
func (s *SoundStore) MergeAndSave(incoming []Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := Merge(s.loadLocked(), incoming, ValidSound)
	if err := s.saveLocked(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *SoundStore) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entries)
}

// ValidSound mirrors Entry.Valid for the onomatopoeia sub-kind, which
// always runs in the Japanese direction.
func ValidSound(e Entry) bool {
	return e.Valid(segment.JaToZhHant)
}

func (s *SoundStore) loadLocked() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	entries, err := decodeEntries(data, soundSourceKey, soundTargetKey)
	if err != nil {
		return nil
	}
	return entries
}

func (s *SoundStore) saveLocked(entries []Entry) error {
	data, err := encodeEntriesIndented(SortGojuon(entries), soundSourceKey, soundTargetKey)
	if err != nil {
		return fmt.Errorf("failed to encode sound dictionary: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sound dictionary: %w", err)
	}
	return nil
}
