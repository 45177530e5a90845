// Package glossary maintains the shared source-term → target-term
// dictionaries that are grown incrementally from the translation
// service's own discoveries and fed back into later requests.
package glossary

import (
	"encoding/json"
	"strings"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

// Entry maps one source-language term to its fixed target-language
// rendering. The on-disk JSON keys depend on the translation direction
// ("jp"/"zh" or "en"/"zh"); sound entries use "sound_jp"/"sound_zh".
type Entry struct {
	Source string
	Target string
}

// Valid reports whether the entry may enter a term store for the given
// direction: both sides non-empty, the source in the source script, the
// target pure Chinese with no source-language residue.
func (e Entry) Valid(dir segment.Direction) bool {
	source := strings.TrimSpace(e.Source)
	target := strings.TrimSpace(e.Target)
	if source == "" || target == "" {
		return false
	}
	if !dir.ValidSourceTerm(source) {
		return false
	}
	return dir.ValidTargetTerm(target)
}

// Merge keeps every entry of original and appends each incoming entry
// that passes the validity predicate and whose source term is not
// already present. An existing mapping is never overwritten.
func Merge(original, incoming []Entry, valid func(Entry) bool) []Entry {
	existing := make(map[string]bool, len(original))
	for _, entry := range original {
		existing[entry.Source] = true
	}

	merged := make([]Entry, len(original), len(original)+len(incoming))
	copy(merged, original)

	for _, entry := range incoming {
		if valid != nil && !valid(entry) {
			continue
		}
		if existing[entry.Source] {
			continue
		}
		merged = append(merged, entry)
		existing[entry.Source] = true
	}
	return merged
}

// EncodeEntries renders entries as the compact JSON array embedded in
// request payloads, using the given source/target key names.
func EncodeEntries(entries []Entry, sourceKey, targetKey string) (string, error) {
	items := make([]map[string]string, len(entries))
	for i, entry := range entries {
		items[i] = map[string]string{
			sourceKey: entry.Source,
			targetKey: entry.Target,
		}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeEntries(data []byte, sourceKey, targetKey string) ([]Entry, error) {
	var items []map[string]string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Source: item[sourceKey],
			Target: item[targetKey],
		})
	}
	return entries, nil
}

func encodeEntriesIndented(entries []Entry, sourceKey, targetKey string) ([]byte, error) {
	items := make([]map[string]string, len(entries))
	for i, entry := range entries {
		items[i] = map[string]string{
			sourceKey: entry.Source,
			targetKey: entry.Target,
		}
	}
	return json.MarshalIndent(items, "", "  ")
}
