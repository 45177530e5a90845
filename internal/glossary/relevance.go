package glossary

import (
	"math/rand"
	"strings"
)

// BatchText is the concatenated content of one request batch, used for
// containment matching. Raw includes markup; Plain is the extracted
// payloads only. Matching against both tolerates terms that straddle
// markup boundaries.
type BatchText struct {
	Raw   string
	Plain string
}

func (b BatchText) contains(term string) bool {
	return strings.Contains(b.Plain, term) || strings.Contains(b.Raw, term)
}

// SelectRelevant picks a bounded, context-relevant subset of the
// glossary for one batch. The first pass keeps every valid,
// de-duplicated entry whose source term occurs verbatim in the batch.
// If fewer than targetCount were found, a second pass pads the result
// with randomly sampled remaining valid entries, so the service always
// has some naming convention to imitate.
//
// The result never contains duplicate source terms and never has fewer
// than min(targetCount, number of valid unique entries) elements.
func SelectRelevant(batch BatchText, entries []Entry, targetCount int, valid func(Entry) bool) []Entry {
	if len(entries) == 0 {
		return nil
	}

	var relevant []Entry
	seen := make(map[string]bool)
	for _, entry := range entries {
		if valid != nil && !valid(entry) {
			continue
		}
		source := strings.TrimSpace(entry.Source)
		if source == "" || seen[source] {
			continue
		}
		if batch.contains(source) {
			relevant = append(relevant, entry)
			seen[source] = true
		}
	}

	if len(relevant) >= targetCount {
		return relevant
	}

	var remaining []Entry
	for _, entry := range entries {
		if valid != nil && !valid(entry) {
			continue
		}
		source := strings.TrimSpace(entry.Source)
		if source == "" || seen[source] {
			continue
		}
		remaining = append(remaining, entry)
		seen[source] = true
	}

	needed := targetCount - len(relevant)
	if needed > len(remaining) {
		needed = len(remaining)
	}
	if needed > 0 {
		rand.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
		relevant = append(relevant, remaining[:needed]...)
	}

	return relevant
}
