package glossary

import (
	"encoding/json"
	"fmt"
	"os"
)

// CleanIdenticalPairs removes sound-dictionary entries whose source and
// target are the same string, a symptom of the service echoing a term
// instead of translating it. Returns how many entries were removed; the
// file is only rewritten when something was dropped.
func CleanIdenticalPairs(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read dictionary: %w", err)
	}

	var items []map[string]string
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("%s does not contain a JSON array: %w", path, err)
	}

	filtered := items[:0]
	for _, item := range items {
		if item[soundSourceKey] != item[soundTargetKey] {
			filtered = append(filtered, item)
		}
	}

	removed := len(items) - len(filtered)
	if removed == 0 {
		return 0, nil
	}

	out, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return 0, err
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return 0, fmt.Errorf("failed to rewrite dictionary: %w", err)
	}
	return removed, nil
}
