package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/MimeLyc/tagged-doc-translator/internal/glossary"
	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

// Result is everything recovered from one service response: the newly
// discovered glossary entries and the translated lines keyed by their
// identity token. All fields may be empty: an undecipherable response
// parses to an empty Result, never an error.
type Result struct {
	Terms  []glossary.Entry
	Sounds []glossary.Entry
	Lines  map[int]string
}

var fencePatterns = []*regexp.Regexp{
	regexp.MustCompile("```json\\s*"),
	regexp.MustCompile("```html\\s*"),
	regexp.MustCompile("```\\s*"),
}

// Parse extracts glossary additions and translated lines from a raw
// response. The service routinely wraps JSON in code fences, interleaves
// prose, truncates brackets or drops the dictionary sections entirely;
// each extraction falls through a cascade of increasingly permissive
// strategies and the translated content is whatever remains after the
// last successfully consumed dictionary block.
func Parse(dir segment.Direction, response string) Result {
	for _, pattern := range fencePatterns {
		response = pattern.ReplaceAllString(response, "")
	}

	terms, dictEnd := extractLabeledArray(response, termDictLabel, dir.SourceKey(), dir.TargetKey())

	soundEnd := dictEnd
	var sounds []glossary.Entry
	if dir.SoundEnabled() {
		var end int
		sounds, end = extractLabeledArray(response[dictEnd:], soundDictLabel, "sound_jp", "sound_zh")
		soundEnd = dictEnd + end
	}

	// Last resort: synthesize the arrays from free-standing object
	// literals of the expected two-field shape.
	if len(terms) == 0 {
		terms = scanObjectLiterals(response, dir.SourceKey(), dir.TargetKey())
	}
	if dir.SoundEnabled() && len(sounds) == 0 {
		sounds = scanObjectLiterals(response, "sound_jp", "sound_zh")
	}

	remainder := response
	if soundEnd > 0 {
		remainder = response[soundEnd:]
	} else if dictEnd > 0 {
		remainder = response[dictEnd:]
	}

	// The service sometimes echoes the request; only the content after
	// the section divider is the translation.
	if _, after, found := strings.Cut(remainder, sourceContentLabel); found {
		remainder = after
	}

	lines := make(map[int]string)
	for _, tagged := range segment.FindTaggedLines(remainder) {
		lines[tagged.Identity] = tagged.Markup
	}

	return Result{Terms: terms, Sounds: sounds, Lines: lines}
}

// extractLabeledArray locates a labeled JSON array block and parses it,
// attempting a one-shot bracket repair when the strict parse fails.
// Returns the entries and the offset just past the consumed block, or
// (nil, 0) when no strategy matched.
func extractLabeledArray(text, label, sourceKey, targetKey string) ([]glossary.Entry, int) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(label + `[:\s]*\n?(\[[\s\S]*?\])`),
		regexp.MustCompile(`"` + label + `"` + `[:\s]*\n?(\[[\s\S]*?\])`),
		objectListPattern(sourceKey, targetKey),
	}

	for _, pattern := range patterns {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		block := strings.TrimSpace(text[loc[2]:loc[3]])

		entries, err := parseEntryArray(block, sourceKey, targetKey)
		if err != nil {
			repaired := block
			if !strings.HasPrefix(repaired, "[") {
				repaired = "[" + repaired
			}
			if !strings.HasSuffix(repaired, "]") {
				repaired = repaired + "]"
			}
			if entries, err = parseEntryArray(repaired, sourceKey, targetKey); err != nil {
				continue
			}
		}
		return entries, loc[1]
	}

	return nil, 0
}

func objectListPattern(sourceKey, targetKey string) *regexp.Regexp {
	object := fmt.Sprintf(`\{[\s\S]*?"%s"[\s\S]*?"%s"[\s\S]*?\}`, sourceKey, targetKey)
	return regexp.MustCompile(fmt.Sprintf(`(\[\s*%s\s*(?:,\s*%s\s*)*\])`, object, object))
}

func parseEntryArray(block, sourceKey, targetKey string) ([]glossary.Entry, error) {
	var items []map[string]string
	if err := json.Unmarshal([]byte(block), &items); err != nil {
		return nil, err
	}

	entries := make([]glossary.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, glossary.Entry{
			Source: item[sourceKey],
			Target: item[targetKey],
		})
	}
	return entries, nil
}

// scanObjectLiterals collects every individual two-field object literal
// for the given key pair, regardless of surrounding structure.
func scanObjectLiterals(text, sourceKey, targetKey string) []glossary.Entry {
	pattern := regexp.MustCompile(fmt.Sprintf(
		`\{\s*"%s"\s*:\s*"([^"]+)"\s*,\s*"%s"\s*:\s*"([^"]+)"\s*\}`,
		sourceKey, targetKey))

	matches := pattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	entries := make([]glossary.Entry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, glossary.Entry{Source: match[1], Target: match[2]})
	}
	return entries
}
