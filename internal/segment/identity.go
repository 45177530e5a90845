package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// NoIdentity is returned when a line carries no resolvable data-line
// attribute.
const NoIdentity = -1

var (
	// The external service echoes the data-line attribute back with
	// unpredictable quoting: double quotes, single quotes, escaped
	// quotes, or none at all. Both patterns tolerate every variant.
	dataLineAttrPattern = regexp.MustCompile(`(?i)data-line\s*=\s*(?:\\?["'])?(\d+)(?:\\?["'])?`)

	taggedLinePattern = regexp.MustCompile(`(?is)<p[^>]*data-line\s*=\s*(?:\\?["'])?(\d+)(?:\\?["'])?[^>]*>.*?</p>`)

	textPayloadPattern = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)

	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// NormalizeIdentity rewrites every data-line attribute in text to the
// canonical unescaped double-quote form. Normalizing already-canonical
// text is a no-op.
func NormalizeIdentity(text string) string {
	return dataLineAttrPattern.ReplaceAllString(text, `data-line="$1"`)
}

// ExtractIdentity pulls the numeric line identity out of a tagged line,
// or NoIdentity when the attribute is absent.
func ExtractIdentity(line string) int {
	match := dataLineAttrPattern.FindStringSubmatch(line)
	if match == nil {
		return NoIdentity
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return NoIdentity
	}
	return n
}

// ExtractText returns the plain-text payload between the structural
// delimiters of a tagged line, or "" when the line has no tag pair.
func ExtractText(line string) string {
	match := textPayloadPattern.FindStringSubmatch(line)
	if match == nil {
		return ""
	}
	return match[1]
}

// StripTags removes all markup and line breaks, leaving the trimmed
// plain-text payload.
func StripTags(line string) string {
	clean := tagPattern.ReplaceAllString(line, "")
	clean = strings.ReplaceAll(clean, "\n", "")
	clean = strings.ReplaceAll(clean, "\r", "")
	return strings.TrimSpace(clean)
}

// TaggedLine is one identity-bearing line unit found in free-form text.
type TaggedLine struct {
	Identity int
	Markup   string
}

// FindTaggedLines locates every tagged line unit in text, with its
// markup normalized to canonical identity quoting.
func FindTaggedLines(text string) []TaggedLine {
	matches := taggedLinePattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	lines := make([]TaggedLine, 0, len(matches))
	for _, match := range matches {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		lines = append(lines, TaggedLine{
			Identity: n,
			Markup:   NormalizeIdentity(match[0]),
		})
	}
	return lines
}

// NeedsTranslation reports whether the payload of a tagged line is
// still in the direction's source language. Lines with empty payloads
// never need translation.
func NeedsTranslation(dir Direction, line string) bool {
	text := ExtractText(line)
	if strings.TrimSpace(text) == "" {
		return false
	}
	return dir.NeedsTranslationText(text)
}
