package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/MimeLyc/tagged-doc-translator/internal/glossary"
	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

const (
	termDictLabel  = "translation_dictionary"
	soundDictLabel = "sound_dictionary"

	// sourceContentLabel separates the instruction preamble from the
	// batch payload. The parser uses it to discard any echo of the
	// request that precedes the translated content.
	sourceContentLabel = "原文內容:"
)

// BuildSystemPrompt returns the role instruction for a direction and
// target language. An undefined target falls back to Traditional
// Chinese.
func BuildSystemPrompt(dir segment.Direction, target language.Tag) string {
	if target == language.Und {
		target = language.TraditionalChinese
	}
	targetName := display.English.Languages().Name(target)
	region := ""
	if target == language.TraditionalChinese {
		region = " (Taiwan usage)"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a multilingual translation and %s polishing expert. ", targetName))
	sb.WriteString(fmt.Sprintf("Translate %s text into natural, modern %s%s, line by line, with full attention to context.\n\n", sourceName(dir), targetName, region))

	sb.WriteString("RULES:\n")
	sb.WriteString("1. Translate ONLY the text nodes between HTML tags. Keep every tag and attribute exactly as given (e.g. <p data-line=\"4\">, </p>). Never add, remove or reorder tags.\n")
	sb.WriteString("2. Never translate or modify attribute values such as data-line, class or id.\n")
	sb.WriteString("3. Follow the provided " + termDictLabel + " for surnames, personal names, place names and terminology, and keep them consistent.\n")
	if dir.SoundEnabled() {
		sb.WriteString("4. Follow the provided " + soundDictLabel + " for onomatopoeia, mimetic words and interjections, rendering them as natural Chinese sound or state descriptions.\n")
	}
	sb.WriteString("5. Keep URLs (http://, https://, www.) and email addresses untouched.\n")
	sb.WriteString("6. Each output line must be exactly one translated line inside its original tags. No analysis, no explanations, no extra text.\n")

	return sb.String()
}

// BuildPrompt serializes the selected glossary subset and the raw batch
// content into one request payload. The response is expected to contain,
// in order: the newly discovered dictionary additions, then the
// translated lines in the same tagged format as the input.
func BuildPrompt(dir segment.Direction, batchLines []string, terms, sounds []glossary.Entry) (string, error) {
	termJSON, err := glossary.EncodeEntries(terms, dir.SourceKey(), dir.TargetKey())
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("Translate the tagged content below into Traditional Chinese. ")
	sb.WriteString("Scan the source for new surnames, personal names, place names and terminology, and report each as a new entry appended to " + termDictLabel + " in the same JSON shape. ")
	if dir.SoundEnabled() {
		sb.WriteString("Scan for new onomatopoeia, mimetic words and interjections, and report each as a new entry appended to " + soundDictLabel + " in the same JSON shape. ")
	}
	sb.WriteString("Return ONLY the newly added " + termDictLabel + " (JSON array)")
	if dir.SoundEnabled() {
		sb.WriteString(", the newly added " + soundDictLabel + " (JSON array)")
	}
	sb.WriteString(" and then the translated content with every HTML tag and attribute preserved. Nothing else.\n\n")

	sb.WriteString(termDictLabel + ":\n")
	sb.WriteString(termJSON)
	sb.WriteString("\n\n")

	if dir.SoundEnabled() {
		soundJSON, err := glossary.EncodeEntries(sounds, "sound_jp", "sound_zh")
		if err != nil {
			return "", err
		}
		sb.WriteString(soundDictLabel + ":\n")
		sb.WriteString(soundJSON)
		sb.WriteString("\n\n")
	}

	sb.WriteString(sourceContentLabel + "\n")
	for _, line := range batchLines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// sourceName describes the source side of a direction. Japanese
// documents routinely carry stray English runs, so both are named.
func sourceName(dir segment.Direction) string {
	name := display.English.Languages().Name(dir.SourceLanguage())
	if dir == segment.JaToZhHant {
		return name + " and English"
	}
	return name
}
