package segment

import (
	"fmt"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Direction identifies which source language a document is translated
// from. Both directions target Traditional Chinese; they differ in the
// classifier predicates, the glossary entry keys, and whether the shared
// sound dictionary participates.
type Direction string

const (
	// JaToZhHant translates Japanese (plus stray Latin-alphabet runs)
	// into Traditional Chinese, with onomatopoeia support.
	JaToZhHant Direction = "ja-zh"
	// EnToZhHant translates English into Traditional Chinese.
	EnToZhHant Direction = "en-zh"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case JaToZhHant, EnToZhHant:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown translation direction: %q", s)
}

// SourceKey is the JSON key glossary entries use for the source term.
func (d Direction) SourceKey() string {
	if d == JaToZhHant {
		return "jp"
	}
	return "en"
}

// TargetKey is the JSON key glossary entries use for the target term.
func (d Direction) TargetKey() string {
	return "zh"
}

// SoundEnabled reports whether the direction maintains the shared
// onomatopoeia dictionary.
func (d Direction) SoundEnabled() bool {
	return d == JaToZhHant
}

func (d Direction) SourceLanguage() language.Tag {
	if d == JaToZhHant {
		return language.Japanese
	}
	return language.English
}

// NeedsTranslationText reports whether a plain-text payload is still in
// the source language. Kana presence marks Japanese; Latin-alphabet runs
// of three or more letters mark English. URLs and email addresses never
// count.
func (d Direction) NeedsTranslationText(text string) bool {
	if d == JaToZhHant {
		return ContainsKana(text) || ContainsLowercaseRun(text, 3)
	}
	return ContainsLatinRun(text, 3)
}

// Residue reports whether translated text still carries source-language
// content and must be rejected. The Latin threshold is lower than the
// needs-translation one so that near-misses are caught.
func (d Direction) Residue(text string) bool {
	if d == JaToZhHant && ContainsKana(text) {
		return true
	}
	return ContainsLatinRun(text, 2)
}

// ValidSourceTerm reports whether a glossary source term is written in
// the expected source script.
func (d Direction) ValidSourceTerm(term string) bool {
	if term == "" {
		return false
	}
	if d == JaToZhHant {
		return ContainsJapanese(term)
	}
	return true
}

// ValidTargetTerm reports whether a glossary target term is pure
// Chinese with no source-language residue.
func (d Direction) ValidTargetTerm(term string) bool {
	return IsPureChinese(term) && !d.Residue(term)
}

// DetectDirection picks the translation direction for a document by
// majority vote over its line payloads. Japanese wins only when kana is
// actually observed; everything else falls back to the English
// direction.
func DetectDirection(texts []string) Direction {
	counts := make(map[whatlanggo.Lang]int)
	for _, text := range texts {
		if text == "" {
			continue
		}
		counts[whatlanggo.DetectLang(text)]++
		if ContainsKana(text) {
			counts[whatlanggo.Jpn]++
		}
	}

	var topLang whatlanggo.Lang = -1
	topCount := 0
	for lang, count := range counts {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	if topLang == whatlanggo.Jpn {
		return JaToZhHant
	}
	return EnToZhHant
}
