package segment

import "regexp"

var (
	kanaPattern     = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)
	japanesePattern = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]`)
	chinesePattern  = regexp.MustCompile(`^[\x{4E00}-\x{9FFF}]+$`)

	// CJK punctuation, fullwidth forms and whitespace are ignored when
	// deciding whether text is pure Chinese.
	cjkFillerPattern = regexp.MustCompile(`[\s\x{3000}-\x{303F}\x{FF00}-\x{FFEF}]`)

	urlPattern   = regexp.MustCompile(`https?://\S+`)
	wwwPattern   = regexp.MustCompile(`www\.\S+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	latinRunPatterns = map[int]*regexp.Regexp{
		2: regexp.MustCompile(`[a-zA-Z]{2,}`),
		3: regexp.MustCompile(`[a-zA-Z]{3,}`),
	}
	lowercaseRunPatterns = map[int]*regexp.Regexp{
		3: regexp.MustCompile(`[a-z]{3,}`),
	}
)

// ContainsKana reports whether text contains hiragana or katakana.
func ContainsKana(text string) bool {
	return kanaPattern.MatchString(text)
}

// ContainsJapanese reports whether text contains kana or CJK ideographs.
// Used for glossary source terms, where kanji-only names are valid.
func ContainsJapanese(text string) bool {
	return japanesePattern.MatchString(text)
}

// IsPureChinese reports whether text consists only of CJK ideographs
// once whitespace, CJK punctuation and fullwidth forms are removed.
func IsPureChinese(text string) bool {
	cleaned := cjkFillerPattern.ReplaceAllString(text, "")
	if cleaned == "" {
		return false
	}
	return chinesePattern.MatchString(cleaned)
}

// StripWebLiterals removes URLs and email addresses, which are
// preserved verbatim and never count as translatable content.
func StripWebLiterals(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = wwwPattern.ReplaceAllString(text, "")
	return emailPattern.ReplaceAllString(text, "")
}

// ContainsLatinRun reports whether text contains a run of minRun or
// more Latin letters outside of URLs and email addresses.
func ContainsLatinRun(text string, minRun int) bool {
	pattern, ok := latinRunPatterns[minRun]
	if !ok {
		panic("segment: unsupported latin run length")
	}
	return pattern.MatchString(StripWebLiterals(text))
}

// ContainsLowercaseRun is the stricter variant used by the Japanese
// direction, which only treats lowercase runs as translatable English.
func ContainsLowercaseRun(text string, minRun int) bool {
	pattern, ok := lowercaseRunPatterns[minRun]
	if !ok {
		panic("segment: unsupported lowercase run length")
	}
	return pattern.MatchString(StripWebLiterals(text))
}
