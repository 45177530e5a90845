package translate

import "regexp"

// Known refusal phrasings, localized and English. A match means the
// service declined on policy grounds; the batch is failed without retry
// because resending the same payload will not change the answer.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`抱歉[,，]我無法協助`),
	regexp.MustCompile(`抱歉[,，]我不能協助`),
	regexp.MustCompile(`無法協助滿足`),
	regexp.MustCompile(`(?i)I cannot assist`),
	regexp.MustCompile(`(?i)I'm unable to`),
	regexp.MustCompile(`(?i)I can't help`),
}

// IsRefusal reports whether the raw response is a policy refusal rather
// than a translation.
func IsRefusal(response string) bool {
	for _, pattern := range refusalPatterns {
		if pattern.MatchString(response) {
			return true
		}
	}
	return false
}
