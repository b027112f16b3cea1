package classify

import (
	"regexp"
	"strings"
)

var (
	reNameNoise = regexp.MustCompile(`[^\w\s.&'-]`)
	reNameSpace = regexp.MustCompile(`\s+`)
	reNameStop  = regexp.MustCompile(`(?i)[,.]| on | at `)
	reNameBland = regexp.MustCompile(`(?i)^(kes|ksh|cash|bank|mobile|transfer)$`)
)

// extractNamedEntity pulls a named phrase out of free text using
// directional prefixes ("received from ", "paid to ", ...). The phrase
// runs from the prefix to the first punctuation or connective.
func extractNamedEntity(text string, prefixes []string) string {
	lower := strings.ToLower(text)
	for _, prefix := range prefixes {
		idx := strings.Index(lower, prefix)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(prefix):]
		if loc := reNameStop.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]]
		}
		if candidate := strings.TrimSpace(rest); len(candidate) >= 3 {
			return candidate
		}
	}
	return ""
}

// sanitizeName strips non-printable noise from a person/business name
// and rejects bare currency or channel words. Capped at 80 runes.
func sanitizeName(value string) string {
	clean := reNameNoise.ReplaceAllString(value, " ")
	clean = strings.TrimSpace(reNameSpace.ReplaceAllString(clean, " "))
	if clean == "" || reNameBland.MatchString(clean) {
		return ""
	}
	if runes := []rune(clean); len(runes) > 80 {
		return string(runes[:80])
	}
	return clean
}
