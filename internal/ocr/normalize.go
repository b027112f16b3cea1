package ocr

import (
	"regexp"
	"strings"

	"github.com/dukabooks/dukabooks/internal/lexicon"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reInnerSpace = regexp.MustCompile(`[^\S\n]+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses noisy whitespace and expands the abbreviations
// OCR tends to leave behind on till receipts ("rcvd", "amt", ...).
// Conservative: keeps line breaks; collapses >2 newlines into a single
// blank line.
func Normalize(s string, lex *lexicon.Lexicon) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reInnerSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	for abbr, full := range lex.Abbreviations {
		re, err := wordRegexp(abbr)
		if err != nil {
			continue
		}
		s = re.ReplaceAllString(s, full)
	}

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func wordRegexp(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}
