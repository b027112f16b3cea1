package ocr

import (
	"strings"
	"testing"

	"github.com/dukabooks/dukabooks/internal/lexicon"
)

func TestMergeLinesRanksByFrequency(t *testing.T) {
	blocks := []string{
		"Paid to Acme 2300\ngarbled l1ne",
		"Paid  to Acme 2300\nTotal 2300",
		"Paid to Acme 2300",
	}
	merged := MergeLines(blocks)
	lines := strings.Split(merged, "\n")
	if lines[0] != "Paid to Acme 2300" {
		t.Errorf("most frequent line should rank first, got %q", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("expected 3 distinct lines, got %d: %v", len(lines), lines)
	}
}

func TestMergeLinesTiesBreakOnLength(t *testing.T) {
	merged := MergeLines([]string{"short\na much longer line here"})
	lines := strings.Split(merged, "\n")
	if lines[0] != "a much longer line here" {
		t.Errorf("length should break frequency ties, got %q first", lines[0])
	}
}

func TestMergeLinesEmpty(t *testing.T) {
	if got := MergeLines(nil); got != "" {
		t.Errorf("MergeLines(nil) = %q", got)
	}
}

func TestNormalizeExpandsAbbreviations(t *testing.T) {
	lex := lexicon.Default()
	got := Normalize("rcvd   kes 500\n\n\n\namt 500", lex)
	if !strings.Contains(got, "received kes 500") {
		t.Errorf("abbreviation not expanded: %q", got)
	}
	if !strings.Contains(got, "amount 500") {
		t.Errorf("amt not expanded: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank runs not collapsed: %q", got)
	}
}

func TestNormalizeKeepsWordsIntact(t *testing.T) {
	lex := lexicon.Default()
	// "cr" must only expand as a standalone word.
	got := Normalize("credit from across", lex)
	if got != "credit from across" {
		t.Errorf("Normalize altered embedded substrings: %q", got)
	}
}
