package normalize

import (
	"strings"
	"testing"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/lexicon"
)

func matrixOf(headers []string, rows ...[]string) extract.Matrix {
	return extract.Matrix{Headers: headers, Rows: rows}
}

func TestNormalizeResolvesAliases(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"Date", "Sales", "Expenses", "Narration", "Mpesa Code"},
		[]string{"2026-02-20", "5,000", "0", "received from Jane", "QAB12CD34X"},
	))

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d (skipped %d)", len(res.Records), res.RowsSkipped)
	}
	rec := res.Records[0]
	if rec.Date != "2026-02-20" || !rec.DateParsed {
		t.Errorf("date = %q parsed=%v", rec.Date, rec.DateParsed)
	}
	if rec.CashIn != 5000 {
		t.Errorf("cashIn = %v, want 5000", rec.CashIn)
	}
	if rec.CashOut != 0 {
		t.Errorf("cashOut = %v, want 0", rec.CashOut)
	}
	if rec.Reference != "QAB12CD34X" {
		t.Errorf("reference = %q", rec.Reference)
	}
	if dir, ok := rec.Direction(); !ok || dir != constants.DirectionIn {
		t.Errorf("direction = %v ok=%v, want IN", dir, ok)
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("unexpected suggestions: %v", res.Suggestions)
	}
}

func TestNormalizeModeColumnFallbackChannel(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"Date", "Sales", "Payment Mode"},
		[]string{"2026-02-20", "5000", "mobile money"},
	))

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if ch := res.Records[0].Channel; ch != constants.ChannelMobile {
		t.Errorf("channel = %q, want %q", ch, constants.ChannelMobile)
	}
}

func TestNormalizeKeepsHintOnlyRow(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"Date", "Sales", "Expenses", "Details"},
		[]string{"2026-02-21", "0", "0", "paid to supplier for stock"},
	))

	if len(res.Records) != 1 {
		t.Fatalf("hint-bearing row should be retained, skipped=%d", res.RowsSkipped)
	}
	rec := res.Records[0]
	if !rec.HasHintDirection || rec.HintDirection != constants.DirectionOut {
		t.Errorf("hint = %v has=%v, want OUT", rec.HintDirection, rec.HasHintDirection)
	}
	if rec.Category != "Stock Purchase" {
		t.Errorf("category = %q, want Stock Purchase", rec.Category)
	}
}

func TestNormalizeSkipsSignallessRow(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"Date", "Sales", "Expenses", "Details"},
		[]string{"2026-02-21", "0", "0", "just a note"},
	))

	if len(res.Records) != 0 || res.RowsSkipped != 1 {
		t.Fatalf("records=%d skipped=%d, want 0/1", len(res.Records), res.RowsSkipped)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, "no usable financial signal") {
			found = true
		}
	}
	if !found {
		t.Error("expected a skip warning")
	}
}

func TestNormalizeMissingDateGetsUploadDate(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"Sales", "Expenses"},
		[]string{"1200", "0"},
	))

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record")
	}
	if res.Records[0].Date == "" || res.Records[0].DateParsed {
		t.Errorf("expected assigned upload date, got %q parsed=%v", res.Records[0].Date, res.Records[0].DateParsed)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a missing-date warning")
	}
}

func TestNormalizeSuggestions(t *testing.T) {
	n := NewNormalizer(lexicon.Default(), nil)
	res := n.Normalize(matrixOf(
		[]string{"foo", "bar"},
		[]string{"x", "y"},
	))

	var hasDate, hasCash bool
	for _, s := range res.Suggestions {
		if strings.Contains(s, "date column") {
			hasDate = true
		}
		if strings.Contains(strings.ToLower(s), "cash columns") {
			hasCash = true
		}
	}
	if !hasDate || !hasCash {
		t.Errorf("suggestions = %v, want date and cash hints", res.Suggestions)
	}
}
