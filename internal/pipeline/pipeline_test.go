package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/classify"
	"github.com/dukabooks/dukabooks/internal/dedupe"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/normalize"
	"github.com/dukabooks/dukabooks/internal/ocr"
)

func testPipeline() *Pipeline {
	lex := lexicon.Default()
	return New(
		extract.NewExtractor(lex, ocr.NewEngine(ocr.Config{}, nil), ocr.NewRemoteClient("", 0, nil), nil),
		normalize.NewNormalizer(lex, nil),
		classify.NewClassifier(lex, nil),
		nil,
	)
}

func TestRunFromTextRoutesTransaction(t *testing.T) {
	csv := "Date,Sales,Narration,Mpesa Code\n" +
		"2026-02-20,5000,Cash from walk-in customer,QAB12CD34E\n"

	out, err := testPipeline().RunFromText(context.Background(), "feb.csv", []byte(csv), nil)
	if err != nil {
		t.Fatalf("RunFromText: %v", err)
	}
	if out.RowsProcessed != 1 {
		t.Fatalf("rowsProcessed = %d, want 1", out.RowsProcessed)
	}
	if len(out.Trusted.Transactions) != 1 {
		t.Fatalf("trusted transactions = %d, want 1", len(out.Trusted.Transactions))
	}

	tx := out.Trusted.Transactions[0]
	if tx.Direction != constants.DirectionIn || tx.Amount != 5000 {
		t.Errorf("transaction = %s %.2f, want IN 5000.00", tx.Direction, tx.Amount)
	}
	wantKey := dedupe.RowKey("2026-02-20", 5000, 0, 0, "feb.csv", tx.RowNumber) + dedupe.SuffixIn
	if tx.TraceKey != wantKey {
		t.Errorf("traceKey = %q, want %q", tx.TraceKey, wantKey)
	}
}

func TestRunFromTextSkipsSeededDuplicates(t *testing.T) {
	csv := "Date,Sales,Narration,Mpesa Code\n" +
		"2026-02-20,5000,Cash from walk-in customer,QAB12CD34E\n"
	p := testPipeline()

	first, err := p.RunFromText(context.Background(), "feb.csv", []byte(csv), nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	seeds := make([]string, 0, len(first.Trusted.Transactions))
	for _, tx := range first.Trusted.Transactions {
		seeds = append(seeds, dedupe.RootKey(tx.TraceKey))
	}

	second, err := p.RunFromText(context.Background(), "feb.csv", []byte(csv), seeds)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.RowsProcessed != 0 {
		t.Errorf("rowsProcessed = %d, want 0", second.RowsProcessed)
	}
	if second.DuplicatesSkipped != 1 {
		t.Errorf("duplicatesSkipped = %d, want 1", second.DuplicatesSkipped)
	}
	if len(second.Trusted.Transactions) != 0 {
		t.Errorf("trusted transactions = %d, want 0", len(second.Trusted.Transactions))
	}
}

func TestRunFromTextCapturesExtractionFailure(t *testing.T) {
	out, err := testPipeline().RunFromText(context.Background(), "notes.docx", []byte("anything"), nil)
	if err != nil {
		t.Fatalf("expected captured failure, got error: %v", err)
	}
	if len(out.Errors) != 1 || !strings.Contains(out.Errors[0], "UNSUPPORTED_FORMAT") {
		t.Errorf("errors = %v, want one UNSUPPORTED_FORMAT entry", out.Errors)
	}
	if out.RowsProcessed != 0 {
		t.Errorf("rowsProcessed = %d, want 0", out.RowsProcessed)
	}
}
