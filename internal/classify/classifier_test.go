package classify

import (
	"testing"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/normalize"
)

func TestTransactionConfidence(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)
	set := c.Classify(normalize.Record{
		RowNumber:   2,
		Date:        "2026-02-20",
		DateParsed:  true,
		CashIn:      5000,
		Description: "received from Jane",
		Reference:   "N/A",
		Channel:     constants.ChannelUnknown,
		RawText:     "2026-02-20 5000 received from Jane N/A",
	}, "feb.csv")

	tx := set.Transaction
	if tx == nil {
		t.Fatal("expected a transaction candidate")
	}
	if tx.Direction != constants.DirectionIn || tx.Amount != 5000 {
		t.Errorf("direction=%v amount=%v", tx.Direction, tx.Amount)
	}
	// 0.45 base + 0.25 amount + 0.10 date; N/A reference and Unknown
	// channel earn nothing.
	if tx.Confidence != 0.80 {
		t.Errorf("confidence = %v, want 0.80", tx.Confidence)
	}
	if tx.Risk != constants.RiskNeedsReview {
		t.Errorf("risk = %v, want Needs Review", tx.Risk)
	}
}

func TestTransactionFullConfidence(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)
	set := c.Classify(normalize.Record{
		RowNumber:  2,
		Date:       "2026-02-20",
		DateParsed: true,
		CashOut:    1200,
		Reference:  "QAB12CD34X",
		Channel:    constants.ChannelMobile,
	}, "feb.csv")

	tx := set.Transaction
	if tx == nil {
		t.Fatal("expected a transaction candidate")
	}
	if tx.Confidence != 1.00 {
		t.Errorf("confidence = %v, want 1.00", tx.Confidence)
	}
	if tx.Risk != constants.RiskTrusted {
		t.Errorf("risk = %v, want Trusted", tx.Risk)
	}
}

func TestNoTransactionWithoutAmount(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)
	set := c.Classify(normalize.Record{
		RowNumber:        2,
		Date:             "2026-02-20",
		Description:      "paid to supplier for stock",
		HintDirection:    constants.DirectionOut,
		HasHintDirection: true,
		RawText:          "paid to supplier for stock",
	}, "notes.txt")

	if set.Transaction != nil {
		t.Errorf("zero-amount row must not yield a transaction, got %+v", set.Transaction)
	}
	sp := set.Supplier
	if sp == nil {
		t.Fatal("expected a supplier candidate from the outflow hint")
	}
	// 0.45 base + 0.20 supplier keyword; no cash out, no unit cost.
	if sp.Confidence != 0.65 {
		t.Errorf("supplier confidence = %v, want 0.65", sp.Confidence)
	}
	if sp.Risk != constants.RiskNeedsReview {
		t.Errorf("supplier risk = %v", sp.Risk)
	}
	if sp.CategoryHint != "Stock Purchase" {
		t.Errorf("categoryHint = %q, want Stock Purchase", sp.CategoryHint)
	}
}

func TestProductConfidence(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)
	set := c.Classify(normalize.Record{
		RowNumber: 3,
		Date:      "2026-02-20",
		CashOut:   900,
		Product:   "Sugar 2kg",
		Quantity:  10,
		UnitCost:  90,
		RawText:   "Sugar 2kg 10 90 900 restock",
	}, "stock.xlsx")

	pr := set.Product
	if pr == nil {
		t.Fatal("expected a product candidate")
	}
	// 0.35 base + 0.25 name + 0.20 quantity + 0.20 unit cost.
	if pr.Confidence != 1.00 {
		t.Errorf("confidence = %v, want 1.00", pr.Confidence)
	}
	if pr.Risk != constants.RiskTrusted {
		t.Errorf("risk = %v, want Trusted", pr.Risk)
	}
}

func TestProductWithoutNameNeedsQuantityAndCost(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)
	base := normalize.Record{RowNumber: 2, Date: "2026-02-20", CashOut: 500}

	withQtyOnly := base
	withQtyOnly.Quantity = 5
	if set := c.Classify(withQtyOnly, "f.csv"); set.Product != nil {
		t.Error("quantity alone must not yield a product")
	}

	withBoth := base
	withBoth.Quantity = 5
	withBoth.UnitCost = 100
	set := c.Classify(withBoth, "f.csv")
	if set.Product == nil {
		t.Fatal("quantity and unit cost should yield a product")
	}
	if set.Product.Name != "Unlabeled Product" {
		t.Errorf("name = %q, want Unlabeled Product", set.Product.Name)
	}
	// 0.35 base + 0.20 quantity + 0.20 unit cost.
	if set.Product.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", set.Product.Confidence)
	}
}

func TestClientPrimaryAndSecondary(t *testing.T) {
	c := NewClassifier(lexicon.Default(), nil)

	primary := c.Classify(normalize.Record{
		RowNumber: 2,
		Date:      "2026-02-20",
		CashIn:    3000,
		Client:    "Jane Doe",
		Phone:     "+254712345678",
		Reference: "QAB12CD34X",
		RawText:   "received from Jane Doe QAB12CD34X",
	}, "feb.csv")
	if primary.Client == nil {
		t.Fatal("expected a client candidate")
	}
	// 0.50 base + 0.25 phone + 0.10 reference + 0.15 context keyword.
	if primary.Client.Confidence != 1.00 {
		t.Errorf("primary confidence = %v, want 1.00", primary.Client.Confidence)
	}

	secondary := c.Classify(normalize.Record{
		RowNumber:   3,
		Date:        "2026-02-20",
		CashIn:      800,
		Description: "Mary from the market",
		Reference:   "N/A",
		RawText:     "payment received Mary from the market",
	}, "feb.csv")
	if secondary.Client == nil {
		t.Fatal("expected a secondary-path client candidate")
	}
	if secondary.Client.Confidence != 0.60 {
		t.Errorf("secondary confidence = %v, want 0.60", secondary.Client.Confidence)
	}
	if secondary.Client.Name != "Mary from the market" {
		t.Errorf("secondary name = %q", secondary.Client.Name)
	}

	noInflow := c.Classify(normalize.Record{
		RowNumber: 4,
		Date:      "2026-02-20",
		CashOut:   500,
		Client:    "Jane Doe",
		RawText:   "Jane Doe 500",
	}, "feb.csv")
	if noInflow.Client != nil {
		t.Error("client candidate requires cash in")
	}
}

func TestEntityNameExtraction(t *testing.T) {
	lex := lexicon.Default()
	name := extractNamedEntity("paid to Acme Ltd on friday", lex.SupplierPrefixes)
	if name != "Acme Ltd" {
		t.Errorf("extractNamedEntity = %q, want Acme Ltd", name)
	}
	if got := sanitizeName("  KES "); got != "" {
		t.Errorf("bare currency should sanitize to empty, got %q", got)
	}
	if got := sanitizeName("Jane's Shop & Sons"); got != "Jane's Shop & Sons" {
		t.Errorf("sanitizeName mangled %q", got)
	}
}

func TestScoreClampsAndRounds(t *testing.T) {
	if got := Score(1.15); got != 1 {
		t.Errorf("Score(1.15) = %v, want 1", got)
	}
	if got := Score(-0.2); got != 0 {
		t.Errorf("Score(-0.2) = %v, want 0", got)
	}
	if got := Score(0.8349); got != 0.83 {
		t.Errorf("Score(0.8349) = %v, want 0.83", got)
	}
}
