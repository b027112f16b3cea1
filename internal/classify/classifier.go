package classify

import (
	"log/slog"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/normalize"
)

// Classifier turns one normalized record into candidates.
type Classifier struct {
	lex    *lexicon.Lexicon
	logger *slog.Logger
}

func NewClassifier(lex *lexicon.Lexicon, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{lex: lex, logger: logger}
}

// Classify scores rec for every candidate kind. Trace keys are left
// empty; the deduplicator owns those.
func (c *Classifier) Classify(rec normalize.Record, sourceFile string) Set {
	var set Set

	product := sanitizeName(firstNonEmpty(rec.Product, extractNamedEntity(rec.RawText, c.lex.ProductPrefixes)))
	client := sanitizeName(firstNonEmpty(rec.Client, extractNamedEntity(rec.RawText, c.lex.ClientPrefixes)))
	supplier := sanitizeName(firstNonEmpty(rec.Supplier, extractNamedEntity(rec.RawText, c.lex.SupplierPrefixes)))

	set.Transaction = c.transaction(rec, sourceFile)
	set.Product = c.product(rec, product, supplier, sourceFile)
	set.Client = c.client(rec, client, sourceFile)
	set.Supplier = c.supplier(rec, supplier, sourceFile)
	return set
}

// transaction emits only for a non-zero classifiable cash movement.
func (c *Classifier) transaction(rec normalize.Record, sourceFile string) *Transaction {
	dir, ok := rec.Direction()
	if !ok {
		return nil
	}
	amount := rec.CashIn
	if dir == constants.DirectionOut {
		amount = rec.CashOut
	}
	if amount <= 0 {
		return nil
	}

	conf := 0.45
	conf += 0.25 // amount present by construction
	if rec.Reference != "" && rec.Reference != "N/A" {
		conf += 0.10
	}
	if rec.Channel != constants.ChannelUnknown {
		conf += 0.10
	}
	if rec.DateParsed {
		conf += 0.10
	}
	score := Score(conf)

	return &Transaction{
		Date:            rec.Date,
		Direction:       dir,
		Amount:          amount,
		Source:          constants.SourceFileUpload,
		Reference:       rec.Reference,
		Channel:         rec.Channel,
		TransactionCost: rec.TransactionCost,
		SourceFile:      sourceFile,
		RowNumber:       rec.RowNumber,
		Confidence:      score,
		Risk:            constants.RiskForConfidence(score),
	}
}

func (c *Classifier) product(rec normalize.Record, name, supplier, sourceFile string) *Product {
	if name == "" && !(rec.Quantity > 0 && rec.UnitCost > 0) {
		return nil
	}

	conf := 0.35
	if name != "" {
		conf += 0.25
	}
	if rec.Quantity > 0 {
		conf += 0.20
	}
	if rec.UnitCost > 0 {
		conf += 0.20
	}
	score := Score(conf)

	if name == "" {
		name = "Unlabeled Product"
	}
	if supplier == "" {
		supplier = "Unknown"
	}
	return &Product{
		Name:       name,
		Quantity:   rec.Quantity,
		UnitCost:   rec.UnitCost,
		Supplier:   supplier,
		SourceFile: sourceFile,
		RowNumber:  rec.RowNumber,
		Confidence: score,
		Risk:       constants.RiskForConfidence(score),
	}
}

func (c *Classifier) client(rec normalize.Record, name, sourceFile string) *Client {
	if rec.CashIn <= 0 {
		return nil
	}
	contextual := lexicon.MatchesAny(rec.RawText, c.lex.ClientContextKeywords)

	var score float64
	switch {
	case name != "":
		conf := 0.50
		if rec.Phone != "" {
			conf += 0.25
		}
		if rec.Reference != "" && rec.Reference != "N/A" {
			conf += 0.10
		}
		if contextual {
			conf += 0.15
		}
		score = Score(conf)
	case contextual:
		// Secondary path: no explicit name, but the description and
		// surrounding text read like a customer payment.
		name = sanitizeName(rec.Description)
		if name == "" {
			return nil
		}
		score = Score(0.60)
	default:
		return nil
	}

	return &Client{
		Name:       name,
		Phone:      rec.Phone,
		TotalSpent: rec.CashIn,
		FirstSeen:  rec.Date,
		SourceFile: sourceFile,
		RowNumber:  rec.RowNumber,
		Confidence: score,
		Risk:       constants.RiskForConfidence(score),
	}
}

func (c *Classifier) supplier(rec normalize.Record, name, sourceFile string) *Supplier {
	if name == "" && rec.CashOut <= 0 {
		return nil
	}

	conf := 0.45
	if rec.CashOut > 0 {
		conf += 0.20
	}
	if rec.UnitCost > 0 {
		conf += 0.15
	}
	if lexicon.MatchesAny(rec.RawText, c.lex.SupplierContextKeywords) {
		conf += 0.20
	}
	score := Score(conf)

	lastPrice := rec.UnitCost
	if lastPrice <= 0 {
		lastPrice = rec.CashOut
	}
	hint := rec.Category
	if hint == "" {
		hint = c.lex.CategoryFromText(rec.RawText)
	}
	if name == "" {
		name = "Unknown Supplier"
	}
	return &Supplier{
		Name:         name,
		LastPrice:    lastPrice,
		CategoryHint: hint,
		SourceFile:   sourceFile,
		RowNumber:    rec.RowNumber,
		Confidence:   score,
		Risk:         constants.RiskForConfidence(score),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
