package normalize

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/lexicon"
)

// Record is one normalized input row. Immutable once built.
type Record struct {
	RowNumber int // 1-based file row; data starts at 2

	Date       string // ISO calendar date
	DateParsed bool   // false when Date fell back to the ingestion date

	CashIn          float64
	CashOut         float64
	Orders          int
	Description     string
	Category        string
	Reference       string // "N/A" when nothing resolved
	Channel         constants.Channel
	TransactionCost float64

	Product  string
	Quantity int
	UnitCost float64
	Client   string
	Supplier string
	Phone    string

	// HintDirection is set when both cash columns are zero but the
	// description carries a strong directional phrase.
	HintDirection    constants.Direction
	HasHintDirection bool

	RawText string
}

// Direction reports the classifiable cash direction of the record:
// a positive column wins, then the description hint.
func (r Record) Direction() (constants.Direction, bool) {
	switch {
	case r.CashIn > 0 && r.CashOut == 0:
		return constants.DirectionIn, true
	case r.CashOut > 0 && r.CashIn == 0:
		return constants.DirectionOut, true
	case r.HasHintDirection:
		return r.HintDirection, true
	default:
		return "", false
	}
}

// Note is a per-row warning surfaced on the file report.
type Note struct {
	RowNumber int
	Message   string
}

func (n Note) String() string {
	return fmt.Sprintf("row %d: %s", n.RowNumber, n.Message)
}

// Result is the output of normalizing one extracted matrix.
type Result struct {
	Records     []Record
	Warnings    []Note
	Suggestions []string
	RowsSkipped int
}

// Normalizer derives typed records from an extracted matrix.
type Normalizer struct {
	lex    *lexicon.Lexicon
	now    func() time.Time
	logger *slog.Logger
}

func NewNormalizer(lex *lexicon.Lexicon, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{lex: lex, now: time.Now, logger: logger}
}

// Normalize resolves canonical columns and derives one Record per
// usable row. Rows with no financial or order signal are dropped with
// a warning, never an error.
func (n *Normalizer) Normalize(m extract.Matrix) Result {
	cols := resolveColumns(m.Headers, n.lex)
	res := Result{
		Suggestions: suggestions(m.Headers, cols, n.lex),
	}
	autoDate := n.now().UTC().Format("2006-01-02")

	cell := func(row int, field lexicon.Field) string {
		idx := cols[field]
		if idx < 0 {
			return ""
		}
		return m.Cell(row, idx)
	}

	for i := range m.Rows {
		rowNumber := i + 2 // header occupies row 1
		rawText := m.RowText(i)

		rec := Record{
			RowNumber: rowNumber,
			RawText:   rawText,
		}

		rec.Date, rec.DateParsed = ToISODate(cell(i, lexicon.FieldDate))
		if !rec.DateParsed {
			rec.Date = autoDate
			res.Warnings = append(res.Warnings, Note{rowNumber, "Missing/invalid date; assigned upload date automatically."})
		}

		rec.CashIn = math.Abs(ParseAmount(cell(i, lexicon.FieldCashIn)))
		rec.CashOut = math.Abs(ParseAmount(cell(i, lexicon.FieldCashOut)))
		rec.Orders = wholeUnits(cell(i, lexicon.FieldOrders))
		rec.Description = cell(i, lexicon.FieldDescription)
		rec.TransactionCost = math.Abs(ParseAmount(cell(i, lexicon.FieldTransactionCost)))

		rawMode := cell(i, lexicon.FieldPaymentMode)
		rawChannel := cell(i, lexicon.FieldPaymentChannel)
		modeText := rawMode
		if modeText == "" {
			modeText = rawChannel
		}
		if modeText == "" {
			modeText = rec.Description
		}
		rec.Channel = n.lex.ResolveChannel(
			string(n.lex.ModeFromText(modeText)),
			rawChannel,
			rec.Description+" "+rawMode,
		)

		explicitRef := cell(i, lexicon.FieldReferenceCode)
		rec.Reference = explicitRef
		if rec.Reference == "" {
			rec.Reference = lexicon.MatchReference(rec.Description)
		}
		if rec.Reference == "" {
			rec.Reference = "N/A"
		}

		if rec.CashIn > 0 && rec.CashOut > 0 {
			res.Warnings = append(res.Warnings, Note{rowNumber, "Both cash_in and cash_out detected; keeping both values."})
		}

		// When neither cash column resolved to a value, a strong
		// directional phrase in the description still makes the row
		// classifiable.
		if rec.CashIn == 0 && rec.CashOut == 0 && rec.Description != "" {
			if dir, ok := n.lex.HintDirection(rec.Description); ok {
				rec.HintDirection = dir
				rec.HasHintDirection = true
			}
		}

		if rec.CashIn == 0 && rec.CashOut == 0 && rec.Orders == 0 && !rec.HasHintDirection {
			res.Warnings = append(res.Warnings, Note{rowNumber, "Skipped row with no usable financial signal."})
			res.RowsSkipped++
			continue
		}

		rec.Category = n.category(cell(i, lexicon.FieldCategory), rec.Description)
		rec.Product = cell(i, lexicon.FieldProductName)
		rec.Quantity = wholeUnits(cell(i, lexicon.FieldQuantity))
		rec.UnitCost = math.Max(0, ParseAmount(cell(i, lexicon.FieldUnitCost)))
		rec.Client = cell(i, lexicon.FieldClientName)
		rec.Supplier = cell(i, lexicon.FieldSupplierName)
		rec.Phone = NormalizePhone(cell(i, lexicon.FieldPhone))

		res.Records = append(res.Records, rec)
	}

	n.logger.Debug("normalize.done",
		"rows", len(m.Rows),
		"records", len(res.Records),
		"skipped", res.RowsSkipped,
	)
	return res
}

// category prefers the explicit column, then keyword inference from
// the description; "" when neither applies.
func (n *Normalizer) category(explicit, description string) string {
	if explicit != "" {
		return explicit
	}
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "stock") || strings.Contains(d, "inventory") || strings.Contains(d, "restock"):
		return "Stock Purchase"
	case strings.Contains(d, "rent"):
		return "Rent"
	case strings.Contains(d, "utility") || strings.Contains(d, "electric"):
		return "Utilities"
	default:
		return ""
	}
}

func wholeUnits(raw string) int {
	v := int(math.Round(math.Abs(ParseAmount(raw))))
	if v < 0 {
		return 0
	}
	return v
}
