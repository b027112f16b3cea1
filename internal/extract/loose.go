package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/lexicon"
)

// looseHeader is the synthetic header row a loose-text matrix carries.
var looseHeader = []string{
	"date", "cash_in", "cash_out", "description", "orders",
	"category", "transaction_cost", "reference_code", "payment_mode", "payment_channel",
}

var (
	reAmountToken = regexp.MustCompile(`(?i)(?:kes|ksh)?\s*[-+]?\d{1,3}(?:,\d{3})*(?:\.\d+)?|[-+]?\d+(?:\.\d+)?`)
	reCurrency    = regexp.MustCompile(`(?i)kes|ksh`)
	reLongDigits  = regexp.MustCompile(`\b\d{7,}\b`)
	reMoneyWords  = regexp.MustCompile(`(?i)kes|ksh|mpesa|m-pesa|paid|received|sale|expense|bank|cash|transfer`)
	reHasLetter   = regexp.MustCompile(`[A-Za-z]`)
)

// amountTokens extracts every monetary-looking number on a line.
func amountTokens(line string) []float64 {
	matches := reAmountToken.FindAllString(line, -1)
	amounts := make([]float64, 0, len(matches))
	for _, token := range matches {
		cleaned := reCurrency.ReplaceAllString(token, "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSpace(cleaned)
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			amounts = append(amounts, v)
		}
	}
	return amounts
}

// gridFromLooseText is the last-resort matrix: scan free text line by
// line, drop boilerplate, and keep lines with a plausible amount plus
// a transaction keyword (or contextual support from the preceding
// text-only line). Each kept line becomes one synthesized row under a
// fixed header.
//
// allowAmountOnly relaxes the keyword requirement for OCR output from
// photos, where the amount often lands on its own line.
func gridFromLooseText(text string, lex *lexicon.Lexicon, allowAmountOnly bool) [][]string {
	var rows [][]string
	lastContext := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !mostlyReadable(line) || lex.IsPDFNoise(line) {
			continue
		}
		if reLongDigits.MatchString(line) && !reMoneyWords.MatchString(line) {
			continue
		}

		amounts := amountTokens(line)
		hasLetters := reHasLetter.MatchString(line)
		strongSignal := lex.HasTransactionSignal(line)
		contextSignal := lex.HasContextSignal(lastContext)

		// A text-only line becomes context for the next amount line.
		if hasLetters && len(amounts) == 0 && len(line) >= 3 {
			lastContext = line
			continue
		}
		amountOnly := allowAmountOnly && contextSignal && anyAtLeast(amounts, 20)
		if !strongSignal && !amountOnly {
			continue
		}
		if len(amounts) == 0 {
			continue
		}

		filtered := make([]float64, 0, len(amounts))
		for _, v := range amounts {
			v = math.Abs(v)
			if v > 0 && v < 10_000_000 {
				filtered = append(filtered, v)
			}
		}
		if len(filtered) == 0 {
			continue
		}

		amount := maxOf(filtered)
		if amount < 20 && !reCurrency.MatchString(line) && !allowAmountOnly {
			continue
		}
		if !strongSignal && !contextSignal && amount < 100 {
			continue
		}

		description := line
		if !hasLetters && lastContext != "" {
			description = lastContext
		}
		combined := description + " " + line

		direction := lex.LooseDirection(combined)
		cashIn, cashOut := 0.0, 0.0
		if direction == constants.DirectionIn {
			cashIn = amount
		} else {
			cashOut = amount
		}

		reference := lexicon.MatchReference(description)
		if reference == "" {
			reference = lexicon.MatchReference(line)
		}
		mode := lex.ModeFromText(combined)
		channel := lex.ResolveChannel(string(mode), line, combined)
		category := lex.CategoryFromText(description)
		fee := feeAmount(combined, filtered, amount)

		rows = append(rows, []string{
			"",
			formatAmount(cashIn),
			formatAmount(cashOut),
			description,
			"0",
			category,
			formatAmount(fee),
			reference,
			string(mode),
			string(channel),
		})
	}

	if len(rows) == 0 {
		return nil
	}
	grid := make([][]string, 0, len(rows)+1)
	grid = append(grid, looseHeader)
	return append(grid, rows...)
}

// feeAmount treats the smallest amount on a fee/charge-bearing line as
// the transaction cost, as long as it is not the main amount itself.
func feeAmount(text string, amounts []float64, main float64) float64 {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "fee") && !strings.Contains(lower, "charge") {
		return 0
	}
	smallest := minOf(amounts)
	if smallest == main {
		return 0
	}
	return smallest
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func anyAtLeast(values []float64, threshold float64) bool {
	for _, v := range values {
		if math.Abs(v) >= threshold {
			return true
		}
	}
	return false
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
