package lexicon

import (
	"regexp"
	"strings"

	"github.com/dukabooks/dukabooks/constants"
)

var (
	reHeaderSep   = regexp.MustCompile(`[_-]+`)
	reMultiSpace  = regexp.MustCompile(`\s+`)
	reReference   = regexp.MustCompile(`\b[A-Z0-9]{8,12}\b`)
	reCurrencyAmt = regexp.MustCompile(`(?i)(kes|ksh)\s*\d`)

	reXrefRow   = regexp.MustCompile(`^\d{6,}\s+\d{4,}\s+n$`)
	rePDFHeader = regexp.MustCompile(`^%pdf-\d\.\d`)
	reObjMarker = regexp.MustCompile(`^\d+\s+\d+\s+obj$`)
)

// NormalizeHeader lowercases a header and collapses underscore/hyphen
// separators and repeated whitespace, so "Cash_In " == "cash in".
func NormalizeHeader(header string) string {
	h := strings.ToLower(header)
	h = reHeaderSep.ReplaceAllString(h, " ")
	h = reMultiSpace.ReplaceAllString(h, " ")
	return strings.TrimSpace(h)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// LooseDirection infers a cash direction for free text pulled out of
// statements and receipts. Outbound wins over inbound; unmatched text
// is treated as inbound, matching how till slips skew.
func (l *Lexicon) LooseDirection(text string) constants.Direction {
	lower := strings.ToLower(text)
	if containsAny(lower, l.OutboundKeywords) {
		return constants.DirectionOut
	}
	return constants.DirectionIn
}

// HintDirection infers a direction from strong phrase-level hints only.
// The second return is false when no hint matched.
func (l *Lexicon) HintDirection(text string) (constants.Direction, bool) {
	lower := strings.ToLower(text)
	if containsAny(lower, l.InboundHints) {
		return constants.DirectionIn, true
	}
	if containsAny(lower, l.OutboundHints) {
		return constants.DirectionOut, true
	}
	return "", false
}

// ModeFromText maps free text to a payment channel, defaulting Unknown.
func (l *Lexicon) ModeFromText(text string) constants.Channel {
	lower := strings.ToLower(text)
	if lower == "" {
		return constants.ChannelUnknown
	}
	switch {
	case containsAny(lower, []string{"mpesa", "m-pesa", "mobile money", "pochi", "paybill", "till"}):
		return constants.ChannelMobile
	case containsAny(lower, []string{"card", "bank", "cheque"}):
		return constants.ChannelBank
	case strings.Contains(lower, "cash"):
		return constants.ChannelCash
	default:
		return constants.ChannelUnknown
	}
}

// channelToken is the stricter form used for explicit channel columns;
// it returns "" rather than Unknown when nothing matched.
func (l *Lexicon) channelToken(raw string) constants.Channel {
	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, []string{"pochi", "paybill", "till", "buy goods", "mpesa", "m-pesa", "wallet"}):
		return constants.ChannelMobile
	case containsAny(lower, []string{"bank", "card", "cheque"}):
		return constants.ChannelBank
	case strings.Contains(lower, "cash"):
		return constants.ChannelCash
	default:
		return ""
	}
}

// ResolveChannel picks the payment channel by preference order:
// explicit channel column, then mode column, then description text.
// When every token pass misses, an already-resolved non-Unknown mode
// wins; "mobile money" has no channel token but still means Mobile
// Transfer.
func (l *Lexicon) ResolveChannel(mode, channel, description string) constants.Channel {
	if c := l.channelToken(channel); c != "" {
		return c
	}
	if c := l.channelToken(mode); c != "" {
		return c
	}
	if c := l.channelToken(description); c != "" {
		return c
	}
	switch m := constants.Channel(mode); m {
	case constants.ChannelMobile, constants.ChannelBank, constants.ChannelCash:
		return m
	}
	return constants.ChannelUnknown
}

// CategoryFromText infers a bookkeeping category from description text.
func (l *Lexicon) CategoryFromText(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, []string{"stock", "inventory", "restock", "supplier", "wholesale"}):
		return "Stock Purchase"
	case containsAny(lower, []string{"rent", "house", "shop rent"}):
		return "Rent"
	case containsAny(lower, []string{"token", "power", "electric", "water", "utility"}):
		return "Utilities"
	case containsAny(lower, []string{"transport", "fuel", "fare"}):
		return "Transport"
	case containsAny(lower, []string{"sale", "sold", "customer", "receipt", "m-pesa", "till", "paybill", "pochi"}):
		return "Sales"
	default:
		return "Unstructured"
	}
}

// HasTransactionSignal reports whether a line carries a monetary or
// transactional hint strong enough to treat it as a record on its own.
func (l *Lexicon) HasTransactionSignal(line string) bool {
	lower := strings.ToLower(line)
	if containsAny(lower, l.MoneyKeywords) {
		return true
	}
	if reReference.MatchString(line) {
		return true
	}
	return reCurrencyAmt.MatchString(line)
}

// HasContextSignal reports whether a line supplies transactional
// context for a following amount-only line.
func (l *Lexicon) HasContextSignal(line string) bool {
	if l.HasTransactionSignal(line) {
		return true
	}
	return containsAny(strings.ToLower(line), l.ContextKeywords)
}

// IsPDFNoise reports whether the line is PDF internals or similar
// boilerplate that OCR and raw text extraction drag in.
func (l *Lexicon) IsPDFNoise(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if reXrefRow.MatchString(trimmed) || rePDFHeader.MatchString(trimmed) || reObjMarker.MatchString(trimmed) {
		return true
	}
	return containsAny(trimmed, l.PDFNoiseTokens)
}

// MatchReference pulls the first reference-code-shaped token out of
// text, or "".
func MatchReference(text string) string {
	return reReference.FindString(text)
}

// MatchesAny reports whether any keyword occurs in the text
// (case-insensitive).
func MatchesAny(text string, words []string) bool {
	return containsAny(strings.ToLower(text), words)
}
