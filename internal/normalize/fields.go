// Package normalize maps arbitrary extracted headers onto the
// pipeline's canonical fields and derives typed values per row.
package normalize

import (
	"fmt"
	"strings"

	"github.com/dukabooks/dukabooks/internal/lexicon"
)

// columns maps each canonical field to its resolved header index, or
// -1 when no header matched.
type columns map[lexicon.Field]int

// resolveColumns resolves every canonical field against the header
// row. Exact match on the normalized header wins; otherwise the first
// header containing (or contained by) a normalized alias. First hit
// wins; unmatched fields stay -1.
func resolveColumns(headers []string, lex *lexicon.Lexicon) columns {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = lexicon.NormalizeHeader(h)
	}

	cols := make(columns, len(lexicon.Fields))
	for _, field := range lexicon.Fields {
		cols[field] = findColumn(normalized, lex.Aliases[field])
	}
	return cols
}

func findColumn(normalizedHeaders []string, aliases []string) int {
	for _, alias := range aliases {
		aliasNorm := lexicon.NormalizeHeader(alias)
		for i, h := range normalizedHeaders {
			if h == aliasNorm {
				return i
			}
		}
	}
	for _, alias := range aliases {
		aliasNorm := lexicon.NormalizeHeader(alias)
		for i, h := range normalizedHeaders {
			if h == "" {
				continue
			}
			if strings.Contains(h, aliasNorm) || strings.Contains(aliasNorm, h) {
				return i
			}
		}
	}
	return -1
}

// suggestHeaders lists uploaded headers that look close to any alias,
// for the per-file suggestion text.
func suggestHeaders(headers []string, aliases []string) []string {
	var close []string
	for _, header := range headers {
		norm := lexicon.NormalizeHeader(header)
		if norm == "" {
			continue
		}
		for _, alias := range aliases {
			aliasNorm := lexicon.NormalizeHeader(alias)
			if strings.Contains(norm, aliasNorm) || strings.Contains(aliasNorm, norm) {
				close = append(close, header)
				break
			}
		}
	}
	return close
}

// suggestions builds the header-name hints surfaced when required
// columns cannot be resolved.
func suggestions(headers []string, cols columns, lex *lexicon.Lexicon) []string {
	var out []string
	if cols[lexicon.FieldDate] < 0 {
		out = append(out, fmt.Sprintf("Missing date column. Try headers like: %s.",
			strings.Join(lex.Aliases[lexicon.FieldDate], ", ")))
	}
	if cols[lexicon.FieldCashIn] < 0 && cols[lexicon.FieldCashOut] < 0 {
		closeIn := suggestHeaders(headers, lex.Aliases[lexicon.FieldCashIn])
		closeOut := suggestHeaders(headers, lex.Aliases[lexicon.FieldCashOut])
		combined := dedupeStrings(append(closeIn, closeOut...))
		if len(combined) > 0 {
			out = append(out, fmt.Sprintf("Could not confidently map cash columns. Closest matches: %s.",
				strings.Join(combined, ", ")))
		} else {
			out = append(out, "Could not find cash columns. Use Sales/Revenue/Amount In and Expenses/Cost/Amount Out.")
		}
	}
	return out
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
