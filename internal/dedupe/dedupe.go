// Package dedupe builds structural trace keys and filters rows that
// were already seen, either inside the current batch or in the store.
package dedupe

import (
	"fmt"
	"strings"
)

// Suffixes distinguish the candidates derived from one source row.
// The row key itself identifies the row; candidate keys append a kind.
const (
	SuffixIn       = ":IN"
	SuffixOut      = ":OUT"
	SuffixProduct  = ":PRODUCT"
	SuffixClient   = ":CLIENT"
	SuffixSupplier = ":SUPPLIER"
)

var kindSuffixes = []string{SuffixIn, SuffixOut, SuffixProduct, SuffixClient, SuffixSupplier}

// RootKey strips a candidate-kind suffix, recovering the row key a
// stored trace key was derived from. Keys without a known suffix are
// returned unchanged.
func RootKey(traceKey string) string {
	for _, suffix := range kindSuffixes {
		if strings.HasSuffix(traceKey, suffix) {
			return strings.TrimSuffix(traceKey, suffix)
		}
	}
	return traceKey
}

// RowKey builds the canonical trace key for a normalized row. Amounts
// are fixed at two decimals so 5000 and 5000.00 collide.
func RowKey(date string, cashIn, cashOut float64, orders int, fileID string, rowNumber int) string {
	return strings.Join([]string{
		date,
		fmt.Sprintf("%.2f", cashIn),
		fmt.Sprintf("%.2f", cashOut),
		fmt.Sprintf("%d", orders),
		fileID,
		fmt.Sprintf("%d", rowNumber),
	}, "|")
}

// POSKey namespaces point-of-sale entries away from file uploads so a
// coincidental structural match across sources never dedupes.
func POSKey(businessID, reference, date string) string {
	return strings.Join([]string{businessID, "pos", reference, date}, "|")
}

// Deduper tracks trace keys across a batch. Seed it with the keys the
// store already holds before feeding new rows through.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper(existing []string) *Deduper {
	seen := make(map[string]struct{}, len(existing))
	for _, key := range existing {
		seen[key] = struct{}{}
	}
	return &Deduper{seen: seen}
}

// Admit records key and reports whether it was new. A false return
// means the row is a duplicate and must be dropped without mutation.
func (d *Deduper) Admit(key string) bool {
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
