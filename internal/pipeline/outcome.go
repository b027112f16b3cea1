package pipeline

import "github.com/dukabooks/dukabooks/internal/classify"

// maxReportLines bounds every human-readable list on a file report.
const maxReportLines = 8

// TrustedSet holds the candidates that bypass human review.
// Transactions are always here; entities only when risk says Trusted.
type TrustedSet struct {
	Transactions []classify.Transaction `json:"transactions"`
	Products     []classify.Product     `json:"products"`
	Clients      []classify.Client      `json:"clients"`
	Suppliers    []classify.Supplier    `json:"suppliers"`
}

// ReviewSet holds the entity candidates routed to the review queue.
type ReviewSet struct {
	Products  []classify.Product  `json:"products"`
	Clients   []classify.Client   `json:"clients"`
	Suppliers []classify.Supplier `json:"suppliers"`
}

// Outcome is the full per-file ingestion report.
type Outcome struct {
	FileName          string     `json:"fileName"`
	Trusted           TrustedSet `json:"trusted"`
	Review            ReviewSet  `json:"review"`
	RowsProcessed     int        `json:"rowsProcessed"`
	RowsSkipped       int        `json:"rowsSkipped"`
	DuplicatesSkipped int        `json:"duplicatesSkipped"`
	Warnings          []string   `json:"warnings"`
	Errors            []string   `json:"errors"`
	Suggestions       []string   `json:"suggestions"`
}

// BoundLists truncates the report lists to the display bound. Callers
// that append after the run must re-apply it.
func (o *Outcome) BoundLists() {
	o.Warnings = capLines(o.Warnings)
	o.Errors = capLines(o.Errors)
	o.Suggestions = capLines(o.Suggestions)
}

// capLines truncates a report list to the display bound.
func capLines(lines []string) []string {
	if len(lines) > maxReportLines {
		return lines[:maxReportLines]
	}
	return lines
}
