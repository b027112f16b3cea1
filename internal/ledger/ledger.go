// Package ledger owns the append-only record of committed cash
// movements. Commits are validated and deduplicated on trace key;
// nothing here ever rewrites an existing entry.
package ledger

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/store"
)

// ValidationError reports every field a commit attempt violated.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger entry invalid: %s", strings.Join(e.Fields, ", "))
}

// CommitResult reports the outcome of one commit attempt.
type CommitResult struct {
	Entry     store.LedgerRecord
	Duplicate bool
}

// Summary aggregates one calendar month of ledger activity.
type Summary struct {
	CashIn  float64 `json:"cashIn"`
	CashOut float64 `json:"cashOut"`
	Profit  float64 `json:"profit"`
	Entries int     `json:"entries"`
}

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// Validate checks the commit preconditions and returns every violated
// field at once, so a caller can surface the full list.
func Validate(entry store.LedgerRecord) error {
	var fields []string
	if entry.BusinessID == "" {
		fields = append(fields, "businessId")
	}
	if entry.Date == "" {
		fields = append(fields, "date")
	}
	if math.IsNaN(entry.Amount) || math.IsInf(entry.Amount, 0) || entry.Amount <= 0 {
		fields = append(fields, "amount")
	}
	if entry.Type != constants.DirectionIn && entry.Type != constants.DirectionOut {
		fields = append(fields, "direction")
	}
	if entry.TraceKey == "" {
		fields = append(fields, "traceKey")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Commit validates and appends one entry. A trace-key collision is not
// an error: the result reports Duplicate and the state is untouched.
func (s *Service) Commit(entry store.LedgerRecord) (CommitResult, error) {
	if err := Validate(entry); err != nil {
		return CommitResult{}, err
	}

	var result CommitResult
	err := s.store.Update(func(state *store.State) error {
		if state.HasLedgerTraceKey(entry.BusinessID, entry.TraceKey) {
			result.Duplicate = true
			return nil
		}
		state.Ledger = append([]store.LedgerRecord{entry}, state.Ledger...)
		result.Entry = entry
		return nil
	})
	if err != nil {
		return CommitResult{}, err
	}
	if result.Duplicate {
		s.logger.Debug("ledger.duplicate_skipped", "traceKey", entry.TraceKey)
	} else {
		s.logger.Info("ledger.committed",
			"business", entry.BusinessID, "type", entry.Type, "amount", entry.Amount)
	}
	return result, nil
}

// List returns every entry for one business, newest first.
func (s *Service) List(businessID string) ([]store.LedgerRecord, error) {
	state, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	entries := make([]store.LedgerRecord, 0)
	for _, rec := range state.Ledger {
		if rec.BusinessID == businessID {
			entries = append(entries, rec)
		}
	}
	return entries, nil
}

// MonthlySummary totals the month containing isoDate (YYYY-MM-...).
func (s *Service) MonthlySummary(businessID, isoDate string) (Summary, error) {
	state, err := s.store.Read()
	if err != nil {
		return Summary{}, err
	}
	month := isoDate
	if len(month) > 7 {
		month = month[:7]
	}
	var sum Summary
	for _, rec := range state.Ledger {
		if rec.BusinessID != businessID || !strings.HasPrefix(rec.Date, month) {
			continue
		}
		sum.Entries++
		switch rec.Type {
		case constants.DirectionIn:
			sum.CashIn += rec.Amount
		case constants.DirectionOut:
			sum.CashOut += rec.Amount
		}
	}
	sum.Profit = sum.CashIn - sum.CashOut
	return sum, nil
}
