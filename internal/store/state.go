// Package store persists the whole business document as one
// serialized state. Callers read a snapshot or run a mutation under
// the store's internal lock; there is never more than one writer.
package store

import (
	"encoding/json"

	"github.com/dukabooks/dukabooks/constants"
)

// LedgerRecord is a committed cash movement.
type LedgerRecord struct {
	ID              string              `json:"id"`
	BusinessID      string              `json:"businessId"`
	Date            string              `json:"date"`
	Type            constants.Direction `json:"type"`
	Amount          float64             `json:"amount"`
	Source          string              `json:"source"`
	TraceKey        string              `json:"traceKey"`
	Reference       string              `json:"reference,omitempty"`
	Category        string              `json:"category,omitempty"`
	Channel         constants.Channel   `json:"channel,omitempty"`
	TransactionCost float64             `json:"transactionCost,omitempty"`
}

// ProductRecord is a canonical stock item accepted into the store.
type ProductRecord struct {
	ID         string              `json:"id"`
	BusinessID string              `json:"businessId"`
	Name       string              `json:"name"`
	Quantity   int                 `json:"quantity"`
	UnitCost   float64             `json:"unitCost"`
	Supplier   string              `json:"supplier"`
	SourceFile string              `json:"sourceFile"`
	RowNumber  int                 `json:"rowNumber"`
	Confidence float64             `json:"confidence"`
	RiskLevel  constants.RiskLevel `json:"riskLevel"`
	TraceKey   string              `json:"traceKey"`
}

// ClientRecord is a canonical paying customer.
type ClientRecord struct {
	ID         string              `json:"id"`
	BusinessID string              `json:"businessId"`
	Name       string              `json:"name"`
	Phone      string              `json:"phone"`
	TotalSpent float64             `json:"totalSpent"`
	FirstSeen  string              `json:"firstSeen"`
	SourceFile string              `json:"sourceFile"`
	RowNumber  int                 `json:"rowNumber"`
	Confidence float64             `json:"confidence"`
	RiskLevel  constants.RiskLevel `json:"riskLevel"`
	TraceKey   string              `json:"traceKey"`
}

// SupplierRecord is a canonical vendor.
type SupplierRecord struct {
	ID           string              `json:"id"`
	BusinessID   string              `json:"businessId"`
	Name         string              `json:"name"`
	LastPrice    float64             `json:"lastPrice"`
	CategoryHint string              `json:"categoryHint"`
	SourceFile   string              `json:"sourceFile"`
	RowNumber    int                 `json:"rowNumber"`
	Confidence   float64             `json:"confidence"`
	RiskLevel    constants.RiskLevel `json:"riskLevel"`
	TraceKey     string              `json:"traceKey"`
}

// ReviewRecord holds a candidate awaiting a human decision. Payload is
// the full candidate record, kept opaque until approval materializes
// it into the matching canonical collection.
type ReviewRecord struct {
	ID         string                 `json:"id"`
	BusinessID string                 `json:"businessId"`
	Kind       constants.EntityKind   `json:"kind"`
	Status     constants.ReviewStatus `json:"status"`
	Name       string                 `json:"name"`
	Confidence float64                `json:"confidence"`
	RiskLevel  constants.RiskLevel    `json:"riskLevel"`
	SourceFile string                 `json:"sourceFile"`
	RowNumber  int                    `json:"rowNumber"`
	TraceKey   string                 `json:"traceKey"`
	Payload    json.RawMessage        `json:"payload"`
	CreatedAt  string                 `json:"createdAt"`
}

// UploadRecord summarizes one ingestion run.
type UploadRecord struct {
	ID                string   `json:"id"`
	BusinessID        string   `json:"businessId"`
	FileName          string   `json:"fileName"`
	Fingerprint       string   `json:"fingerprint,omitempty"`
	Status            string   `json:"status"`
	RowsProcessed     int      `json:"rowsProcessed"`
	RowsSkipped       int      `json:"rowsSkipped"`
	DuplicatesSkipped int      `json:"duplicatesSkipped"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	CreatedAt         string   `json:"createdAt"`
}

// POSConnectionRecord tracks one point-of-sale integration.
type POSConnectionRecord struct {
	BusinessID     string `json:"businessId"`
	Provider       string `json:"provider"`
	Connected      bool   `json:"connected"`
	Endpoint       string `json:"endpoint"`
	TotalSynced    int    `json:"totalSynced"`
	LastSyncAt     string `json:"lastSyncAt,omitempty"`
	LastSyncStatus string `json:"lastSyncStatus"`
	LastSyncMsg    string `json:"lastSyncMessage"`
}

// State is the whole persisted document.
type State struct {
	Ledger         []LedgerRecord        `json:"ledger"`
	Products       []ProductRecord       `json:"products"`
	Clients        []ClientRecord        `json:"clients"`
	Suppliers      []SupplierRecord      `json:"suppliers"`
	ReviewQueue    []ReviewRecord        `json:"reviewQueue"`
	Uploads        []UploadRecord        `json:"uploads"`
	POSConnections []POSConnectionRecord `json:"posConnections"`
}

// LedgerTraceKeys returns the trace keys already committed for a
// business. Used to seed the deduplicator before a new batch.
func (s *State) LedgerTraceKeys(businessID string) []string {
	keys := make([]string, 0, len(s.Ledger))
	for _, rec := range s.Ledger {
		if rec.BusinessID == businessID {
			keys = append(keys, rec.TraceKey)
		}
	}
	return keys
}

// EntityTraceKeys returns the trace keys of canonical entities of one
// kind for a business.
func (s *State) EntityTraceKeys(businessID string, kind constants.EntityKind) []string {
	var keys []string
	switch kind {
	case constants.KindProduct:
		for _, rec := range s.Products {
			if rec.BusinessID == businessID {
				keys = append(keys, rec.TraceKey)
			}
		}
	case constants.KindClient:
		for _, rec := range s.Clients {
			if rec.BusinessID == businessID {
				keys = append(keys, rec.TraceKey)
			}
		}
	case constants.KindSupplier:
		for _, rec := range s.Suppliers {
			if rec.BusinessID == businessID {
				keys = append(keys, rec.TraceKey)
			}
		}
	}
	return keys
}

// HasLedgerTraceKey reports whether a trace key is already committed.
func (s *State) HasLedgerTraceKey(businessID, traceKey string) bool {
	for _, rec := range s.Ledger {
		if rec.BusinessID == businessID && rec.TraceKey == traceKey {
			return true
		}
	}
	return false
}
