// Package classify scores normalized records for transaction, product,
// client, and supplier candidacy. Each kind is judged independently; a
// single row can yield several candidates.
package classify

import (
	"math"

	"github.com/dukabooks/dukabooks/constants"
)

// Transaction is a provisional ledger movement.
type Transaction struct {
	Date            string              `json:"date"`
	Direction       constants.Direction `json:"type"`
	Amount          float64             `json:"amount"`
	Source          string              `json:"source"`
	Reference       string              `json:"reference"`
	Channel         constants.Channel   `json:"channel"`
	TransactionCost float64             `json:"transactionCost"`
	SourceFile      string              `json:"sourceFile"`
	RowNumber       int                 `json:"rowNumber"`
	Confidence      float64             `json:"confidence"`
	Risk            constants.RiskLevel `json:"riskLevel"`
	TraceKey        string              `json:"traceKey"`
}

// Product is a provisional stock item.
type Product struct {
	Name       string              `json:"name"`
	Quantity   int                 `json:"quantity"`
	UnitCost   float64             `json:"unitCost"`
	Supplier   string              `json:"supplier"`
	SourceFile string              `json:"sourceFile"`
	RowNumber  int                 `json:"rowNumber"`
	Confidence float64             `json:"confidence"`
	Risk       constants.RiskLevel `json:"riskLevel"`
	TraceKey   string              `json:"traceKey"`
}

// Client is a provisional paying customer.
type Client struct {
	Name       string              `json:"name"`
	Phone      string              `json:"phone"`
	TotalSpent float64             `json:"totalSpent"`
	FirstSeen  string              `json:"firstSeen"`
	SourceFile string              `json:"sourceFile"`
	RowNumber  int                 `json:"rowNumber"`
	Confidence float64             `json:"confidence"`
	Risk       constants.RiskLevel `json:"riskLevel"`
	TraceKey   string              `json:"traceKey"`
}

// Supplier is a provisional vendor.
type Supplier struct {
	Name         string              `json:"name"`
	LastPrice    float64             `json:"lastPrice"`
	CategoryHint string              `json:"categoryHint"`
	SourceFile   string              `json:"sourceFile"`
	RowNumber    int                 `json:"rowNumber"`
	Confidence   float64             `json:"confidence"`
	Risk         constants.RiskLevel `json:"riskLevel"`
	TraceKey     string              `json:"traceKey"`
}

// Set is the tagged union of candidates one row can produce. Nil
// members mean the row did not qualify for that kind.
type Set struct {
	Transaction *Transaction
	Product     *Product
	Client      *Client
	Supplier    *Supplier
}

// Score clamps a raw confidence into [0,1] at two-decimal precision.
func Score(v float64) float64 {
	v = math.Round(v*100) / 100
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
