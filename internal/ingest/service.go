// Package ingest drives one uploaded file through the pipeline and
// persists the outcome: ledger commits for transactions, canonical
// upserts for trusted entities, review-queue entries for the rest,
// and an upload history record for the run.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/classify"
	"github.com/dukabooks/dukabooks/internal/common"
	"github.com/dukabooks/dukabooks/internal/dedupe"
	"github.com/dukabooks/dukabooks/internal/ledger"
	"github.com/dukabooks/dukabooks/internal/pipeline"
	"github.com/dukabooks/dukabooks/internal/review"
	"github.com/dukabooks/dukabooks/internal/store"
)

// Report is the caller-facing summary of one ingestion run.
type Report struct {
	Uploaded        string           `json:"uploaded"`
	LedgerCommitted int              `json:"ledgerCommitted"`
	ReviewQueued    int              `json:"reviewQueued"`
	Outcome         pipeline.Outcome `json:"outcome"`
}

type Service struct {
	store    *store.Store
	pipeline *pipeline.Pipeline
	ledger   *ledger.Service
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(st *store.Store, pl *pipeline.Pipeline, lg *ledger.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		pipeline: pl,
		ledger:   lg,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Ingest runs one file through the pipeline and persists everything it
// produced. Row-level failures never abort the file; extraction
// failures are recorded on the upload history and returned in the
// report, not as an error.
func (s *Service) Ingest(ctx context.Context, businessID, fileName string, content []byte) (Report, error) {
	if businessID == "" || fileName == "" {
		return Report{}, common.WrapError(common.ErrInvalidInput, "businessID and fileName are required")
	}
	state, err := s.store.Read()
	if err != nil {
		return Report{}, err
	}

	outcome, err := s.pipeline.RunFromText(ctx, fileName, content, seedKeys(&state, businessID))
	if err != nil {
		return Report{}, err
	}

	report := Report{Uploaded: fileName, Outcome: outcome}
	for _, tx := range outcome.Trusted.Transactions {
		result, err := s.ledger.Commit(store.LedgerRecord{
			ID:              s.newID(),
			BusinessID:      businessID,
			Date:            tx.Date,
			Type:            tx.Direction,
			Amount:          tx.Amount,
			Source:          tx.Source,
			TraceKey:        tx.TraceKey,
			Reference:       tx.Reference,
			Channel:         tx.Channel,
			TransactionCost: tx.TransactionCost,
		})
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("row %d: %v", tx.RowNumber, err))
			continue
		}
		if !result.Duplicate {
			report.LedgerCommitted++
		}
	}
	outcome.BoundLists()

	queued, err := s.persistEntities(businessID, &outcome)
	if err != nil {
		return Report{}, err
	}
	report.ReviewQueued = queued
	report.Outcome = outcome

	if err := s.recordUpload(businessID, fileName, content, outcome); err != nil {
		return Report{}, err
	}
	s.logger.Info("ingest.completed",
		"business", businessID,
		"file", fileName,
		"committed", report.LedgerCommitted,
		"queued", report.ReviewQueued)
	return report, nil
}

// Uploads returns the ingestion history for one business.
func (s *Service) Uploads(businessID string) ([]store.UploadRecord, error) {
	state, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	uploads := make([]store.UploadRecord, 0)
	for _, rec := range state.Uploads {
		if rec.BusinessID == businessID {
			uploads = append(uploads, rec)
		}
	}
	return uploads, nil
}

// seedKeys collects the row keys a business has already persisted, in
// any collection, so the deduplicator can reject reprocessed rows.
func seedKeys(state *store.State, businessID string) []string {
	var keys []string
	add := func(businessMatch bool, traceKey string) {
		if businessMatch {
			keys = append(keys, dedupe.RootKey(traceKey))
		}
	}
	for _, rec := range state.Ledger {
		add(rec.BusinessID == businessID, rec.TraceKey)
	}
	for _, rec := range state.Products {
		add(rec.BusinessID == businessID, rec.TraceKey)
	}
	for _, rec := range state.Clients {
		add(rec.BusinessID == businessID, rec.TraceKey)
	}
	for _, rec := range state.Suppliers {
		add(rec.BusinessID == businessID, rec.TraceKey)
	}
	for _, rec := range state.ReviewQueue {
		add(rec.BusinessID == businessID, rec.TraceKey)
	}
	return keys
}

// persistEntities upserts trusted entities and enqueues the rest for
// review, all idempotent on trace key. Returns the number queued.
func (s *Service) persistEntities(businessID string, outcome *pipeline.Outcome) (int, error) {
	queued := 0
	createdAt := s.now().UTC().Format(time.RFC3339)

	err := s.store.Update(func(state *store.State) error {
		productKeys := keySet(state, businessID, constants.KindProduct)
		clientKeys := keySet(state, businessID, constants.KindClient)
		supplierKeys := keySet(state, businessID, constants.KindSupplier)
		reviewKeys := make(map[string]struct{}, len(state.ReviewQueue))
		for _, rec := range state.ReviewQueue {
			if rec.BusinessID == businessID {
				reviewKeys[rec.TraceKey] = struct{}{}
			}
		}

		for _, p := range outcome.Trusted.Products {
			if _, dup := productKeys[p.TraceKey]; dup {
				continue
			}
			state.Products = append([]store.ProductRecord{productRecord(s.newID(), businessID, p)}, state.Products...)
		}
		for _, c := range outcome.Trusted.Clients {
			if _, dup := clientKeys[c.TraceKey]; dup {
				continue
			}
			state.Clients = append([]store.ClientRecord{clientRecord(s.newID(), businessID, c)}, state.Clients...)
		}
		for _, sp := range outcome.Trusted.Suppliers {
			if _, dup := supplierKeys[sp.TraceKey]; dup {
				continue
			}
			state.Suppliers = append([]store.SupplierRecord{supplierRecord(s.newID(), businessID, sp)}, state.Suppliers...)
		}

		for _, p := range outcome.Review.Products {
			if _, dup := reviewKeys[p.TraceKey]; dup {
				continue
			}
			rec := productRecord(s.newID(), businessID, p)
			item, err := review.NewRecord(s.newID(), businessID, constants.KindProduct, p.Name,
				p.Confidence, p.Risk, p.SourceFile, p.RowNumber, p.TraceKey, rec, createdAt)
			if err != nil {
				return err
			}
			state.ReviewQueue = append([]store.ReviewRecord{item}, state.ReviewQueue...)
			queued++
		}
		for _, c := range outcome.Review.Clients {
			if _, dup := reviewKeys[c.TraceKey]; dup {
				continue
			}
			rec := clientRecord(s.newID(), businessID, c)
			item, err := review.NewRecord(s.newID(), businessID, constants.KindClient, c.Name,
				c.Confidence, c.Risk, c.SourceFile, c.RowNumber, c.TraceKey, rec, createdAt)
			if err != nil {
				return err
			}
			state.ReviewQueue = append([]store.ReviewRecord{item}, state.ReviewQueue...)
			queued++
		}
		for _, sp := range outcome.Review.Suppliers {
			if _, dup := reviewKeys[sp.TraceKey]; dup {
				continue
			}
			rec := supplierRecord(s.newID(), businessID, sp)
			item, err := review.NewRecord(s.newID(), businessID, constants.KindSupplier, sp.Name,
				sp.Confidence, sp.Risk, sp.SourceFile, sp.RowNumber, sp.TraceKey, rec, createdAt)
			if err != nil {
				return err
			}
			state.ReviewQueue = append([]store.ReviewRecord{item}, state.ReviewQueue...)
			queued++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return queued, nil
}

func (s *Service) recordUpload(businessID, fileName string, content []byte, outcome pipeline.Outcome) error {
	status := "success"
	if len(outcome.Errors) > 0 && outcome.RowsProcessed == 0 {
		status = "error"
	}
	rec := store.UploadRecord{
		ID:                s.newID(),
		BusinessID:        businessID,
		FileName:          fileName,
		Fingerprint:       fmt.Sprintf("%016x", xxhash.Sum64(content)),
		Status:            status,
		RowsProcessed:     outcome.RowsProcessed,
		RowsSkipped:       outcome.RowsSkipped,
		DuplicatesSkipped: outcome.DuplicatesSkipped,
		Errors:            outcome.Errors,
		Warnings:          outcome.Warnings,
		CreatedAt:         s.now().UTC().Format(time.RFC3339),
	}
	return s.store.Update(func(state *store.State) error {
		state.Uploads = append([]store.UploadRecord{rec}, state.Uploads...)
		return nil
	})
}

func keySet(state *store.State, businessID string, kind constants.EntityKind) map[string]struct{} {
	keys := state.EntityTraceKeys(businessID, kind)
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

func productRecord(id, businessID string, p classify.Product) store.ProductRecord {
	return store.ProductRecord{
		ID: id, BusinessID: businessID,
		Name: p.Name, Quantity: p.Quantity, UnitCost: p.UnitCost, Supplier: p.Supplier,
		SourceFile: p.SourceFile, RowNumber: p.RowNumber,
		Confidence: p.Confidence, RiskLevel: p.Risk, TraceKey: p.TraceKey,
	}
}

func clientRecord(id, businessID string, c classify.Client) store.ClientRecord {
	return store.ClientRecord{
		ID: id, BusinessID: businessID,
		Name: c.Name, Phone: c.Phone, TotalSpent: c.TotalSpent, FirstSeen: c.FirstSeen,
		SourceFile: c.SourceFile, RowNumber: c.RowNumber,
		Confidence: c.Confidence, RiskLevel: c.Risk, TraceKey: c.TraceKey,
	}
}

func supplierRecord(id, businessID string, sp classify.Supplier) store.SupplierRecord {
	return store.SupplierRecord{
		ID: id, BusinessID: businessID,
		Name: sp.Name, LastPrice: sp.LastPrice, CategoryHint: sp.CategoryHint,
		SourceFile: sp.SourceFile, RowNumber: sp.RowNumber,
		Confidence: sp.Confidence, RiskLevel: sp.Risk, TraceKey: sp.TraceKey,
	}
}


