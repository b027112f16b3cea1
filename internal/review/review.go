// Package review holds low-confidence candidates until a human
// decides. Approval materializes the stored payload into the matching
// canonical collection; rejection only flips the status.
package review

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/common"
	"github.com/dukabooks/dukabooks/internal/store"
)

type Service struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// NewRecord builds a pending queue item. The payload is serialized
// as-is and replayed verbatim on approval.
func NewRecord(id, businessID string, kind constants.EntityKind, name string,
	confidence float64, risk constants.RiskLevel, sourceFile string, rowNumber int,
	traceKey string, payload any, createdAt string) (store.ReviewRecord, error) {

	raw, err := json.Marshal(payload)
	if err != nil {
		return store.ReviewRecord{}, common.WrapError(err, "encode review payload")
	}
	return store.ReviewRecord{
		ID:         id,
		BusinessID: businessID,
		Kind:       kind,
		Status:     constants.ReviewPending,
		Name:       name,
		Confidence: confidence,
		RiskLevel:  risk,
		SourceFile: sourceFile,
		RowNumber:  rowNumber,
		TraceKey:   traceKey,
		Payload:    raw,
		CreatedAt:  createdAt,
	}, nil
}

// Enqueue files one candidate payload for human review.
func (s *Service) Enqueue(businessID string, kind constants.EntityKind, name string,
	confidence float64, risk constants.RiskLevel, sourceFile string, rowNumber int,
	traceKey string, payload any) (store.ReviewRecord, error) {

	rec, err := NewRecord(s.newID(), businessID, kind, name, confidence, risk,
		sourceFile, rowNumber, traceKey, payload, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return store.ReviewRecord{}, err
	}
	err = s.store.Update(func(state *store.State) error {
		state.ReviewQueue = append([]store.ReviewRecord{rec}, state.ReviewQueue...)
		return nil
	})
	if err != nil {
		return store.ReviewRecord{}, err
	}
	s.logger.Info("review.enqueued", "kind", kind, "name", name, "confidence", confidence)
	return rec, nil
}

// List returns all queue items for one business, newest first.
func (s *Service) List(businessID string) ([]store.ReviewRecord, error) {
	state, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	items := make([]store.ReviewRecord, 0)
	for _, rec := range state.ReviewQueue {
		if rec.BusinessID == businessID {
			items = append(items, rec)
		}
	}
	return items, nil
}

// Approve accepts a pending item into the canonical store. Items that
// are no longer pending are returned unchanged, and a trace key that
// already exists in the target collection is never copied twice.
func (s *Service) Approve(businessID, itemID string) (store.ReviewRecord, error) {
	return s.decide(businessID, itemID, true)
}

// Reject marks a pending item rejected. The payload is kept for audit
// but never enters the canonical store.
func (s *Service) Reject(businessID, itemID string) (store.ReviewRecord, error) {
	return s.decide(businessID, itemID, false)
}

func (s *Service) decide(businessID, itemID string, approve bool) (store.ReviewRecord, error) {
	var decided store.ReviewRecord
	err := s.store.Update(func(state *store.State) error {
		idx := -1
		for i, rec := range state.ReviewQueue {
			if rec.BusinessID == businessID && rec.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return common.WrapError(common.ErrNotFound, "review item "+itemID)
		}
		item := &state.ReviewQueue[idx]
		if item.Status != constants.ReviewPending {
			decided = *item
			return nil
		}
		if !approve {
			item.Status = constants.ReviewRejected
			decided = *item
			return nil
		}
		if err := materialize(state, item); err != nil {
			return err
		}
		item.Status = constants.ReviewApproved
		decided = *item
		return nil
	})
	if err != nil {
		return store.ReviewRecord{}, err
	}
	s.logger.Info("review.decided", "item", itemID, "status", decided.Status)
	return decided, nil
}

// materialize copies the payload into its canonical collection unless
// the trace key is already there.
func materialize(state *store.State, item *store.ReviewRecord) error {
	switch item.Kind {
	case constants.KindProduct:
		for _, rec := range state.Products {
			if rec.BusinessID == item.BusinessID && rec.TraceKey == item.TraceKey {
				return nil
			}
		}
		var rec store.ProductRecord
		if err := json.Unmarshal(item.Payload, &rec); err != nil {
			return common.WrapError(err, "decode product payload")
		}
		rec.BusinessID = item.BusinessID
		state.Products = append([]store.ProductRecord{rec}, state.Products...)
	case constants.KindClient:
		for _, rec := range state.Clients {
			if rec.BusinessID == item.BusinessID && rec.TraceKey == item.TraceKey {
				return nil
			}
		}
		var rec store.ClientRecord
		if err := json.Unmarshal(item.Payload, &rec); err != nil {
			return common.WrapError(err, "decode client payload")
		}
		rec.BusinessID = item.BusinessID
		state.Clients = append([]store.ClientRecord{rec}, state.Clients...)
	case constants.KindSupplier:
		for _, rec := range state.Suppliers {
			if rec.BusinessID == item.BusinessID && rec.TraceKey == item.TraceKey {
				return nil
			}
		}
		var rec store.SupplierRecord
		if err := json.Unmarshal(item.Payload, &rec); err != nil {
			return common.WrapError(err, "decode supplier payload")
		}
		rec.BusinessID = item.BusinessID
		state.Suppliers = append([]store.SupplierRecord{rec}, state.Suppliers...)
	default:
		return fmt.Errorf("unknown review kind %q", item.Kind)
	}
	return nil
}
