// Package pos integrates point-of-sale feeds. Synced entries land in
// the same ledger as file uploads but carry source-namespaced trace
// keys, so a POS entry can never collide with an uploaded row.
package pos

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/dedupe"
	"github.com/dukabooks/dukabooks/internal/ledger"
	"github.com/dukabooks/dukabooks/internal/store"
)

// Entry is one transaction reported by a POS provider.
type Entry struct {
	Date      string              `json:"date"`
	Type      constants.Direction `json:"type"`
	Amount    float64             `json:"amount"`
	Reference string              `json:"reference"`
	Channel   constants.Channel   `json:"channel"`
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Synced     int                       `json:"synced"`
	Duplicates int                       `json:"duplicates"`
	Connection store.POSConnectionRecord `json:"connection"`
}

type Service struct {
	store  *store.Store
	ledger *ledger.Service
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(st *store.Store, lg *ledger.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		ledger: lg,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Connect registers or refreshes the provider connection for a
// business. Sync counters survive a reconnect.
func (s *Service) Connect(businessID, provider, endpoint string) (store.POSConnectionRecord, error) {
	if provider == "" {
		provider = "Generic POS"
	}
	if endpoint == "" {
		endpoint = "demo"
	}
	var conn store.POSConnectionRecord
	err := s.store.Update(func(state *store.State) error {
		idx := connectionIndex(state, businessID)
		conn = store.POSConnectionRecord{
			BusinessID:     businessID,
			Provider:       provider,
			Connected:      true,
			Endpoint:       endpoint,
			LastSyncStatus: "idle",
			LastSyncMsg:    "Connected",
		}
		if idx >= 0 {
			conn.TotalSynced = state.POSConnections[idx].TotalSynced
			conn.LastSyncAt = state.POSConnections[idx].LastSyncAt
			state.POSConnections[idx] = conn
		} else {
			state.POSConnections = append(state.POSConnections, conn)
		}
		return nil
	})
	if err != nil {
		return store.POSConnectionRecord{}, err
	}
	s.logger.Info("pos.connected", "business", businessID, "provider", provider)
	return conn, nil
}

// Sync commits a batch of POS entries to the ledger. Entries without a
// reference get a generated one; duplicates are counted, not errors.
func (s *Service) Sync(businessID string, entries []Entry) (SyncResult, error) {
	var result SyncResult
	for _, entry := range entries {
		ref := entry.Reference
		if ref == "" {
			ref = s.newID()
		}
		commit, err := s.ledger.Commit(store.LedgerRecord{
			ID:         s.newID(),
			BusinessID: businessID,
			Date:       entry.Date,
			Type:       entry.Type,
			Amount:     math.Abs(entry.Amount),
			Source:     constants.SourcePOS,
			TraceKey:   dedupe.POSKey(businessID, ref, entry.Date),
			Reference:  ref,
			Channel:    entry.Channel,
		})
		if err != nil {
			s.logger.Warn("pos.entry_rejected", "business", businessID, "reference", ref, "error", err)
			continue
		}
		if commit.Duplicate {
			result.Duplicates++
		} else {
			result.Synced++
		}
	}

	err := s.store.Update(func(state *store.State) error {
		idx := connectionIndex(state, businessID)
		if idx < 0 {
			return nil
		}
		conn := &state.POSConnections[idx]
		conn.LastSyncAt = s.now().UTC().Format(time.RFC3339)
		conn.LastSyncStatus = "success"
		conn.LastSyncMsg = syncMessage(result.Synced)
		conn.TotalSynced += result.Synced
		result.Connection = *conn
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}
	s.logger.Info("pos.synced", "business", businessID, "synced", result.Synced, "duplicates", result.Duplicates)
	return result, nil
}

// Status returns the current connection, if any.
func (s *Service) Status(businessID string) (store.POSConnectionRecord, bool, error) {
	state, err := s.store.Read()
	if err != nil {
		return store.POSConnectionRecord{}, false, err
	}
	for _, conn := range state.POSConnections {
		if conn.BusinessID == businessID {
			return conn, true, nil
		}
	}
	return store.POSConnectionRecord{}, false, nil
}

func connectionIndex(state *store.State, businessID string) int {
	for i, conn := range state.POSConnections {
		if conn.BusinessID == businessID {
			return i
		}
	}
	return -1
}

func syncMessage(synced int) string {
	if synced == 1 {
		return "Synced 1 transaction"
	}
	return fmt.Sprintf("Synced %d transactions", synced)
}
