package store

import (
	"path/filepath"
	"testing"

	"github.com/dukabooks/dukabooks/constants"
)

func TestReadEmptyStore(t *testing.T) {
	st, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	state, err := st.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(state.Ledger) != 0 || len(state.ReviewQueue) != 0 {
		t.Errorf("fresh store should be empty: %+v", state)
	}
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = st.Update(func(state *State) error {
		state.Ledger = append(state.Ledger, LedgerRecord{
			ID: "e1", BusinessID: "biz-1", Date: "2026-02-20",
			Type: constants.DirectionIn, Amount: 100, Source: "file_upload", TraceKey: "k1",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	state, err := reopened.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(state.Ledger) != 1 || state.Ledger[0].TraceKey != "k1" {
		t.Errorf("persisted state lost: %+v", state.Ledger)
	}
}

func TestUpdateErrorDiscardsMutation(t *testing.T) {
	st, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	wantErr := errSentinel("boom")
	err = st.Update(func(state *State) error {
		state.Ledger = append(state.Ledger, LedgerRecord{ID: "junk"})
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected mutation error back, got %v", err)
	}

	state, err := st.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(state.Ledger) != 0 {
		t.Error("failed mutation must not persist")
	}
}

func TestTraceKeyHelpers(t *testing.T) {
	state := State{
		Ledger: []LedgerRecord{
			{BusinessID: "biz-1", TraceKey: "a:IN"},
			{BusinessID: "biz-2", TraceKey: "b:IN"},
		},
		Products: []ProductRecord{{BusinessID: "biz-1", TraceKey: "a:PRODUCT"}},
	}
	if keys := state.LedgerTraceKeys("biz-1"); len(keys) != 1 || keys[0] != "a:IN" {
		t.Errorf("LedgerTraceKeys = %v", keys)
	}
	if !state.HasLedgerTraceKey("biz-1", "a:IN") {
		t.Error("expected trace key hit")
	}
	if state.HasLedgerTraceKey("biz-1", "b:IN") {
		t.Error("trace keys must be scoped per business")
	}
	if keys := state.EntityTraceKeys("biz-1", constants.KindProduct); len(keys) != 1 {
		t.Errorf("EntityTraceKeys = %v", keys)
	}
}

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
