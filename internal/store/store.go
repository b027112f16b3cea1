package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dukabooks/dukabooks/internal/common"
)

// Store keeps the State document in a single-row SQLite table. All
// access is serialized through the store's mutex so mutations observe
// a consistent snapshot.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the backing database at path. Pass ":memory:"
// for an ephemeral store in tests.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	// The document model needs exactly one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		id  INTEGER PRIMARY KEY CHECK (id = 1),
		doc BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, common.WrapError(err, "create schema")
	}
	logger.Info("store.opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns a snapshot of the full document.
func (s *Store) Read() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update loads the document, applies mutate, and persists the result
// if mutate returns nil. The mutation runs under the store lock.
func (s *Store) Update(mutate func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if err := mutate(&state); err != nil {
		return err
	}
	return s.persist(&state)
}

func (s *Store) load() (State, error) {
	var state State
	var doc []byte
	err := s.db.QueryRow(`SELECT doc FROM app_state WHERE id = 1`).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return state, nil
	case err != nil:
		return state, common.WrapError(err, "read document")
	}
	if err := json.Unmarshal(doc, &state); err != nil {
		return State{}, common.WrapError(err, "decode document")
	}
	return state, nil
}

func (s *Store) persist(state *State) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return common.WrapError(err, "encode document")
	}
	if _, err := s.db.Exec(
		`INSERT INTO app_state (id, doc) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`, doc,
	); err != nil {
		return common.WrapError(err, "write document")
	}
	return nil
}
