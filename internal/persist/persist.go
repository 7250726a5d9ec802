// Package persist provides the namespaced local key-value store backing client state.
//
// The adapter contract is deliberately forgiving: reads report absence instead
// of failing, and writes report success or failure without ever panicking or
// propagating errors. Callers keep their in-memory state authoritative and
// treat a failed write as running memory-only.
package persist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Adapter is the persistence surface client state is read from and written to.
type Adapter interface {
	// Load returns the raw value for key, or ok=false when the key is absent
	// or unreadable.
	Load(key string) (value string, ok bool)
	// Save writes the raw value for key and reports whether the write stuck.
	Save(key, value string) bool
	// Delete removes key and reports whether the delete stuck.
	Delete(key string) bool
	Close() error
}

// Store is a Badger-backed Adapter with namespaced keys.
type Store struct {
	db        *badger.DB
	logger    *slog.Logger
	namespace string
}

var _ Adapter = (*Store)(nil)

// New opens the local store at path. Keys are stored as "<namespace>:<key>".
func New(path, namespace string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:        db,
		logger:    logger,
		namespace: namespace,
	}

	if logger != nil {
		logger.Info("local state store opened", "path", path, "namespace", namespace)
	}

	return store, nil
}

// Open returns a Badger-backed adapter, or a memory adapter when local
// storage is unavailable. The degraded mode is logged; callers continue
// operating in memory for the session.
func Open(path, namespace string, logger *slog.Logger) Adapter {
	store, err := New(path, namespace, logger)
	if err != nil {
		if logger != nil {
			logger.Error("local storage unavailable, continuing in memory", "path", path, "error", err)
		}
		return NewMemory()
	}
	return store
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing local state store")
	}
	return s.db.Close()
}

// Load retrieves the raw value for key. Absent and unreadable keys both
// report ok=false; read failures are logged.
func (s *Store) Load(key string) (string, bool) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to read local state", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Save writes the raw value for key. Write failures are logged and reported
// via the return value, never raised.
func (s *Store) Save(key, value string) bool {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), []byte(value))
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to write local state", "key", key, "error", err)
		}
		return false
	}
	return true
}

// Delete removes key. Delete failures are logged and reported via the return
// value.
func (s *Store) Delete(key string) bool {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to delete local state", "key", key, "error", err)
		}
		return false
	}
	return true
}

func (s *Store) key(k string) []byte {
	if s.namespace == "" {
		return []byte(k)
	}
	return []byte(s.namespace + ":" + k)
}
