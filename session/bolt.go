package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("sessions")

// BoltStore is a Store backed by a bbolt database. Sessions survive
// restarts, matching the durability of the browser-local storage the
// console state model is derived from.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore wraps an already-open bbolt database.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// NewBoltStoreFromFile opens (or creates) a bbolt database at path and
// returns a session store using it.
func NewBoltStoreFromFile(path string, options *bbolt.Options) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	return NewBoltStore(db)
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Get(id string) (Session, bool) {
	var sess Session
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &sess); err != nil {
			// A corrupt record reads as "no session"; the visitor
			// just has to log in again.
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		slog.Warn("session store: read failed", "error", err)
		return Session{}, false
	}
	if !found {
		return Session{}, false
	}
	return sess, true
}

// Put stores the session. The Store interface is void, so a failed
// transaction cannot be surfaced to the caller; it is logged instead
// of silently losing the write.
func (s *BoltStore) Put(id string, sess Session) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return tx.Bucket(sessionBucket).Put([]byte(id), data)
	})
	if err != nil {
		slog.Warn("session store: write failed", "error", err)
	}
}

func (s *BoltStore) Delete(id string) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(id))
	})
	if err != nil {
		slog.Warn("session store: delete failed", "error", err)
	}
}
