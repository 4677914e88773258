package app

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"TempMon/internal/model"
)

// sessionsBucket holds one JSON SessionInfo per finished session, keyed by
// session ID so iteration order is chronological.
var sessionsBucket = []byte("sessions")

// Store persists session summaries in BoltDB.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens (or creates) the session database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o666, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("[app] failed to open BoltDB: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession stores one finished session summary.
func (s *Store) SaveSession(info model.SessionInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return err
		}
		v, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return b.Put([]byte(info.ID), v)
	})
}

// ListSessions returns all stored sessions, newest first.
func (s *Store) ListSessions() ([]model.SessionInfo, error) {
	var out []model.SessionInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var info model.SessionInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return err
			}
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
