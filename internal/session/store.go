// Package session persists the single active timer session record.
//
// Persistence is best-effort: a Store never reports failures to its caller.
// Write errors are logged and the timer keeps running in memory; unreadable
// or malformed records are treated as absent and removed.
package session

import (
	"errors"

	apperrors "github.com/julianstephens/pomolit/internal/errors"
	"github.com/julianstephens/pomolit/internal/logger"
)

// Store is a single-slot session record store over a Backend.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save replaces the stored record.
func (s *Store) Save(rec Record) {
	data, err := Encode(rec)
	if apperrors.BestEffort("encode session record", err) {
		return
	}
	apperrors.BestEffort("save session record", s.backend.Write(data))
}

// Load returns the stored record, or nil when there is none. A record that
// fails to parse or validate is cleared.
func (s *Store) Load() *Record {
	data, err := s.backend.Read()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			apperrors.BestEffort("read session record", err)
		}
		return nil
	}

	rec, err := Decode(data)
	if err != nil {
		logger.Warn("discarding corrupt session record", "error", err)
		s.Clear()
		return nil
	}
	return &rec
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (s *Store) Clear() {
	apperrors.BestEffort("clear session record", s.backend.Delete())
}
