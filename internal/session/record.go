package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
)

// Wire values for the persisted phase and mode fields.
const (
	PhaseIdle    = "idle"
	PhaseRunning = "running"
	PhasePaused  = "paused"

	ModeFocus      = "focus"
	ModeShortBreak = "shortBreak"
	ModeLongBreak  = "longBreak"
)

// ErrSchemaMismatch is returned when a stored payload parses as JSON but
// does not have the shape of a session record.
var ErrSchemaMismatch = errors.New("session record schema mismatch")

// Record is the durable snapshot of an in-progress timer session.
//
// RunningSince is the epoch-millisecond instant the current running phase
// began (back-dated on resume). SavedAt is the instant the snapshot was
// written; records from before schema version 2 do not carry it.
type Record struct {
	Version             int    `json:"version"`
	RemainingSeconds    int    `json:"remainingSeconds"`
	Phase               string `json:"phase"`
	Mode                string `json:"mode"`
	SelectedCategoryID  string `json:"selectedCategoryId"`
	CompletedFocusCount int    `json:"completedFocusCount"`
	RunningSince        *int64 `json:"runningSince"`
	SavedAt             *int64 `json:"savedAt,omitempty"`
}

// wireRecord mirrors Record with pointer fields so absent keys can be told
// apart from zero values.
type wireRecord struct {
	Version             *int    `json:"version"`
	RemainingSeconds    *int    `json:"remainingSeconds"`
	Phase               *string `json:"phase"`
	Mode                *string `json:"mode"`
	SelectedCategoryID  *string `json:"selectedCategoryId"`
	CompletedFocusCount *int    `json:"completedFocusCount"`
	RunningSince        *int64  `json:"runningSince"`
	SavedAt             *int64  `json:"savedAt"`
}

// Millis converts t to the epoch-millisecond form used on the wire.
func Millis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

// Time converts an epoch-millisecond pointer back into a time, reporting
// false for nil.
func Time(ms *int64) (time.Time, bool) {
	if ms == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*ms), true
}

// Encode serializes the record, stamping the current schema version.
func Encode(rec Record) ([]byte, error) {
	rec.Version = constants.SessionSchemaVersion
	return json.Marshal(rec)
}

// Decode parses and validates a stored payload. Records written before the
// version field existed are accepted as version 1.
func Decode(data []byte) (Record, error) {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return Record{}, fmt.Errorf("failed to parse session record: %w", err)
	}

	if wire.RemainingSeconds == nil || wire.Phase == nil || wire.Mode == nil {
		return Record{}, fmt.Errorf("%w: missing required field", ErrSchemaMismatch)
	}

	rec := Record{
		Version:          1,
		RemainingSeconds: *wire.RemainingSeconds,
		Phase:            *wire.Phase,
		Mode:             *wire.Mode,
		RunningSince:     wire.RunningSince,
		SavedAt:          wire.SavedAt,
	}
	if wire.Version != nil {
		rec.Version = *wire.Version
	}
	if wire.SelectedCategoryID != nil {
		rec.SelectedCategoryID = *wire.SelectedCategoryID
	}
	if wire.CompletedFocusCount != nil {
		rec.CompletedFocusCount = *wire.CompletedFocusCount
	}

	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks the record against the current schema.
func (r Record) Validate() error {
	if r.Version < 1 || r.Version > constants.SessionSchemaVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrSchemaMismatch, r.Version)
	}
	switch r.Phase {
	case PhaseIdle, PhaseRunning, PhasePaused:
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrSchemaMismatch, r.Phase)
	}
	switch r.Mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrSchemaMismatch, r.Mode)
	}
	if r.RemainingSeconds < 0 {
		return fmt.Errorf("%w: negative remainingSeconds", ErrSchemaMismatch)
	}
	if r.CompletedFocusCount < 0 {
		return fmt.Errorf("%w: negative completedFocusCount", ErrSchemaMismatch)
	}
	return nil
}
