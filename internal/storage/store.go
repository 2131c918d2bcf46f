package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by LoadState when no row exists for the save key.
var ErrNotFound = errors.New("player state not found")

// Store is the key-value persistence collaborator. Implementations are
// best-effort: callers treat every failure as non-fatal and keep operating
// on in-memory state.
//
// Save persists the wholesale snapshot together with the activity entries
// produced by the same apply operation; backends keep the pair as close to
// atomic as they can. LoadLogEntries returns entries most-recent-first
// where the backend can order them; callers must not depend on ordering
// for correctness.
type Store interface {
	LoadState(ctx context.Context, saveKey string) (*PlayerState, error)
	Save(ctx context.Context, state *PlayerState, entries []LogEntry) error
	LoadLogEntries(ctx context.Context, saveKey string, limit int) ([]LogEntry, error)
}
