package storage

import (
	"context"
	"time"
)

// MemoryStore keeps state for a single process lifetime. It is the test
// stand-in for the Store collaborator and an ephemeral backend for callers
// that want a working activity log without durability.
type MemoryStore struct {
	states  map[string]*PlayerState
	entries map[string][]LogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:  map[string]*PlayerState{},
		entries: map[string][]LogEntry{},
	}
}

func (m *MemoryStore) LoadState(_ context.Context, saveKey string) (*PlayerState, error) {
	st, ok := m.states[saveKey]
	if !ok {
		return nil, ErrNotFound
	}
	cp := clonePlayerState(st)
	return cp, nil
}

func (m *MemoryStore) Save(_ context.Context, state *PlayerState, entries []LogEntry) error {
	cp := clonePlayerState(state)
	cp.UpdatedAt = time.Now().UTC()
	m.states[state.SaveKey] = cp
	for _, entry := range entries {
		m.entries[entry.SaveKey] = append(m.entries[entry.SaveKey], entry)
	}
	return nil
}

func (m *MemoryStore) LoadLogEntries(_ context.Context, saveKey string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	all := m.entries[saveKey]
	var out []LogEntry
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func clonePlayerState(st *PlayerState) *PlayerState {
	cp := *st
	cp.XPValues = cloneFloatMap(st.XPValues)
	cp.DebtValues = cloneFloatMap(st.DebtValues)
	if st.Stats != nil {
		cp.Stats = make(map[string]map[string]int, len(st.Stats))
		for g, codes := range st.Stats {
			inner := make(map[string]int, len(codes))
			for c, v := range codes {
				inner[c] = v
			}
			cp.Stats[g] = inner
		}
	}
	if st.DailyQuests != nil {
		q := *st.DailyQuests
		q.Slots = append([]QuestSlot(nil), st.DailyQuests.Slots...)
		cp.DailyQuests = &q
	}
	if st.Derived != nil {
		d := *st.Derived
		cp.Derived = &d
	}
	return &cp
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
