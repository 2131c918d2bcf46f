package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteLoadStateNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.LoadState(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestSQLiteStateRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &PlayerState{
		SaveKey:    DefaultSaveKey,
		XPValues:   map[string]float64{"Reading": 12.5, "Admin Work": 4},
		DebtValues: map[string]float64{"Skip Training": 2},
		Stats:      map[string]map[string]int{"Physical": {"PUSH": 45}},
		DailyQuests: &DailyQuests{
			Date:  "2026-03-02",
			Slots: []QuestSlot{{Text: "Read 20 pages", Done: true}, {Text: "Walk"}, {Text: "Plan"}},
		},
		Derived: &DerivedSnapshot{Level: 3, Title: "Novice"},
	}
	if err := store.Save(ctx, in, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.LoadState(ctx, DefaultSaveKey)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.XPValues["Reading"] != 12.5 {
		t.Fatalf("Reading=%v, want 12.5", out.XPValues["Reading"])
	}
	if out.DebtValues["Skip Training"] != 2 {
		t.Fatalf("Skip Training=%v, want 2", out.DebtValues["Skip Training"])
	}
	if out.Stats["Physical"]["PUSH"] != 45 {
		t.Fatalf("PUSH=%d, want 45", out.Stats["Physical"]["PUSH"])
	}
	if out.DailyQuests == nil || out.DailyQuests.Date != "2026-03-02" {
		t.Fatalf("quests=%+v, want date 2026-03-02", out.DailyQuests)
	}
	if !out.DailyQuests.Slots[0].Done || out.DailyQuests.Slots[1].Done {
		t.Fatalf("slot done flags lost: %+v", out.DailyQuests.Slots)
	}
	if out.Derived == nil || out.Derived.Level != 3 || out.Derived.Title != "Novice" {
		t.Fatalf("derived=%+v, want level 3 Novice", out.Derived)
	}
}

func TestSQLiteSaveUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &PlayerState{SaveKey: "k", XPValues: map[string]float64{"Reading": 1}, DebtValues: map[string]float64{}}
	if err := store.Save(ctx, first, nil); err != nil {
		t.Fatalf("save #1: %v", err)
	}
	second := &PlayerState{SaveKey: "k", XPValues: map[string]float64{"Reading": 9}, DebtValues: map[string]float64{}}
	if err := store.Save(ctx, second, nil); err != nil {
		t.Fatalf("save #2: %v", err)
	}

	out, err := store.LoadState(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.XPValues["Reading"] != 9 {
		t.Fatalf("Reading=%v, want overwritten 9", out.XPValues["Reading"])
	}
}

func TestSQLiteStateWithoutOptionalColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &PlayerState{
		SaveKey:    "bare",
		XPValues:   map[string]float64{"Reading": 1},
		DebtValues: map[string]float64{},
	}
	if err := store.Save(ctx, in, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := store.LoadState(ctx, "bare")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DailyQuests != nil {
		t.Fatalf("quests=%+v, want nil", out.DailyQuests)
	}
	if out.Derived != nil {
		t.Fatalf("derived=%+v, want nil", out.Derived)
	}
	if out.Stats == nil || len(out.Stats) != 0 {
		t.Fatalf("stats=%+v, want empty map", out.Stats)
	}
}

func TestSQLiteToleratesMalformedColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Simulate a hand-edited or corrupted row.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO player_state (save_key, xp_values, debt_values, stats, daily_quests, derived, updated_at)
		VALUES ('broken', 'not json', '{"Skip Training": "3.5", "Junk Eating": true}', '[]', '{}', 'null', ?)
	`, time.Now().UTC())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	out, err := store.LoadState(ctx, "broken")
	if err != nil {
		t.Fatalf("load must not fail on malformed json: %v", err)
	}
	if len(out.XPValues) != 0 {
		t.Fatalf("xp=%v, want empty from unparsable column", out.XPValues)
	}
	// Numeric strings coerce, other junk drops.
	if out.DebtValues["Skip Training"] != 3.5 {
		t.Fatalf("Skip Training=%v, want coerced 3.5", out.DebtValues["Skip Training"])
	}
	if _, ok := out.DebtValues["Junk Eating"]; ok {
		t.Fatalf("boolean value should have been dropped")
	}
	if out.DailyQuests != nil || out.Derived != nil {
		t.Fatalf("empty/null optional columns should decode to nil")
	}
}

func TestSQLiteLogAppendAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := &PlayerState{SaveKey: DefaultSaveKey, XPValues: map[string]float64{}, DebtValues: map[string]float64{}}
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	var entries []LogEntry
	for i, kind := range []string{"first", "second", "third"} {
		entries = append(entries, LogEntry{
			ID:        kind + "-id",
			SaveKey:   DefaultSaveKey,
			Kind:      kind,
			Payload:   map[string]any{"n": i},
			Snapshot:  &DerivedSnapshot{Level: i + 1, Title: "Novice"},
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	if err := store.Save(ctx, state, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := store.LoadLogEntries(ctx, DefaultSaveKey, 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want limit 2", len(entries))
	}
	if entries[0].Kind != "third" || entries[1].Kind != "second" {
		t.Fatalf("order=[%s %s], want most recent first", entries[0].Kind, entries[1].Kind)
	}
	if entries[0].Snapshot == nil || entries[0].Snapshot.Level != 3 {
		t.Fatalf("snapshot=%+v, want level 3", entries[0].Snapshot)
	}
	if v, ok := entries[0].Payload["n"]; !ok || v != float64(2) {
		t.Fatalf("payload n=%v, want 2 (json numbers decode as float64)", v)
	}

	// Other save keys see nothing.
	other, err := store.LoadLogEntries(ctx, "someone_else", 10)
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("entries leaked across save keys: %d", len(other))
	}
}

func TestSQLiteSaveRollsBackTogether(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := &PlayerState{SaveKey: "k", XPValues: map[string]float64{"Reading": 1}, DebtValues: map[string]float64{}}
	if err := store.Save(ctx, seed, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A duplicate entry id fails the batch; the state upsert in the same
	// transaction must roll back with it.
	next := &PlayerState{SaveKey: "k", XPValues: map[string]float64{"Reading": 9}, DebtValues: map[string]float64{}}
	dup := []LogEntry{
		{ID: "same", SaveKey: "k", Kind: "xp_adjusted", CreatedAt: time.Now().UTC()},
		{ID: "same", SaveKey: "k", Kind: "level_up", CreatedAt: time.Now().UTC()},
	}
	if err := store.Save(ctx, next, dup); err == nil {
		t.Fatalf("expected constraint error from duplicate entry id")
	}

	out, err := store.LoadState(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.XPValues["Reading"] != 1 {
		t.Fatalf("Reading=%v, want 1 from before the failed save", out.XPValues["Reading"])
	}
	entries, err := store.LoadLogEntries(ctx, "k", 10)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%d, want none after rollback", len(entries))
	}
}
