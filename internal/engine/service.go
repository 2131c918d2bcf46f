package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
)

// State is the single session-wide state container. There is exactly one
// logical writer per save key; no locking is needed.
type State struct {
	XP      Ledger
	Debt    Ledger
	Stats   map[string]map[string]int
	Quests  *storage.DailyQuests
	Derived *storage.DerivedSnapshot
}

func DefaultState() *State {
	return &State{
		XP:    DefaultXPLedger(),
		Debt:  DefaultDebtLedger(),
		Stats: DefaultStats(),
	}
}

type Direction string

const (
	DirectionAdd      Direction = "add"
	DirectionSubtract Direction = "subtract"
)

func ParseDirection(input string) (Direction, error) {
	switch input {
	case "add", "plus":
		return DirectionAdd, nil
	case "sub", "subtract", "minus":
		return DirectionSubtract, nil
	default:
		return "", fmt.Errorf("invalid direction: %q (want add|sub)", input)
	}
}

// Service owns the state and orchestrates apply operations: mutate in
// memory, then save the wholesale snapshot together with the activity
// entries it produced in one store call. Persistence is best-effort; a
// failed store call never rolls back the in-memory mutation and is
// reported through the result's SyncErr.
type Service struct {
	store   storage.Store // nil in store-less mode
	saveKey string
	state   *State

	now  func() time.Time
	intn func(int) int
}

func NewService(store storage.Store, saveKey string) *Service {
	if saveKey == "" {
		saveKey = storage.DefaultSaveKey
	}
	return &Service{
		store:   store,
		saveKey: saveKey,
		state:   DefaultState(),
		now:     time.Now,
		intn:    rand.Intn,
	}
}

func (s *Service) State() *State   { return s.state }
func (s *Service) StoreLess() bool { return s.store == nil }

// Load pulls the saved snapshot, coercing every stored value to the fixed
// schema. A missing row falls back to defaults and best-effort seeds the
// store. The returned error is a non-fatal warning: the state is always
// usable afterwards.
func (s *Service) Load(ctx context.Context) error {
	s.state = DefaultState()
	if s.store == nil {
		return nil
	}

	ps, err := s.store.LoadState(ctx, s.saveKey)
	if errors.Is(err, storage.ErrNotFound) {
		if err := s.save(ctx, nil); err != nil {
			return fmt.Errorf("seed save: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load save: %w", err)
	}

	s.state = &State{
		XP:      CoerceLedger(ps.XPValues, DefaultXPLedger()),
		Debt:    CoerceLedger(ps.DebtValues, DefaultDebtLedger()),
		Stats:   CoerceStats(ps.Stats),
		Quests:  ps.DailyQuests,
		Derived: ps.Derived,
	}
	return nil
}

type AdjustResult struct {
	Category  string
	Direction Direction
	Amount    float64
	Applied   float64 // leftover added (Add through settlement) or amount actually removed (Subtract)
	DebtPaid  float64

	Derived       Derived
	LevelUp       bool
	TitleUnlocked bool
	SyncErr       error
}

// AdjustXP applies an XP gain or removal to one category. Gains run
// through debt settlement first; only the leftover lands in the category.
// Removals floor at zero and never touch debt.
func (s *Service) AdjustXP(ctx context.Context, category string, dir Direction, amount float64) (*AdjustResult, error) {
	if !IsXPCategory(category) {
		return nil, UnknownCategoryError{Ledger: "xp", Category: category}
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %.2f", amount)
	}

	res := &AdjustResult{Category: category, Direction: dir, Amount: amount}
	switch dir {
	case DirectionAdd:
		leftover, updated := Settle(amount, s.state.Debt)
		s.state.Debt = updated
		s.state.XP[category] += leftover
		res.Applied = leftover
		res.DebtPaid = amount - leftover
	case DirectionSubtract:
		cur := s.state.XP[category]
		applied := amount
		if applied > cur {
			applied = cur
		}
		s.state.XP[category] = cur - applied
		res.Applied = applied
	default:
		return nil, fmt.Errorf("invalid direction: %q", dir)
	}

	payload := map[string]any{
		"category":  category,
		"direction": string(dir),
		"amount":    amount,
		"applied":   res.Applied,
	}
	if res.DebtPaid > 0 {
		payload["debt_paid"] = res.DebtPaid
	}
	res.Derived, res.LevelUp, res.TitleUnlocked, res.SyncErr = s.finish(ctx, EventXPAdjusted, payload)
	return res, nil
}

// AdjustDebt adds or removes the category's fixed penalty. Debt adjustments
// never touch the XP ledger, but removing debt can raise the headline level.
func (s *Service) AdjustDebt(ctx context.Context, category string, dir Direction) (*AdjustResult, error) {
	if !IsDebtCategory(category) {
		return nil, UnknownCategoryError{Ledger: "debt", Category: category}
	}

	penalty := DebtPenalty(category)
	res := &AdjustResult{Category: category, Direction: dir, Amount: penalty}
	switch dir {
	case DirectionAdd:
		s.state.Debt[category] += penalty
		res.Applied = penalty
	case DirectionSubtract:
		cur := s.state.Debt[category]
		applied := penalty
		if applied > cur {
			applied = cur
		}
		s.state.Debt[category] = cur - applied
		res.Applied = applied
	default:
		return nil, fmt.Errorf("invalid direction: %q", dir)
	}

	payload := map[string]any{
		"category":  category,
		"direction": string(dir),
		"amount":    res.Applied,
	}
	res.Derived, res.LevelUp, res.TitleUnlocked, res.SyncErr = s.finish(ctx, EventDebtAdjusted, payload)
	return res, nil
}

type StatResult struct {
	Group   string
	Code    string
	Delta   int
	Value   int
	SyncErr error
}

func (s *Service) AdjustStat(ctx context.Context, group, code string, delta int) (*StatResult, error) {
	value, err := AdjustStat(s.state.Stats, group, code, delta)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"group": group,
		"code":  code,
		"delta": delta,
		"value": value,
	}
	_, _, _, syncErr := s.finish(ctx, EventStatAdjusted, payload)
	return &StatResult{Group: group, Code: code, Delta: delta, Value: value, SyncErr: syncErr}, nil
}

type QuestsResult struct {
	Quests  *storage.DailyQuests
	Rolled  bool
	SyncErr error
}

// EnsureTodaysQuests returns the quest set for today, rolling a fresh one
// only when the stored set is stale. Repeated reads within the same UTC day
// return identical selections.
func (s *Service) EnsureTodaysQuests(ctx context.Context) (*QuestsResult, error) {
	if !QuestsStale(s.state.Quests, s.now()) {
		return &QuestsResult{Quests: s.state.Quests}, nil
	}
	return s.rollQuests(ctx)
}

// RerollQuests forces a fresh draw for today, overwriting the current set.
func (s *Service) RerollQuests(ctx context.Context) (*QuestsResult, error) {
	return s.rollQuests(ctx)
}

func (s *Service) rollQuests(ctx context.Context) (*QuestsResult, error) {
	q := RollQuests(s.now(), s.intn)
	s.state.Quests = q

	texts := make([]string, len(q.Slots))
	for i, sl := range q.Slots {
		texts[i] = sl.Text
	}
	payload := map[string]any{"date": q.Date, "quests": texts}

	entries := []storage.LogEntry{s.logEntry(EventQuestsRolled, payload, nil)}
	return &QuestsResult{Quests: q, Rolled: true, SyncErr: s.save(ctx, entries)}, nil
}

type QuestDoneResult struct {
	Slot     int
	Text     string
	Bonus    float64
	Applied  float64
	DebtPaid float64

	Derived       Derived
	LevelUp       bool
	TitleUnlocked bool
	SyncErr       error
}

// CompleteQuest marks a daily slot done and awards its flat bonus into the
// matching Quest category, through settlement like any other gain. A slot
// completes at most once per day.
func (s *Service) CompleteQuest(ctx context.Context, slot int, bonus float64) (*QuestDoneResult, error) {
	if slot < 0 || slot >= len(QuestPools) {
		return nil, fmt.Errorf("quest slot out of range: %d", slot+1)
	}
	if QuestsStale(s.state.Quests, s.now()) {
		if _, err := s.rollQuests(ctx); err != nil {
			return nil, err
		}
	}

	sl := &s.state.Quests.Slots[slot]
	if sl.Done {
		return nil, fmt.Errorf("quest %d already completed today", slot+1)
	}
	sl.Done = true

	res := &QuestDoneResult{Slot: slot, Text: sl.Text, Bonus: bonus}
	if bonus > 0 {
		leftover, updated := Settle(bonus, s.state.Debt)
		s.state.Debt = updated
		s.state.XP[QuestXPCategory(slot)] += leftover
		res.Applied = leftover
		res.DebtPaid = bonus - leftover
	}

	payload := map[string]any{
		"slot":    slot + 1,
		"text":    sl.Text,
		"bonus":   bonus,
		"applied": res.Applied,
	}
	res.Derived, res.LevelUp, res.TitleUnlocked, res.SyncErr = s.finish(ctx, EventQuestDone, payload)
	return res, nil
}

type ResetResult struct {
	Ledger  string
	SyncErr error
}

// ResetXP restores the XP ledger to its defaults. The reset event is a
// snapshot boundary in the log, not an edit of prior entries.
func (s *Service) ResetXP(ctx context.Context) (*ResetResult, error) {
	s.state.XP = DefaultXPLedger()
	return s.reset(ctx, "xp")
}

func (s *Service) ResetDebt(ctx context.Context) (*ResetResult, error) {
	s.state.Debt = DefaultDebtLedger()
	return s.reset(ctx, "debt")
}

func (s *Service) reset(ctx context.Context, ledger string) (*ResetResult, error) {
	_, _, _, syncErr := s.finish(ctx, EventLedgerReset, map[string]any{"ledger": ledger})
	return &ResetResult{Ledger: ledger, SyncErr: syncErr}, nil
}

// History returns recent activity entries, most recent first where the
// store supports ordering.
func (s *Service) History(ctx context.Context, limit int) ([]storage.LogEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.LoadLogEntries(ctx, s.saveKey, limit)
}

// finish builds the primary event, adds level-up/title-unlock entries when
// the headline derived state increased past the recorded snapshot, and
// saves the wholesale state with all of them in one store call. A failed
// save is non-fatal.
func (s *Service) finish(ctx context.Context, kind string, payload map[string]any) (Derived, bool, bool, error) {
	d := Derive(s.state.XP, s.state.Debt)
	snap := &storage.DerivedSnapshot{Level: d.Level, Title: d.Title}

	entries := []storage.LogEntry{s.logEntry(kind, payload, snap)}

	var levelUp, titleUnlocked bool
	if prev := s.state.Derived; prev != nil {
		if d.Level > prev.Level {
			levelUp = true
			entries = append(entries, s.logEntry(EventLevelUp, map[string]any{"from": prev.Level, "to": d.Level}, snap))
		}
		if TitleRank(d.Title) > TitleRank(prev.Title) {
			titleUnlocked = true
			entries = append(entries, s.logEntry(EventTitleUnlocked, map[string]any{"title": d.Title, "level": d.Level}, snap))
		}
	}
	s.state.Derived = snap

	return d, levelUp, titleUnlocked, s.save(ctx, entries)
}

func (s *Service) logEntry(kind string, payload map[string]any, snap *storage.DerivedSnapshot) storage.LogEntry {
	return storage.LogEntry{
		ID:        uuid.NewString(),
		SaveKey:   s.saveKey,
		Kind:      kind,
		Payload:   payload,
		Snapshot:  snap,
		CreatedAt: s.now().UTC(),
	}
}

func (s *Service) save(ctx context.Context, entries []storage.LogEntry) error {
	if s.store == nil {
		return nil
	}
	ps := &storage.PlayerState{
		SaveKey:     s.saveKey,
		XPValues:    map[string]float64(s.state.XP.Clone()),
		DebtValues:  map[string]float64(s.state.Debt.Clone()),
		Stats:       s.state.Stats,
		DailyQuests: s.state.Quests,
		Derived:     s.state.Derived,
	}
	if err := s.store.Save(ctx, ps, entries); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
