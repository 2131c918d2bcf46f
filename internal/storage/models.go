package storage

import "time"

// DefaultSaveKey identifies the single local player row.
const DefaultSaveKey = "main_user"

// PlayerState is the wholesale persisted snapshot for one save key.
// Ledgers, stats, quests and the last derived snapshot are first-class
// fields; there are no reserved meta keys inside the ledger maps.
type PlayerState struct {
	SaveKey     string
	XPValues    map[string]float64
	DebtValues  map[string]float64
	Stats       map[string]map[string]int
	DailyQuests *DailyQuests
	Derived     *DerivedSnapshot
	UpdatedAt   time.Time
}

// DailyQuests is the quest set generated for one UTC calendar day.
type DailyQuests struct {
	Date  string      `json:"date"` // YYYY-MM-DD, UTC
	Slots []QuestSlot `json:"slots"`
}

type QuestSlot struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DerivedSnapshot records the last headline level/title shown to the user,
// used to detect level-up and title-unlock transitions across sessions.
type DerivedSnapshot struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// LogEntry is one immutable activity-log record. Entries are append-only
// and never mutated or deleted.
type LogEntry struct {
	ID        string
	SaveKey   string
	Kind      string
	Payload   map[string]any
	Snapshot  *DerivedSnapshot
	CreatedAt time.Time
}
