package engine

import (
	"fmt"
	"time"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
)

// Three independent pools, one draw per pool per UTC day. Idempotence
// within a day comes from persisting the dated set, not from seeding the
// generator: a manual reroll genuinely rerolls.
var QuestPools = [3][]string{
	{
		"Do 50 push-ups",
		"Walk 8,000 steps",
		"Stretch for 10 minutes",
		"Drill one takedown sequence",
		"Hold a 3-minute plank",
		"Take a cold shower",
	},
	{
		"Solve 5 chess puzzles",
		"Read 20 pages",
		"Review 20 Italian flashcards",
		"Analyze one of your rated games",
		"Write a one-page journal entry",
		"Sketch for 15 minutes",
	},
	{
		"No doomscrolling before noon",
		"Inbox zero by end of day",
		"Log every meal",
		"Lights out by 23:00",
		"Plan tomorrow before bed",
		"Drink 2L of water",
	},
}

const questDateLayout = "2006-01-02"

// QuestDate returns the UTC calendar date a quest set belongs to.
func QuestDate(now time.Time) string {
	return now.UTC().Format(questDateLayout)
}

// QuestsStale reports whether the stored set must be rerolled: missing,
// malformed, or generated for a different UTC day.
func QuestsStale(q *storage.DailyQuests, now time.Time) bool {
	if q == nil {
		return true
	}
	if len(q.Slots) != len(QuestPools) {
		return true
	}
	return q.Date != QuestDate(now)
}

// RollQuests draws one quest per pool. intn must behave like rand.IntN.
func RollQuests(now time.Time, intn func(int) int) *storage.DailyQuests {
	q := &storage.DailyQuests{
		Date:  QuestDate(now),
		Slots: make([]storage.QuestSlot, len(QuestPools)),
	}
	for i, pool := range QuestPools {
		q.Slots[i] = storage.QuestSlot{Text: pool[intn(len(pool))]}
	}
	return q
}

// QuestXPCategory maps a slot index (0-based) to the XP category its
// completion bonus lands in.
func QuestXPCategory(slot int) string {
	return fmt.Sprintf("Quest %d", slot+1)
}
