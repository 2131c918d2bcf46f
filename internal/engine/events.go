package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
)

// Activity log event kinds. The log is append-only; read-side rendering
// must tolerate kinds it does not know.
const (
	EventXPAdjusted    = "xp_adjusted"
	EventDebtAdjusted  = "debt_adjusted"
	EventStatAdjusted  = "stat_adjusted"
	EventLevelUp       = "level_up"
	EventTitleUnlocked = "title_unlocked"
	EventQuestsRolled  = "quests_rolled"
	EventQuestDone     = "quest_completed"
	EventLedgerReset   = "ledger_reset"
)

// DescribeEntry renders one log entry as a human-readable line. Unknown
// kinds fall back to a generic "kind: payload" rendering rather than
// failing.
func DescribeEntry(e storage.LogEntry) string {
	p := e.Payload
	switch e.Kind {
	case EventXPAdjusted:
		line := fmt.Sprintf("%s %.1f XP to %q", payloadVerb(p), payloadFloat(p, "applied"), payloadString(p, "category"))
		if paid := payloadFloat(p, "debt_paid"); paid > 0 {
			line += fmt.Sprintf(" (%.1f paid down debt)", paid)
		}
		return line
	case EventDebtAdjusted:
		return fmt.Sprintf("%s %.1f debt to %q", payloadVerb(p), payloadFloat(p, "amount"), payloadString(p, "category"))
	case EventStatAdjusted:
		return fmt.Sprintf("Stat %s/%s %+d → %d", payloadString(p, "group"), payloadString(p, "code"), int(payloadFloat(p, "delta")), int(payloadFloat(p, "value")))
	case EventLevelUp:
		return fmt.Sprintf("LEVEL UP: %d → %d", int(payloadFloat(p, "from")), int(payloadFloat(p, "to")))
	case EventTitleUnlocked:
		return fmt.Sprintf("Title unlocked: %s", payloadString(p, "title"))
	case EventQuestsRolled:
		return fmt.Sprintf("Daily quests rolled for %s", payloadString(p, "date"))
	case EventQuestDone:
		return fmt.Sprintf("Quest %d completed: %s (+%.1f XP)", int(payloadFloat(p, "slot")), payloadString(p, "text"), payloadFloat(p, "bonus"))
	case EventLedgerReset:
		return fmt.Sprintf("Reset %s ledger to defaults", payloadString(p, "ledger"))
	default:
		return fmt.Sprintf("%s: %s", e.Kind, payloadSummary(p))
	}
}

func payloadVerb(p map[string]any) string {
	if payloadString(p, "direction") == string(DirectionSubtract) {
		return "Removed"
	}
	return "Added"
}

func payloadString(p map[string]any, key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

func payloadFloat(p map[string]any, key string) float64 {
	if p == nil {
		return 0
	}
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func payloadSummary(p map[string]any) string {
	if len(p) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, " ")
}
