package engine

// The ledger schemas are fixed: categories are never added or removed at
// runtime. Iteration order (and the deterministic settlement sweep) follows
// these slices.

var XPCategories = []string{
	"Admin Work",
	"Design Work",
	"Jiu Jitsu Training",
	"Gym Workout",
	"Italian Studying",
	"Italian Passive listening",
	"Chess - Rated Matches",
	"Chess - Study/ Analysis",
	"Reading",
	"New Skill Learning",
	"Personal Challenge Quest",
	"Recovery",
	"Creative Output",
	"General Life Task",
	"Quest 1",
	"Quest 2",
	"Quest 3",
	"Chess Streak",
	"Italian Streak",
	"Gym Streak",
	"Jiu Jitsu Streak",
	"Eating Healthy",
	"Meet Hydration target",
}

// Non-zero starting values carried over from the original save schema.
var defaultXPValues = map[string]float64{
	"Admin Work":            4.0,
	"Quest 3":               1.0,
	"Eating Healthy":        1.0,
	"Meet Hydration target": 1.0,
}

var DebtCategories = []string{
	"Skip Training",
	"Junk Eating",
	"Drug Use",
	"Blackout Drunk",
	"Reckless Driving",
	"Start Fight",
	"Doomscrolling",
	"Miss Work",
	"Impulsive Spend",
	"Malicious Deceit",
	"Break Oath",
	"All Nighter",
	"Avoid Duty",
	"Ignore Injury",
	"Miss Hydration",
	"Sleep Collapse",
	"Ghost Obligation",
	"Ego Decisions",
	"No Logging",
	"Message Pile",
	"Quest Miss",
	"Oath: Training",
	"Oath: Diet",
	"Oath: Sobriety",
	"Oath: Honesty",
	"Oath: Discipline",
	"Oath: Focus",
	"Oath: Finance",
	"Oath: Sleep",
	"Oath: Presence",
}

const (
	defaultDebtPenalty = 2.0

	// OathPenalty applies to "Break Oath" and every specific "Oath: …"
	// category alike. Both coexist on purpose; adding to one never touches
	// the other, and the possible double penalty is recorded product
	// behavior.
	OathPenalty = 6.0
)

var debtPenalties = map[string]float64{
	"Drug Use":         4.0,
	"Blackout Drunk":   4.0,
	"Reckless Driving": 4.0,
	"Start Fight":      4.0,
	"Malicious Deceit": 4.0,
	"Doomscrolling":    1.0,
	"Miss Hydration":   1.0,
	"No Logging":       1.0,
	"Message Pile":     1.0,
	"Break Oath":       OathPenalty,
	"Oath: Training":   OathPenalty,
	"Oath: Diet":       OathPenalty,
	"Oath: Sobriety":   OathPenalty,
	"Oath: Honesty":    OathPenalty,
	"Oath: Discipline": OathPenalty,
	"Oath: Focus":      OathPenalty,
	"Oath: Finance":    OathPenalty,
	"Oath: Sleep":      OathPenalty,
	"Oath: Presence":   OathPenalty,
}

var (
	xpCategorySet   = toSet(XPCategories)
	debtCategorySet = toSet(DebtCategories)
)

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func IsXPCategory(name string) bool   { return xpCategorySet[name] }
func IsDebtCategory(name string) bool { return debtCategorySet[name] }

// DebtPenalty returns the fixed penalty magnitude for a debt category.
func DebtPenalty(category string) float64 {
	if p, ok := debtPenalties[category]; ok {
		return p
	}
	return defaultDebtPenalty
}

// DefaultXPLedger returns a fresh XP ledger with every category present.
func DefaultXPLedger() Ledger {
	l := make(Ledger, len(XPCategories))
	for _, c := range XPCategories {
		l[c] = defaultXPValues[c]
	}
	return l
}

// DefaultDebtLedger returns a fresh, all-zero debt ledger.
func DefaultDebtLedger() Ledger {
	l := make(Ledger, len(DebtCategories))
	for _, c := range DebtCategories {
		l[c] = 0
	}
	return l
}
