package engine

import "math"

// DebtBarCap is the fixed scale of the debt display bar.
const DebtBarCap = 100.0

// Derived is the recomputed display state. It is never stored as a source
// of truth; only the headline Level/Title pair is snapshotted to detect
// increases.
//
// Two tracks on purpose: the headline Level/Title come from effective XP
// (debt-discounted), while the progress bars come from raw total XP. Debt
// suppresses the headline but never visually drains the bars.
type Derived struct {
	TotalXP     float64
	TotalDebt   float64
	EffectiveXP float64

	// Headline, from effective XP.
	Level int
	Title string

	// Bar track, from raw total XP.
	RawLevel   int
	XPInLevel  float64 // includes the fractional XP the leveling floor strips
	XPRequired float64
	TitleNext  int

	XPPercent    float64
	TitlePercent float64
	DebtPercent  float64
}

func Derive(xp, debt Ledger) Derived {
	totalXP := xp.Total()
	totalDebt := debt.Total()
	effective := totalXP - totalDebt
	if effective < 0 {
		effective = 0
	}

	level, _, _ := ComputeLevel(effective)
	rawLevel, inLevel, required := ComputeLevel(totalXP)

	frac := totalXP - math.Floor(totalXP)
	display := inLevel + frac

	d := Derived{
		TotalXP:     totalXP,
		TotalDebt:   totalDebt,
		EffectiveXP: effective,
		Level:       level,
		Title:       TitleForLevel(level),
		RawLevel:    rawLevel,
		XPInLevel:   display,
		XPRequired:  required,
		TitleNext:   TitleNextThreshold(rawLevel),
	}
	if d.XPRequired > 0 {
		d.XPPercent = clampPercent(display / d.XPRequired * 100)
	}
	if d.TitleNext > 0 {
		d.TitlePercent = clampPercent(float64(rawLevel) / float64(d.TitleNext) * 100)
	}
	d.DebtPercent = clampPercent(totalDebt / DebtBarCap * 100)
	return d
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
