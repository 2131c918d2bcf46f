package engine

import "testing"

func TestDeriveDualTrack(t *testing.T) {
	xp := DefaultXPLedger()
	for k := range xp {
		xp[k] = 0
	}
	xp["Reading"] = 30

	debt := DefaultDebtLedger()
	debt["Skip Training"] = 25

	d := Derive(xp, debt)

	if d.TotalXP != 30 || d.TotalDebt != 25 || d.EffectiveXP != 5 {
		t.Fatalf("totals=(%v,%v,%v), want (30,25,5)", d.TotalXP, d.TotalDebt, d.EffectiveXP)
	}
	// Headline follows effective XP.
	if d.Level != 1 || d.Title != "Novice" {
		t.Fatalf("headline=(%d,%q), want (1,Novice)", d.Level, d.Title)
	}
	// Bars follow raw XP: debt never drains them.
	if d.RawLevel != 3 {
		t.Fatalf("raw level=%d, want 3", d.RawLevel)
	}
	if d.XPInLevel != 0 || d.XPRequired != 30 {
		t.Fatalf("bar track=(%v,%v), want (0,30)", d.XPInLevel, d.XPRequired)
	}
	if d.DebtPercent != 25 {
		t.Fatalf("debt percent=%v, want 25", d.DebtPercent)
	}
}

func TestDeriveEffectiveFloorsAtZero(t *testing.T) {
	xp := DefaultXPLedger()
	for k := range xp {
		xp[k] = 0
	}
	xp["Reading"] = 5

	debt := DefaultDebtLedger()
	debt["Miss Work"] = 50

	d := Derive(xp, debt)
	if d.EffectiveXP != 0 {
		t.Fatalf("effective=%v, want 0", d.EffectiveXP)
	}
	if d.Level != 1 {
		t.Fatalf("level=%d, want floor at 1", d.Level)
	}
}

func TestDeriveFractionalXPShowsOnBar(t *testing.T) {
	xp := DefaultXPLedger()
	for k := range xp {
		xp[k] = 0
	}
	xp["Reading"] = 12.5

	d := Derive(xp, DefaultDebtLedger())
	if d.RawLevel != 2 {
		t.Fatalf("raw level=%d, want 2", d.RawLevel)
	}
	if d.XPInLevel != 2.5 {
		t.Fatalf("in-level display=%v, want 2.5", d.XPInLevel)
	}
}

func TestDeriveDebtBarCaps(t *testing.T) {
	xp := DefaultXPLedger()
	debt := DefaultDebtLedger()
	debt["Miss Work"] = 500

	d := Derive(xp, debt)
	if d.DebtPercent != 100 {
		t.Fatalf("debt percent=%v, want cap at 100", d.DebtPercent)
	}
}
