package engine

// settleEpsilon bounds the floating-point remainder tolerated after the
// proportional pass before the deterministic sweep runs.
const settleEpsilon = 1e-6

// Settle applies an XP gain against the debt ledger: every category with a
// positive balance is paid down proportionally to its share of the total,
// and whatever the gain did not cover comes back as leftover. The leftover,
// not the original gain, is what a caller may add as real progress.
//
// Only the enumerated debt categories are touched; any other key present in
// the map is ignored and passed through untouched. Total debt after
// settlement is max(0, totalDebt-xpGain) and no balance ever goes negative.
func Settle(xpGain float64, debt Ledger) (leftover float64, updated Ledger) {
	updated = debt.Clone()
	if xpGain <= 0 {
		return 0, updated
	}

	var totalDebt float64
	for _, c := range DebtCategories {
		if v := updated[c]; v > 0 {
			totalDebt += v
		}
	}
	if totalDebt <= 0 {
		return xpGain, updated
	}

	pay := xpGain
	if pay > totalDebt {
		pay = totalDebt
	}

	var paid float64
	for _, c := range DebtCategories {
		bal := updated[c]
		if bal <= 0 {
			continue
		}
		cut := bal / totalDebt * pay
		if cut > bal {
			cut = bal
		}
		updated[c] = bal - cut
		paid += cut
	}

	// Rounding can leave a sliver unpaid; sweep it off greedily in the
	// fixed category order.
	if rem := pay - paid; rem > settleEpsilon {
		for _, c := range DebtCategories {
			if rem <= 0 {
				break
			}
			bal := updated[c]
			if bal <= 0 {
				continue
			}
			cut := rem
			if cut > bal {
				cut = bal
			}
			updated[c] = bal - cut
			rem -= cut
		}
	}

	return xpGain - pay, updated
}
