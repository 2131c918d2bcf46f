package engine

// Ledger maps a category name to a non-negative amount. The key set is
// fixed by the schema in categories.go.
type Ledger map[string]float64

func (l Ledger) Total() float64 {
	var sum float64
	for _, v := range l {
		sum += v
	}
	return sum
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// CoerceLedger aligns loaded values to the schema the defaults describe:
// every known category is kept (falling back to its default when missing or
// negative) and every unknown key is dropped. It never fails; malformed
// input degrades to defaults.
func CoerceLedger(loaded map[string]float64, defaults Ledger) Ledger {
	out := make(Ledger, len(defaults))
	for k, dv := range defaults {
		out[k] = dv
		if loaded == nil {
			continue
		}
		if v, ok := loaded[k]; ok && v >= 0 {
			out[k] = v
		}
	}
	return out
}
