package storage

import (
	"encoding/json"
	"strconv"
)

// Stored values come back from both backends as loose JSON. Malformed
// entries are dropped here; the loader upstream fills schema defaults for
// anything missing, so a corrupt value never aborts a load.

func decodeNumberMap(raw []byte) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	out := make(map[string]float64, len(loose))
	for k, v := range loose {
		if f, ok := asNumber(v); ok {
			out[k] = f
		}
	}
	return out
}

func decodeAnyMap(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func decodeStats(raw []byte) map[string]map[string]int {
	if len(raw) == 0 {
		return nil
	}
	var loose map[string]map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	out := make(map[string]map[string]int, len(loose))
	for group, codes := range loose {
		g := make(map[string]int, len(codes))
		for code, v := range codes {
			if f, ok := asNumber(v); ok {
				g[code] = int(f)
			}
		}
		out[group] = g
	}
	return out
}

func decodeQuests(raw []byte) *DailyQuests {
	if len(raw) == 0 {
		return nil
	}
	var q DailyQuests
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil
	}
	if q.Date == "" {
		return nil
	}
	return &q
}

func decodeSnapshot(raw []byte) *DerivedSnapshot {
	if len(raw) == 0 {
		return nil
	}
	var s DerivedSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if s.Level == 0 && s.Title == "" {
		return nil
	}
	return &s
}

func encodeJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
