package engine

import "fmt"

// Stat values are clamped to [StatMin, StatMax]; panels render them as
// value/100.
const (
	StatMin = 0
	StatMax = 100
)

const (
	GroupPhysical = "Physical"
	GroupMental   = "Mental"
	GroupSocial   = "Social"
	GroupSkill    = "Skill"
)

var StatGroups = []string{GroupPhysical, GroupMental, GroupSocial, GroupSkill}

var statCodes = map[string][]string{
	GroupPhysical: {"PUSH", "PULL", "SPD", "STM", "DUR", "BAL", "FLX", "RFLX", "POW"},
	GroupMental:   {"LRN", "LOG", "MEM", "STRAT", "FOCUS", "CREAT", "AWARE", "JUDG", "CALM"},
	GroupSocial:   {"SOC", "LEAD", "NEG", "COM", "EMP", "PRES"},
	GroupSkill:    {"CHESS", "ITALIAN", "JIUJITSU"},
}

var defaultStats = map[string]map[string]int{
	GroupPhysical: {"PUSH": 45, "PULL": 62, "SPD": 38, "STM": 58, "DUR": 70, "BAL": 74, "FLX": 38, "RFLX": 50, "POW": 40},
	GroupMental:   {"LRN": 65, "LOG": 55, "MEM": 58, "STRAT": 60, "FOCUS": 54, "CREAT": 72, "AWARE": 50, "JUDG": 53, "CALM": 42},
	GroupSocial:   {"SOC": 46, "LEAD": 48, "NEG": 52, "COM": 50, "EMP": 32, "PRES": 47},
	GroupSkill:    {"CHESS": 68, "ITALIAN": 12, "JIUJITSU": 22},
}

// StatCodes returns the display order for one group, or nil for an unknown
// group.
func StatCodes(group string) []string {
	return statCodes[group]
}

func IsStatGroup(group string) bool {
	_, ok := statCodes[group]
	return ok
}

func DefaultStats() map[string]map[string]int {
	out := make(map[string]map[string]int, len(defaultStats))
	for g, codes := range defaultStats {
		inner := make(map[string]int, len(codes))
		for c, v := range codes {
			inner[c] = v
		}
		out[g] = inner
	}
	return out
}

// CoerceStats aligns loaded stats to the schema: known codes are kept and
// clamped, unknown groups/codes dropped, missing ones defaulted.
func CoerceStats(loaded map[string]map[string]int) map[string]map[string]int {
	out := DefaultStats()
	if loaded == nil {
		return out
	}
	for g, codes := range out {
		src, ok := loaded[g]
		if !ok {
			continue
		}
		for c := range codes {
			if v, ok := src[c]; ok {
				codes[c] = clampStat(v)
			}
		}
	}
	return out
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// AdjustStat applies a clamped delta to one stat and returns the new value.
func AdjustStat(stats map[string]map[string]int, group, code string, delta int) (int, error) {
	codes, ok := stats[group]
	if !ok {
		return 0, fmt.Errorf("unknown stat group: %q", group)
	}
	cur, ok := codes[code]
	if !ok {
		return 0, fmt.Errorf("unknown stat %q in group %q", code, group)
	}
	next := clampStat(cur + delta)
	codes[code] = next
	return next, nil
}
