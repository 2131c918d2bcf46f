package engine

import "math"

// MaxLevel caps the leveling loop; overflow XP past it is retained but
// never converts into further levels.
const MaxLevel = 100

// LevelCost returns the XP required to advance from the given level to the
// next one.
func LevelCost(level int) float64 {
	return float64(level) * 10
}

// ComputeLevel converts total XP into (level, XP into the current level,
// XP required to leave it). The input is floored once at entry; fractional
// XP never contributes to level advancement, only to in-level display.
func ComputeLevel(totalXP float64) (level int, xpInLevel float64, xpRequired float64) {
	remaining := math.Floor(totalXP)
	if remaining < 0 {
		remaining = 0
	}

	level = 1
	for level < MaxLevel {
		req := LevelCost(level)
		if remaining < req {
			break
		}
		remaining -= req
		level++
	}
	return level, remaining, LevelCost(level)
}

type TitleBand struct {
	Name string
	Lo   int
	Hi   int
}

// TitleBands covers levels 1–100 in twenty contiguous five-level bands.
var TitleBands = []TitleBand{
	{"Novice", 1, 5},
	{"Trainee", 6, 10},
	{"Adept", 11, 15},
	{"Knight", 16, 20},
	{"Champion", 21, 25},
	{"Elite", 26, 30},
	{"Legend", 31, 35},
	{"Mythic", 36, 40},
	{"Master", 41, 45},
	{"Grandmaster", 46, 50},
	{"Ascendant", 51, 55},
	{"Exemplar", 56, 60},
	{"Paragon", 61, 65},
	{"Titan", 66, 70},
	{"Sovereign", 71, 75},
	{"Immortal-Seed", 76, 80},
	{"Immortal", 81, 85},
	{"Eternal-Seed", 86, 90},
	{"Eternal", 91, 95},
	{"World-Class", 96, 100},
}

// TitleUnranked is the defensive sentinel for a level outside [1, MaxLevel].
const TitleUnranked = "Unranked"

func TitleForLevel(level int) string {
	for _, b := range TitleBands {
		if level >= b.Lo && level <= b.Hi {
			return b.Name
		}
	}
	return TitleUnranked
}

// TitleRank returns the band index for a title, or -1 for an unknown one.
// Higher rank means a later band.
func TitleRank(title string) int {
	for i, b := range TitleBands {
		if b.Name == title {
			return i
		}
	}
	return -1
}

// TitleNextThreshold returns the level that starts the next band, capped at
// the final band's top. It feeds the title progress bar only.
func TitleNextThreshold(level int) int {
	top := TitleBands[len(TitleBands)-1].Hi
	for _, b := range TitleBands {
		if level >= b.Lo && level <= b.Hi {
			next := b.Hi + 1
			if next > top {
				return b.Hi
			}
			return next
		}
	}
	return level
}
