package engine

import "math"

// Leveling curve: a companion sits at level L once it has banked
// 500 * L^1.5 total XP. Streak rewards feed XPTotal; the level is always
// derived from it, never stored authoritatively.
const XPRequiredCoef = 500.0

// XPRequiredForLevel returns the total XP a companion must have banked
// to reach the given level. Level 0 needs nothing.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	// Round up so a threshold is never reachable one XP early.
	return int(math.Ceil(XPRequiredCoef * math.Pow(float64(level), 1.5)))
}

// LevelForTotalXP inverts the curve: the highest level whose threshold
// the banked XP meets.
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}

	// Grow an upper bound first, then binary search between the bounds.
	low, high := 0, 1
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}
	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}
