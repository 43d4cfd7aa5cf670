package engine

// Reward is what a single day of streak activity pays out.
type Reward struct {
	Coins   int
	XP      int
	Message string
}

// Milestone pairs a streak length with its enhanced reward.
type Milestone struct {
	Days   int
	Reward Reward
}

// milestones are the named streak tiers, in precedence order. The
// numbers are behavioral, not tunable per install: status output,
// upcoming-milestone hints and the weekly fallback all assume them.
var milestones = []Milestone{
	{Days: 7, Reward: Reward{Coins: 50, XP: 100, Message: "1 Week streak! Your companion is thrilled."}},
	{Days: 14, Reward: Reward{Coins: 100, XP: 200, Message: "2 Week streak! Dedication looks good on you."}},
	{Days: 30, Reward: Reward{Coins: 250, XP: 500, Message: "1 Month streak! A full month, every single day."}},
	{Days: 60, Reward: Reward{Coins: 500, XP: 1000, Message: "2 Month streak! This is a way of life now."}},
	{Days: 100, Reward: Reward{Coins: 1000, XP: 2000, Message: "100 Day streak! Triple digits!"}},
	{Days: 365, Reward: Reward{Coins: 5000, XP: 10000, Message: "1 Year streak! A legend in the making."}},
}

// RewardForStreak returns the payout for reaching the given streak
// length. Named milestones win; any other multiple of seven pays the
// weekly bonus formula; everything else pays the daily formula.
// Callers always pass length >= 1 (RecordActivity never produces less).
func RewardForStreak(length int) Reward {
	for _, m := range milestones {
		if length == m.Days {
			return m.Reward
		}
	}
	if length%7 == 0 {
		weeks := length / 7
		return Reward{
			Coins:   25 + 5*weeks,
			XP:      50 + 10*weeks,
			Message: "Weekly bonus! Another seven days in the books.",
		}
	}
	return Reward{
		Coins:   5 + length/10,
		XP:      10 + length/5,
		Message: "Daily check-in complete.",
	}
}

// UpcomingMilestones returns the next count named milestones strictly
// above the current streak, in ascending order.
func UpcomingMilestones(currentStreak int, count int) []Milestone {
	if count <= 0 {
		return nil
	}
	var out []Milestone
	for _, m := range milestones {
		if m.Days > currentStreak {
			out = append(out, m)
			if len(out) == count {
				break
			}
		}
	}
	return out
}
