package engine

import "time"

// RecordActivity advances the streak state machine for one qualifying
// activity on the given day and returns the updated record plus the
// reward earned, if any. It is pure: the input record is not modified,
// and calling it twice with the same day is a no-op the second time
// (nil reward), so a replayed completion never double-pays.
//
// Branches, in order:
//   - same calendar day as LastActivity: unchanged, no reward
//   - no LastActivity at all: streak starts at 1
//   - LastActivity was yesterday: streak continues
//   - older gap with an unspent protection token: forgiven as if
//     consecutive; the token is consumed and pinned to yesterday
//   - anything else, including a today earlier than LastActivity
//     (clock skew, backdated rows): streak resets to 1
func RecordActivity(rec StreakRecord, today time.Time) (StreakRecord, *Reward) {
	day := DateOnly(today)
	yesterday := day.AddDate(0, 0, -1)

	if rec.LastActivity != nil && sameDay(*rec.LastActivity, day) {
		return rec, nil
	}

	out := rec
	switch {
	case rec.LastActivity == nil:
		out.CurrentStreak = 1

	case sameDay(*rec.LastActivity, yesterday):
		out.CurrentStreak++

	case DateOnly(*rec.LastActivity).Before(yesterday) && protectionUsable(rec, yesterday):
		// The token is spent on a single missed day even when the
		// actual gap was wider; the whole gap is forgiven.
		out.CurrentStreak++
		out.ProtectionActive = false
		consumed := yesterday
		out.ProtectionConsumedOn = &consumed

	default:
		out.CurrentStreak = 1
	}

	out.LastActivity = &day
	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}

	r := RewardForStreak(out.CurrentStreak)
	return out, &r
}

func protectionUsable(rec StreakRecord, missedDay time.Time) bool {
	if !rec.ProtectionActive {
		return false
	}
	if rec.ProtectionConsumedOn != nil && sameDay(*rec.ProtectionConsumedOn, missedDay) {
		return false
	}
	return true
}

// IsAtRisk reports whether the streak will break unless activity is
// recorded today: there is a streak to lose and today hasn't counted yet.
func IsAtRisk(rec StreakRecord, today time.Time) bool {
	if rec.CurrentStreak <= 0 {
		return false
	}
	return rec.LastActivity == nil || !sameDay(*rec.LastActivity, today)
}

// ActivateProtection arms the skip-one-day token. It reports false
// without changing the record when a token is already armed.
func ActivateProtection(rec StreakRecord) (StreakRecord, bool) {
	if rec.ProtectionActive {
		return rec, false
	}
	rec.ProtectionActive = true
	return rec, true
}
