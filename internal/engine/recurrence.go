package engine

import (
	"fmt"
	"time"
)

// NextOccurrence computes the due date of the follow-up instance spawned
// when a repeating task is completed. The base is the previous due date
// when one was set, otherwise the current date (a task that never had a
// due date starts recurring from today). Monthly addition clamps the
// day-of-month to the last valid day of the target month, so Jan 31
// rolls to Feb 28 (or 29 in a leap year) instead of spilling into March.
func NextOccurrence(prevDue *time.Time, rule RecurrenceRule, now time.Time) (time.Time, error) {
	base := DateOnly(now)
	if prevDue != nil {
		base = DateOnly(*prevDue)
	}

	switch rule {
	case RecurrenceDaily:
		return base.AddDate(0, 0, 1), nil
	case RecurrenceWeekly:
		return base.AddDate(0, 0, 7), nil
	case RecurrenceMonthly:
		return addMonthClamped(base), nil
	default:
		return time.Time{}, fmt.Errorf("invalid recurrence rule: %q", rule)
	}
}

func addMonthClamped(base time.Time) time.Time {
	y, m, d := base.Date()
	// Day 0 of the month after next is the last day of the next month.
	lastDay := time.Date(y, m+2, 0, 0, 0, 0, 0, base.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+1, d, 0, 0, 0, 0, base.Location())
}
