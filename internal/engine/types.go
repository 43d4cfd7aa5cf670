package engine

import (
	"fmt"
	"strings"
	"time"
)

type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = "none"
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
)

func (r RecurrenceRule) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Repeats reports whether a completed task with this rule spawns a
// follow-up occurrence.
func (r RecurrenceRule) Repeats() bool {
	return r.IsValid() && r != RecurrenceNone
}

func ParseRecurrenceRule(input string) (RecurrenceRule, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return RecurrenceNone, nil
	}
	r := RecurrenceRule(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid recurrence rule: %q", input)
	}
	return r, nil
}

// StreakRecord is the per-owner daily-continuity state. It is a plain
// value: RecordActivity takes the current record and returns the next
// one, and the caller persists it.
type StreakRecord struct {
	CurrentStreak int
	LongestStreak int

	// LastActivity is the calendar day of the most recent qualifying
	// activity, nil before the first-ever activity. Only the date part
	// is meaningful; values are normalized with DateOnly.
	LastActivity *time.Time

	// ProtectionActive is a single consumable token that forgives one
	// missed day. ProtectionConsumedOn records which missed day a spent
	// token covered, so the same gap cannot be forgiven twice.
	ProtectionActive     bool
	ProtectionConsumedOn *time.Time
}

// DateOnly truncates t to its calendar date, keeping the location.
// All streak and recurrence arithmetic works on these normalized values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
