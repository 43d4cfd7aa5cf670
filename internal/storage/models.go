package storage

import "time"

// Profile is the owner's account row: wallet plus streak state. Streak
// fields are written only through the engine's RecordActivity result.
type Profile struct {
	Key   string
	Coins int

	CurrentStreak        int
	LongestStreak        int
	LastActivityDate     *time.Time
	ProtectionActive     bool
	ProtectionConsumedOn *time.Time
}

type Companion struct {
	Key     string
	Species string
	XPTotal int
	Level   int
}

type Task struct {
	ID             int64
	Title          string
	Status         string
	CreatedAt      time.Time
	CompletedAt    *time.Time
	DueDate        *time.Time
	RecurrenceRule string
}

type Checkin struct {
	ID     int64
	Day    time.Time
	Streak int
	Coins  int
	XP     int
}
