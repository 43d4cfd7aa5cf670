package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"denling/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func setServiceDay(svc *Service, d time.Time) {
	svc.now = func() time.Time { return d }
}

func TestCheckInThreeConsecutiveDays(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	start := day(2024, time.March, 10)
	for i := 0; i < 3; i++ {
		setServiceDay(svc, start.AddDate(0, 0, i))
		res, err := svc.CheckIn(ctx)
		if err != nil {
			t.Fatalf("check-in day %d: %v", i, err)
		}
		if res.AlreadyCheckedIn {
			t.Fatalf("day %d reported as replay", i)
		}
		if res.Streak != i+1 {
			t.Fatalf("day %d: streak = %d, want %d", i, res.Streak, i+1)
		}
		want := RewardForStreak(i + 1)
		if res.Reward == nil || *res.Reward != want {
			t.Fatalf("day %d: reward = %v, want %v", i, res.Reward, want)
		}
	}

	// Same-day replay pays nothing and changes nothing.
	res, err := svc.CheckIn(ctx)
	if err != nil {
		t.Fatalf("replay check-in: %v", err)
	}
	if !res.AlreadyCheckedIn || res.Reward != nil {
		t.Fatalf("replay = %+v, want AlreadyCheckedIn with no reward", res)
	}

	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	wantCoins := RewardForStreak(1).Coins + RewardForStreak(2).Coins + RewardForStreak(3).Coins
	if p.Coins != wantCoins {
		t.Fatalf("coins = %d, want %d", p.Coins, wantCoins)
	}
	if p.CurrentStreak != 3 || p.LongestStreak != 3 {
		t.Fatalf("persisted streak = %d/%d, want 3/3", p.CurrentStreak, p.LongestStreak)
	}

	// Two missed days without protection reset the streak.
	setServiceDay(svc, start.AddDate(0, 0, 5))
	res, err = svc.CheckIn(ctx)
	if err != nil {
		t.Fatalf("check-in after gap: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak after gap = %d, want 1", res.Streak)
	}

	n, err := svc.CheckinRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count checkins: %v", err)
	}
	if n != 4 {
		t.Fatalf("checkin rows = %d, want 4 (replay not logged)", n)
	}
}

func TestCheckInProtectionRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setServiceDay(svc, day(2024, time.March, 10))
	if _, err := svc.CheckIn(ctx); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	armed, err := svc.ActivateProtection(ctx)
	if err != nil || !armed {
		t.Fatalf("ActivateProtection = %v, %v", armed, err)
	}
	armed, err = svc.ActivateProtection(ctx)
	if err != nil {
		t.Fatalf("second ActivateProtection: %v", err)
	}
	if armed {
		t.Fatalf("second activation reported success")
	}

	// Miss the 11th; the token bridges the gap.
	setServiceDay(svc, day(2024, time.March, 12))
	res, err := svc.CheckIn(ctx)
	if err != nil {
		t.Fatalf("check-in after missed day: %v", err)
	}
	if res.Streak != 2 {
		t.Fatalf("streak = %d, want 2 (gap forgiven)", res.Streak)
	}
	if !res.ProtectionUsed {
		t.Fatalf("ProtectionUsed = false, want true")
	}

	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.ProtectionActive {
		t.Fatalf("protection still armed after use")
	}
	if p.ProtectionConsumedOn == nil || !sameDay(*p.ProtectionConsumedOn, day(2024, time.March, 11)) {
		t.Fatalf("ProtectionConsumedOn = %v, want 2024-03-11", p.ProtectionConsumedOn)
	}
}

func TestCompleteTaskSpawnsNextOccurrence(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setServiceDay(svc, day(2024, time.January, 31))

	due := day(2024, time.January, 31)
	created, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:      "Pay rent",
		DueDate:    &due,
		Recurrence: RecurrenceMonthly,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res, err := svc.CompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.NextID == nil || res.NextDue == nil {
		t.Fatalf("monthly task spawned no follow-up: %+v", res)
	}
	if want := day(2024, time.February, 29); !res.NextDue.Equal(want) {
		t.Fatalf("next due = %v, want %v (leap-year clamp)", res.NextDue, want)
	}
	if res.CheckIn == nil || res.CheckIn.Streak != 1 {
		t.Fatalf("completion did not count as activity: %+v", res.CheckIn)
	}

	// The original instance is done and stays done.
	orig, err := svc.TaskRepo().Get(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("get original: %v", err)
	}
	if orig.Status != "done" || orig.CompletedAt == nil {
		t.Fatalf("original = %s/%v, want done with completed_at", orig.Status, orig.CompletedAt)
	}

	next, err := svc.TaskRepo().Get(ctx, *res.NextID)
	if err != nil {
		t.Fatalf("get next: %v", err)
	}
	if next.Status != "pending" || next.Title != "Pay rent" || next.RecurrenceRule != "monthly" {
		t.Fatalf("next instance = %+v", next)
	}

	// Completing an already-done instance is an error, and a second
	// completion the same day pays no second reward.
	if _, err := svc.CompleteTask(ctx, created.TaskID); err == nil {
		t.Fatalf("expected error completing a done task")
	}
	res2, err := svc.CompleteTask(ctx, *res.NextID)
	if err != nil {
		t.Fatalf("complete next: %v", err)
	}
	if !res2.CheckIn.AlreadyCheckedIn {
		t.Fatalf("second completion on the same day paid again: %+v", res2.CheckIn)
	}
}

func TestCompleteTaskOneOff(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setServiceDay(svc, day(2024, time.March, 10))

	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Clean the desk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	res, err := svc.CompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.NextID != nil {
		t.Fatalf("one-off task spawned a follow-up: %+v", res)
	}

	open, err := svc.OpenTasks(ctx)
	if err != nil {
		t.Fatalf("OpenTasks: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("open tasks = %d, want 0", len(open))
	}
}

func TestCompanionLevelsAndEvolves(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setServiceDay(svc, day(2024, time.March, 10))
	if _, err := svc.CheckIn(ctx); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	// Push the companion to the edge of a stage boundary, then cross it
	// with a milestone payout.
	c, err := svc.CompanionRepo().GetOrCreateMain(ctx, DefaultSpecies)
	if err != nil {
		t.Fatalf("get companion: %v", err)
	}
	c.XPTotal = XPRequiredForLevel(4)
	c.Level = 4
	if err := svc.CompanionRepo().Update(ctx, c); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	p.CurrentStreak = 364
	p.LongestStreak = 364
	last := day(2024, time.March, 10)
	p.LastActivityDate = &last
	if err := svc.ProfileRepo().Update(ctx, p); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	setServiceDay(svc, day(2024, time.March, 11))
	res, err := svc.CheckIn(ctx)
	if err != nil {
		t.Fatalf("milestone check-in: %v", err)
	}
	if res.Streak != 365 {
		t.Fatalf("streak = %d, want 365", res.Streak)
	}
	if !res.LevelUp {
		t.Fatalf("10000 XP did not level up from level 4")
	}
	if res.Evolved == nil {
		t.Fatalf("no evolution reported crossing out of Seed")
	}

	view, err := svc.CompanionState(ctx)
	if err != nil {
		t.Fatalf("CompanionState: %v", err)
	}
	if view.Evolution.Current.Name != res.Evolved.Name {
		t.Fatalf("state stage %s != evolved stage %s", view.Evolution.Current.Name, res.Evolved.Name)
	}
}

func TestAdoptSpecies(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	view, err := svc.AdoptSpecies(ctx, "Ember")
	if err != nil {
		t.Fatalf("AdoptSpecies: %v", err)
	}
	if view.Species != "ember" {
		t.Fatalf("species = %s, want ember", view.Species)
	}

	if _, err := svc.AdoptSpecies(ctx, "gryphon"); err == nil {
		t.Fatalf("expected error for unknown species")
	}
}
