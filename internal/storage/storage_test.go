package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)

	p, err := repo.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	if p.CurrentStreak != 0 || p.LastActivityDate != nil || p.ProtectionActive {
		t.Fatalf("fresh profile not zero-valued: %+v", p)
	}

	last := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	consumed := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	p.Coins = 120
	p.CurrentStreak = 4
	p.LongestStreak = 9
	p.LastActivityDate = &last
	p.ProtectionActive = true
	p.ProtectionConsumedOn = &consumed
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, MainProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Coins != 120 || got.CurrentStreak != 4 || got.LongestStreak != 9 {
		t.Fatalf("got %+v", got)
	}
	if !got.ProtectionActive {
		t.Fatalf("protection flag lost on round trip")
	}
	if got.LastActivityDate == nil || !got.LastActivityDate.Equal(last) {
		t.Fatalf("LastActivityDate = %v, want %v", got.LastActivityDate, last)
	}
	if got.ProtectionConsumedOn == nil || !got.ProtectionConsumedOn.Equal(consumed) {
		t.Fatalf("ProtectionConsumedOn = %v, want %v", got.ProtectionConsumedOn, consumed)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := NewProfileRepo(db).Get(ctx, "nobody")
	if err != nil || p != nil {
		t.Fatalf("missing profile = %v, %v; want nil, nil", p, err)
	}
	c, err := NewCompanionRepo(db).Get(ctx, "nobody")
	if err != nil || c != nil {
		t.Fatalf("missing companion = %v, %v; want nil, nil", c, err)
	}
	task, err := NewTaskRepo(db).Get(ctx, 999)
	if err != nil || task != nil {
		t.Fatalf("missing task = %v, %v; want nil, nil", task, err)
	}
}

func TestTaskListByStatusOrdersByDue(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepo(db)

	late := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	soon := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Insert(ctx, TaskInsert{Title: "no due", Status: "pending", RecurrenceRule: "none"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, TaskInsert{Title: "late", Status: "pending", DueDate: &late, RecurrenceRule: "none"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	soonID, err := repo.Insert(ctx, TaskInsert{Title: "soon", Status: "pending", DueDate: &soon, RecurrenceRule: "weekly"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.MarkDone(ctx, soonID, time.Now()); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	open, err := repo.ListByStatus(ctx, "pending")
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open = %d, want 2", len(open))
	}
	if open[0].Title != "late" || open[1].Title != "no due" {
		t.Fatalf("order = %s, %s; want late, no due", open[0].Title, open[1].Title)
	}

	done, err := repo.ListByStatus(ctx, "done")
	if err != nil {
		t.Fatalf("ListByStatus done: %v", err)
	}
	if len(done) != 1 || done[0].CompletedAt == nil || done[0].RecurrenceRule != "weekly" {
		t.Fatalf("done = %+v", done)
	}
}

func TestReposInTxRollBackTogether(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepo(db)
	companions := NewCompanionRepo(db)
	checkins := NewCheckinRepo(db)

	if _, err := profiles.GetOrCreateMain(ctx); err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	if _, err := companions.GetOrCreateMain(ctx, "sprig"); err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}

	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	// The payout shape: wallet credit, XP grant, audit row. An error at
	// the end must undo all three.
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		p, err := profiles.InTx(tx).GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		p.Coins = 50
		p.CurrentStreak = 1
		p.LastActivityDate = &day
		if err := profiles.InTx(tx).Update(ctx, p); err != nil {
			return err
		}

		c, err := companions.InTx(tx).GetOrCreateMain(ctx, "sprig")
		if err != nil {
			return err
		}
		c.XPTotal = 100
		if err := companions.InTx(tx).Update(ctx, c); err != nil {
			return err
		}

		if _, err := checkins.InTx(tx).Insert(ctx, day, 1, 50, 100); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	p, err := profiles.Get(ctx, MainProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Coins != 0 || p.CurrentStreak != 0 || p.LastActivityDate != nil {
		t.Fatalf("profile write survived rollback: %+v", p)
	}
	c, err := companions.Get(ctx, MainCompanionKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.XPTotal != 0 {
		t.Fatalf("companion write survived rollback: %+v", c)
	}
	n, err := checkins.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Fatalf("checkin row survived rollback: %d", n)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO profiles (key) VALUES ('tx_user')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	p, err := NewProfileRepo(db).Get(ctx, "tx_user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Fatalf("insert survived rollback: %+v", p)
	}

	if err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO profiles (key) VALUES ('tx_user')`)
		return err
	}); err != nil {
		t.Fatalf("WithTx commit: %v", err)
	}
	p, err = NewProfileRepo(db).Get(ctx, "tx_user")
	if err != nil || p == nil {
		t.Fatalf("committed row missing: %v, %v", p, err)
	}
}
