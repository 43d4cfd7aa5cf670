package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CheckinRepo struct {
	db DBTX
}

func NewCheckinRepo(db *sql.DB) *CheckinRepo {
	return &CheckinRepo{db: db}
}

// InTx returns a copy of the repo bound to the transaction.
func (r *CheckinRepo) InTx(tx *sql.Tx) *CheckinRepo {
	return &CheckinRepo{db: tx}
}

func (r *CheckinRepo) Insert(ctx context.Context, day time.Time, streak, coins, xp int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (day, streak, coins, xp)
		VALUES (?, ?, ?, ?)
	`, day, streak, coins, xp)
	if err != nil {
		return 0, fmt.Errorf("checkin insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("checkin last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the latest n check-ins, newest first.
func (r *CheckinRepo) Recent(ctx context.Context, n int) ([]Checkin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, streak, coins, xp
		FROM checkins
		ORDER BY day DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("checkin recent: %w", err)
	}
	defer rows.Close()

	var out []Checkin
	for rows.Next() {
		var c Checkin
		if err := rows.Scan(&c.ID, &c.Day, &c.Streak, &c.Coins, &c.XP); err != nil {
			return nil, fmt.Errorf("checkin scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

func (r *CheckinRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkins`)
	var n int
	if err := row.Scan(&n); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("checkin count: %w", err)
	}
	return n, nil
}
