package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// InTx returns a copy of the repo bound to the transaction.
func (r *ProfileRepo) InTx(tx *sql.Tx) *ProfileRepo {
	return &ProfileRepo{db: tx}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, coins, current_streak, longest_streak, last_activity_date,
			protection_active, protection_consumed_on
		FROM profiles
		WHERE key = ?
	`, key)

	var p Profile
	var protection int
	if err := row.Scan(&p.Key, &p.Coins, &p.CurrentStreak, &p.LongestStreak, &p.LastActivityDate, &protection, &p.ProtectionConsumedOn); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.ProtectionActive = protection != 0
	return &p, nil
}

func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profiles (key) VALUES (?)`, MainProfileKey); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, MainProfileKey)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET coins = ?, current_streak = ?, longest_streak = ?, last_activity_date = ?,
			protection_active = ?, protection_consumed_on = ?
		WHERE key = ?
	`, p.Coins, p.CurrentStreak, p.LongestStreak, p.LastActivityDate, boolToInt(p.ProtectionActive), p.ProtectionConsumedOn, p.Key)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
