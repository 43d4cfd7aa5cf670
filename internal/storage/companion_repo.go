package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainCompanionKey = "main_companion"

type CompanionRepo struct {
	db DBTX
}

func NewCompanionRepo(db *sql.DB) *CompanionRepo {
	return &CompanionRepo{db: db}
}

// InTx returns a copy of the repo bound to the transaction.
func (r *CompanionRepo) InTx(tx *sql.Tx) *CompanionRepo {
	return &CompanionRepo{db: tx}
}

func (r *CompanionRepo) Get(ctx context.Context, key string) (*Companion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, species, xp_total, level FROM companions WHERE key = ?`, key)

	var c Companion
	if err := row.Scan(&c.Key, &c.Species, &c.XPTotal, &c.Level); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("companion get: %w", err)
	}
	return &c, nil
}

// GetOrCreateMain returns the single companion row, hatching one with
// the given species on first reference.
func (r *CompanionRepo) GetOrCreateMain(ctx context.Context, species string) (*Companion, error) {
	c, err := r.Get(ctx, MainCompanionKey)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO companions (key, species) VALUES (?, ?)`, MainCompanionKey, species); err != nil {
		return nil, fmt.Errorf("companion insert: %w", err)
	}
	return r.Get(ctx, MainCompanionKey)
}

func (r *CompanionRepo) Update(ctx context.Context, c *Companion) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE companions
		SET species = ?, xp_total = ?, level = ?
		WHERE key = ?
	`, c.Species, c.XPTotal, c.Level, c.Key)
	if err != nil {
		return fmt.Errorf("companion update: %w", err)
	}
	return nil
}
