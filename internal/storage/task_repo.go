package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// InTx returns a copy of the repo bound to the transaction.
func (r *TaskRepo) InTx(tx *sql.Tx) *TaskRepo {
	return &TaskRepo{db: tx}
}

type TaskInsert struct {
	Title          string
	Status         string
	DueDate        *time.Time
	RecurrenceRule string
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, status, due_date, recurrence_rule)
		VALUES (?, ?, ?, ?)
	`, in.Title, in.Status, in.DueDate, in.RecurrenceRule)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

const taskColumns = `id, title, status, created_at, completed_at, due_date, recurrence_rule`

func scanTask(row interface{ Scan(dest ...any) error }) (*Task, error) {
	var t Task
	if err := row.Scan(&t.ID, &t.Title, &t.Status, &t.CreatedAt, &t.CompletedAt, &t.DueDate, &t.RecurrenceRule); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task get: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`)
}

// ListByStatus returns tasks in the given status, due-soonest first
// with dateless tasks last.
func (r *TaskRepo) ListByStatus(ctx context.Context, status string) ([]Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = ?
		ORDER BY due_date IS NULL, due_date ASC, id ASC
	`, status)
}

func (r *TaskRepo) MarkDone(ctx context.Context, id int64, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = 'done', completed_at = ?
		WHERE id = ?
	`, completedAt, id)
	if err != nil {
		return fmt.Errorf("task mark done: %w", err)
	}
	return nil
}
