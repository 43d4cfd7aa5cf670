package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"denling/internal/storage"
)

type CreateTaskInput struct {
	Title      string
	DueDate    *time.Time
	Recurrence RecurrenceRule
}

type CreateResult struct {
	TaskID int64
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*CreateResult, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	rule := in.Recurrence
	if rule == "" {
		rule = RecurrenceNone
	}
	if !rule.IsValid() {
		return nil, fmt.Errorf("invalid recurrence rule: %q", in.Recurrence)
	}

	var due *time.Time
	if in.DueDate != nil {
		d := DateOnly(*in.DueDate)
		due = &d
	}

	id, err := s.tasks.Insert(ctx, storage.TaskInsert{
		Title:          title,
		Status:         "pending",
		DueDate:        due,
		RecurrenceRule: string(rule),
	})
	if err != nil {
		return nil, err
	}
	return &CreateResult{TaskID: id}, nil
}

type CompleteResult struct {
	TaskID int64

	// NextID/NextDue describe the follow-up instance spawned for a
	// repeating task; both are nil for one-off tasks.
	NextID  *int64
	NextDue *time.Time

	// CheckIn carries the streak/reward outcome: completing a task is
	// the qualifying daily activity.
	CheckIn *CheckInResult
}

// CompleteTask marks the instance done, spawns the next occurrence when
// the task repeats, and records the completion as today's activity, all
// in one transaction. The completed instance is never touched again;
// recurrence always derives a fresh row.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*CompleteResult, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %d not found", id)
	}
	if t.Status == "done" {
		return nil, TaskStateError{TaskID: id, Status: "already done"}
	}

	now := s.now()
	rule := RecurrenceRule(t.RecurrenceRule)
	res := &CompleteResult{TaskID: id}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := s.tasks.InTx(tx)
		if err := tasks.MarkDone(ctx, id, now); err != nil {
			return err
		}

		if rule.Repeats() {
			next, err := NextOccurrence(t.DueDate, rule, now)
			if err != nil {
				return err
			}
			nextID, err := tasks.Insert(ctx, storage.TaskInsert{
				Title:          t.Title,
				Status:         "pending",
				DueDate:        &next,
				RecurrenceRule: string(rule),
			})
			if err != nil {
				return err
			}
			res.NextID = &nextID
			res.NextDue = &next
		}

		ci, err := s.checkIn(ctx, tx)
		if err != nil {
			return err
		}
		res.CheckIn = ci
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// OpenTasks lists pending tasks, due-soonest first.
func (s *Service) OpenTasks(ctx context.Context) ([]storage.Task, error) {
	return s.tasks.ListByStatus(ctx, "pending")
}
