package engine

import "fmt"

// TaskStateError indicates an operation hit a task in the wrong status,
// e.g. completing an already-completed instance.
type TaskStateError struct {
	TaskID int64
	Status string
}

func (e TaskStateError) Error() string {
	return fmt.Sprintf("task %d is %s", e.TaskID, e.Status)
}
