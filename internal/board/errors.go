package board

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidReferenceError reports a task pointing at a column that does not exist.
type InvalidReferenceError struct {
	TaskID   string
	ColumnID string
}

func (e InvalidReferenceError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("invalid column reference: %s", e.ColumnID)
	}
	return fmt.Sprintf("task %s references unknown column %s", e.TaskID, e.ColumnID)
}

// NotPermutationError is returned when a replacement sequence adds, drops or duplicates ids.
type NotPermutationError struct {
	Kind   string
	Reason string
}

func (e NotPermutationError) Error() string {
	return fmt.Sprintf("%s sequence is not a permutation: %s", e.Kind, e.Reason)
}
