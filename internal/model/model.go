package model

import (
	"fmt"
	"strings"
	"time"
)

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Task struct {
	ID       string `json:"id"`
	ColumnID string `json:"columnId"`
	Content  string `json:"content"`
}

// Board is a read-only copy of the ordered collections.
type Board struct {
	Columns   []Column `json:"columns"`
	Tasks     []Task   `json:"tasks"`
	ColumnSeq int      `json:"columnSeq"`
}

// TasksFor returns the tasks owned by columnID in board order.
func (b Board) TasksFor(columnID string) []Task {
	out := []Task{}
	for _, t := range b.Tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

type DragKind int

const (
	DragNone DragKind = iota
	DragColumn
	DragTask
)

func (k DragKind) String() string {
	switch k {
	case DragColumn:
		return "column"
	case DragTask:
		return "task"
	default:
		return "none"
	}
}

func (k DragKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DragKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "none":
		*k = DragNone
	case "column":
		*k = DragColumn
	case "task":
		*k = DragTask
	default:
		return fmt.Errorf("invalid drag kind: %q", string(b))
	}
	return nil
}

// DragSubject is what a gesture is carrying: nothing, a column or a task.
// The zero value is the idle state.
type DragSubject struct {
	Kind DragKind `json:"kind"`
	ID   string   `json:"id,omitempty"`
}

func NoSubject() DragSubject              { return DragSubject{} }
func ColumnSubject(id string) DragSubject { return DragSubject{Kind: DragColumn, ID: id} }
func TaskSubject(id string) DragSubject   { return DragSubject{Kind: DragTask, ID: id} }

func (s DragSubject) IsNone() bool { return s.Kind == DragNone }

func (s DragSubject) String() string {
	if s.IsNone() {
		return "none"
	}
	return s.Kind.String() + "(" + s.ID + ")"
}

// Snapshot is what a renderer needs: both collections plus the active drag subject.
type Snapshot struct {
	Board
	Active DragSubject `json:"active"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
